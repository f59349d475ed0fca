package atcgen

import "github.com/atcgen-project/atcgen/internal/atc"

// inputVar pairs an input variable's suffixed ATC name with the
// original block-local name it was renamed from, so the caller can look
// its declared type up in the block's SymbolTable and re-bind it under
// the suffixed name for the solver to consult later.
type inputVar struct {
	Suffixed atc.Var
	Original string
}

// collectInputVars finds every variable local to blockSyms mentioned in
// e (the block's call arguments and precondition are scanned this way),
// suffixes it, and appends it if not already present. Grounded on
// ATCGenerator::collectInputVars (genATC.cc). Only Var leaf nodes local
// to the block count as inputs — a global referenced inside a call
// argument is not something the ATC needs to solve for.
func collectInputVars(e atc.Expr, blockSyms lookupOnly, suffix string, seen map[string]struct{}, out *[]inputVar) {
	if e == nil {
		return
	}
	switch v := e.(type) {
	case atc.Var:
		if blockSyms != nil && blockSyms.HasLocal(v.Name) {
			suffixed := v.Name + suffix
			if _, dup := seen[suffixed]; !dup {
				seen[suffixed] = struct{}{}
				*out = append(*out, inputVar{Suffixed: atc.Var{Name: suffixed}, Original: v.Name})
			}
		}
	case atc.FuncCall:
		for _, arg := range v.Args {
			collectInputVars(arg, blockSyms, suffix, seen, out)
		}
	case atc.SetExpr:
		for _, elem := range v.Elements {
			collectInputVars(elem, blockSyms, suffix, seen, out)
		}
	case atc.MapExpr:
		for _, entry := range v.Entries {
			collectInputVars(entry.Key, blockSyms, suffix, seen, out)
			collectInputVars(entry.Value, blockSyms, suffix, seen, out)
		}
	case atc.TupleExpr:
		for _, elem := range v.Elements {
			collectInputVars(elem, blockSyms, suffix, seen, out)
		}
	}
}

// makeInputStmt builds `varExpr := input()`, the abstract placeholder
// the Concretizer later resolves into a concrete value. Grounded on
// ATCGenerator::makeInputStmt (genATC.cc).
func makeInputStmt(v atc.Var) atc.Stmt {
	return atc.Assign{LHS: v, RHS: atc.Input()}
}
