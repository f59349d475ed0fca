package atcgen

import (
	"sort"

	"github.com/atcgen-project/atcgen/internal/atc"
)

// primeOp is the name genATC.cc reserves for the prime operator: a
// postcondition writes the next-state value of a global as '(U) rather
// than U'. Only FuncCall{Name: primeOp} is treated specially; every
// other FuncCall recurses structurally.
const primeOp = "'"

// extractPrimedVars walks a postcondition expression collecting every
// variable named inside a '(...) call, grounded on
// ATCGenerator::extractPrimedVars (genATC.cc).
func extractPrimedVars(e atc.Expr, out map[string]struct{}) {
	if e == nil {
		return
	}
	switch v := e.(type) {
	case atc.FuncCall:
		if v.Name == primeOp && len(v.Args) > 0 {
			if inner, ok := v.Args[0].(atc.Var); ok {
				out[inner.Name] = struct{}{}
			}
			return
		}
		for _, arg := range v.Args {
			extractPrimedVars(arg, out)
		}
	case atc.SetExpr:
		for _, elem := range v.Elements {
			extractPrimedVars(elem, out)
		}
	case atc.MapExpr:
		for _, entry := range v.Entries {
			extractPrimedVars(entry.Key, out)
			extractPrimedVars(entry.Value, out)
		}
	case atc.TupleExpr:
		for _, elem := range v.Elements {
			extractPrimedVars(elem, out)
		}
	}
}

// removePrimeNotation rewrites a postcondition so it no longer mentions
// prime notation: '(U) becomes U (the next-state value, which by the
// time this assertion runs is just whatever the API call produced), and
// any other occurrence of a variable that does have a primed form
// becomes U_old (the snapshot taken before the call), grounded on
// ATCGenerator::removePrimeNotation (genATC.cc).
func removePrimeNotation(e atc.Expr, primed map[string]struct{}, insidePrime bool) atc.Expr {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case atc.Var:
		if insidePrime {
			return atc.Var{Name: v.Name}
		}
		if _, ok := primed[v.Name]; ok {
			return atc.Var{Name: v.Name + "_old"}
		}
		return atc.Var{Name: v.Name}
	case atc.FuncCall:
		if v.Name == primeOp && len(v.Args) > 0 {
			return removePrimeNotation(v.Args[0], primed, true)
		}
		args := make([]atc.Expr, len(v.Args))
		for i, arg := range v.Args {
			args[i] = removePrimeNotation(arg, primed, insidePrime)
		}
		return atc.FuncCall{Name: v.Name, Args: args}
	case atc.Num:
		return atc.Num{Value: v.Value}
	case atc.String:
		return atc.String{Value: v.Value}
	case atc.SetExpr:
		elems := make([]atc.Expr, len(v.Elements))
		for i, elem := range v.Elements {
			elems[i] = removePrimeNotation(elem, primed, insidePrime)
		}
		return atc.SetExpr{Elements: elems}
	case atc.MapExpr:
		entries := make([]atc.MapEntry, len(v.Entries))
		for i, entry := range v.Entries {
			key := removePrimeNotation(entry.Key, primed, insidePrime).(atc.Var)
			entries[i] = atc.MapEntry{Key: key, Value: removePrimeNotation(entry.Value, primed, insidePrime)}
		}
		return atc.MapExpr{Entries: entries}
	case atc.TupleExpr:
		elems := make([]atc.Expr, len(v.Elements))
		for i, elem := range v.Elements {
			elems[i] = removePrimeNotation(elem, primed, insidePrime)
		}
		return atc.TupleExpr{Elements: elems}
	default:
		return e.Clone()
	}
}

// oldSnapshotStmts returns U_old := U for each variable that appears
// primed in the postcondition, in a stable order (sorted by name so
// generation is deterministic run to run).
func oldSnapshotStmts(primed map[string]struct{}) []atc.Stmt {
	names := make([]string, 0, len(primed))
	for name := range primed {
		names = append(names, name)
	}
	sort.Strings(names)
	stmts := make([]atc.Stmt, 0, len(names))
	for _, name := range names {
		stmts = append(stmts, atc.Assign{
			LHS: atc.Var{Name: name + "_old"},
			RHS: atc.Var{Name: name},
		})
	}
	return stmts
}
