package atcgen

import "github.com/atcgen-project/atcgen/internal/atc"

// convertExpr renames every variable local to blockSyms by appending
// suffix (the block's index in spec.Blocks, see genBlock); a variable
// not bound in blockSyms is a
// global and passes through unchanged. Grounded on
// ATCGenerator::convertExpr (genATC.cc).
func convertExpr(e atc.Expr, blockSyms lookupOnly, suffix string) atc.Expr {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case atc.Var:
		if blockSyms != nil && blockSyms.HasLocal(v.Name) {
			return atc.Var{Name: v.Name + suffix}
		}
		return atc.Var{Name: v.Name}
	case atc.FuncCall:
		args := make([]atc.Expr, len(v.Args))
		for i, arg := range v.Args {
			args[i] = convertExpr(arg, blockSyms, suffix)
		}
		return atc.FuncCall{Name: v.Name, Args: args}
	case atc.Num:
		return atc.Num{Value: v.Value}
	case atc.String:
		return atc.String{Value: v.Value}
	case atc.SetExpr:
		elems := make([]atc.Expr, len(v.Elements))
		for i, elem := range v.Elements {
			elems[i] = convertExpr(elem, blockSyms, suffix)
		}
		return atc.SetExpr{Elements: elems}
	case atc.MapExpr:
		entries := make([]atc.MapEntry, len(v.Entries))
		for i, entry := range v.Entries {
			key := convertExpr(entry.Key, blockSyms, suffix).(atc.Var)
			entries[i] = atc.MapEntry{Key: key, Value: convertExpr(entry.Value, blockSyms, suffix)}
		}
		return atc.MapExpr{Entries: entries}
	case atc.TupleExpr:
		elems := make([]atc.Expr, len(v.Elements))
		for i, elem := range v.Elements {
			elems[i] = convertExpr(elem, blockSyms, suffix)
		}
		return atc.TupleExpr{Elements: elems}
	default:
		return e.Clone()
	}
}

// lookupOnly is the minimal surface convertExpr/collectInputVars need
// from a block's local SymbolTable: "is this name local to this block".
// env.SymbolTable satisfies it via its embedded Scope.
type lookupOnly interface {
	HasLocal(name string) bool
}
