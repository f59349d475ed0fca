package symexec

import (
	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/atcgen-project/atcgen/internal/env"
)

// IsSymbolic reports whether e's value is (or transitively contains) a
// SymVar, consulting sigma to resolve Var references. Grounded verbatim
// on SEE::isSymbolic (see.cc); note the original's parameter name
// suggests a SymbolTable but its body actually only ever consults the
// SEE's own sigma field, which is why this Go version takes sigma
// directly rather than a SymbolTable.
func IsSymbolic(e atc.Expr, sigma *env.ValueEnvironment) bool {
	switch v := e.(type) {
	case atc.SymVar:
		return true
	case atc.FuncCall:
		for _, arg := range v.Args {
			if IsSymbolic(arg, sigma) {
				return true
			}
		}
		return false
	case atc.MapExpr:
		for _, entry := range v.Entries {
			if IsSymbolic(entry.Value, sigma) {
				return true
			}
		}
		return false
	case atc.SetExpr:
		for _, elem := range v.Elements {
			if IsSymbolic(elem, sigma) {
				return true
			}
		}
		return false
	case atc.TupleExpr:
		for _, elem := range v.Elements {
			if IsSymbolic(elem, sigma) {
				return true
			}
		}
		return false
	case atc.Var:
		if val, ok := sigma.Lookup(v.Name); ok {
			return IsSymbolic(val, sigma)
		}
		return false
	default:
		return false
	}
}

// IsReadyExpr reports whether e can be evaluated right now without
// interrupting for concretization: everything is ready except an API
// call (see IsAPI) that still has a symbolic argument, a bare SymVar
// (already the product of evaluation, never itself "ready" to evaluate
// further), a composite literal containing one of those, and a Var that
// is unbound in sigma or bound to a symbolic value. A non-API FuncCall
// is ready without its arguments being inspected. Grounded on
// SEE::isReady(Expr&, SymbolTable&).
func IsReadyExpr(e atc.Expr, sigma *env.ValueEnvironment) bool {
	switch v := e.(type) {
	case atc.FuncCall:
		if atc.IsInput(v) {
			return true
		}
		if IsAPI(v.Name) {
			for _, arg := range v.Args {
				if IsSymbolic(arg, sigma) {
					return false
				}
			}
			return true
		}
		return true
	case atc.MapExpr:
		for _, entry := range v.Entries {
			if !IsReadyExpr(entry.Value, sigma) {
				return false
			}
		}
		return true
	case atc.Num:
		return true
	case atc.SetExpr:
		for _, elem := range v.Elements {
			if !IsReadyExpr(elem, sigma) {
				return false
			}
		}
		return true
	case atc.String:
		return true
	case atc.SymVar:
		return false
	case atc.TupleExpr:
		for _, elem := range v.Elements {
			if !IsReadyExpr(elem, sigma) {
				return false
			}
		}
		return true
	case atc.Var:
		val, ok := sigma.Lookup(v.Name)
		if !ok {
			return false
		}
		return !IsSymbolic(val, sigma)
	default:
		return false
	}
}

// IsReadyStmt reports whether s can execute right now. Grounded on
// SEE::isReady(Stmt&, SymbolTable&); Assert is treated identically to
// Assume (both append to the path constraint on execution) since the
// unified Stmt union folds the original's two divergent statement sets
// into one, per the design note on atc.Stmt.
func IsReadyStmt(s atc.Stmt, sigma *env.ValueEnvironment) bool {
	switch v := s.(type) {
	case atc.Assign:
		if fc, ok := v.RHS.(atc.FuncCall); ok && !atc.IsInput(fc) {
			if IsAPI(fc.Name) {
				for _, arg := range fc.Args {
					if IsSymbolic(arg, sigma) {
						return false
					}
				}
				return true
			}
			return true
		}
		return IsReadyExpr(v.RHS, sigma)
	case atc.Assume:
		return IsReadyExpr(v.Cond, sigma)
	case atc.Assert:
		return IsReadyExpr(v.Cond, sigma)
	case atc.Decl:
		return true
	default:
		return false
	}
}
