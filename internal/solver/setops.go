package solver

import (
	"reflect"

	"github.com/atcgen-project/atcgen/internal/atc"
)

// literalSetElements recursively resolves e to a concrete element list
// when e is built entirely from set literals and the closed-form set
// combinators (add_to_set, remove_from_set, union, intersection,
// difference): it reports ok=false the moment it hits anything it
// can't see through (a Var bound to a value not visible from here, a
// SymVar, an API call). This lets union/intersection/difference/
// subset/is_empty_set be computed precisely at the atc.Expr level
// whenever a constraint's sets trace back to literals — the common
// case for ATC-generated preconditions. Map literals (e.g. the {u0 -> p0}
// in union(U_old, {u0 -> p0})) are not resolved here, so a union over
// them takes encodeSetAlgebra's placeholder path.
func literalSetElements(e atc.Expr) ([]atc.Expr, bool) {
	switch v := e.(type) {
	case atc.SetExpr:
		return append([]atc.Expr(nil), v.Elements...), true
	case atc.FuncCall:
		switch v.Name {
		case "add_to_set":
			if len(v.Args) != 2 {
				return nil, false
			}
			base, ok := literalSetElements(v.Args[0])
			if !ok {
				return nil, false
			}
			return unionExprs(base, []atc.Expr{v.Args[1]}), true
		case "remove_from_set":
			if len(v.Args) != 2 {
				return nil, false
			}
			base, ok := literalSetElements(v.Args[0])
			if !ok {
				return nil, false
			}
			return differenceExprs(base, []atc.Expr{v.Args[1]}), true
		case "union":
			if len(v.Args) != 2 {
				return nil, false
			}
			a, ok := literalSetElements(v.Args[0])
			if !ok {
				return nil, false
			}
			b, ok := literalSetElements(v.Args[1])
			if !ok {
				return nil, false
			}
			return unionExprs(a, b), true
		case "intersection", "intersect":
			if len(v.Args) != 2 {
				return nil, false
			}
			a, ok := literalSetElements(v.Args[0])
			if !ok {
				return nil, false
			}
			b, ok := literalSetElements(v.Args[1])
			if !ok {
				return nil, false
			}
			return intersectExprs(a, b), true
		case "difference", "diff", "minus":
			if len(v.Args) != 2 {
				return nil, false
			}
			a, ok := literalSetElements(v.Args[0])
			if !ok {
				return nil, false
			}
			b, ok := literalSetElements(v.Args[1])
			if !ok {
				return nil, false
			}
			return differenceExprs(a, b), true
		}
	}
	return nil, false
}

func exprEqual(a, b atc.Expr) bool {
	return reflect.DeepEqual(a, b)
}

func containsExpr(elems []atc.Expr, e atc.Expr) bool {
	for _, x := range elems {
		if exprEqual(x, e) {
			return true
		}
	}
	return false
}

func unionExprs(a, b []atc.Expr) []atc.Expr {
	result := append([]atc.Expr(nil), a...)
	for _, e := range b {
		if !containsExpr(result, e) {
			result = append(result, e)
		}
	}
	return result
}

func intersectExprs(a, b []atc.Expr) []atc.Expr {
	var result []atc.Expr
	for _, e := range a {
		if containsExpr(b, e) {
			result = append(result, e)
		}
	}
	return result
}

func differenceExprs(a, b []atc.Expr) []atc.Expr {
	var result []atc.Expr
	for _, e := range a {
		if !containsExpr(b, e) {
			result = append(result, e)
		}
	}
	return result
}
