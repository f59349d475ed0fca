// Package solver bridges atc.Expr constraint trees to an SMT solver and
// turns a satisfying model back into concrete atc.Expr values. It plays
// the role of Solver/Z3Solver in the original tester: the Concretizer
// interrupts symbolic execution, hands the accumulated path constraint
// here, and resumes with whatever values come back.
package solver

import "github.com/atcgen-project/atcgen/internal/atc"

// Solver turns a boolean constraint expression into a model or a proof
// of unsatisfiability. Implementations own their own solver context and
// must be safe to reuse across independent Solve calls.
type Solver interface {
	// Solve checks satisfiability of constraint under the sorts recorded
	// in types, keyed by free variable name (bare names and SymVar
	// synthetic names alike). It returns a Result whose Sat field
	// reports satisfiability; Model is populated only when Sat is true.
	Solve(constraint atc.Expr, types TypeLookup) (*Result, error)
}

// TypeLookup is the minimal surface the solver needs from a type
// environment: a name-to-TypeExpr lookup. internal/env's TypeMap and
// SymbolTable both already satisfy this.
type TypeLookup interface {
	Lookup(name string) (atc.TypeExpr, bool)
}

// ValueKind classifies a ResultValue's payload, mirroring the original
// tester's ResultType enum (BOOL, INT, STRING, ARRAY).
type ValueKind int

const (
	KindBool ValueKind = iota
	KindInt
	KindString
	KindArray
)

// ResultValue is one variable's assignment in a satisfying model.
type ResultValue struct {
	Kind ValueKind

	Bool int64 // 0/1, valid when Kind == KindBool (kept as int64 to avoid a redundant bool field)
	Int  int64
	Str  string

	// AsExpr renders the value as an atc.Expr suitable for direct
	// substitution back into a Program by the Concretizer.
}

// BoolValue reports the value when Kind == KindBool.
func (r ResultValue) BoolValue() bool { return r.Bool != 0 }

// AsExpr converts the result value into the atc.Expr the Concretizer
// substitutes for the resolved input() call.
func (r ResultValue) AsExpr() atc.Expr {
	switch r.Kind {
	case KindBool:
		if r.BoolValue() {
			return atc.Var{Name: "true"}
		}
		return atc.Var{Name: "false"}
	case KindInt:
		return atc.Num{Value: r.Int}
	case KindString, KindArray:
		return atc.String{Value: r.Str}
	default:
		return atc.String{Value: r.Str}
	}
}

// Result is the outcome of one Solve call.
type Result struct {
	Sat   bool
	Model map[string]ResultValue
}
