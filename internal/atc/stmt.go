package atc

import "fmt"

// Stmt is the closed four-variant statement union: Assign, Assume,
// Assert, Decl. This unifies the two inconsistent statement-type sets
// the original implementation carried (ASSIGN|ASSUME|DECL in one place,
// ASSIGN|ASSUME|ASSERT in another) per spec.md §9's open question.
type Stmt interface {
	fmt.Stringer
	isStmt()
	Clone() Stmt
}

// Assign is `lhs := rhs`. lhs is a Var or a Tuple of Vars.
type Assign struct {
	LHS Expr
	RHS Expr
}

// Assume is `assume(cond)`: appends cond to the path constraint without
// producing a CTC-visible check.
type Assume struct {
	Cond Expr
}

// Assert is `assert(cond)`: appends cond to the path constraint and
// carries forward into the CTC as a runtime check.
type Assert struct {
	Cond Expr
}

// Decl declares a name of a given type and, when executed, binds it to a
// fresh symbolic variable. Never emitted by the ATC generator; reachable
// when an ATC is constructed directly (see internal/symexec tests).
type Decl struct {
	Name string
	Type TypeExpr
}

func (Assign) isStmt() {}
func (Assume) isStmt() {}
func (Assert) isStmt() {}
func (Decl) isStmt()   {}

func (a Assign) String() string { return fmt.Sprintf("%s := %s", a.LHS, a.RHS) }
func (a Assume) String() string { return fmt.Sprintf("assume(%s)", a.Cond) }
func (a Assert) String() string { return fmt.Sprintf("assert(%s)", a.Cond) }
func (d Decl) String() string   { return fmt.Sprintf("decl %s: %s", d.Name, d.Type) }

func (a Assign) Clone() Stmt { return Assign{LHS: a.LHS.Clone(), RHS: a.RHS.Clone()} }
func (a Assume) Clone() Stmt { return Assume{Cond: a.Cond.Clone()} }
func (a Assert) Clone() Stmt { return Assert{Cond: a.Cond.Clone()} }
func (d Decl) Clone() Stmt   { return Decl{Name: d.Name, Type: d.Type.Clone()} }
