package atc

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Expr is a closed tagged union over the value-expression variants:
// Var, Num, String, Set, Map, Tuple, FuncCall, SymVar. Input is
// represented as FuncCall("input", nil); see IsInput.
type Expr interface {
	fmt.Stringer
	isExpr()
	Clone() Expr
}

// Var is a named reference to a bound or about-to-be-bound value.
type Var struct {
	Name string
}

// Num is an integer literal.
type Num struct {
	Value int64
}

// String is a string literal.
type String struct {
	Value string
}

// SetExpr is an ordered sequence of elements, semantically a set.
type SetExpr struct {
	Elements []Expr
}

// MapEntry is one key/value pair of a MapExpr. Keys are variable-valued
// per the data model (§3): a map literal's keys are Var nodes.
type MapEntry struct {
	Key   Var
	Value Expr
}

// MapExpr is an ordered sequence of key/value entries.
type MapExpr struct {
	Entries []MapEntry
}

// TupleExpr is a fixed-arity heterogeneous product value.
type TupleExpr struct {
	Elements []Expr
}

// FuncCall is either a built-in operator application or an API call,
// distinguished at symbolic-execution time by symexec.IsAPI.
type FuncCall struct {
	Name string
	Args []Expr
}

// SymVar is a symbolic placeholder with a globally unique integer
// identity. Cloning a SymVar preserves N so that two clones of the same
// symbolic input refer to the same SMT variable.
type SymVar struct {
	N int64
}

func (Var) isExpr()       {}
func (Num) isExpr()       {}
func (String) isExpr()    {}
func (SetExpr) isExpr()   {}
func (MapExpr) isExpr()   {}
func (TupleExpr) isExpr() {}
func (FuncCall) isExpr()  {}
func (SymVar) isExpr()    {}

func (v Var) String() string    { return v.Name }
func (n Num) String() string    { return strconv.FormatInt(n.Value, 10) }
func (s String) String() string { return strconv.Quote(s.Value) }

func (s SetExpr) String() string {
	parts := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (m MapExpr) String() string {
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = fmt.Sprintf("%s -> %s", e.Key.String(), e.Value.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (t TupleExpr) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (f FuncCall) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(parts, ", "))
}

func (s SymVar) String() string { return "X" + strconv.FormatInt(s.N, 10) }

func (v Var) Clone() Expr    { return Var{Name: v.Name} }
func (n Num) Clone() Expr    { return Num{Value: n.Value} }
func (s String) Clone() Expr { return String{Value: s.Value} }

func (s SetExpr) Clone() Expr {
	elems := make([]Expr, len(s.Elements))
	for i, e := range s.Elements {
		elems[i] = e.Clone()
	}
	return SetExpr{Elements: elems}
}

func (m MapExpr) Clone() Expr {
	entries := make([]MapEntry, len(m.Entries))
	for i, e := range m.Entries {
		entries[i] = MapEntry{Key: Var{Name: e.Key.Name}, Value: e.Value.Clone()}
	}
	return MapExpr{Entries: entries}
}

func (t TupleExpr) Clone() Expr {
	elems := make([]Expr, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.Clone()
	}
	return TupleExpr{Elements: elems}
}

func (f FuncCall) Clone() Expr {
	args := make([]Expr, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.Clone()
	}
	return FuncCall{Name: f.Name, Args: args}
}

// Clone preserves the SymVar's identity: cloning SymVar(n) yields
// SymVar(n) with the same n, so clones of the same symbolic input refer
// to the same SMT variable.
func (s SymVar) Clone() Expr { return SymVar{N: s.N} }

// Input builds the FuncCall("input", []) marker for an unresolved input
// slot.
func Input() Expr { return FuncCall{Name: "input", Args: nil} }

// IsInput reports whether e is the FuncCall("input", []) marker.
func IsInput(e Expr) bool {
	fc, ok := e.(FuncCall)
	return ok && fc.Name == "input" && len(fc.Args) == 0
}

// IdentSource mints globally unique, monotonically increasing SymVar
// identities. It is injected rather than held as package-level state so
// that clones preserve identity while new materializations use fresh
// ids, per the design notes on avoiding hidden global state.
type IdentSource struct {
	next atomic.Int64
}

// NewIdentSource returns an IdentSource whose first minted id is 0.
func NewIdentSource() *IdentSource {
	return &IdentSource{}
}

// Next mints and returns a fresh, unique SymVar.
func (s *IdentSource) Next() SymVar {
	n := s.next.Add(1) - 1
	return SymVar{N: n}
}
