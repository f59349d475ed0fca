// Package atc defines the Abstract Test Case data model: type expressions,
// value expressions, statements, programs, and the specification tree they
// are generated from.
package atc

import (
	"fmt"
	"strings"
)

// TypeExpr is a closed tagged union over the type-expression variants of
// the specification language: Const, Func, Map, Tuple, Set.
type TypeExpr interface {
	fmt.Stringer
	isTypeExpr()
	Clone() TypeExpr
}

// Const is a named base type, e.g. "int", "string", "bool".
type Const struct {
	Name string
}

// Func is a function type: params -> Return.
type Func struct {
	Params []TypeExpr
	Return TypeExpr
}

// Map is a map/dictionary type from Domain to Range.
type Map struct {
	Domain TypeExpr
	Range  TypeExpr
}

// Tuple is a fixed-arity heterogeneous product type.
type Tuple struct {
	Elements []TypeExpr
}

// Set is a homogeneous set type.
type Set struct {
	Element TypeExpr
}

func (Const) isTypeExpr() {}
func (Func) isTypeExpr()  {}
func (Map) isTypeExpr()   {}
func (Tuple) isTypeExpr() {}
func (Set) isTypeExpr()   {}

func (c Const) String() string { return c.Name }

func (f Func) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	ret := "?"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), ret)
}

func (m Map) String() string {
	dom, rng := "?", "?"
	if m.Domain != nil {
		dom = m.Domain.String()
	}
	if m.Range != nil {
		rng = m.Range.String()
	}
	return fmt.Sprintf("map<%s,%s>", dom, rng)
}

func (t Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

func (s Set) String() string {
	elem := "?"
	if s.Element != nil {
		elem = s.Element.String()
	}
	return fmt.Sprintf("set<%s>", elem)
}

func (c Const) Clone() TypeExpr { return Const{Name: c.Name} }

func (f Func) Clone() TypeExpr {
	params := make([]TypeExpr, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Clone()
	}
	var ret TypeExpr
	if f.Return != nil {
		ret = f.Return.Clone()
	}
	return Func{Params: params, Return: ret}
}

func (m Map) Clone() TypeExpr {
	var dom, rng TypeExpr
	if m.Domain != nil {
		dom = m.Domain.Clone()
	}
	if m.Range != nil {
		rng = m.Range.Clone()
	}
	return Map{Domain: dom, Range: rng}
}

func (t Tuple) Clone() TypeExpr {
	elems := make([]TypeExpr, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.Clone()
	}
	return Tuple{Elements: elems}
}

func (s Set) Clone() TypeExpr {
	var elem TypeExpr
	if s.Element != nil {
		elem = s.Element.Clone()
	}
	return Set{Element: elem}
}
