package env

import "github.com/atcgen-project/atcgen/internal/atc"

// TypeMap maps names to TypeExpr and is consulted by the SMT bridge to
// choose the right SMT sort for each free name. Bind overwrites.
type TypeMap struct {
	*Scope[atc.TypeExpr]
}

// NewTypeMap creates a TypeMap chained to parent (nil for a root map).
func NewTypeMap(parent *TypeMap) *TypeMap {
	var p *Scope[atc.TypeExpr]
	if parent != nil {
		p = parent.Scope
	}
	return &TypeMap{Scope: &Scope[atc.TypeExpr]{parent: p, table: make(map[string]atc.TypeExpr)}}
}

// Bind overwrites the binding for name.
func (m *TypeMap) Bind(name string, ty atc.TypeExpr) {
	_ = m.bind(name, ty) // overwrite policy never errors
}
