package env

import "github.com/atcgen-project/atcgen/internal/atc"

// ValueEnvironment (σ) maps names to their current symbolic/concrete
// value. Bind overwrites; there is no duplicate-key restriction here,
// unlike SymbolTable.
type ValueEnvironment struct {
	*Scope[atc.Expr]
}

// NewValueEnvironment creates a ValueEnvironment chained to parent (nil
// for a fresh root, as used at the start of each concretization run).
func NewValueEnvironment(parent *ValueEnvironment) *ValueEnvironment {
	var p *Scope[atc.Expr]
	if parent != nil {
		p = parent.Scope
	}
	return &ValueEnvironment{Scope: &Scope[atc.Expr]{parent: p, table: make(map[string]atc.Expr)}}
}

// Bind overwrites the binding for name.
func (v *ValueEnvironment) Bind(name string, value atc.Expr) {
	_ = v.bind(name, value) // overwrite policy never errors
}
