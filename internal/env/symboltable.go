package env

import "github.com/atcgen-project/atcgen/internal/atc"

// SymbolTable maps names to TypeExpr. Binding is append-only within a
// scope and rejects duplicates (a binding conflict, per spec.md §7,
// indicates a broken spec). The global SymbolTable's ordered children
// correspond 1-to-1 with the Spec's API blocks, each child listing that
// block's local parameter names.
type SymbolTable struct {
	*Scope[atc.TypeExpr]
	children []*SymbolTable
}

// NewSymbolTable creates a SymbolTable chained to parent (nil for the
// root global table).
func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	var p *Scope[atc.TypeExpr]
	if parent != nil {
		p = parent.Scope
	}
	s := &Scope[atc.TypeExpr]{parent: p, table: make(map[string]atc.TypeExpr), appendOnly: true}
	return &SymbolTable{Scope: s}
}

// Bind adds a new name -> TypeExpr mapping. It fails if name is already
// bound in this scope.
func (t *SymbolTable) Bind(name string, ty atc.TypeExpr) error {
	return t.bind(name, ty)
}

// AddChild appends child as the next ordered child of t.
func (t *SymbolTable) AddChild(child *SymbolTable) {
	t.children = append(t.children, child)
}

// Child returns the i-th child symbol table, or nil if out of range.
func (t *SymbolTable) Child(i int) *SymbolTable {
	if i < 0 || i >= len(t.children) {
		return nil
	}
	return t.children[i]
}

// ChildCount returns the number of ordered children.
func (t *SymbolTable) ChildCount() int {
	return len(t.children)
}
