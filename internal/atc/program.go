package atc

import "strings"

// Program is an ordered sequence of statements: an ATC before full
// concretization, or a CTC once every input() has been resolved.
type Program struct {
	Statements []Stmt
}

// Clone returns a deep, ownership-independent copy of p. SymVar identity
// is preserved across the clone.
func (p *Program) Clone() *Program {
	stmts := make([]Stmt, len(p.Statements))
	for i, s := range p.Statements {
		stmts[i] = s.Clone()
	}
	return &Program{Statements: stmts}
}

// IsAbstract reports whether p still contains at least one
// Assign(_, input()) statement.
func (p *Program) IsAbstract() bool {
	for _, s := range p.Statements {
		if a, ok := s.(Assign); ok && IsInput(a.RHS) {
			return true
		}
	}
	return false
}

func (p *Program) String() string {
	lines := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}
