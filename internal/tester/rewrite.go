package tester

import (
	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/pkg/errors"
)

// RewriteATC substitutes concreteVals, in order, for the successive
// input() call sites in atc — every other statement is carried over
// unchanged. If there are more input() sites than values, the trailing
// ones are left as input() for a later round. Grounded line for line on
// Tester::rewriteATC (tester.cc).
func RewriteATC(prog *atc.Program, concreteVals []atc.Expr) (*atc.Program, error) {
	if len(prog.Statements) == 0 && len(concreteVals) != 0 {
		return nil, ErrRewriteLengthMismatch
	}

	newStmts := make([]atc.Stmt, 0, len(prog.Statements))
	valIndex := 0

	for _, stmt := range prog.Statements {
		assign, ok := stmt.(atc.Assign)
		if !ok || !atc.IsInput(assign.RHS) {
			newStmts = append(newStmts, stmt.Clone())
			continue
		}

		lhs, ok := assign.LHS.(atc.Var)
		if !ok {
			return nil, errors.Wrapf(ErrMalformedInput, "got %T", assign.LHS)
		}

		if valIndex >= len(concreteVals) {
			newStmts = append(newStmts, stmt.Clone())
			continue
		}

		newStmts = append(newStmts, atc.Assign{LHS: lhs, RHS: concreteVals[valIndex].Clone()})
		valIndex++
	}

	return &atc.Program{Statements: newStmts}, nil
}
