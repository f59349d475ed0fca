// Package function is the seam between the Symbolic Execution Engine
// and the embedding application's real API implementations. It is the
// idiomatic-Go realization of the original tester's Function/
// FunctionFactory pair (see/functionfactory.hh): an interface the SEE
// calls once every argument to an API block has gone concrete, and a
// factory that resolves a block's call name to one.
package function

import "github.com/atcgen-project/atcgen/internal/atc"

// Function is one resolved, ready-to-run API call: every argument is
// already a concrete atc.Expr (no SymVar, no unresolved input()).
type Function interface {
	Execute() (atc.Expr, error)
}

// Factory resolves an API call's name and concrete arguments to a
// runnable Function. Grounded on FunctionFactory::getFunction
// (functionfactory.hh).
type Factory interface {
	GetFunction(name string, args []atc.Expr) (Function, error)
}

// FuncOf adapts a plain Go closure into a Function.
type FuncOf func() (atc.Expr, error)

// Execute implements Function.
func (f FuncOf) Execute() (atc.Expr, error) { return f() }
