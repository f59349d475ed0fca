package solver

import "github.com/pkg/errors"

// ErrTupleUnsupported is returned when a constraint mentions a
// atc.TupleExpr or atc.Tuple sort. Z3's tuple/datatype support exists
// but go-z3 does not expose it; the original tester also stubs tuple
// handling in its Z3 bridge. See DESIGN.md.
var ErrTupleUnsupported = errors.New("solver: tuple expressions are not supported")

// ErrUnknownOperator is returned when a FuncCall names something
// outside the closed built-in vocabulary this bridge understands.
var ErrUnknownOperator = errors.New("solver: unknown operator")

// ErrMalformedConstraint is returned for structurally invalid input,
// e.g. a built-in called with the wrong arity.
var ErrMalformedConstraint = errors.New("solver: malformed constraint")
