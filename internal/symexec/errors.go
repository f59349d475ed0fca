package symexec

import "github.com/pkg/errors"

// ErrNoFunctionFactory is returned when an API-call Assign is reached
// but the Engine was built without a function.Factory to resolve it.
var ErrNoFunctionFactory = errors.New("symexec: no function factory set")
