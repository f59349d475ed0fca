package function

import (
	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/pkg/errors"
)

// ErrUnknownFunction is returned when a Factory has no implementation
// for a requested API call name.
var ErrUnknownFunction = errors.New("function: unknown function")

// RegistryFactory is a name-keyed table of Go closures, the simplest
// realization of Factory: register once at startup, resolve by name at
// symbolic-execution time. Grounded on the teacher's own style of
// exposing named test fixtures as plain functions (testdata/mocks) —
// generalized here from a single hardcoded mock into an open registry.
type RegistryFactory struct {
	impls map[string]func(args []atc.Expr) (atc.Expr, error)
}

// NewRegistryFactory creates an empty RegistryFactory.
func NewRegistryFactory() *RegistryFactory {
	return &RegistryFactory{impls: make(map[string]func(args []atc.Expr) (atc.Expr, error))}
}

// Register binds name to impl, overwriting any previous registration.
func (r *RegistryFactory) Register(name string, impl func(args []atc.Expr) (atc.Expr, error)) {
	r.impls[name] = impl
}

// GetFunction implements Factory.
func (r *RegistryFactory) GetFunction(name string, args []atc.Expr) (Function, error) {
	impl, ok := r.impls[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFunction, "%q", name)
	}
	boundArgs := args
	return FuncOf(func() (atc.Expr, error) { return impl(boundArgs) }), nil
}
