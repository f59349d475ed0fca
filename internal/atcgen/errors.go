package atcgen

import "github.com/pkg/errors"

// ErrMalformedInput is returned when the test string names a block the
// Spec doesn't define, or a block's global symbol table entry is
// missing — both indicate a Spec/SymbolTable pair that doesn't agree
// with each other, one of the fatal error kinds from spec.md §7.
var ErrMalformedInput = errors.New("atcgen: malformed input")
