package tester

import "github.com/pkg/errors"

// ErrRewriteLengthMismatch is returned when RewriteATC is called with a
// non-empty concrete-value list against an empty program — a broken
// concretization run, never a normal outcome.
var ErrRewriteLengthMismatch = errors.New("tester: rewriteATC called with values but no statements")

// ErrMalformedInput is returned when an input() assignment's LHS is not
// a Var, which the rewrite step has no way to concretize.
var ErrMalformedInput = errors.New("tester: input assignment LHS must be a Var")
