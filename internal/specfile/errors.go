package specfile

import "github.com/pkg/errors"

// ErrUnrecognizedExpr is returned when an expression node in the YAML
// document matches none of the recognized shapes (var/prime/set/map/
// tuple/op, or a bare scalar).
var ErrUnrecognizedExpr = errors.New("specfile: unrecognized expression node")

// ErrUnrecognizedType is returned when a type node matches none of the
// recognized shapes (a bare scalar name, or map/set/tuple/func).
var ErrUnrecognizedType = errors.New("specfile: unrecognized type node")
