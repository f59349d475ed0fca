package function

import (
	"reflect"

	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/pkg/errors"
)

// ErrArgConversion is returned when an atc.Expr can't be converted to
// the Go type a target function parameter declares, or vice versa.
var ErrArgConversion = errors.New("function: argument conversion failed")

// ReflectFactory resolves API call names to methods (or, via
// RegisterFunc, plain functions) on a real Go value using reflect —
// the bridge that lets a spec's block name a method the embedding
// application actually implements, rather than a hand-registered
// closure. Grounded on internal/inspect's use of go/types to discover
// the same signatures statically; ReflectFactory is the runtime half
// that actually invokes them.
type ReflectFactory struct {
	target reflect.Value
	funcs  map[string]reflect.Value
}

// NewReflectFactory wraps target (typically a pointer to a struct whose
// exported methods are the API's implementations). Method lookup is by
// exported Go method name, matched against the block's call name.
func NewReflectFactory(target interface{}) *ReflectFactory {
	return &ReflectFactory{target: reflect.ValueOf(target), funcs: make(map[string]reflect.Value)}
}

// RegisterFunc additionally exposes a bare func value under name,
// alongside methods on the wrapped target.
func (r *ReflectFactory) RegisterFunc(name string, fn interface{}) {
	r.funcs[name] = reflect.ValueOf(fn)
}

// GetFunction implements Factory.
func (r *ReflectFactory) GetFunction(name string, args []atc.Expr) (Function, error) {
	fn, ok := r.funcs[name]
	if !ok {
		method := r.target.MethodByName(name)
		if !method.IsValid() {
			return nil, errors.Wrapf(ErrUnknownFunction, "%q has no method or registered func", name)
		}
		fn = method
	}
	return FuncOf(func() (atc.Expr, error) { return callReflect(fn, args) }), nil
}

func callReflect(fn reflect.Value, args []atc.Expr) (atc.Expr, error) {
	t := fn.Type()
	if !t.IsVariadic() && t.NumIn() != len(args) {
		return nil, errors.Wrapf(ErrArgConversion, "expected %d args, got %d", t.NumIn(), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		paramType := t.In(i)
		if t.IsVariadic() && i >= t.NumIn()-1 {
			paramType = t.In(t.NumIn() - 1).Elem()
		}
		v, err := exprToReflect(arg, paramType)
		if err != nil {
			return nil, err
		}
		in[i] = v
	}

	out := fn.Call(in)
	if len(out) == 0 {
		return atc.Var{Name: "true"}, nil
	}
	// A trailing error return, if present, is surfaced rather than
	// converted, matching the Go convention (result, err).
	last := out[len(out)-1]
	if last.Type().Implements(reflect.TypeOf((*error)(nil)).Elem()) {
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return atc.Var{Name: "true"}, nil
	}
	if len(out) == 1 {
		return reflectToExpr(out[0])
	}
	elems := make([]atc.Expr, len(out))
	for i, v := range out {
		e, err := reflectToExpr(v)
		if err != nil {
			return nil, err
		}
		elems[i] = e
	}
	return atc.TupleExpr{Elements: elems}, nil
}

func exprToReflect(e atc.Expr, target reflect.Type) (reflect.Value, error) {
	switch v := e.(type) {
	case atc.Num:
		switch target.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			rv := reflect.New(target).Elem()
			rv.SetInt(v.Value)
			return rv, nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			rv := reflect.New(target).Elem()
			rv.SetUint(uint64(v.Value))
			return rv, nil
		case reflect.Float32, reflect.Float64:
			rv := reflect.New(target).Elem()
			rv.SetFloat(float64(v.Value))
			return rv, nil
		}
	case atc.String:
		if target.Kind() == reflect.String {
			return reflect.ValueOf(v.Value).Convert(target), nil
		}
	case atc.Var:
		if target.Kind() == reflect.Bool {
			switch v.Name {
			case "true":
				return reflect.ValueOf(true), nil
			case "false":
				return reflect.ValueOf(false), nil
			}
		}
	case atc.SetExpr:
		if target.Kind() == reflect.Slice {
			out := reflect.MakeSlice(target, len(v.Elements), len(v.Elements))
			for i, elem := range v.Elements {
				ev, err := exprToReflect(elem, target.Elem())
				if err != nil {
					return reflect.Value{}, err
				}
				out.Index(i).Set(ev)
			}
			return out, nil
		}
	case atc.MapExpr:
		if target.Kind() == reflect.Map {
			out := reflect.MakeMapWithSize(target, len(v.Entries))
			for _, entry := range v.Entries {
				kv, err := exprToReflect(entry.Key, target.Key())
				if err != nil {
					return reflect.Value{}, err
				}
				vv, err := exprToReflect(entry.Value, target.Elem())
				if err != nil {
					return reflect.Value{}, err
				}
				out.SetMapIndex(kv, vv)
			}
			return out, nil
		}
	}
	return reflect.Value{}, errors.Wrapf(ErrArgConversion, "cannot convert %T to %s", e, target)
}

func reflectToExpr(v reflect.Value) (atc.Expr, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return atc.Num{Value: v.Int()}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return atc.Num{Value: int64(v.Uint())}, nil
	case reflect.Float32, reflect.Float64:
		return atc.Num{Value: int64(v.Float())}, nil
	case reflect.String:
		return atc.String{Value: v.String()}, nil
	case reflect.Bool:
		if v.Bool() {
			return atc.Var{Name: "true"}, nil
		}
		return atc.Var{Name: "false"}, nil
	case reflect.Slice, reflect.Array:
		elems := make([]atc.Expr, v.Len())
		for i := 0; i < v.Len(); i++ {
			e, err := reflectToExpr(v.Index(i))
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return atc.SetExpr{Elements: elems}, nil
	case reflect.Map:
		entries := make([]atc.MapEntry, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			key, err := reflectToExpr(iter.Key())
			if err != nil {
				return nil, err
			}
			var keyVar atc.Var
			switch k := key.(type) {
			case atc.Var:
				keyVar = k
			case atc.String:
				keyVar = atc.Var{Name: k.Value}
			default:
				return nil, errors.Wrapf(ErrArgConversion, "map key %T cannot become a Var", key)
			}
			val, err := reflectToExpr(iter.Value())
			if err != nil {
				return nil, err
			}
			entries = append(entries, atc.MapEntry{Key: keyVar, Value: val})
		}
		return atc.MapExpr{Entries: entries}, nil
	default:
		return nil, errors.Wrapf(ErrArgConversion, "cannot convert reflect kind %s to atc.Expr", v.Kind())
	}
}
