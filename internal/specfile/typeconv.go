package specfile

import (
	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/pkg/errors"
)

// convertType turns one decoded YAML node into an atc.TypeExpr: a bare
// scalar names a Const ("string", "int", "bool", ...), and a tagged map
// spells out map/set/tuple/func composition.
func convertType(v interface{}) (atc.TypeExpr, error) {
	switch val := v.(type) {
	case string:
		return atc.Const{Name: val}, nil
	case map[string]interface{}:
		return convertTypeNode(val)
	default:
		return nil, errors.Wrapf(ErrUnrecognizedType, "scalar of type %T", v)
	}
}

func convertTypeNode(val map[string]interface{}) (atc.TypeExpr, error) {
	if raw, ok := val["map"]; ok {
		m, ok := raw.(map[string]interface{})
		if !ok {
			return nil, errors.Wrap(ErrUnrecognizedType, "map type must have domain/range")
		}
		domain, err := convertType(m["domain"])
		if err != nil {
			return nil, err
		}
		rng, err := convertType(m["range"])
		if err != nil {
			return nil, err
		}
		return atc.Map{Domain: domain, Range: rng}, nil
	}
	if raw, ok := val["set"]; ok {
		elem, err := convertType(raw)
		if err != nil {
			return nil, err
		}
		return atc.Set{Element: elem}, nil
	}
	if raw, ok := val["tuple"]; ok {
		items, ok := raw.([]interface{})
		if !ok {
			return nil, errors.Wrap(ErrUnrecognizedType, "tuple type must be a list")
		}
		elems := make([]atc.TypeExpr, len(items))
		for i, item := range items {
			e, err := convertType(item)
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return atc.Tuple{Elements: elems}, nil
	}
	if raw, ok := val["func"]; ok {
		m, ok := raw.(map[string]interface{})
		if !ok {
			return nil, errors.Wrap(ErrUnrecognizedType, "func type must have params/return")
		}
		var params []atc.TypeExpr
		if rawParams, ok := m["params"].([]interface{}); ok {
			params = make([]atc.TypeExpr, len(rawParams))
			for i, p := range rawParams {
				e, err := convertType(p)
				if err != nil {
					return nil, err
				}
				params[i] = e
			}
		}
		var ret atc.TypeExpr
		if rawRet, ok := m["return"]; ok {
			r, err := convertType(rawRet)
			if err != nil {
				return nil, err
			}
			ret = r
		}
		return atc.Func{Params: params, Return: ret}, nil
	}
	return nil, errors.Wrapf(ErrUnrecognizedType, "node has none of map/set/tuple/func: %v", val)
}
