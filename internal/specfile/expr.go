package specfile

import (
	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/pkg/errors"
)

// convertExpr turns one decoded YAML node into an atc.Expr. The scheme:
// a bare YAML int is Num, a bare YAML string is String, and every other
// node kind is an explicit tagged map so a spec author's local variable
// name never has to fight with a string literal for the same syntax:
//
//	{var: name}                     -> Var
//	{prime: name}                   -> FuncCall("'", [Var(name)])
//	{set: [expr, ...]}               -> SetExpr
//	{map: [{key: name, value: expr}]} -> MapExpr
//	{tuple: [expr, ...]}             -> TupleExpr
//	{op: "Name", args: [expr, ...]}  -> FuncCall
func convertExpr(v interface{}) (atc.Expr, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case int:
		return atc.Num{Value: int64(val)}, nil
	case int64:
		return atc.Num{Value: val}, nil
	case string:
		return atc.String{Value: val}, nil
	case map[string]interface{}:
		return convertExprNode(val)
	default:
		return nil, errors.Wrapf(ErrUnrecognizedExpr, "scalar of type %T", v)
	}
}

func convertExprNode(val map[string]interface{}) (atc.Expr, error) {
	if name, ok := val["var"]; ok {
		s, ok := name.(string)
		if !ok {
			return nil, errors.Wrap(ErrUnrecognizedExpr, "var name must be a string")
		}
		return atc.Var{Name: s}, nil
	}
	if name, ok := val["prime"]; ok {
		s, ok := name.(string)
		if !ok {
			return nil, errors.Wrap(ErrUnrecognizedExpr, "prime name must be a string")
		}
		return atc.FuncCall{Name: "'", Args: []atc.Expr{atc.Var{Name: s}}}, nil
	}
	if raw, ok := val["set"]; ok {
		items, ok := raw.([]interface{})
		if !ok {
			return nil, errors.Wrap(ErrUnrecognizedExpr, "set must be a list")
		}
		elems, err := convertExprList(items)
		if err != nil {
			return nil, err
		}
		return atc.SetExpr{Elements: elems}, nil
	}
	if raw, ok := val["tuple"]; ok {
		items, ok := raw.([]interface{})
		if !ok {
			return nil, errors.Wrap(ErrUnrecognizedExpr, "tuple must be a list")
		}
		elems, err := convertExprList(items)
		if err != nil {
			return nil, err
		}
		return atc.TupleExpr{Elements: elems}, nil
	}
	if raw, ok := val["map"]; ok {
		items, ok := raw.([]interface{})
		if !ok {
			return nil, errors.Wrap(ErrUnrecognizedExpr, "map must be a list of {key, value}")
		}
		entries := make([]atc.MapEntry, len(items))
		for i, item := range items {
			entryMap, ok := item.(map[string]interface{})
			if !ok {
				return nil, errors.Wrap(ErrUnrecognizedExpr, "map entry must be a {key, value} mapping")
			}
			keyName, ok := entryMap["key"].(string)
			if !ok {
				return nil, errors.Wrap(ErrUnrecognizedExpr, "map entry key must be a string")
			}
			value, err := convertExpr(entryMap["value"])
			if err != nil {
				return nil, err
			}
			entries[i] = atc.MapEntry{Key: atc.Var{Name: keyName}, Value: value}
		}
		return atc.MapExpr{Entries: entries}, nil
	}
	if op, ok := val["op"]; ok {
		name, ok := op.(string)
		if !ok {
			return nil, errors.Wrap(ErrUnrecognizedExpr, "op must be a string")
		}
		var args []atc.Expr
		if rawArgs, ok := val["args"]; ok {
			items, ok := rawArgs.([]interface{})
			if !ok {
				return nil, errors.Wrap(ErrUnrecognizedExpr, "args must be a list")
			}
			converted, err := convertExprList(items)
			if err != nil {
				return nil, err
			}
			args = converted
		}
		return atc.FuncCall{Name: name, Args: args}, nil
	}
	return nil, errors.Wrapf(ErrUnrecognizedExpr, "node has none of var/prime/set/map/tuple/op: %v", val)
}

func convertExprList(items []interface{}) ([]atc.Expr, error) {
	out := make([]atc.Expr, len(items))
	for i, item := range items {
		e, err := convertExpr(item)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}
