package inspect

import (
	"go/types"

	"github.com/atcgen-project/atcgen/internal/atc"
)

// ToTypeExpr converts a go/types.Type into the spec's TypeExpr
// vocabulary: numeric and string/bool basics become Const, slices/arrays
// become Set, maps become Map, and anything else falls back to a Const
// named after its Go spelling so it still prints something meaningful in
// diagnostics rather than silently vanishing.
func ToTypeExpr(t types.Type) atc.TypeExpr {
	switch v := t.Underlying().(type) {
	case *types.Basic:
		return basicTypeExpr(v)
	case *types.Slice:
		return atc.Set{Element: ToTypeExpr(v.Elem())}
	case *types.Array:
		return atc.Set{Element: ToTypeExpr(v.Elem())}
	case *types.Map:
		return atc.Map{Domain: ToTypeExpr(v.Key()), Range: ToTypeExpr(v.Elem())}
	case *types.Pointer:
		return ToTypeExpr(v.Elem())
	case *types.Signature:
		params := make([]atc.TypeExpr, v.Params().Len())
		for i := 0; i < v.Params().Len(); i++ {
			params[i] = ToTypeExpr(v.Params().At(i).Type())
		}
		var ret atc.TypeExpr
		if v.Results().Len() > 0 {
			ret = ToTypeExpr(v.Results().At(0).Type())
		}
		return atc.Func{Params: params, Return: ret}
	default:
		return atc.Const{Name: t.String()}
	}
}

func basicTypeExpr(b *types.Basic) atc.TypeExpr {
	switch {
	case b.Info()&types.IsBoolean != 0:
		return atc.Const{Name: "bool"}
	case b.Info()&types.IsString != 0:
		return atc.Const{Name: "string"}
	case b.Info()&types.IsInteger != 0:
		return atc.Const{Name: "int"}
	case b.Info()&types.IsFloat != 0:
		return atc.Const{Name: "float"}
	default:
		return atc.Const{Name: b.Name()}
	}
}
