package atcgen

import (
	"sort"

	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/atcgen-project/atcgen/internal/env"
)

// ParamTypeSource supplies a call's declared parameter types by name, so
// BuildSymbolTable can bind a block's locals to their real types instead
// of a placeholder. internal/inspect.APISet implements this over a
// package's discovered Go signatures; a nil source is fine, it just
// means every local ends up typed Const{"any"}.
type ParamTypeSource interface {
	ParamTypesFor(callName string) ([]atc.TypeExpr, bool)
}

// BuildSymbolTable constructs the global SymbolTable Generate expects:
// one root scope holding spec's globals, with one ordered child per
// block holding that block's locals — the Var arguments its call passes,
// and the Vars its precondition mentions, that aren't already a global.
// Call-argument locals are typed from params when it has a matching
// signature, Const{"any"} otherwise; precondition-only locals are always
// Const{"any"}.
func BuildSymbolTable(spec *atc.Spec, params ParamTypeSource) (*env.SymbolTable, error) {
	global := env.NewSymbolTable(nil)
	for _, g := range spec.Globals {
		if err := global.Bind(g.Name, g.Type); err != nil {
			return nil, err
		}
	}

	for _, block := range spec.Blocks {
		locals := env.NewSymbolTable(global)

		var paramTypes []atc.TypeExpr
		if params != nil {
			paramTypes, _ = params.ParamTypesFor(block.Call.Name)
		}

		for i, arg := range block.Call.Args {
			v, ok := arg.(atc.Var)
			if !ok || global.Has(v.Name) || locals.HasLocal(v.Name) {
				continue
			}
			ty := atc.TypeExpr(atc.Const{Name: "any"})
			if i < len(paramTypes) {
				ty = paramTypes[i]
			}
			if err := locals.Bind(v.Name, ty); err != nil {
				return nil, err
			}
		}

		// A block-local can appear only in the precondition — e.g. an
		// Any(captcha) guard on an input that's validated but never
		// forwarded to the call — so it must be scanned too, not just
		// block.Call.Args, or it's treated as an unbound global.
		preVars := make(map[string]struct{})
		collectVars(block.Pre, preVars)
		names := sortedKeys(preVars)
		for _, name := range names {
			if global.Has(name) || locals.HasLocal(name) {
				continue
			}
			if err := locals.Bind(name, atc.Const{Name: "any"}); err != nil {
				return nil, err
			}
		}

		global.AddChild(locals)
	}

	return global, nil
}

// collectVars walks e collecting the name of every atc.Var it finds,
// grounded on extractPrimedVars' own structural recursion (primes.go).
func collectVars(e atc.Expr, out map[string]struct{}) {
	if e == nil {
		return
	}
	switch v := e.(type) {
	case atc.Var:
		out[v.Name] = struct{}{}
	case atc.FuncCall:
		for _, arg := range v.Args {
			collectVars(arg, out)
		}
	case atc.SetExpr:
		for _, elem := range v.Elements {
			collectVars(elem, out)
		}
	case atc.MapExpr:
		for _, entry := range v.Entries {
			collectVars(entry.Key, out)
			collectVars(entry.Value, out)
		}
	case atc.TupleExpr:
		for _, elem := range v.Elements {
			collectVars(elem, out)
		}
	}
}

func sortedKeys(m map[string]struct{}) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
