package atcgen

import (
	"testing"

	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParamSource map[string][]atc.TypeExpr

func (f fakeParamSource) ParamTypesFor(name string) ([]atc.TypeExpr, bool) {
	p, ok := f[name]
	return p, ok
}

func TestBuildSymbolTableBindsGlobalsAndPerBlockLocals(t *testing.T) {
	spec := &atc.Spec{
		Globals: []atc.GlobalDecl{{Name: "U", Type: atc.Map{Domain: atc.Const{Name: "string"}, Range: atc.Const{Name: "string"}}}},
		Blocks: []atc.API{
			{Name: "signup", Call: atc.FuncCall{Name: "Signup", Args: []atc.Expr{atc.Var{Name: "u"}, atc.Var{Name: "p"}}}},
		},
	}
	params := fakeParamSource{"Signup": {atc.Const{Name: "string"}, atc.Const{Name: "string"}}}

	global, err := BuildSymbolTable(spec, params)
	require.NoError(t, err)

	ty, ok := global.Lookup("U")
	require.True(t, ok)
	assert.Equal(t, atc.Map{Domain: atc.Const{Name: "string"}, Range: atc.Const{Name: "string"}}, ty)

	require.Equal(t, 1, global.ChildCount())
	locals := global.Child(0)
	uType, ok := locals.Lookup("u")
	require.True(t, ok)
	assert.Equal(t, atc.Const{Name: "string"}, uType)
}

func TestBuildSymbolTableFallsBackToAnyWithoutSource(t *testing.T) {
	spec := &atc.Spec{
		Blocks: []atc.API{
			{Name: "signup", Call: atc.FuncCall{Name: "Signup", Args: []atc.Expr{atc.Var{Name: "u"}}}},
		},
	}
	global, err := BuildSymbolTable(spec, nil)
	require.NoError(t, err)
	ty, ok := global.Child(0).Lookup("u")
	require.True(t, ok)
	assert.Equal(t, atc.Const{Name: "any"}, ty)
}

func TestBuildSymbolTableBindsLocalsSeenOnlyInPrecondition(t *testing.T) {
	spec := &atc.Spec{
		Blocks: []atc.API{
			{
				Name: "signup",
				Pre:  atc.FuncCall{Name: "Any", Args: []atc.Expr{atc.Var{Name: "captcha"}}},
				Call: atc.FuncCall{Name: "Signup", Args: []atc.Expr{atc.Var{Name: "u"}, atc.Var{Name: "p"}}},
			},
		},
	}
	global, err := BuildSymbolTable(spec, nil)
	require.NoError(t, err)

	locals := global.Child(0)
	require.True(t, locals.HasLocal("captcha"))
	ty, ok := locals.Lookup("captcha")
	require.True(t, ok)
	assert.Equal(t, atc.Const{Name: "any"}, ty)
}

func TestBuildSymbolTablePreconditionVarAlreadyGlobalIsNotShadowed(t *testing.T) {
	spec := &atc.Spec{
		Globals: []atc.GlobalDecl{{Name: "U", Type: atc.Const{Name: "string"}}},
		Blocks: []atc.API{
			{
				Name: "check",
				Pre:  atc.FuncCall{Name: "Any", Args: []atc.Expr{atc.Var{Name: "U"}}},
				Call: atc.FuncCall{Name: "Check", Args: nil},
			},
		},
	}
	global, err := BuildSymbolTable(spec, nil)
	require.NoError(t, err)
	assert.False(t, global.Child(0).HasLocal("U"))
}

func TestBuildSymbolTableSkipsGlobalReferencesInCallArgs(t *testing.T) {
	spec := &atc.Spec{
		Globals: []atc.GlobalDecl{{Name: "U", Type: atc.Const{Name: "string"}}},
		Blocks: []atc.API{
			{Name: "reset", Call: atc.FuncCall{Name: "Reset", Args: []atc.Expr{atc.Var{Name: "U"}}}},
		},
	}
	global, err := BuildSymbolTable(spec, nil)
	require.NoError(t, err)
	// U is a global, not a fresh local, so it must not shadow the parent.
	assert.False(t, global.Child(0).HasLocal("U"))
}
