package specfile

import (
	"strings"
	"testing"

	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signupYAML = `
globals:
  - name: U
    type: {map: {domain: string, range: string}}
init:
  - name: U
    expr: {map: []}
blocks:
  - name: signup
    pre: {op: not_in, args: [{var: u}, {var: U}]}
    call:
      name: Signup
      args: [{var: u}, {var: p}]
    response: {var: resp}
    responseCode: OK_200
    post: {op: Eq, args: [{prime: U}, {op: union, args: [{var: U}, {map: [{key: u, value: {var: p}}]}]}]}
`

func TestLoadParsesGlobalsInitAndBlock(t *testing.T) {
	spec, err := Load(strings.NewReader(signupYAML))
	require.NoError(t, err)

	require.Len(t, spec.Globals, 1)
	assert.Equal(t, "U", spec.Globals[0].Name)
	assert.Equal(t, atc.Map{Domain: atc.Const{Name: "string"}, Range: atc.Const{Name: "string"}}, spec.Globals[0].Type)

	require.Len(t, spec.Init, 1)
	assert.Equal(t, atc.MapExpr{Entries: []atc.MapEntry{}}, spec.Init[0].Expr)

	require.Len(t, spec.Blocks, 1)
	block := spec.Blocks[0]
	assert.Equal(t, "signup", block.Name)
	assert.Equal(t, atc.FuncCall{Name: "not_in", Args: []atc.Expr{atc.Var{Name: "u"}, atc.Var{Name: "U"}}}, block.Pre)
	assert.Equal(t, atc.FuncCall{Name: "Signup", Args: []atc.Expr{atc.Var{Name: "u"}, atc.Var{Name: "p"}}}, block.Call)
	assert.Equal(t, atc.Var{Name: "resp"}, block.ResponseVar)
	assert.Equal(t, atc.OK200, block.ResponseCode)

	wantPost := atc.FuncCall{Name: "Eq", Args: []atc.Expr{
		atc.FuncCall{Name: "'", Args: []atc.Expr{atc.Var{Name: "U"}}},
		atc.FuncCall{Name: "union", Args: []atc.Expr{
			atc.Var{Name: "U"},
			atc.MapExpr{Entries: []atc.MapEntry{{Key: atc.Var{Name: "u"}, Value: atc.Var{Name: "p"}}}},
		}},
	}}
	assert.Equal(t, wantPost, block.Post)
}

func TestLoadRejectsUnrecognizedExprNode(t *testing.T) {
	bad := `
blocks:
  - name: broken
    pre: {nonsense: true}
    call: {name: F, args: []}
`
	_, err := Load(strings.NewReader(bad))
	assert.ErrorIs(t, err, ErrUnrecognizedExpr)
}

func TestUnknownResponseCodeFallsBackToUnknown(t *testing.T) {
	doc := `
blocks:
  - name: b
    call: {name: F, args: []}
    responseCode: WEIRD
`
	spec, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, atc.Unknown, spec.Blocks[0].ResponseCode)
}
