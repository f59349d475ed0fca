package symexec

import (
	"testing"

	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/atcgen-project/atcgen/internal/env"
	"github.com/atcgen-project/atcgen/internal/function"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAPIExcludesBuiltinVocabulary(t *testing.T) {
	for _, name := range []string{"Add", "Eq", "And", "input", "in", "contains_key", "concat", "'"} {
		assert.False(t, IsAPI(name), "%q should be a builtin, not an API", name)
	}
	assert.True(t, IsAPI("Signup"))
	assert.True(t, IsAPI("Balance"))
}

func TestIsSymbolicPropagatesThroughStructure(t *testing.T) {
	sigma := env.NewValueEnvironment(nil)
	assert.False(t, IsSymbolic(atc.Num{Value: 1}, sigma))
	assert.True(t, IsSymbolic(atc.SymVar{N: 0}, sigma))
	assert.True(t, IsSymbolic(atc.FuncCall{Name: "Add", Args: []atc.Expr{atc.Num{Value: 1}, atc.SymVar{N: 0}}}, sigma))

	sigma.Bind("x", atc.SymVar{N: 3})
	assert.True(t, IsSymbolic(atc.Var{Name: "x"}, sigma))

	sigma.Bind("y", atc.Num{Value: 5})
	assert.False(t, IsSymbolic(atc.Var{Name: "y"}, sigma))

	// An unbound Var is not itself symbolic — it simply isn't ready.
	assert.False(t, IsSymbolic(atc.Var{Name: "unbound"}, sigma))
}

func TestIsReadyStmtInterruptsOnSymbolicAPIArg(t *testing.T) {
	sigma := env.NewValueEnvironment(nil)
	sigma.Bind("x", atc.SymVar{N: 0})

	apiAssign := atc.Assign{LHS: atc.Var{Name: "r"}, RHS: atc.FuncCall{Name: "Signup", Args: []atc.Expr{atc.Var{Name: "x"}}}}
	assert.False(t, IsReadyStmt(apiAssign, sigma))

	sigma.Bind("x", atc.String{Value: "alice"})
	assert.True(t, IsReadyStmt(apiAssign, sigma))

	builtinAssign := atc.Assign{LHS: atc.Var{Name: "r"}, RHS: atc.FuncCall{Name: "Add", Args: []atc.Expr{atc.SymVar{N: 0}, atc.Num{Value: 1}}}}
	assert.True(t, IsReadyStmt(builtinAssign, sigma))

	assert.True(t, IsReadyStmt(atc.Decl{Name: "z", Type: atc.Const{Name: "int"}}, sigma))
}

func TestEngineExecuteStopsAtSymbolicAPICall(t *testing.T) {
	idents := atc.NewIdentSource()
	engine := NewEngine(nil, idents, function.NewRegistryFactory())

	prog := &atc.Program{Statements: []atc.Stmt{
		atc.Assign{LHS: atc.Var{Name: "x"}, RHS: atc.Input()},
		atc.Assign{LHS: atc.Var{Name: "r"}, RHS: atc.FuncCall{Name: "Signup", Args: []atc.Expr{atc.Var{Name: "x"}}}},
	}}

	result, err := engine.Execute(prog)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Executed)
	assert.True(t, result.Interrupted)

	val, ok := engine.Sigma.Lookup("x")
	require.True(t, ok)
	assert.IsType(t, atc.SymVar{}, val)
}

func TestEngineExecuteRunsToCompletionWithConcreteArgs(t *testing.T) {
	idents := atc.NewIdentSource()
	factory := function.NewRegistryFactory()
	factory.Register("Signup", func(args []atc.Expr) (atc.Expr, error) {
		return atc.Var{Name: "true"}, nil
	})
	engine := NewEngine(nil, idents, factory)

	prog := &atc.Program{Statements: []atc.Stmt{
		atc.Assign{LHS: atc.Var{Name: "x"}, RHS: atc.String{Value: "alice"}},
		atc.Assign{LHS: atc.Var{Name: "r"}, RHS: atc.FuncCall{Name: "Signup", Args: []atc.Expr{atc.Var{Name: "x"}}}},
		atc.Assert{Cond: atc.FuncCall{Name: "Eq", Args: []atc.Expr{atc.Var{Name: "r"}, atc.Var{Name: "r"}}}},
	}}

	result, err := engine.Execute(prog)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Executed)
	assert.False(t, result.Interrupted)

	r, ok := engine.Sigma.Lookup("r")
	require.True(t, ok)
	assert.Equal(t, atc.Var{Name: "true"}, r)
}

func TestEngineExecuteWithoutFactoryFailsOnAPICall(t *testing.T) {
	idents := atc.NewIdentSource()
	engine := NewEngine(nil, idents, nil)

	prog := &atc.Program{Statements: []atc.Stmt{
		atc.Assign{LHS: atc.Var{Name: "x"}, RHS: atc.String{Value: "alice"}},
		atc.Assign{LHS: atc.Var{Name: "r"}, RHS: atc.FuncCall{Name: "Signup", Args: []atc.Expr{atc.Var{Name: "x"}}}},
	}}

	_, err := engine.Execute(prog)
	assert.ErrorIs(t, err, ErrNoFunctionFactory)
}

func TestComputePathConstraintFoldsWithAnd(t *testing.T) {
	engine := NewEngine(nil, atc.NewIdentSource(), nil)

	assert.Equal(t, atc.FuncCall{Name: "Eq", Args: []atc.Expr{atc.Num{Value: 1}, atc.Num{Value: 1}}}, engine.ComputePathConstraint())

	engine.PathConstraint = []atc.Expr{atc.Num{Value: 1}}
	assert.Equal(t, atc.Num{Value: 1}, engine.ComputePathConstraint())

	engine.PathConstraint = []atc.Expr{atc.Num{Value: 1}, atc.Num{Value: 2}, atc.Num{Value: 3}}
	want := atc.FuncCall{Name: "And", Args: []atc.Expr{
		atc.Num{Value: 1},
		atc.FuncCall{Name: "And", Args: []atc.Expr{atc.Num{Value: 2}, atc.Num{Value: 3}}},
	}}
	assert.Equal(t, want, engine.ComputePathConstraint())
}
