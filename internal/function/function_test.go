package function

import (
	"testing"

	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryFactoryRoundTrip(t *testing.T) {
	reg := NewRegistryFactory()
	reg.Register("Add", func(args []atc.Expr) (atc.Expr, error) {
		return atc.Num{Value: args[0].(atc.Num).Value + args[1].(atc.Num).Value}, nil
	})

	fn, err := reg.GetFunction("Add", []atc.Expr{atc.Num{Value: 2}, atc.Num{Value: 3}})
	require.NoError(t, err)
	result, err := fn.Execute()
	require.NoError(t, err)
	assert.Equal(t, atc.Num{Value: 5}, result)
}

func TestRegistryFactoryUnknownFunction(t *testing.T) {
	reg := NewRegistryFactory()
	_, err := reg.GetFunction("Missing", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFunction)
}

type accountAPI struct{}

func (accountAPI) Signup(username, password string) (bool, error) {
	return username != "" && password != "", nil
}

func (accountAPI) Balance(cents int) int {
	return cents * 2
}

func TestReflectFactoryCallsMethod(t *testing.T) {
	rf := NewReflectFactory(accountAPI{})
	fn, err := rf.GetFunction("Signup", []atc.Expr{atc.String{Value: "alice"}, atc.String{Value: "hunter2"}})
	require.NoError(t, err)
	result, err := fn.Execute()
	require.NoError(t, err)
	assert.Equal(t, atc.Var{Name: "true"}, result)
}

func TestReflectFactoryConvertsIntResult(t *testing.T) {
	rf := NewReflectFactory(accountAPI{})
	fn, err := rf.GetFunction("Balance", []atc.Expr{atc.Num{Value: 21}})
	require.NoError(t, err)
	result, err := fn.Execute()
	require.NoError(t, err)
	assert.Equal(t, atc.Num{Value: 42}, result)
}

func TestReflectFactoryUnknownMethod(t *testing.T) {
	rf := NewReflectFactory(accountAPI{})
	_, err := rf.GetFunction("Nonexistent", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFunction)
}
