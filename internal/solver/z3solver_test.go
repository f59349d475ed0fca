package solver

import (
	"testing"

	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/atcgen-project/atcgen/internal/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveSimpleIntEquality(t *testing.T) {
	s := NewZ3Solver()
	// X0 == 5
	constraint := atc.FuncCall{Name: "Eq", Args: []atc.Expr{atc.SymVar{N: 0}, atc.Num{Value: 5}}}
	res, err := s.Solve(constraint, nil)
	require.NoError(t, err)
	require.True(t, res.Sat)
	v, ok := res.Model["X0"]
	require.True(t, ok)
	assert.Equal(t, KindInt, v.Kind)
	assert.Equal(t, int64(5), v.Int)
}

func TestSolveUnsat(t *testing.T) {
	s := NewZ3Solver()
	// X0 < 0 && X0 > 0
	constraint := atc.FuncCall{Name: "And", Args: []atc.Expr{
		atc.FuncCall{Name: "Lt", Args: []atc.Expr{atc.SymVar{N: 0}, atc.Num{Value: 0}}},
		atc.FuncCall{Name: "Gt", Args: []atc.Expr{atc.SymVar{N: 0}, atc.Num{Value: 0}}},
	}}
	res, err := s.Solve(constraint, nil)
	require.NoError(t, err)
	assert.False(t, res.Sat)
}

func TestSolveNamedVarWithDeclaredType(t *testing.T) {
	s := NewZ3Solver()
	types := env.NewTypeMap(nil)
	types.Bind("age", atc.Const{Name: "int"})
	constraint := atc.FuncCall{Name: "Ge", Args: []atc.Expr{atc.Var{Name: "age"}, atc.Num{Value: 18}}}
	res, err := s.Solve(constraint, types)
	require.NoError(t, err)
	require.True(t, res.Sat)
	v, ok := res.Model["age"]
	require.True(t, ok)
	assert.Equal(t, KindInt, v.Kind)
	assert.GreaterOrEqual(t, v.Int, int64(18))
}

func TestSolveSetMembership(t *testing.T) {
	s := NewZ3Solver()
	types := env.NewTypeMap(nil)
	types.Bind("role", atc.Const{Name: "string"})
	set := atc.SetExpr{Elements: []atc.Expr{atc.String{Value: "admin"}, atc.String{Value: "editor"}}}
	constraint := atc.FuncCall{Name: "in", Args: []atc.Expr{atc.Var{Name: "role"}, set}}
	res, err := s.Solve(constraint, types)
	require.NoError(t, err)
	require.True(t, res.Sat)
	v, ok := res.Model["role"]
	require.True(t, ok)
	assert.Equal(t, KindString, v.Kind)
	assert.Contains(t, []string{"admin", "editor"}, v.Str)
}

func TestSolveTupleUnsupported(t *testing.T) {
	s := NewZ3Solver()
	constraint := atc.FuncCall{Name: "Eq", Args: []atc.Expr{
		atc.TupleExpr{Elements: []atc.Expr{atc.Num{Value: 1}}},
		atc.TupleExpr{Elements: []atc.Expr{atc.Num{Value: 1}}},
	}}
	_, err := s.Solve(constraint, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTupleUnsupported)
}

func TestSolveUnionOfLiteralSets(t *testing.T) {
	s := NewZ3Solver()
	types := env.NewTypeMap(nil)
	types.Bind("u", atc.Const{Name: "string"})
	a := atc.SetExpr{Elements: []atc.Expr{atc.String{Value: "u0"}}}
	b := atc.SetExpr{Elements: []atc.Expr{atc.String{Value: "u1"}}}
	unioned := atc.FuncCall{Name: "union", Args: []atc.Expr{a, b}}
	constraint := atc.FuncCall{Name: "in", Args: []atc.Expr{atc.Var{Name: "u"}, unioned}}
	res, err := s.Solve(constraint, types)
	require.NoError(t, err)
	require.True(t, res.Sat)
	v, ok := res.Model["u"]
	require.True(t, ok)
	assert.Contains(t, []string{"u0", "u1"}, v.Str)
}

func TestSolveIntersectionOfDisjointLiteralSetsIsEmpty(t *testing.T) {
	s := NewZ3Solver()
	a := atc.SetExpr{Elements: []atc.Expr{atc.String{Value: "u0"}}}
	b := atc.SetExpr{Elements: []atc.Expr{atc.String{Value: "u1"}}}
	intersected := atc.FuncCall{Name: "intersection", Args: []atc.Expr{a, b}}
	constraint := atc.FuncCall{Name: "is_empty_set", Args: []atc.Expr{intersected}}
	res, err := s.Solve(constraint, nil)
	require.NoError(t, err)
	assert.True(t, res.Sat)
}

func TestSolveDifferenceOfLiteralSetsExcludesRemoved(t *testing.T) {
	s := NewZ3Solver()
	a := atc.SetExpr{Elements: []atc.Expr{atc.String{Value: "u0"}, atc.String{Value: "u1"}}}
	b := atc.SetExpr{Elements: []atc.Expr{atc.String{Value: "u1"}}}
	diffed := atc.FuncCall{Name: "difference", Args: []atc.Expr{a, b}}
	constraint := atc.FuncCall{Name: "Not", Args: []atc.Expr{
		atc.FuncCall{Name: "in", Args: []atc.Expr{atc.String{Value: "u1"}, diffed}},
	}}
	res, err := s.Solve(constraint, nil)
	require.NoError(t, err)
	assert.True(t, res.Sat)
}

func TestSolveSubsetOfLiteralSetIsPrecise(t *testing.T) {
	s := NewZ3Solver()
	candidate := atc.SetExpr{Elements: []atc.Expr{atc.String{Value: "u0"}}}
	superset := atc.SetExpr{Elements: []atc.Expr{atc.String{Value: "u0"}, atc.String{Value: "u1"}}}
	constraint := atc.FuncCall{Name: "subset", Args: []atc.Expr{candidate, superset}}
	res, err := s.Solve(constraint, nil)
	require.NoError(t, err)
	assert.True(t, res.Sat)

	notSubset := atc.SetExpr{Elements: []atc.Expr{atc.String{Value: "u2"}}}
	constraintFalse := atc.FuncCall{Name: "Not", Args: []atc.Expr{
		atc.FuncCall{Name: "subset", Args: []atc.Expr{notSubset, superset}},
	}}
	res2, err := s.Solve(constraintFalse, nil)
	require.NoError(t, err)
	assert.True(t, res2.Sat)
}

func TestSolveAddToSetThenMembership(t *testing.T) {
	s := NewZ3Solver()
	base := atc.SetExpr{Elements: []atc.Expr{atc.String{Value: "u0"}}}
	added := atc.FuncCall{Name: "add_to_set", Args: []atc.Expr{base, atc.String{Value: "u1"}}}
	constraint := atc.FuncCall{Name: "in", Args: []atc.Expr{atc.String{Value: "u1"}, added}}
	res, err := s.Solve(constraint, nil)
	require.NoError(t, err)
	assert.True(t, res.Sat)
}

func TestSolveRemoveFromSetThenNotMember(t *testing.T) {
	s := NewZ3Solver()
	base := atc.SetExpr{Elements: []atc.Expr{atc.String{Value: "u0"}, atc.String{Value: "u1"}}}
	removed := atc.FuncCall{Name: "remove_from_set", Args: []atc.Expr{base, atc.String{Value: "u1"}}}
	constraint := atc.FuncCall{Name: "not_in", Args: []atc.Expr{atc.String{Value: "u1"}, removed}}
	res, err := s.Solve(constraint, nil)
	require.NoError(t, err)
	assert.True(t, res.Sat)
}

func TestSolveMapGetAndPut(t *testing.T) {
	s := NewZ3Solver()
	m := atc.MapExpr{Entries: []atc.MapEntry{{Key: atc.Var{Name: "u0"}, Value: atc.String{Value: "p0"}}}}
	get := atc.FuncCall{Name: "get", Args: []atc.Expr{m, atc.String{Value: "u0"}}}
	constraint := atc.FuncCall{Name: "Eq", Args: []atc.Expr{get, atc.String{Value: "p0"}}}
	res, err := s.Solve(constraint, nil)
	require.NoError(t, err)
	assert.True(t, res.Sat)

	put := atc.FuncCall{Name: "put", Args: []atc.Expr{m, atc.String{Value: "u1"}, atc.String{Value: "p1"}}}
	getAfterPut := atc.FuncCall{Name: "get", Args: []atc.Expr{put, atc.String{Value: "u1"}}}
	constraint2 := atc.FuncCall{Name: "Eq", Args: []atc.Expr{getAfterPut, atc.String{Value: "p1"}}}
	res2, err := s.Solve(constraint2, nil)
	require.NoError(t, err)
	assert.True(t, res2.Sat)
}

func TestSolveSequenceOperators(t *testing.T) {
	s := NewZ3Solver()

	concat := atc.FuncCall{Name: "concat", Args: []atc.Expr{atc.String{Value: "foo"}, atc.String{Value: "bar"}}}
	c1 := atc.FuncCall{Name: "Eq", Args: []atc.Expr{concat, atc.String{Value: "foobar"}}}
	res, err := s.Solve(c1, nil)
	require.NoError(t, err)
	assert.True(t, res.Sat)

	length := atc.FuncCall{Name: "length", Args: []atc.Expr{atc.String{Value: "foobar"}}}
	c2 := atc.FuncCall{Name: "Eq", Args: []atc.Expr{length, atc.Num{Value: 6}}}
	res, err = s.Solve(c2, nil)
	require.NoError(t, err)
	assert.True(t, res.Sat)

	at := atc.FuncCall{Name: "at", Args: []atc.Expr{atc.String{Value: "foobar"}, atc.Num{Value: 3}}}
	c3 := atc.FuncCall{Name: "Eq", Args: []atc.Expr{at, atc.String{Value: "b"}}}
	res, err = s.Solve(c3, nil)
	require.NoError(t, err)
	assert.True(t, res.Sat)

	c4 := atc.FuncCall{Name: "prefix", Args: []atc.Expr{atc.String{Value: "foo"}, atc.String{Value: "foobar"}}}
	res, err = s.Solve(c4, nil)
	require.NoError(t, err)
	assert.True(t, res.Sat)

	c5 := atc.FuncCall{Name: "suffix", Args: []atc.Expr{atc.String{Value: "bar"}, atc.String{Value: "foobar"}}}
	res, err = s.Solve(c5, nil)
	require.NoError(t, err)
	assert.True(t, res.Sat)

	c6 := atc.FuncCall{Name: "contains_seq", Args: []atc.Expr{atc.String{Value: "foobar"}, atc.String{Value: "oba"}}}
	res, err = s.Solve(c6, nil)
	require.NoError(t, err)
	assert.True(t, res.Sat)
}

func TestSolveAnyIsTautologyAndTracksVariable(t *testing.T) {
	s := NewZ3Solver()
	constraint := atc.FuncCall{Name: "Any", Args: []atc.Expr{atc.SymVar{N: 0}}}
	res, err := s.Solve(constraint, nil)
	require.NoError(t, err)
	require.True(t, res.Sat)
	_, ok := res.Model["X0"]
	assert.True(t, ok)
}

func TestContainsKeyOnLiteralMapIsPrecise(t *testing.T) {
	s := NewZ3Solver()
	m := atc.MapExpr{Entries: []atc.MapEntry{{Key: atc.Var{Name: "alice"}, Value: atc.String{Value: "admin"}}}}
	constraint := atc.FuncCall{Name: "contains_key", Args: []atc.Expr{m, atc.Var{Name: "alice"}}}
	res, err := s.Solve(constraint, nil)
	require.NoError(t, err)
	assert.True(t, res.Sat)

	constraintMissing := atc.FuncCall{Name: "Not", Args: []atc.Expr{
		atc.FuncCall{Name: "contains_key", Args: []atc.Expr{m, atc.Var{Name: "bob"}}},
	}}
	res2, err := s.Solve(constraintMissing, nil)
	require.NoError(t, err)
	assert.True(t, res2.Sat)
}
