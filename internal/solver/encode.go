package solver

import (
	"fmt"
	"strings"

	"github.com/aclements/go-z3/z3"
	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/pkg/errors"
)

// encoder walks one constraint expression, caching the z3 constants it
// creates for named variables and SymVars so repeated references inside
// the same constraint resolve to the same z3 value. tracked accumulates
// every named/SymVar constant seen, keyed by the name the caller should
// see in the returned Result.Model. synth caches internal placeholder
// constants minted for operations with no exact translation (see
// encodeSetAlgebra, encodeSeqConcat, etc.) — kept separate from tracked
// so these never leak into Result.Model as spurious program variables.
type encoder struct {
	s       *Z3Solver
	types   TypeLookup
	symvars map[int64]z3.Value
	tracked map[string]z3.Value
	synth   map[string]z3.Value
}

func (c *encoder) encode(e atc.Expr) (z3.Value, error) {
	switch v := e.(type) {
	case atc.Num:
		return c.s.ctx.FromInt(v.Value, c.s.ctx.IntSort()), nil
	case atc.String:
		return c.s.internString(v.Value), nil
	case atc.Var:
		return c.encodeVar(v)
	case atc.SymVar:
		return c.encodeSymVar(v)
	case atc.SetExpr:
		return c.encodeSet(v)
	case atc.MapExpr:
		return c.encodeMap(v)
	case atc.TupleExpr:
		return nil, ErrTupleUnsupported
	case atc.FuncCall:
		return c.encodeCall(v)
	default:
		return nil, errors.Wrapf(ErrMalformedConstraint, "unencodable expr %T", e)
	}
}

func (c *encoder) encodeVar(v atc.Var) (z3.Value, error) {
	switch v.Name {
	case "true":
		return c.s.ctx.FromBool(true), nil
	case "false":
		return c.s.ctx.FromBool(false), nil
	}
	if cached, ok := c.tracked[v.Name]; ok {
		return cached, nil
	}
	sort, err := c.sortFor(v.Name)
	if err != nil {
		return nil, err
	}
	val := c.s.ctx.Const(v.Name, sort)
	c.tracked[v.Name] = val
	return val, nil
}

func (c *encoder) encodeSymVar(v atc.SymVar) (z3.Value, error) {
	if cached, ok := c.symvars[v.N]; ok {
		return cached, nil
	}
	name := fmt.Sprintf("X%d", v.N)
	// SymVars carry no static type of their own by the time they reach
	// the solver (see genATC.cc / see.cc), so they are always encoded as
	// integers, matching the original Z3 bridge's convertArg.
	val := c.s.ctx.IntConst(name)
	c.symvars[v.N] = val
	c.tracked[name] = val
	return val, nil
}

func (c *encoder) sortFor(name string) (z3.Sort, error) {
	if c.types == nil {
		return c.s.ctx.IntSort(), nil
	}
	ty, ok := c.types.Lookup(name)
	if !ok {
		return c.s.ctx.IntSort(), nil
	}
	return c.typeExprToSort(ty)
}

func (c *encoder) typeExprToSort(t atc.TypeExpr) (z3.Sort, error) {
	switch t := t.(type) {
	case atc.Const:
		switch t.Name {
		case "string":
			return c.s.stringSort, nil
		case "int", "integer":
			return c.s.ctx.IntSort(), nil
		case "bool", "boolean":
			return c.s.ctx.BoolSort(), nil
		default:
			return c.s.ctx.IntSort(), nil
		}
	case atc.Set:
		elem, err := c.typeExprToSort(t.Element)
		if err != nil {
			return z3.Sort{}, err
		}
		return c.s.ctx.ArraySort(elem, c.s.ctx.BoolSort()), nil
	case atc.Map:
		dom, err := c.typeExprToSort(t.Domain)
		if err != nil {
			return z3.Sort{}, err
		}
		rng, err := c.typeExprToSort(t.Range)
		if err != nil {
			return z3.Sort{}, err
		}
		return c.s.ctx.ArraySort(dom, rng), nil
	case atc.Tuple:
		return z3.Sort{}, ErrTupleUnsupported
	default:
		return c.s.ctx.IntSort(), nil
	}
}

func (c *encoder) encodeSet(v atc.SetExpr) (z3.Value, error) {
	if len(v.Elements) == 0 {
		return c.s.ctx.ConstArray(c.s.ctx.IntSort(), c.s.ctx.FromBool(false)), nil
	}
	first, err := c.encode(v.Elements[0])
	if err != nil {
		return nil, err
	}
	result := c.s.ctx.ConstArray(first.Sort(), c.s.ctx.FromBool(false)).Store(first, c.s.ctx.FromBool(true))
	for _, elem := range v.Elements[1:] {
		ev, err := c.encode(elem)
		if err != nil {
			return nil, err
		}
		result = result.Store(ev, c.s.ctx.FromBool(true))
	}
	return result, nil
}

func (c *encoder) encodeMap(v atc.MapExpr) (z3.Value, error) {
	if len(v.Entries) == 0 {
		return c.s.ctx.ConstArray(c.s.stringSort, c.s.internString("")), nil
	}
	firstKey, err := c.encode(v.Entries[0].Key)
	if err != nil {
		return nil, err
	}
	firstVal, err := c.encode(v.Entries[0].Value)
	if err != nil {
		return nil, err
	}
	result := c.s.ctx.ConstArray(firstKey.Sort(), c.defaultFor(firstVal)).Store(firstKey, firstVal)
	for _, entry := range v.Entries[1:] {
		k, err := c.encode(entry.Key)
		if err != nil {
			return nil, err
		}
		val, err := c.encode(entry.Value)
		if err != nil {
			return nil, err
		}
		result = result.Store(k, val)
	}
	return result, nil
}

// defaultFor produces a z3 value of the same sort as v to seed a
// ConstArray's default entry; the actual default value never matters for
// membership checks against explicitly stored keys.
func (c *encoder) defaultFor(v z3.Value) z3.Value {
	switch v.(type) {
	case z3.Bool:
		return c.s.ctx.FromBool(false)
	case z3.Int:
		return c.s.ctx.FromInt(0, c.s.ctx.IntSort())
	default:
		return v
	}
}

func binArgs(c *encoder, args []atc.Expr) (z3.Value, z3.Value, error) {
	if len(args) != 2 {
		return nil, nil, errors.Wrapf(ErrMalformedConstraint, "expected 2 args, got %d", len(args))
	}
	left, err := c.encode(args[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := c.encode(args[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// encodeCall implements the closed built-in vocabulary understood by
// the constraint bridge, grounded on Z3InputMaker::visitFuncCall
// (see/z3solver.cc): arithmetic, comparison, boolean connectives, and
// the full set/map/sequence vocabulary internal/symexec/vocabulary.go
// admits as built-in.
//
// go-z3 exposes generic array theory (Select/Store/ConstArray/Eq) but
// no native Z3 Set, Sequence, or quantifier theory — the same gap
// z3solver.go already documents for strings. Rather than leave those
// operators unencodable, every set operator here is computed precisely
// whenever its operands trace back to set literals (the common case
// for ATC-generated constraints, via literalSetElements in
// setops.go), and degrades to the same kind of permissive placeholder
// contains_key already used for a genuinely symbolic operand: an
// unconstrained fresh value that never makes the overall constraint
// artificially unsatisfiable, at the cost of losing precision for that
// one subexpression. Sequence operators follow the same shape but
// over Go's own string operations, since this system's only sequence-
// shaped value is atc.String (atc.TupleExpr is unsupported per
// ErrTupleUnsupported, and there is no separate list type).
func (c *encoder) encodeCall(v atc.FuncCall) (z3.Value, error) {
	switch v.Name {
	case "Add", "+":
		l, r, err := binArgs(c, v.Args)
		if err != nil {
			return nil, err
		}
		return l.(z3.Int).Add(r.(z3.Int)), nil
	case "Sub", "-":
		l, r, err := binArgs(c, v.Args)
		if err != nil {
			return nil, err
		}
		return l.(z3.Int).Sub(r.(z3.Int)), nil
	case "Mul", "*":
		l, r, err := binArgs(c, v.Args)
		if err != nil {
			return nil, err
		}
		return l.(z3.Int).Mul(r.(z3.Int)), nil
	case "Div", "/":
		l, r, err := binArgs(c, v.Args)
		if err != nil {
			return nil, err
		}
		return l.(z3.Int).Div(r.(z3.Int)), nil
	case "Mod", "%":
		l, r, err := binArgs(c, v.Args)
		if err != nil {
			return nil, err
		}
		return l.(z3.Int).Mod(r.(z3.Int)), nil
	case "Eq", "=", "==":
		l, r, err := binArgs(c, v.Args)
		if err != nil {
			return nil, err
		}
		return eq(l, r)
	case "Neq", "!=", "<>":
		l, r, err := binArgs(c, v.Args)
		if err != nil {
			return nil, err
		}
		res, err := eq(l, r)
		if err != nil {
			return nil, err
		}
		return res.(z3.Bool).Not(), nil
	case "Lt", "<":
		l, r, err := binArgs(c, v.Args)
		if err != nil {
			return nil, err
		}
		return l.(z3.Int).LT(r.(z3.Int)), nil
	case "Gt", ">":
		l, r, err := binArgs(c, v.Args)
		if err != nil {
			return nil, err
		}
		return l.(z3.Int).GT(r.(z3.Int)), nil
	case "Le", "<=":
		l, r, err := binArgs(c, v.Args)
		if err != nil {
			return nil, err
		}
		return l.(z3.Int).LE(r.(z3.Int)), nil
	case "Ge", ">=":
		l, r, err := binArgs(c, v.Args)
		if err != nil {
			return nil, err
		}
		return l.(z3.Int).GE(r.(z3.Int)), nil
	case "And", "and", "&&":
		l, r, err := binArgs(c, v.Args)
		if err != nil {
			return nil, err
		}
		return l.(z3.Bool).And(r.(z3.Bool)), nil
	case "Or", "or", "||":
		l, r, err := binArgs(c, v.Args)
		if err != nil {
			return nil, err
		}
		return l.(z3.Bool).Or(r.(z3.Bool)), nil
	case "Not", "not", "!":
		if len(v.Args) != 1 {
			return nil, errors.Wrap(ErrMalformedConstraint, "not takes 1 arg")
		}
		arg, err := c.encode(v.Args[0])
		if err != nil {
			return nil, err
		}
		return arg.(z3.Bool).Not(), nil
	case "Implies":
		l, r, err := binArgs(c, v.Args)
		if err != nil {
			return nil, err
		}
		return l.(z3.Bool).Not().Or(r.(z3.Bool)), nil
	case "in", "member", "contains":
		return c.encodeMembership(v.Args, false)
	case "not_in", "not_member", "not_contains":
		return c.encodeMembership(v.Args, true)
	case "contains_key", "has_key":
		return c.encodeContainsKey(v.Args)
	case "union", "intersection", "intersect", "difference", "diff", "minus":
		return c.encodeSetAlgebra(v.Name, v.Args)
	case "subset", "is_subset":
		return c.encodeSubset(v.Args)
	case "add_to_set":
		return c.encodeSetStore(v.Args, true)
	case "remove_from_set":
		return c.encodeSetStore(v.Args, false)
	case "is_empty_set":
		return c.encodeIsEmptySet(v.Args)
	case "get", "lookup", "select":
		return c.encodeMapGet(v.Args)
	case "put", "store", "update":
		return c.encodeMapPut(v.Args)
	case "concat", "append_list":
		return c.encodeSeqConcat(v.Args)
	case "length":
		return c.encodeSeqLength(v.Args)
	case "at", "nth":
		return c.encodeSeqAt(v.Args)
	case "prefix":
		return c.encodeSeqAffix(v.Args, false)
	case "suffix":
		return c.encodeSeqAffix(v.Args, true)
	case "contains_seq":
		return c.encodeSeqContains(v.Args)
	case "Any", "any":
		// Any(x) exists only to force x to be registered as a tracked
		// variable (see genATC.cc's collectInputVars); the condition
		// itself is a tautology.
		if len(v.Args) != 1 {
			return nil, errors.Wrap(ErrMalformedConstraint, "Any takes 1 arg")
		}
		if _, err := c.encode(v.Args[0]); err != nil {
			return nil, err
		}
		return c.s.ctx.FromBool(true), nil
	default:
		return nil, errors.Wrapf(ErrUnknownOperator, "%q", v.Name)
	}
}

// encodeSetAlgebra implements union/intersection/difference. When both
// operands resolve via literalSetElements, the result is computed
// exactly at the atc.Expr level and encoded as an ordinary set literal
// (reusing encodeSet); otherwise a fresh placeholder array stands in
// for the result, keyed by the call's own printed form so repeated
// occurrences of the same symbolic call resolve to the same value.
func (c *encoder) encodeSetAlgebra(op string, args []atc.Expr) (z3.Value, error) {
	if len(args) != 2 {
		return nil, errors.Wrapf(ErrMalformedConstraint, "%s takes 2 args", op)
	}
	aElems, aOK := literalSetElements(args[0])
	bElems, bOK := literalSetElements(args[1])
	if aOK && bOK {
		var result []atc.Expr
		switch op {
		case "union":
			result = unionExprs(aElems, bElems)
		case "intersection", "intersect":
			result = intersectExprs(aElems, bElems)
		default:
			result = differenceExprs(aElems, bElems)
		}
		return c.encodeSet(atc.SetExpr{Elements: result})
	}
	left, err := c.encode(args[0])
	if err != nil {
		return nil, err
	}
	arr, ok := left.(z3.Array)
	if !ok {
		return nil, errors.Wrapf(ErrMalformedConstraint, "%s operand is not a set", op)
	}
	return c.fresh(arr.Sort(), op, args)
}

// encodeSubset checks whether every element of args[0] (which must
// resolve to a concrete element list) is a member of args[1]'s array,
// exact regardless of whether args[1] itself is symbolic. A symbolic
// candidate subset falls back to true, matching contains_key's own
// permissive treatment of a symbolic map.
func (c *encoder) encodeSubset(args []atc.Expr) (z3.Value, error) {
	if len(args) != 2 {
		return nil, errors.Wrap(ErrMalformedConstraint, "subset takes 2 args")
	}
	elems, ok := literalSetElements(args[0])
	if !ok {
		return c.s.ctx.FromBool(true), nil
	}
	superset, err := c.encode(args[1])
	if err != nil {
		return nil, err
	}
	arr, ok := superset.(z3.Array)
	if !ok {
		return nil, errors.Wrap(ErrMalformedConstraint, "subset operand is not a set")
	}
	result := c.s.ctx.FromBool(true)
	for _, e := range elems {
		ev, err := c.encode(e)
		if err != nil {
			return nil, err
		}
		member, ok := arr.Select(ev).(z3.Bool)
		if !ok {
			return nil, errors.Wrap(ErrMalformedConstraint, "subset operand is not a set of bool")
		}
		result = result.And(member)
	}
	return result, nil
}

// encodeSetStore implements add_to_set/remove_from_set, both exact
// translations to Array.Store regardless of whether the set is
// symbolic, since Z3's own set_add/set_del are themselves defined as
// store(set, elem, present) over the underlying array-of-bool.
func (c *encoder) encodeSetStore(args []atc.Expr, present bool) (z3.Value, error) {
	if len(args) != 2 {
		return nil, errors.Wrap(ErrMalformedConstraint, "set element operation takes 2 args")
	}
	set, err := c.encode(args[0])
	if err != nil {
		return nil, err
	}
	arr, ok := set.(z3.Array)
	if !ok {
		return nil, errors.Wrap(ErrMalformedConstraint, "set element operation target is not a set")
	}
	elem, err := c.encode(args[1])
	if err != nil {
		return nil, err
	}
	return arr.Store(elem, c.s.ctx.FromBool(present)), nil
}

// encodeIsEmptySet is exact whenever the set resolves to a concrete
// element list; a genuinely symbolic set can't have its emptiness
// decided without native set/quantifier theory, so it falls back to
// true, the same permissive convention as contains_key.
func (c *encoder) encodeIsEmptySet(args []atc.Expr) (z3.Value, error) {
	if len(args) != 1 {
		return nil, errors.Wrap(ErrMalformedConstraint, "is_empty_set takes 1 arg")
	}
	elems, ok := literalSetElements(args[0])
	if !ok {
		return c.s.ctx.FromBool(true), nil
	}
	return c.s.ctx.FromBool(len(elems) == 0), nil
}

// encodeMapGet and encodeMapPut are exact translations to Select/Store
// regardless of whether the map is symbolic — map membership tracking
// is what contains_key can't do precisely, not plain get/put.
func (c *encoder) encodeMapGet(args []atc.Expr) (z3.Value, error) {
	if len(args) != 2 {
		return nil, errors.Wrap(ErrMalformedConstraint, "map get takes 2 args")
	}
	m, k, err := binArgs(c, args)
	if err != nil {
		return nil, err
	}
	arr, ok := m.(z3.Array)
	if !ok {
		return nil, errors.Wrap(ErrMalformedConstraint, "get target is not a map")
	}
	return arr.Select(k), nil
}

func (c *encoder) encodeMapPut(args []atc.Expr) (z3.Value, error) {
	if len(args) != 3 {
		return nil, errors.Wrap(ErrMalformedConstraint, "map put takes 3 args")
	}
	m, err := c.encode(args[0])
	if err != nil {
		return nil, err
	}
	arr, ok := m.(z3.Array)
	if !ok {
		return nil, errors.Wrap(ErrMalformedConstraint, "put target is not a map")
	}
	key, err := c.encode(args[1])
	if err != nil {
		return nil, err
	}
	val, err := c.encode(args[2])
	if err != nil {
		return nil, err
	}
	return arr.Store(key, val), nil
}

// encodeSeqConcat, encodeSeqLength, encodeSeqAt, encodeSeqAffix, and
// encodeSeqContains implement the sequence vocabulary over atc.String
// literals using Go's own strings package, exact whenever the operands
// involved are literals and permissive otherwise, per the doc comment
// on encodeCall.
func (c *encoder) encodeSeqConcat(args []atc.Expr) (z3.Value, error) {
	if len(args) != 2 {
		return nil, errors.Wrap(ErrMalformedConstraint, "concat takes 2 args")
	}
	if a, ok := args[0].(atc.String); ok {
		if b, ok := args[1].(atc.String); ok {
			return c.s.internString(a.Value + b.Value), nil
		}
	}
	return c.fresh(c.s.stringSort, "concat", args)
}

func (c *encoder) encodeSeqLength(args []atc.Expr) (z3.Value, error) {
	if len(args) != 1 {
		return nil, errors.Wrap(ErrMalformedConstraint, "length takes 1 arg")
	}
	if s, ok := args[0].(atc.String); ok {
		return c.s.ctx.FromInt(int64(len(s.Value)), c.s.ctx.IntSort()), nil
	}
	return c.fresh(c.s.ctx.IntSort(), "length", args)
}

func (c *encoder) encodeSeqAt(args []atc.Expr) (z3.Value, error) {
	if len(args) != 2 {
		return nil, errors.Wrap(ErrMalformedConstraint, "at takes 2 args")
	}
	if s, ok := args[0].(atc.String); ok {
		if idx, ok := args[1].(atc.Num); ok {
			if idx.Value < 0 || int(idx.Value) >= len(s.Value) {
				return nil, errors.Wrapf(ErrMalformedConstraint, "at index %d out of range", idx.Value)
			}
			return c.s.internString(string(s.Value[idx.Value])), nil
		}
	}
	return c.fresh(c.s.stringSort, "at", args)
}

// encodeSeqAffix implements prefix(a,b) ("a is a prefix of b") and, with
// suffix set, suffix(a,b) ("a is a suffix of b"), matching z3::prefixof/
// z3::suffixof's argument order in the original bridge.
func (c *encoder) encodeSeqAffix(args []atc.Expr, suffix bool) (z3.Value, error) {
	if len(args) != 2 {
		return nil, errors.Wrap(ErrMalformedConstraint, "prefix/suffix takes 2 args")
	}
	a, aOK := args[0].(atc.String)
	b, bOK := args[1].(atc.String)
	if aOK && bOK {
		if suffix {
			return c.s.ctx.FromBool(strings.HasSuffix(b.Value, a.Value)), nil
		}
		return c.s.ctx.FromBool(strings.HasPrefix(b.Value, a.Value)), nil
	}
	return c.s.ctx.FromBool(true), nil
}

func (c *encoder) encodeSeqContains(args []atc.Expr) (z3.Value, error) {
	if len(args) != 2 {
		return nil, errors.Wrap(ErrMalformedConstraint, "contains_seq takes 2 args")
	}
	if list, ok := args[0].(atc.String); ok {
		if sub, ok := args[1].(atc.String); ok {
			return c.s.ctx.FromBool(strings.Contains(list.Value, sub.Value)), nil
		}
	}
	return c.s.ctx.FromBool(true), nil
}

// fresh mints (or reuses) an unconstrained constant of sort standing in
// for the result of a call this bridge can't translate exactly given a
// symbolic operand, named deterministically from op and args so that
// repeated occurrences of the identical symbolic call collapse to the
// same z3 value within one Solve. Cached in synth, not tracked, so it
// never surfaces in Result.Model as a spurious program variable.
func (c *encoder) fresh(sort z3.Sort, op string, args []atc.Expr) (z3.Value, error) {
	name := fmt.Sprintf("$%s(%s)", op, argsKey(args))
	if v, ok := c.synth[name]; ok {
		return v, nil
	}
	v := c.s.ctx.Const(name, sort)
	c.synth[name] = v
	return v, nil
}

func argsKey(args []atc.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}

func eq(l, r z3.Value) (z3.Value, error) {
	switch l := l.(type) {
	case z3.Int:
		rv, ok := r.(z3.Int)
		if !ok {
			return nil, errors.Wrap(ErrMalformedConstraint, "Eq operand sort mismatch")
		}
		return l.Eq(rv), nil
	case z3.Bool:
		rv, ok := r.(z3.Bool)
		if !ok {
			return nil, errors.Wrap(ErrMalformedConstraint, "Eq operand sort mismatch")
		}
		return l.Eq(rv), nil
	case z3.Uninterpreted:
		rv, ok := r.(z3.Uninterpreted)
		if !ok {
			return nil, errors.Wrap(ErrMalformedConstraint, "Eq operand sort mismatch")
		}
		return l.Eq(rv), nil
	case z3.Array:
		rv, ok := r.(z3.Array)
		if !ok {
			return nil, errors.Wrap(ErrMalformedConstraint, "Eq operand sort mismatch")
		}
		return l.Eq(rv), nil
	default:
		return nil, errors.Wrapf(ErrMalformedConstraint, "Eq unsupported sort %T", l)
	}
}

func (c *encoder) encodeMembership(args []atc.Expr, negate bool) (z3.Value, error) {
	elem, set, err := binArgs(c, args)
	if err != nil {
		return nil, err
	}
	arr, ok := set.(z3.Array)
	if !ok {
		return nil, errors.Wrap(ErrMalformedConstraint, "membership target is not a set")
	}
	selected, ok := arr.Select(elem).(z3.Bool)
	if !ok {
		return nil, errors.Wrap(ErrMalformedConstraint, "membership target is not a set of bool")
	}
	if negate {
		return selected.Not(), nil
	}
	return selected, nil
}

// encodeContainsKey checks a literal MapExpr precisely; for a symbolic
// map (any other Expr) it stubs to true, per the same simplification the
// original bridge documents.
func (c *encoder) encodeContainsKey(args []atc.Expr) (z3.Value, error) {
	if len(args) != 2 {
		return nil, errors.Wrap(ErrMalformedConstraint, "contains_key takes 2 args")
	}
	if lit, ok := args[0].(atc.MapExpr); ok {
		for _, entry := range lit.Entries {
			if entry.Key == args[1] {
				return c.s.ctx.FromBool(true), nil
			}
		}
		return c.s.ctx.FromBool(false), nil
	}
	return c.s.ctx.FromBool(true), nil
}
