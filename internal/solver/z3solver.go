package solver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aclements/go-z3/z3"
	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/pkg/errors"
)

// Z3Solver is the Solver backed by Z3, grounded on the teacher's
// EncodingContext (symexec/context.go, symexec/formula.go) and on the
// original tester's Z3InputMaker/Z3Solver (see/z3solver.cc). Where the
// teacher encodes Go SSA values, this encodes atc.Expr constraint trees;
// where the original's Z3InputMaker walks an AST with a visitor, this
// walks atc.Expr with a type switch, which is the idiomatic Go
// replacement for a closed-hierarchy visitor.
//
// go-z3 has no native string theory, so string-sorted values are
// represented as an uninterpreted sort with an interning table: each
// distinct string literal that appears in a constraint gets its own
// named constant, and those constants are asserted pairwise distinct so
// that equality in the model means equality of the original strings.
// A free string-sorted variable not equated to any known literal by the
// model is reported back as a synthesized placeholder value, mirroring the
// original bridge's own simplifications for constructs Z3 can't encode
// precisely (e.g. contains_key).
type Z3Solver struct {
	ctx *z3.Context

	stringSort z3.Sort
	interned   map[string]z3.Value // literal -> uninterpreted const
	internedBy map[string]string   // not populated; decode maps model values back to literals via resolveInterned
}

// NewZ3Solver creates a Z3Solver with a fresh Z3 context.
func NewZ3Solver() *Z3Solver {
	ctx := z3.NewContext(nil)
	return &Z3Solver{
		ctx:        ctx,
		stringSort: ctx.UninterpretedSort("String"),
		interned:   make(map[string]z3.Value),
	}
}

func (s *Z3Solver) Solve(constraint atc.Expr, types TypeLookup) (*Result, error) {
	tracked := make(map[string]z3.Value)
	c := &encoder{s: s, types: types, symvars: make(map[int64]z3.Value), tracked: tracked, synth: make(map[string]z3.Value)}

	encoded, err := c.encode(constraint)
	if err != nil {
		return nil, err
	}
	asBool, ok := encoded.(z3.Bool)
	if !ok {
		return nil, errors.Wrap(ErrMalformedConstraint, "top-level constraint is not boolean")
	}

	solver := z3.NewSolver(s.ctx)
	solver.Assert(asBool)
	if len(s.distinctLiterals()) > 1 {
		solver.Assert(s.ctx.Distinct(s.distinctLiterals()...))
	}

	sat, err := solver.Check()
	if err != nil {
		return nil, errors.Wrap(err, "z3 check failed")
	}
	if !sat {
		return &Result{Sat: false}, nil
	}

	model := solver.Model()
	result := &Result{Sat: true, Model: make(map[string]ResultValue)}
	for name, v := range tracked {
		rv, err := s.decode(model, v)
		if err != nil {
			return nil, err
		}
		result.Model[name] = rv
	}
	return result, nil
}

func (s *Z3Solver) distinctLiterals() []z3.Value {
	vals := make([]z3.Value, 0, len(s.interned))
	for _, v := range s.interned {
		vals = append(vals, v)
	}
	return vals
}

func (s *Z3Solver) internString(lit string) z3.Value {
	if v, ok := s.interned[lit]; ok {
		return v
	}
	v := s.ctx.Const(fmt.Sprintf("$str<%s>#%d", sanitize(lit), len(s.interned)), s.stringSort)
	s.interned[lit] = v
	return v
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// decode reads back a model value using the sort of v to pick the
// ResultValue kind.
func (s *Z3Solver) decode(model *z3.Model, v z3.Value) (ResultValue, error) {
	evaluated := model.Eval(v, true)
	if evaluated == nil {
		return ResultValue{}, errors.New("model eval failed")
	}
	switch evaluated.(type) {
	case z3.Bool:
		b := strings.TrimSpace(fmt.Sprint(evaluated))
		return ResultValue{Kind: KindBool, Bool: boolToInt(b == "true")}, nil
	case z3.Int:
		text := strings.TrimSpace(fmt.Sprint(evaluated))
		i, perr := strconv.ParseInt(text, 10, 64)
		if perr != nil {
			return ResultValue{}, errors.Wrapf(perr, "parsing int model value %q", text)
		}
		return ResultValue{Kind: KindInt, Int: i}, nil
	default:
		// Uninterpreted (string) or array (set/map) sort.
		text := fmt.Sprint(evaluated)
		if lit, ok := s.resolveInterned(model, evaluated); ok {
			return ResultValue{Kind: KindString, Str: lit}, nil
		}
		return ResultValue{Kind: KindArray, Str: text}, nil
	}
}

// resolveInterned checks whether an evaluated model value coincides with
// one of the interned string literals, by comparing their model-eval
// printed forms (different literals are forced apart in the model by the
// Distinct assertion over all interned literals, so unequal literals
// always print differently).
func (s *Z3Solver) resolveInterned(model *z3.Model, v z3.Value) (string, bool) {
	target := fmt.Sprint(v)
	for lit, cv := range s.interned {
		ev := model.Eval(cv, true)
		if ev == nil {
			continue
		}
		if fmt.Sprint(ev) == target {
			return lit, true
		}
	}
	return "", false
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
