// Package tester implements the Concretizer: the interrupt/resume loop
// that drives a symexec.Engine and a solver.Solver against each other
// until an ATC's every input() has been resolved into a CTC, or the
// path constraint goes UNSAT and no further progress is possible.
// Grounded on Tester::generateCTC/rewriteATC (tester.cc).
package tester

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/atcgen-project/atcgen/internal/function"
	"github.com/atcgen-project/atcgen/internal/solver"
	"github.com/atcgen-project/atcgen/internal/symexec"
	"github.com/atcgen-project/atcgen/internal/tlog"
	"github.com/google/uuid"
)

// Concretizer owns the pieces a generateCTC round needs: a Solver to
// discharge path constraints, an IdentSource shared with every Engine it
// spins up (so SymVar identities stay unique across rounds), and the
// Factory that resolves API calls once their arguments go concrete.
type Concretizer struct {
	Solver    solver.Solver
	Idents    *atc.IdentSource
	Functions function.Factory
}

// NewConcretizer builds a Concretizer over the given solver and function
// factory, minting its own IdentSource.
func NewConcretizer(s solver.Solver, functions function.Factory) *Concretizer {
	return &Concretizer{Solver: s, Idents: atc.NewIdentSource(), Functions: functions}
}

var symVarName = regexp.MustCompile(`^X(\d+)$`)

// GenerateCTC repeatedly rewrites prog's input() sites with the values
// already known, symbolically executes the result, and solves the
// resulting path constraint for the next round's values — until the
// program is fully concrete or the solver reports UNSAT. types resolves
// declared sorts for named (non-SymVar) free variables the path
// constraint mentions. Grounded on Tester::generateCTC.
func (c *Concretizer) GenerateCTC(prog *atc.Program, concreteVals []atc.Expr, types solver.TypeLookup) (*atc.Program, error) {
	runID := uuid.NewString()
	log := tlog.Logger.With().Str("run", runID).Logger()

	if !prog.IsAbstract() {
		log.Debug().Msg("tester: program already concrete")
		return prog, nil
	}

	rewritten, err := RewriteATC(prog, concreteVals)
	if err != nil {
		return nil, err
	}

	engine := symexec.NewEngine(nil, c.Idents, c.Functions)
	if _, err := engine.Execute(rewritten); err != nil {
		return nil, err
	}
	constraint := engine.ComputePathConstraint()

	result, err := c.Solver.Solve(constraint, types)
	if err != nil {
		return nil, err
	}
	if !result.Sat {
		log.Info().Msg("tester: UNSAT, returning partially rewritten program")
		return rewritten, nil
	}

	newVals := symVarValuesInOrder(result)
	if len(newVals) == 0 {
		log.Debug().Msg("tester: no new concrete values, no further progress")
		return rewritten, nil
	}

	log.Debug().Int("values", len(newVals)).Msg("tester: recursing with newly solved values")
	return c.GenerateCTC(rewritten, newVals, types)
}

// symVarValuesInOrder pulls the model's SymVar-named entries (X0, X1,
// ...) out in ascending index order, matching the order rewriteATC
// expects to consume them — the same restriction to INT-typed SymVar
// entries that Tester::generateCTC applies, since every SymVar is
// encoded as an integer regardless of its logical type.
func symVarValuesInOrder(result *solver.Result) []atc.Expr {
	type indexed struct {
		n   int
		val atc.Expr
	}
	var vals []indexed
	for name, rv := range result.Model {
		m := symVarName.FindStringSubmatch(name)
		if m == nil || rv.Kind != solver.KindInt {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		vals = append(vals, indexed{n: n, val: rv.AsExpr()})
	}
	sort.Slice(vals, func(i, j int) bool { return vals[i].n < vals[j].n })

	out := make([]atc.Expr, len(vals))
	for i, v := range vals {
		out[i] = v.val
	}
	return out
}
