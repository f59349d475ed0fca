package symexec

import (
	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/atcgen-project/atcgen/internal/env"
	"github.com/atcgen-project/atcgen/internal/function"
	"github.com/atcgen-project/atcgen/internal/tlog"
)

// Engine is a single symbolic-execution run: a value environment (σ), an
// accumulating path constraint (C), a source of fresh symbolic
// identities, and the Factory that resolves API calls once their
// arguments have gone concrete. Grounded on the SEE class (see.hh/
// see.cc); unlike the original, sigma and the path constraint are held
// per-Engine rather than as class fields reused across runs, so that
// concurrent or repeated concretization attempts don't share state.
type Engine struct {
	Sigma          *env.ValueEnvironment
	PathConstraint []atc.Expr
	Idents         *atc.IdentSource
	Functions      function.Factory
}

// NewEngine builds an Engine over a fresh σ chained to parent (nil for a
// root run), sharing idents and functions across however many Engines a
// single concretization attempt needs.
func NewEngine(parent *env.ValueEnvironment, idents *atc.IdentSource, functions function.Factory) *Engine {
	return &Engine{
		Sigma:     env.NewValueEnvironment(parent),
		Idents:    idents,
		Functions: functions,
	}
}

// Result is what a single Execute pass produces: how far it got, the
// conjoined path constraint collected along the way, and whether it
// stopped short of the end because it hit a not-ready statement.
type Result struct {
	Executed    int
	Constraint  atc.Expr
	Interrupted bool
}

// Execute walks prog statement by statement, executing everything that
// IsReadyStmt reports ready and stopping at the first statement that
// isn't — an API call whose arguments haven't gone concrete yet.
// Grounded on SEE::execute.
func (e *Engine) Execute(prog *atc.Program) (*Result, error) {
	e.PathConstraint = e.PathConstraint[:0]

	executed := 0
	for _, stmt := range prog.Statements {
		if !IsReadyStmt(stmt, e.Sigma) {
			tlog.Logger.Debug().Int("at", executed).Msg("symexec: statement not ready, interrupting")
			break
		}
		if err := e.ExecuteStmt(stmt); err != nil {
			return nil, err
		}
		executed++
	}

	return &Result{
		Executed:    executed,
		Constraint:  e.ComputePathConstraint(),
		Interrupted: executed < len(prog.Statements),
	}, nil
}

// ExecuteStmt runs a single statement whose readiness has already been
// confirmed by IsReadyStmt. Grounded on SEE::executeStmt.
func (e *Engine) ExecuteStmt(s atc.Stmt) error {
	switch v := s.(type) {
	case atc.Assign:
		return e.executeAssign(v)
	case atc.Assume:
		val, err := e.EvalExpr(v.Cond)
		if err != nil {
			return err
		}
		e.PathConstraint = append(e.PathConstraint, val)
		return nil
	case atc.Assert:
		// Folded into the same path-constraint accumulation as Assume:
		// the unified Stmt union no longer distinguishes the two sets
		// executeStmt/isReady originally disagreed about.
		val, err := e.EvalExpr(v.Cond)
		if err != nil {
			return err
		}
		e.PathConstraint = append(e.PathConstraint, val)
		return nil
	case atc.Decl:
		e.Sigma.Bind(v.Name, e.Idents.Next())
		return nil
	default:
		return nil
	}
}

func (e *Engine) executeAssign(a atc.Assign) error {
	varName := assignTarget(a.LHS)

	if fc, ok := a.RHS.(atc.FuncCall); ok && IsAPI(fc.Name) {
		concreteArgs := make([]atc.Expr, len(fc.Args))
		for i, arg := range fc.Args {
			v, err := e.EvalExpr(arg)
			if err != nil {
				return err
			}
			concreteArgs[i] = v
		}

		if e.Functions == nil {
			return ErrNoFunctionFactory
		}
		fn, err := e.Functions.GetFunction(fc.Name, concreteArgs)
		if err != nil {
			return err
		}
		result, err := fn.Execute()
		if err != nil {
			return err
		}
		tlog.Logger.Debug().Str("api", fc.Name).Str("result", result.String()).Msg("symexec: api call executed")
		e.Sigma.Bind(varName, result)
		return nil
	}

	val, err := e.EvalExpr(a.RHS)
	if err != nil {
		return err
	}
	e.Sigma.Bind(varName, val)
	return nil
}

// assignTarget extracts the σ key an Assign's LHS binds under. A bare
// Var binds under its own name; a tuple destructuring binds under a
// synthetic placeholder, matching the original's fallback for the same
// case (executeStmt's ASSIGN branch).
func assignTarget(lhs atc.Expr) string {
	switch v := lhs.(type) {
	case atc.Var:
		return v.Name
	case atc.TupleExpr:
		return "_tuple_result"
	default:
		return "_unknown"
	}
}

// EvalExpr evaluates e symbolically: input() mints a fresh SymVar,
// Var resolves through σ (returning the expression unevaluated if
// unbound), and every other node recurses structurally. Grounded on
// SEE::evaluateExpr.
func (e *Engine) EvalExpr(expr atc.Expr) (atc.Expr, error) {
	switch v := expr.(type) {
	case atc.FuncCall:
		if atc.IsInput(v) {
			return e.Idents.Next(), nil
		}
		args := make([]atc.Expr, len(v.Args))
		for i, arg := range v.Args {
			ev, err := e.EvalExpr(arg)
			if err != nil {
				return nil, err
			}
			args[i] = ev
		}
		return atc.FuncCall{Name: v.Name, Args: args}, nil
	case atc.Num:
		return v.Clone(), nil
	case atc.String:
		return v.Clone(), nil
	case atc.SymVar:
		return v, nil
	case atc.Var:
		if val, ok := e.Sigma.Lookup(v.Name); ok {
			return val, nil
		}
		return v, nil
	case atc.SetExpr:
		elems := make([]atc.Expr, len(v.Elements))
		for i, elem := range v.Elements {
			ev, err := e.EvalExpr(elem)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return atc.SetExpr{Elements: elems}, nil
	case atc.MapExpr:
		entries := make([]atc.MapEntry, len(v.Entries))
		for i, entry := range v.Entries {
			ev, err := e.EvalExpr(entry.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = atc.MapEntry{Key: entry.Key, Value: ev}
		}
		return atc.MapExpr{Entries: entries}, nil
	case atc.TupleExpr:
		elems := make([]atc.Expr, len(v.Elements))
		for i, elem := range v.Elements {
			ev, err := e.EvalExpr(elem)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return atc.TupleExpr{Elements: elems}, nil
	default:
		return expr, nil
	}
}

// ComputePathConstraint conjoins the accumulated path constraint into a
// single expression: Eq(1, 1) when empty, the sole constraint when
// there's exactly one, otherwise a right-fold of And. Grounded on
// SEE::computePathConstraint.
func (e *Engine) ComputePathConstraint() atc.Expr {
	c := e.PathConstraint
	if len(c) == 0 {
		return atc.FuncCall{Name: "Eq", Args: []atc.Expr{atc.Num{Value: 1}, atc.Num{Value: 1}}}
	}
	result := c[len(c)-1].Clone()
	for i := len(c) - 2; i >= 0; i-- {
		result = atc.FuncCall{Name: "And", Args: []atc.Expr{c[i].Clone(), result}}
	}
	return result
}
