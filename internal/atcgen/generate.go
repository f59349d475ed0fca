// Package atcgen implements the ATC Generator: it lowers a declarative
// Spec plus its global SymbolTable into an abstract test case Program,
// following the seven-step per-block algorithm of the original tester's
// genATC.cc (genInit, convertExpr, extractPrimedVars,
// removePrimeNotation, collectInputVars, genBlock, generate).
package atcgen

import (
	"strconv"

	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/atcgen-project/atcgen/internal/env"
	"github.com/pkg/errors"
)

// blockSymbolTable is what genBlock needs from a block's local
// SymbolTable: local-name membership plus type lookup, both satisfied
// by *env.SymbolTable.
type blockSymbolTable interface {
	lookupOnly
	Lookup(name string) (atc.TypeExpr, bool)
}

// Generate lowers spec into an abstract Program covering the blocks
// named by testString, in order, repeats included. globalSyms supplies
// per-block local SymbolTables via its ordered children (one child per
// spec.Blocks entry, by index — see internal/env's SymbolTable). types,
// if non-nil, is populated with the declared type of every generated
// input variable under its suffixed name, so a downstream solver can
// pick the right sort without re-deriving it from the original name.
//
// Grounded on ATCGenerator::generate (genATC.cc).
func Generate(spec *atc.Spec, globalSyms *env.SymbolTable, testString []string, types *env.TypeMap) (*atc.Program, error) {
	var stmts []atc.Stmt
	stmts = append(stmts, genInit(spec)...)

	for _, name := range testString {
		idx := spec.BlockIndex(name)
		if idx < 0 {
			return nil, errors.Wrapf(ErrMalformedInput, "test string names unknown block %q", name)
		}
		block := &spec.Blocks[idx]

		var blockSyms *env.SymbolTable
		if globalSyms != nil {
			blockSyms = globalSyms.Child(idx)
		}
		if blockSyms == nil {
			return nil, errors.Wrapf(ErrMalformedInput, "no symbol table for block %q (index %d)", name, idx)
		}

		blockStmts, err := genBlock(block, blockSyms, idx, types)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, blockStmts...)
	}

	return &atc.Program{Statements: stmts}, nil
}

// genInit lowers spec.Init into `name := expr` assignments, one per
// global. Grounded on ATCGenerator::genInit (genATC.cc).
func genInit(spec *atc.Spec) []atc.Stmt {
	stmts := make([]atc.Stmt, 0, len(spec.Init))
	for _, init := range spec.Init {
		stmts = append(stmts, atc.Assign{
			LHS: atc.Var{Name: init.Name},
			RHS: convertExpr(init.Expr, nil, ""),
		})
	}
	return stmts
}

// genBlock lowers one API block occurrence into its seven-step
// statement sequence. blockIndex both selects the local SymbolTable and
// supplies the disambiguating suffix. Grounded on ATCGenerator::genBlock
// (genATC.cc).
func genBlock(block *atc.API, blockSyms blockSymbolTable, blockIndex int, types *env.TypeMap) ([]atc.Stmt, error) {
	suffix := suffixFor(blockIndex)
	var stmts []atc.Stmt

	// Step 1+2: collect input() vars from the call args and precondition,
	// deduped, then emit `var := input()` for each.
	var inputs []inputVar
	seen := make(map[string]struct{})
	for _, arg := range block.Call.Args {
		collectInputVars(arg, blockSyms, suffix, seen, &inputs)
	}
	if block.Pre != nil {
		collectInputVars(block.Pre, blockSyms, suffix, seen, &inputs)
	}
	for _, iv := range inputs {
		stmts = append(stmts, makeInputStmt(iv.Suffixed))
		if types != nil {
			if ty, ok := blockSyms.Lookup(iv.Original); ok {
				types.Bind(iv.Suffixed.Name, ty.Clone())
			}
		}
	}

	// Step 3: assume(precondition), renamed.
	if block.Pre != nil {
		stmts = append(stmts, atc.Assume{Cond: convertExpr(block.Pre, blockSyms, suffix)})
	}

	// Step 4+5: snapshot every global the postcondition primes, U_old := U.
	primed := make(map[string]struct{})
	if block.Post != nil {
		extractPrimedVars(block.Post, primed)
	}
	stmts = append(stmts, oldSnapshotStmts(primed)...)

	// Step 6: the renamed API call itself.
	convertedArgs := make([]atc.Expr, len(block.Call.Args))
	for i, arg := range block.Call.Args {
		convertedArgs[i] = convertExpr(arg, blockSyms, suffix)
	}
	convertedCall := atc.FuncCall{Name: block.Call.Name, Args: convertedArgs}

	returnVar := responseLHS(block, blockSyms, suffix)
	stmts = append(stmts, atc.Assign{LHS: returnVar, RHS: convertedCall})

	// Step 7: assert(postcondition), renamed and de-primed.
	if block.Post != nil {
		convertedPost := convertExpr(block.Post, blockSyms, suffix)
		stmts = append(stmts, atc.Assert{Cond: removePrimeNotation(convertedPost, primed, false)})
	}

	return stmts, nil
}

// responseLHS picks the assignment target for the API call: the
// renamed ResponseVar if the block declares one, else a synthesized
// "_result<suffix>" name, matching genATC.cc's fallback.
func responseLHS(block *atc.API, blockSyms blockSymbolTable, suffix string) atc.Expr {
	if block.ResponseVar != nil {
		return convertExpr(block.ResponseVar, blockSyms, suffix)
	}
	return atc.Var{Name: "_result" + suffix}
}

func suffixFor(blockIndex int) string {
	return strconv.Itoa(blockIndex)
}
