package main

import (
	"os"
	"strings"

	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/atcgen-project/atcgen/internal/atcgen"
	"github.com/atcgen-project/atcgen/internal/env"
	"github.com/atcgen-project/atcgen/internal/inspect"
	"github.com/atcgen-project/atcgen/internal/specfile"
	"github.com/atcgen-project/atcgen/internal/tlog"
	"github.com/pkg/errors"
)

// buildATC loads specPath, optionally consults apiDir for real parameter
// types (via internal/inspect), and generates an ATC for the given test
// string (a sequence of block names, run in order).
func buildATC(specPath, apiDir string, testString []string) (*atc.Program, *env.TypeMap, error) {
	spec, err := specfile.LoadFile(specPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "loading spec")
	}

	var params atcgen.ParamTypeSource
	if apiDir != "" {
		apiSet, err := inspect.LoadAPIPackage(apiDir)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "inspecting api package %s", apiDir)
		}
		params = apiSet
		tlog.Logger.Debug().Int("functions", len(apiSet.Funcs)).Msg("atcgen: discovered api signatures")
		if tlog.Verbose() {
			dumpAPIBlocks(apiSet)
		}
	}

	global, err := atcgen.BuildSymbolTable(spec, params)
	if err != nil {
		return nil, nil, errors.Wrap(err, "building symbol table")
	}

	types := env.NewTypeMap(nil)
	prog, err := atcgen.Generate(spec, global, testString, types)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generating atc")
	}

	return prog, types, nil
}

// dumpAPIBlocks prints the SSA form of every discovered API function
// under --verbose, the debug aid internal/inspect.PrintBlocks exists
// for: seeing exactly what the ATC generator's type discovery saw
// before trusting it to seed a symbol table.
func dumpAPIBlocks(apiSet *inspect.APISet) {
	for name := range apiSet.Funcs {
		fn := apiSet.Package.Func(name)
		if fn == nil {
			continue
		}
		tlog.Logger.Debug().Str("func", name).Msg("atcgen: ssa blocks")
		inspect.PrintBlocks(os.Stderr, fn)
	}
}

func splitTestString(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
