// Package inspect discovers the parameter and result types of a Go
// package's exported functions via go/types and golang.org/x/tools/go/ssa,
// so that a spec's API blocks can be checked against — or have their
// symbol table pre-populated from — the actual signatures the embedding
// application implements. Grounded on the teacher's graph/ssa.go (SSA())
// and symexec/ssa.go (buildPackage/printBlocks), repurposed from
// "build SSA to symbolically execute the function body" to "build SSA/
// types only far enough to read parameter and result types".
package inspect

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"

	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/pkg/errors"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// ErrNoGoFiles is returned when a directory has no .go files to build a
// package from.
var ErrNoGoFiles = errors.New("inspect: directory contains no .go files")

// FuncSig is one exported function's discovered signature, translated
// into the spec's type-expression vocabulary.
type FuncSig struct {
	Name   string
	Params []atc.TypeExpr
	Return atc.TypeExpr // nil for no (usable) return value
}

// APISet is every exported, top-level function discovered in a package
// directory, keyed by name.
type APISet struct {
	Funcs   map[string]*FuncSig
	Package *ssa.Package
}

// LoadAPIPackage parses every .go file directly inside dir (matching the
// teacher's own flat, non-recursive testdata layout), builds an
// ssa.Package for it, and extracts exported functions' signatures.
func LoadAPIPackage(dir string) (*APISet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", dir)
	}

	fset := token.NewFileSet()
	var files []*ast.File
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, 0)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, errors.Wrapf(ErrNoGoFiles, "%s", dir)
	}

	pkgName := "api"
	if len(files) > 0 && files[0].Name != nil {
		pkgName = files[0].Name.Name
	}
	pkg := types.NewPackage(pkgName, "")

	built, _, err := ssautil.BuildPackage(&types.Config{Importer: importer.Default()}, fset, pkg, files, ssa.SanityCheckFunctions)
	if err != nil {
		return nil, errors.Wrap(err, "building ssa package")
	}

	apiSet := &APISet{Funcs: make(map[string]*FuncSig), Package: built}
	for name, member := range built.Members {
		fn, ok := member.(*ssa.Function)
		if !ok || !ast.IsExported(name) || fn.Signature == nil {
			continue
		}
		apiSet.Funcs[name] = signatureOf(name, fn.Signature)
	}
	return apiSet, nil
}

func signatureOf(name string, sig *types.Signature) *FuncSig {
	params := make([]atc.TypeExpr, sig.Params().Len())
	for i := 0; i < sig.Params().Len(); i++ {
		params[i] = ToTypeExpr(sig.Params().At(i).Type())
	}

	results := sig.Results()
	n := results.Len()
	// A trailing error return is a Go calling convention, not a spec
	// value; internal/function's ReflectFactory strips it the same way
	// at call time, so the declared signature shouldn't advertise it.
	if n > 0 && isErrorType(results.At(n-1).Type()) {
		n--
	}

	var ret atc.TypeExpr
	switch n {
	case 0:
		ret = nil
	case 1:
		ret = ToTypeExpr(results.At(0).Type())
	default:
		elems := make([]atc.TypeExpr, n)
		for i := 0; i < n; i++ {
			elems[i] = ToTypeExpr(results.At(i).Type())
		}
		ret = atc.Tuple{Elements: elems}
	}

	return &FuncSig{Name: name, Params: params, Return: ret}
}

func isErrorType(t types.Type) bool {
	return t.String() == "error"
}

// ParamTypesFor implements internal/atcgen.ParamTypeSource, letting a
// discovered APISet directly seed a spec's symbol table with real
// parameter types instead of an untyped placeholder.
func (a *APISet) ParamTypesFor(callName string) ([]atc.TypeExpr, bool) {
	fn, ok := a.Funcs[callName]
	if !ok {
		return nil, false
	}
	return fn.Params, true
}
