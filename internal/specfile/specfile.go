// Package specfile loads a declarative specification from YAML into
// atc.Spec: global declarations, initialization, and named API blocks.
// Grounded on the teacher's own use of gopkg.in/yaml.v3 to give an AST a
// YAML face (graph/formula.go, symexec/formula.go marshal Formula for
// debug dumps) — here the direction is reversed (unmarshal, not marshal)
// since a spec file is authored input rather than a diagnostic dump, but
// the library and the "give this AST a YAML face" idea both come
// straight from the teacher.
package specfile

import (
	"io"
	"os"

	"github.com/atcgen-project/atcgen/internal/atc"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type document struct {
	Globals []globalDoc `yaml:"globals"`
	Init    []initDoc   `yaml:"init"`
	Blocks  []blockDoc  `yaml:"blocks"`
}

type globalDoc struct {
	Name string      `yaml:"name"`
	Type interface{} `yaml:"type"`
}

type initDoc struct {
	Name string      `yaml:"name"`
	Expr interface{} `yaml:"expr"`
}

type callDoc struct {
	Name string        `yaml:"name"`
	Args []interface{} `yaml:"args"`
}

type blockDoc struct {
	Name         string      `yaml:"name"`
	Pre          interface{} `yaml:"pre"`
	Call         callDoc     `yaml:"call"`
	Response     interface{} `yaml:"response"`
	ResponseCode string      `yaml:"responseCode"`
	Post         interface{} `yaml:"post"`
}

// Load parses a YAML spec document from r into an atc.Spec.
func Load(r io.Reader) (*atc.Spec, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "specfile: decoding yaml")
	}
	return convertDocument(&doc)
}

// LoadFile opens path and parses it as a YAML spec document.
func LoadFile(path string) (*atc.Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "specfile: opening %s", path)
	}
	defer f.Close()
	return Load(f)
}

func convertDocument(doc *document) (*atc.Spec, error) {
	spec := &atc.Spec{}

	for _, g := range doc.Globals {
		ty, err := convertType(g.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "global %q", g.Name)
		}
		spec.Globals = append(spec.Globals, atc.GlobalDecl{Name: g.Name, Type: ty})
	}

	for _, i := range doc.Init {
		expr, err := convertExpr(i.Expr)
		if err != nil {
			return nil, errors.Wrapf(err, "init %q", i.Name)
		}
		spec.Init = append(spec.Init, atc.Init{Name: i.Name, Expr: expr})
	}

	for _, b := range doc.Blocks {
		block, err := convertBlock(&b)
		if err != nil {
			return nil, errors.Wrapf(err, "block %q", b.Name)
		}
		spec.Blocks = append(spec.Blocks, *block)
	}

	return spec, nil
}

func convertBlock(b *blockDoc) (*atc.API, error) {
	pre, err := convertExpr(b.Pre)
	if err != nil {
		return nil, errors.Wrap(err, "pre")
	}

	args, err := convertExprList(b.Call.Args)
	if err != nil {
		return nil, errors.Wrap(err, "call args")
	}
	call := atc.FuncCall{Name: b.Call.Name, Args: args}

	response, err := convertExpr(b.Response)
	if err != nil {
		return nil, errors.Wrap(err, "response")
	}

	post, err := convertExpr(b.Post)
	if err != nil {
		return nil, errors.Wrap(err, "post")
	}

	return &atc.API{
		Name:         b.Name,
		Pre:          pre,
		Call:         call,
		ResponseVar:  response,
		ResponseCode: responseCodeFromString(b.ResponseCode),
		Post:         post,
	}, nil
}

func responseCodeFromString(s string) atc.HTTPResponseCode {
	switch s {
	case "OK_200":
		return atc.OK200
	case "CREATED_201":
		return atc.Created201
	case "BAD_REQUEST_400":
		return atc.BadRequest400
	default:
		return atc.Unknown
	}
}
