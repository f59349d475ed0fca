package inspect

import (
	"fmt"
	"go/types"
	"io"
	"strings"

	"golang.org/x/tools/go/ssa"
)

// register is the subset of ssa.Value that also has a Name, matching
// teacher's own local Register interface in symexec/ssa.go.
type register interface {
	Type() types.Type
	Name() string
}

// PrintBlocks writes a verbose, per-instruction dump of fn's SSA form to
// w — a debug aid for --verbose, kept almost line-for-line from the
// teacher's symexec/ssa.go printBlocks, redirected from stdout to an
// io.Writer and extended with the instruction kinds fn.Signature-only
// discovery never exercises but a real API body can contain (Go, Defer,
// Panic, Range, TypeAssert).
func PrintBlocks(w io.Writer, fn *ssa.Function) {
	for _, block := range fn.Blocks {
		fmt.Fprintln(w, block.String(), "->")
		for _, instr := range block.Instrs {
			printInstr := func(name string) {
				if reg, ok := instr.(register); ok {
					fmt.Fprintf(w, "  [%10s] %s:%s <-- %s\n", strings.ToUpper(name), reg.Name(), reg.Type(), instr.String())
				} else {
					fmt.Fprintf(w, "  [%10s] %s\n", strings.ToUpper(name), instr.String())
				}
			}
			switch instr.(type) {
			case *ssa.Alloc:
				printInstr("alloc")
			case *ssa.BinOp:
				printInstr("binop")
			case *ssa.Call:
				printInstr("call")
			case *ssa.Convert:
				printInstr("convert")
			case *ssa.Defer:
				printInstr("defer")
			case *ssa.Extract:
				printInstr("extract")
			case *ssa.Field:
				printInstr("field")
			case *ssa.FieldAddr:
				printInstr("field addr")
			case *ssa.Go:
				printInstr("go")
			case *ssa.If:
				printInstr("if")
			case *ssa.Index:
				printInstr("index")
			case *ssa.IndexAddr:
				printInstr("index addr")
			case *ssa.Jump:
				printInstr("jump")
			case *ssa.Lookup:
				printInstr("lookup")
			case *ssa.MakeMap:
				printInstr("make map")
			case *ssa.MakeSlice:
				printInstr("make slice")
			case *ssa.MapUpdate:
				printInstr("map update")
			case *ssa.Panic:
				printInstr("panic")
			case *ssa.Phi:
				printInstr("phi")
			case *ssa.Range:
				printInstr("range")
			case *ssa.Return:
				printInstr("return")
			case *ssa.Select:
				printInstr("select")
			case *ssa.Store:
				printInstr("store")
			case *ssa.TypeAssert:
				printInstr("type assert")
			case *ssa.UnOp:
				printInstr("unop")
			default:
				fmt.Fprintf(w, "  [%10s] %s\n", "?", instr.String())
			}
		}
	}
}
