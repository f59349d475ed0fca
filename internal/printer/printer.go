// Package printer renders an ATC/CTC Program in the line-oriented debug
// form spec.md §6 describes: `name := expr`, `assume(expr)`,
// `assert(expr)`, one statement per line, plus a `Response(code, expr)`
// line for the API block's HTTP response. This form is informational
// only, never re-parsed. Grounded on the "every variant renders itself"
// idiom used throughout the teacher's graph/formula.go String() methods,
// applied here to atc.Stmt/atc.Expr, which already carry their own
// String() implementations — this package is the thin io.Writer-facing
// wrapper around them.
package printer

import (
	"fmt"
	"io"

	"github.com/atcgen-project/atcgen/internal/atc"
)

// Print writes one line per statement of p to w, in program order.
func Print(w io.Writer, p *atc.Program) error {
	for _, stmt := range p.Statements {
		if _, err := fmt.Fprintln(w, stmt.String()); err != nil {
			return err
		}
	}
	return nil
}

// PrintResponse writes the `Response(code, expr)` line spec.md §6
// describes for an API block's HTTP response. Unknown codes render as
// "???" via HTTPResponseCode.String().
func PrintResponse(w io.Writer, code atc.HTTPResponseCode, resp atc.Expr) error {
	_, err := fmt.Fprintf(w, "Response(%s, %s)\n", code, resp)
	return err
}
