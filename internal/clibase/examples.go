// internal/clibase/examples.go
package clibase

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// ErrPrintedAndExitOK is returned by ParseArgs when --examples was given.
// Apps print the examples and exit 0.
var ErrPrintedAndExitOK = errors.New("examples requested")

// Example is one annotated command line; "%s" in Cmd is the tool name.
type Example struct {
	Note string
	Cmd  string
}

// PrintExamples prints each example as a comment line followed by the
// command, then a pointer to --help.
func PrintExamples(out io.Writer, name string, examples []Example) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s examples:\n", name)
	for _, ex := range examples {
		_, _ = fmt.Fprintf(out, "\n  # %s\n  %s\n", ex.Note, fmt.Sprintf(ex.Cmd, name))
	}
	_, _ = fmt.Fprintf(out, "\nRun %s --help for all flags.\n", name)
}
