// internal/clibase/usage.go
package clibase

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"p3io/internal/version"
)

// PrintUsage writes the shared usage header, tool-specific lines from extra
// and the flag table.
func PrintUsage(out io.Writer, fs *pflag.FlagSet, name, summary string, extra func(out io.Writer)) {
	fmt.Fprintf(out, "%s – %s\n\n", name, summary)
	fmt.Fprintf(out, "Version: %s\n\n", version.Version)
	if extra != nil {
		extra(out)
	}
	fmt.Fprintln(out, "\nOptions:")
	fmt.Fprint(out, fs.FlagUsages())
}
