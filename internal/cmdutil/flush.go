package cmdutil

import (
	"bufio"
	"fmt"
	"io"

	"p3io/internal/writers"
)

// Flush flushes outw and returns code, 0 when the reader went away
// (broken pipe), or 3 on any other write failure.
func Flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	err := outw.Flush()
	switch {
	case writers.IsBrokenPipe(err):
		return 0
	case err != nil:
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return code
}
