package writers

import (
	"io"
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// IsBrokenPipe reports whether err means the reader went away, as when
// output is piped into head. Such errors end a run quietly.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed)
}
