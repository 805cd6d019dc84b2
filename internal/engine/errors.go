// internal/engine/errors.go
package engine

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ErrUnsupported is returned by engines that do not implement an operation.
var ErrUnsupported = errors.New("operation not supported by this engine")

// ErrTooLong is returned when a sequence exceeds the alignment limit.
var ErrTooLong = errors.New("sequence too long for thermodynamic alignment")

// EngineError is a failure reported by the engine itself: a non-zero exit
// status, or a PRIMER_ERROR in an otherwise successful design.
type EngineError struct {
	Tool       string
	ExitCode   int // 0 when the tool exited cleanly but reported an error
	Diagnostic string
}

func (e *EngineError) Error() string {
	if e.ExitCode == 0 {
		return fmt.Sprintf("%s: %s", e.Tool, e.Diagnostic)
	}
	if e.Diagnostic == "" {
		return fmt.Sprintf("%s: exit status %d", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s: exit status %d: %s", e.Tool, e.ExitCode, e.Diagnostic)
}

// TimeoutError reports a subprocess killed after its time limit.
type TimeoutError struct {
	Tool  string
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out after %s", e.Tool, e.After)
}

func (e *TimeoutError) Timeout() bool { return true }
