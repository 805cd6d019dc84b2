// internal/engine/runner.go
package engine

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds one engine call when Runner.Timeout is zero.
const DefaultTimeout = 60 * time.Second

// Runner spawns engine executables. The zero Runner uses DefaultTimeout
// and discards debug logs.
type Runner struct {
	Timeout time.Duration // <0 disables the limit
	Logger  *slog.Logger
}

func (r *Runner) timeout() time.Duration {
	if r == nil || r.Timeout == 0 {
		return DefaultTimeout
	}
	return r.Timeout
}

func (r *Runner) logger() *slog.Logger {
	if r == nil || r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// Run executes tool with argv, feeding stdin and draining both output
// streams. A non-zero exit becomes *EngineError, an expired limit
// *TimeoutError; cancellation of ctx is returned as ctx.Err().
func (r *Runner) Run(ctx context.Context, tool string, argv []string, stdin []byte) (stdout, stderr []byte, err error) {
	name := filepath.Base(tool)
	limit := r.timeout()
	callCtx := ctx
	if limit > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, limit)
		defer cancel()
	}

	cmd := exec.CommandContext(callCtx, tool, argv...)
	cmd.Stdin = bytes.NewReader(stdin)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	cmd.WaitDelay = time.Second

	start := time.Now()
	runErr := cmd.Run()
	r.logger().Debug("engine call",
		"tool", name,
		"args", argv,
		"stdin_bytes", len(stdin),
		"elapsed", time.Since(start),
		"err", runErr)

	switch {
	case ctx.Err() != nil:
		return nil, nil, ctx.Err()
	case callCtx.Err() == context.DeadlineExceeded:
		return nil, nil, &TimeoutError{Tool: name, After: limit}
	case runErr == nil:
		return out.Bytes(), errb.Bytes(), nil
	}
	var ee *exec.ExitError
	if errors.As(runErr, &ee) {
		diag := strings.TrimSpace(errb.String())
		if diag == "" {
			diag = strings.TrimSpace(out.String())
		}
		return out.Bytes(), errb.Bytes(), &EngineError{Tool: name, ExitCode: ee.ExitCode(), Diagnostic: diag}
	}
	return nil, nil, errors.Wrapf(runErr, "running %s", name)
}
