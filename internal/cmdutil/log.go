// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DebugEnv forces debug logging when set to a non-empty value other than
// "0" or "false".
const DebugEnv = "P3IO_DEBUG"

// NewLogger returns a text logger on stderr. quiet keeps errors only;
// verbose (or DebugEnv) enables debug output such as engine command lines.
func NewLogger(stderr io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose || debugFromEnv():
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func debugFromEnv() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(DebugEnv)))
	return v != "" && v != "0" && v != "false"
}

func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}
