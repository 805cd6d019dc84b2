// internal/writers/registry.go
package writers

import (
	"io"

	"github.com/pkg/errors"
)

// Writer registries (format → handler). Register in init() blocks.
var (
	RecordWriters = map[string]func(w io.Writer, data interface{}) error{}
	DesignWriters = map[string]func(w io.Writer, data interface{}) error{}
)

// Register helpers (idempotent last-wins)
func RegisterRecord(format string, fn func(io.Writer, interface{}) error) { RecordWriters[format] = fn }
func RegisterDesign(format string, fn func(io.Writer, interface{}) error) { DesignWriters[format] = fn }

// Dispatch helpers used by callers.
func WriteRecord(format string, w io.Writer, payload interface{}) error {
	fn, ok := RecordWriters[format]
	if !ok {
		return errors.Errorf("unknown record format %q (no writer registered)", format)
	}
	return fn(w, payload)
}

func WriteDesign(format string, w io.Writer, payload interface{}) error {
	fn, ok := DesignWriters[format]
	if !ok {
		return errors.Errorf("unknown design format %q (no writer registered)", format)
	}
	return fn(w, payload)
}
