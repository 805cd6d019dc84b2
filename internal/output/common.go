package output

import (
	"strings"

	"github.com/pkg/errors"
)

// Output formats. Not every tool accepts every format.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatJSONL   = "jsonl"
	FormatYAML    = "yaml"
	FormatBoulder = "boulder"
)

// Check validates format against the formats a tool accepts.
func Check(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return errors.Errorf("invalid --output %q (want %s)", format, strings.Join(allowed, " | "))
}
