// internal/cliutil/cliutil.go
package cliutil

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// NewFlagSet returns a silent, interspersed pflag set; callers print usage
// themselves.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetInterspersed(true)
	fs.SetOutput(io.Discard)
	return fs
}

// SplitSubcommand takes the first non-flag argument as the subcommand.
// Flags before it must use the --name=value form.
func SplitSubcommand(argv []string) (cmd string, rest []string) {
	for i, a := range argv {
		if a == "--" {
			break
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			rest = append(append(rest, argv[:i]...), argv[i+1:]...)
			return a, rest
		}
	}
	return "", argv
}

var units = []struct {
	suffix string
	molar  float64
}{
	{"nm", 1e-9},
	{"um", 1e-6},
	{"mm", 1e-3},
	{"m", 1},
}

// ParseConc reads a concentration such as "50mM" or "250nM" and returns it
// in base units (given in molar, e.g. 1e-3 for mM). A bare number is taken
// to be in base units already.
func ParseConc(text string, base float64) (float64, error) {
	s := strings.TrimSpace(strings.ToLower(text))
	num, scale := s, base
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			num, scale = strings.TrimSpace(strings.TrimSuffix(s, u.suffix)), u.molar
			break
		}
	}
	if num == "" {
		return 0, errors.Errorf("empty concentration %q", text)
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, errors.Errorf("bad concentration %q", text)
	}
	if f < 0 {
		return 0, errors.Errorf("negative concentration %q", text)
	}
	return f * scale / base, nil
}

// ConcValue is a pflag.Value storing a concentration in a fixed unit.
type ConcValue struct {
	dst  *float64
	base float64
	unit string
}

// ConcVar registers a concentration flag whose value is kept in unit
// ("mM" or "nM").
func ConcVar(fs *pflag.FlagSet, dst *float64, name string, unit string, usage string) {
	base := 1e-3
	if strings.EqualFold(unit, "nM") {
		base = 1e-9
	}
	fs.Var(&ConcValue{dst: dst, base: base, unit: unit}, name, usage)
}

func (c *ConcValue) String() string {
	if c.dst == nil {
		return ""
	}
	return strconv.FormatFloat(*c.dst, 'f', -1, 64) + c.unit
}

func (c *ConcValue) Set(v string) error {
	f, err := ParseConc(v, c.base)
	if err != nil {
		return err
	}
	*c.dst = f
	return nil
}

func (c *ConcValue) Type() string { return "conc" }
