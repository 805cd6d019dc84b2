// internal/clibase/common.go
package clibase

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"p3io/core/boulder"
	"p3io/internal/args"
	"p3io/internal/engine"
	"p3io/internal/output"
	"p3io/internal/p3home"
)

// Common holds CLI fields shared by the p3io tools.
type Common struct {
	// Engine
	Home    string
	Tags    string
	Timeout time.Duration

	// Output
	Output string
	Header bool

	// Misc
	Verbose  bool
	Quiet    bool
	Version  bool
	Examples bool
	Help     bool
}

// Register wires shared flags onto fs and returns a pointer to the “no-header” bool
// that the caller can use to set Common.Header = !noHeader after parsing.
func Register(fs *pflag.FlagSet, c *Common, defaultOutput string) *bool {
	fs.StringVar(&c.Home, "home", "", "primer3 installation directory (default $"+p3home.EnvVar+")")
	fs.StringVar(&c.Tags, "tags", "", "YAML file extending the tag table")
	fs.DurationVar(&c.Timeout, "timeout", engine.DefaultTimeout, "per-call engine timeout")

	fs.StringVarP(&c.Output, "output", "o", defaultOutput, "output format")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line")

	fs.BoolVar(&c.Verbose, "verbose", false, "log engine calls")
	fs.BoolVarP(&c.Quiet, "quiet", "q", false, "suppress non-essential warnings")
	fs.BoolVarP(&c.Version, "version", "v", false, "print version and exit")
	fs.BoolVar(&c.Examples, "examples", false, "print usage examples and exit")
	fs.BoolVarP(&c.Help, "help", "h", false, "show this help")
	return &noHeader
}

// AfterParse finalizes header and runs shared validation.
func AfterParse(c *Common, noHeader *bool, formats ...string) error {
	c.Header = !*noHeader
	if c.Help {
		return pflag.ErrHelp
	}
	if c.Examples {
		return ErrPrintedAndExitOK
	}
	if c.Version {
		return nil
	}
	return Validate(c, formats...)
}

// Validate applies shared CLI invariants used by all tools.
func Validate(c *Common, formats ...string) error {
	if c.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}
	if c.Verbose && c.Quiet {
		return errors.New("--verbose conflicts with --quiet")
	}
	return output.Check(c.Output, formats...)
}

// TagTable loads --tags, or returns the default table.
func (c *Common) TagTable() (*boulder.TagTable, error) {
	if c.Tags == "" {
		return boulder.DefaultTags(), nil
	}
	return args.LoadTags(c.Tags)
}

// Locate finds the installation directory after loading .env.
func (c *Common) Locate() (p3home.Home, error) {
	p3home.LoadEnv()
	return p3home.Locate(c.Home)
}
