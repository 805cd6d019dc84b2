package bouldercli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"p3io/internal/clibase"
	"p3io/internal/cliutil"
	"p3io/internal/compare"
	"p3io/internal/inputs"
	"p3io/internal/output"
)

// Subcommands.
const (
	CmdFormat    = "format"
	CmdParse     = "parse"
	CmdRoundTrip = "roundtrip"
	CmdDiff      = "diff"
)

type Options struct {
	clibase.Common

	Command string

	// format
	Globals string
	Seqs    []string
	NoReset bool

	// parse
	Raw bool

	// diff
	Tolerance float64

	Files []string
}

func NewFlagSet(name string) *pflag.FlagSet { return cliutil.NewFlagSet(name) }

// Usage prints the tool help.
func Usage(out io.Writer, fs *pflag.FlagSet, name string) {
	clibase.PrintUsage(out, fs, name, "primer3 boulder-IO marshaling", func(out io.Writer) {
		_, _ = io.WriteString(out, "Usage:\n")
		_, _ = io.WriteString(out, "  "+name+" format [--globals F] [--seq F]... [FILE...]   build engine input\n")
		_, _ = io.WriteString(out, "  "+name+" parse [--raw] [-o json|jsonl|yaml|boulder] FILE...\n")
		_, _ = io.WriteString(out, "  "+name+" roundtrip FILE...                            check parse/format fidelity\n")
		_, _ = io.WriteString(out, "  "+name+" diff [--tolerance 0.05] REF CAND               compare results\n")
		_, _ = io.WriteString(out, "\nArgument files may be YAML, JSON (comments allowed) or boulder; '-' reads stdin.\n")
	})
}

// Examples prints a quickstart.
func Examples(out io.Writer, name string) {
	clibase.PrintExamples(out, name, []clibase.Example{
		{Note: "Build a design input from a settings file and two sequences", Cmd: "%s format --globals settings.yaml --seq a.yaml --seq b.json > in.p3"},
		{Note: "Inspect engine output as JSON", Cmd: "primer3_core < in.p3 | %s parse -"},
		{Note: "Compare two result files within 5%", Cmd: "%s diff ref.out cand.out"},
	})
}

func defaultOutput(cmd string) string {
	if cmd == CmdParse {
		return output.FormatJSON
	}
	return output.FormatBoulder
}

func ParseArgs(fs *pflag.FlagSet, argv []string) (Options, error) {
	var o Options
	cmd, rest := cliutil.SplitSubcommand(argv)
	o.Command = cmd

	noHeader := clibase.Register(fs, &o.Common, "")
	fs.StringVar(&o.Globals, "globals", "", "global arguments file (format)")
	fs.StringArrayVar(&o.Seqs, "seq", nil, "sequence arguments file, one record each (format; repeatable)")
	fs.BoolVar(&o.NoReset, "no-reset", false, "carry globals across --seq records instead of starting from --globals each time (format)")
	fs.BoolVar(&o.Raw, "raw", false, "keep values as text instead of inferring types (parse)")
	fs.Float64Var(&o.Tolerance, "tolerance", compare.DefaultTolerance, "allowed relative difference for numbers (diff)")

	if err := fs.Parse(rest); err != nil {
		return o, err
	}
	if o.Output == "" {
		o.Output = defaultOutput(o.Command)
	}
	if err := clibase.AfterParse(&o.Common, noHeader,
		output.FormatBoulder, output.FormatJSON, output.FormatJSONL, output.FormatYAML); err != nil {
		return o, err
	}
	if o.Version {
		return o, nil
	}

	files, err := inputs.Expand(fs.Args())
	if err != nil {
		return o, err
	}
	o.Files = files

	switch o.Command {
	case CmdFormat:
		if o.Globals == "" && len(o.Seqs) == 0 && len(o.Files) == 0 {
			return o, errors.New("format: provide --globals, --seq or argument files")
		}
	case CmdParse, CmdRoundTrip:
		if len(o.Files) == 0 {
			return o, errors.Errorf("%s: at least one input file is required ('-' for stdin)", o.Command)
		}
	case CmdDiff:
		if len(o.Files) != 2 {
			return o, errors.New("diff: need exactly two files (reference, candidate)")
		}
		if o.Tolerance < 0 {
			return o, errors.New("--tolerance must be ≥ 0")
		}
	case "":
		return o, errors.New("missing subcommand (format | parse | roundtrip | diff)")
	default:
		return o, errors.Errorf("unknown subcommand %q", o.Command)
	}
	return o, nil
}
