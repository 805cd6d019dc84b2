package designcli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"p3io/internal/clibase"
	"p3io/internal/cliutil"
	"p3io/internal/inputs"
	"p3io/internal/output"
)

type Options struct {
	clibase.Common

	// Inputs
	Globals string
	Seqs    []string
	Inputs  []string
	NoReset bool

	// Performance
	Threads   int
	CacheSize int

	// Transcripts
	InputLog  string
	OutputLog string
	ErrorLog  string
}

func NewFlagSet(name string) *pflag.FlagSet { return cliutil.NewFlagSet(name) }

func Usage(out io.Writer, fs *pflag.FlagSet, name string) {
	clibase.PrintUsage(out, fs, name, "primer design through primer3_core", func(out io.Writer) {
		_, _ = io.WriteString(out, "Usage:\n")
		_, _ = io.WriteString(out, "  "+name+" [options] --globals settings.yaml --seq target.yaml [--seq ...]\n")
		_, _ = io.WriteString(out, "  "+name+" [options] stream.p3[.gz|.zst|.lz4] ...   (or '-' for STDIN)\n")
		_, _ = io.WriteString(out, "\nStreams follow primer3 semantics: PRIMER_ settings carry over to later records.\n")
	})
}

func Examples(out io.Writer, name string) {
	clibase.PrintExamples(out, name, []clibase.Example{
		{Note: "Design primers for one target, table output", Cmd: "%s --globals settings.yaml --seq target.yaml"},
		{Note: "Run a boulder stream on 8 workers, JSONL out", Cmd: "%s -t 8 -o jsonl batch.p3.zst > designs.jsonl"},
		{Note: "Keep engine transcripts", Cmd: "%s --input-log in.log --output-log out.log batch.p3"},
	})
}

func ParseArgs(fs *pflag.FlagSet, argv []string) (Options, error) {
	var o Options

	noHeader := clibase.Register(fs, &o.Common, output.FormatText)
	fs.StringVar(&o.Globals, "globals", "", "global arguments file (YAML, JSON or boulder)")
	fs.StringArrayVar(&o.Seqs, "seq", nil, "sequence arguments file (repeatable)")
	fs.StringArrayVarP(&o.Inputs, "input", "i", nil, "boulder input stream (repeatable; '-' for STDIN)")
	fs.BoolVar(&o.NoReset, "no-reset", false, "carry globals across --seq records")
	fs.IntVarP(&o.Threads, "threads", "t", 1, "concurrent engine processes")
	fs.IntVar(&o.CacheSize, "cache", 0, "cache up to N identical designs (0=off)")
	fs.StringVar(&o.InputLog, "input-log", "", "append every engine input to this file")
	fs.StringVar(&o.OutputLog, "output-log", "", "append every engine output to this file")
	fs.StringVar(&o.ErrorLog, "error-log", "", "append engine stderr to this file")

	if err := fs.Parse(argv); err != nil {
		return o, err
	}
	if err := clibase.AfterParse(&o.Common, noHeader,
		output.FormatText, output.FormatJSON, output.FormatJSONL, output.FormatBoulder); err != nil {
		return o, err
	}
	if o.Version {
		return o, nil
	}

	exp, err := inputs.Expand(append(o.Inputs, fs.Args()...))
	if err != nil {
		return o, err
	}
	o.Inputs = exp

	if len(o.Seqs) == 0 && len(o.Inputs) == 0 {
		return o, errors.New("provide --seq files or boulder input streams")
	}
	if o.Threads < 1 {
		return o, errors.New("--threads must be ≥ 1")
	}
	if o.CacheSize < 0 {
		return o, errors.New("--cache must be ≥ 0")
	}
	return o, nil
}
