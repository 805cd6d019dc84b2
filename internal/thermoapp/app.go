package thermoapp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"p3io/core/oligo"
	"p3io/internal/args"
	"p3io/internal/clibase"
	"p3io/internal/cmdutil"
	"p3io/internal/engine"
	"p3io/internal/output"
	"p3io/internal/thermocli"
	"p3io/internal/version"
)

const name = "p3io-thermo"

// cleanSeqs normalizes every input and either rejects or masks ambiguity
// codes.
func cleanSeqs(raw []string, sanitize bool) ([]string, error) {
	out := make([]string, len(raw))
	for i, s := range raw {
		norm, err := oligo.Validate(s)
		if err != nil {
			return nil, errors.Wrapf(err, "sequence %d", i+1)
		}
		if sanitize {
			if norm, err = oligo.Sanitize(norm); err != nil {
				return nil, errors.Wrapf(err, "sequence %d", i+1)
			}
		} else if !oligo.IsACGT(norm) {
			return nil, errors.Errorf("sequence %d: ambiguity codes need --sanitize", i+1)
		}
		out[i] = norm
	}
	return out, nil
}

// newThermo builds the engine chosen on the command line. Repeated
// sequences are served from a cache.
func newThermo(opts thermocli.Options, logger *slog.Logger) (engine.Thermo, error) {
	var t engine.Thermo
	switch opts.Engine {
	case thermocli.EngineBuiltin:
		t = engine.BuiltinThermo{}
	default:
		home, err := opts.Locate()
		if err != nil {
			return nil, err
		}
		t = &engine.SubprocessThermo{
			Runner: &engine.Runner{Timeout: opts.Timeout, Logger: logger},
			Home:   home,
		}
	}
	if len(opts.Seqs) < 2 {
		return t, nil
	}
	return engine.NewCachedThermo(t, engine.DefaultCacheSize)
}

// calculate runs one calculation; seqs holds one sequence, or two for the
// dimer calculations.
func calculate(ctx context.Context, t engine.Thermo, calc string, seqs []string, c args.Conditions) (engine.ThermoResult, error) {
	switch calc {
	case thermocli.CalcTm:
		tm, err := t.Tm(ctx, seqs[0], c)
		return engine.ThermoResult{Found: err == nil, Tm: tm}, err
	case thermocli.CalcHairpin:
		return t.Hairpin(ctx, seqs[0], c)
	case thermocli.CalcHomodimer:
		return t.Homodimer(ctx, seqs[0], c)
	case thermocli.CalcHeterodimer:
		return t.Heterodimer(ctx, seqs[0], seqs[1], c)
	case thermocli.CalcEndStability:
		return t.EndStability(ctx, seqs[0], seqs[1], c)
	}
	return engine.ThermoResult{}, errors.Errorf("unknown calculation %q", calc)
}

// exitFor maps engine failures: 1 when the engine ran and complained,
// 130 on cancellation, 3 otherwise (missing tools, I/O).
func exitFor(ctx context.Context, err error) int {
	var ee *engine.EngineError
	var te *engine.TimeoutError
	switch {
	case ctx.Err() != nil:
		return 130
	case errors.As(err, &ee), errors.As(err, &te),
		errors.Is(err, engine.ErrTooLong), errors.Is(err, engine.ErrUnsupported):
		return 1
	}
	return 3
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := thermocli.NewFlagSet(name)
	opts, err := thermocli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, pflag.ErrHelp):
			thermocli.Usage(outw, fs, name)
			return cmdutil.Flush(outw, stderr, 0)
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			thermocli.Examples(outw, name)
			return cmdutil.Flush(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		thermocli.Usage(stderr, fs, name)
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return cmdutil.Flush(outw, stderr, 0)
	}

	logger := cmdutil.NewLogger(stderr, opts.Verbose, opts.Quiet)

	seqs, err := cleanSeqs(opts.Seqs, opts.Sanitize)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	if opts.Cond.TmOnly && opts.Cond.OutputStructure {
		cmdutil.Warnf(stderr, opts.Quiet, "--tm-only output carries no structure; ignoring --structure")
		opts.Cond.OutputStructure = false
	}

	t, err := newThermo(opts, logger)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 3
	}

	var groups [][]string
	switch opts.Calc {
	case thermocli.CalcHeterodimer, thermocli.CalcEndStability:
		groups = [][]string{seqs}
	default:
		for _, s := range seqs {
			groups = append(groups, []string{s})
		}
	}

	write := output.WriteThermoText
	if opts.Output == output.FormatJSON {
		write = output.WriteThermoJSON
	}
	for _, g := range groups {
		res, err := calculate(parent, t, opts.Calc, g, opts.Cond)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", err)
			_ = outw.Flush()
			return exitFor(parent, err)
		}
		row := output.ThermoRow{Calc: opts.Calc, Seq1: g[0], Engine: opts.Engine, Result: res}
		if len(g) > 1 {
			row.Seq2 = g[1]
		}
		if err := write(outw, row); err != nil {
			return cmdutil.Flush(outw, stderr, 3)
		}
	}
	return cmdutil.Flush(outw, stderr, 0)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
