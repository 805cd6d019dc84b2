package designapp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"p3io/core/boulder"
	"p3io/internal/args"
	"p3io/internal/clibase"
	"p3io/internal/cmdutil"
	"p3io/internal/designcli"
	"p3io/internal/designview"
	"p3io/internal/engine"
	"p3io/internal/inputs"
	"p3io/internal/p3home"
	"p3io/internal/pipeline"
	"p3io/internal/version"
	"p3io/internal/writers"
)

const name = "p3io-design"

// exitFor maps a per-record failure to the tool's exit code: 3 for input
// that could not be marshaled, 1 for anything the engine reported.
func exitFor(err error) int {
	var fe *boulder.FormatError
	var pe *p3home.PathError
	if errors.As(err, &fe) || errors.As(err, &pe) {
		return 3
	}
	return 1
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func openLog(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	return f, errors.Wrap(err, "open log")
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := designcli.NewFlagSet(name)
	opts, err := designcli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, pflag.ErrHelp):
			designcli.Usage(outw, fs, name)
			return cmdutil.Flush(outw, stderr, 0)
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			designcli.Examples(outw, name)
			return cmdutil.Flush(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		designcli.Usage(stderr, fs, name)
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return cmdutil.Flush(outw, stderr, 0)
	}

	logger := cmdutil.NewLogger(stderr, opts.Verbose, opts.Quiet)

	tags, err := opts.TagTable()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	home, err := opts.Locate()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 3
	}
	codec := boulder.NewCodec(tags, home)

	runner := &engine.Runner{Timeout: opts.Timeout, Logger: logger}
	sub := engine.NewSubprocessDesigner(runner, home, tags)
	for _, l := range []struct {
		path string
		dst  *io.Writer
	}{
		{opts.InputLog, &sub.InputLog},
		{opts.OutputLog, &sub.OutputLog},
		{opts.ErrorLog, &sub.ErrorLog},
	} {
		f, err := openLog(l.path)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", err)
			return 3
		}
		if f != nil {
			defer func() { _ = f.Close() }()
			*l.dst = f
		}
	}

	var designer pipeline.Designer = sub
	if opts.CacheSize > 0 {
		cached, err := engine.NewCachedDesigner(sub, codec, opts.CacheSize)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", err)
			return 2
		}
		designer = cached
	}

	src := &source{codec: codec, seqs: opts.Seqs, noReset: opts.NoReset}
	if opts.Globals != "" {
		if src.globals, err = args.LoadFile(opts.Globals, codec); err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", err)
			return 3
		}
	}
	if len(opts.Inputs) > 0 {
		src.streams = inputs.NewRecords(codec, opts.Inputs)
	}
	defer func() { _ = src.close() }()

	code := 0
	visit := func(r pipeline.Result) (bool, writers.DesignItem, error) {
		seqID := r.Args.GetString("SEQUENCE_ID")
		if r.Err != nil {
			logger.Error("design failed", slog.Int("record", r.Index+1), slog.String("sequence_id", seqID), slog.Any("err", r.Err))
			if c := exitFor(r.Err); c > code {
				code = c
			}
			if r.Out == nil {
				msg := oneLine(r.Err.Error())
				out := boulder.NewRecord()
				out.Set("PRIMER_ERROR", boulder.Str(msg))
				return true, writers.DesignItem{
					Design: designview.Design{SequenceID: seqID, Error: msg},
					Out:    out,
				}, nil
			}
		}
		d := designview.FromRecord(seqID, codec.UnwrapRecord(r.Out))
		if d.Warning != "" {
			logger.Warn("engine warning", slog.String("sequence_id", seqID), slog.String("warning", d.Warning))
		}
		return true, writers.DesignItem{Design: d, Out: r.Out}, nil
	}

	in, done := writers.StartDesignWriter(outw, opts.Output, codec, opts.Header, 64)
	n, runErr := cmdutil.RunStream(parent, pipeline.Config{Threads: opts.Threads}, src.next, designer, visit,
		func(it writers.DesignItem) error { in <- it; return nil })
	close(in)
	werr := <-done
	logger.Debug("designs written", slog.Int("count", n))

	switch {
	case runErr != nil && parent.Err() != nil:
		return 130
	case runErr != nil:
		_, _ = fmt.Fprintln(stderr, "error:", runErr)
		return 3
	case werr != nil:
		_, _ = fmt.Fprintln(stderr, "error:", werr)
		return 3
	}
	return cmdutil.Flush(outw, stderr, code)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
