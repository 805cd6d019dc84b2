package boulderapp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"p3io/core/boulder"
	"p3io/internal/args"
	"p3io/internal/bouldercli"
	"p3io/internal/clibase"
	"p3io/internal/cmdutil"
	"p3io/internal/compare"
	"p3io/internal/inputs"
	"p3io/internal/version"
	"p3io/internal/writers"
)

const name = "p3io-boulder"

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := bouldercli.NewFlagSet(name)
	opts, err := bouldercli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, pflag.ErrHelp):
			bouldercli.Usage(outw, fs, name)
			return cmdutil.Flush(outw, stderr, 0)
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			bouldercli.Examples(outw, name)
			return cmdutil.Flush(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		bouldercli.Usage(stderr, fs, name)
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return cmdutil.Flush(outw, stderr, 0)
	}

	tags, err := opts.TagTable()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	codec := boulder.NewCodec(tags, nil)
	if opts.Home != "" {
		home, err := opts.Locate()
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", err)
			return 3
		}
		codec = boulder.NewCodec(tags, home)
	}

	var code int
	switch opts.Command {
	case bouldercli.CmdFormat:
		code = runFormat(parent, opts, codec, outw, stderr)
	case bouldercli.CmdParse:
		code = runParse(parent, opts, codec, outw, stderr)
	case bouldercli.CmdRoundTrip:
		code = runRoundTrip(opts, codec, outw, stderr)
	case bouldercli.CmdDiff:
		code = runDiff(opts, codec, outw, stderr)
	}
	if parent.Err() != nil && code == 0 {
		code = 130
	}
	return cmdutil.Flush(outw, stderr, code)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// ---- format ----

// buildRecords assembles engine input records from --globals, --seq and
// positional argument files.
func buildRecords(opts bouldercli.Options, codec *boulder.Codec) ([]*boulder.Record, error) {
	var globals *boulder.Record
	if opts.Globals != "" {
		g, err := args.LoadFile(opts.Globals, codec)
		if err != nil {
			return nil, err
		}
		globals = g
	}

	var out []*boulder.Record
	var acc args.Accumulator
	acc.Build(globals, nil, true)
	for i, path := range opts.Seqs {
		seq, err := args.LoadFile(path, codec)
		if err != nil {
			return nil, err
		}
		if i > 0 && !opts.NoReset {
			acc.Build(globals, nil, true)
		}
		out = append(out, acc.Feed(seq))
	}
	for _, path := range opts.Files {
		recs, err := loadStream(path, codec)
		if err != nil {
			return nil, err
		}
		for _, r := range recs {
			out = append(out, acc.Feed(r))
		}
	}
	if len(out) == 0 {
		out = append(out, acc.Globals())
	}
	return out, nil
}

// loadStream reads every record of a boulder stream, or the single record
// of a YAML/JSON file.
func loadStream(path string, codec *boulder.Codec) ([]*boulder.Record, error) {
	if args.FormatFromPath(path) != args.FormatBoulder {
		rec, err := args.LoadFile(path, codec)
		if err != nil {
			return nil, err
		}
		return []*boulder.Record{rec}, nil
	}
	data, err := inputs.ReadAll(path)
	if err != nil {
		return nil, err
	}
	recs, err := codec.ParseMulti(data)
	return recs, errors.Wrap(err, path)
}

func runFormat(ctx context.Context, opts bouldercli.Options, codec *boulder.Codec, out io.Writer, stderr io.Writer) int {
	recs, err := buildRecords(opts, codec)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 3
	}
	in, done := writers.StartRecordWriter(out, opts.Output, codec, 16)
	for _, r := range recs {
		if ctx.Err() != nil {
			break
		}
		in <- r
	}
	close(in)
	if err := <-done; err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 3
	}
	return 0
}

// ---- parse ----

func runParse(ctx context.Context, opts bouldercli.Options, codec *boulder.Codec, out io.Writer, stderr io.Writer) int {
	src := inputs.NewRecords(codec, opts.Files)
	defer func() { _ = src.Close() }()

	in, done := writers.StartRecordWriter(out, opts.Output, codec, 16)
	var readErr error
	for ctx.Err() == nil {
		rec, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			readErr = err
			break
		}
		if !opts.Raw {
			rec = codec.UnwrapRecord(rec)
		}
		in <- rec
	}
	close(in)
	werr := <-done
	if readErr != nil {
		_, _ = fmt.Fprintln(stderr, "error:", readErr)
		return 3
	}
	if werr != nil {
		_, _ = fmt.Fprintln(stderr, "error:", werr)
		return 3
	}
	return 0
}

// ---- roundtrip ----

func runRoundTrip(opts bouldercli.Options, codec *boulder.Codec, out io.Writer, stderr io.Writer) int {
	code := 0
	for _, path := range opts.Files {
		data, err := inputs.ReadAll(path)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", err)
			return 3
		}
		diffs, err := compare.RoundTrip(codec, data)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %s: %v\n", path, err)
			return 3
		}
		if len(diffs) == 0 {
			if !opts.Quiet {
				_, _ = fmt.Fprintf(out, "ok\t%s\n", path)
			}
			continue
		}
		code = 1
		for _, d := range diffs {
			_, _ = fmt.Fprintf(out, "changed\t%s\trecord %d\t%s\t%s\t%s\n",
				path, d.Record+1, d.Key, strings.Join(d.Before, " | "), strings.Join(d.After, " | "))
		}
	}
	return code
}

// ---- diff ----

func readResults(path string, codec *boulder.Codec) ([]*boulder.Record, error) {
	data, err := inputs.ReadAll(path)
	if err != nil {
		return nil, err
	}
	raw, err := codec.ParseMulti(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	for i, r := range raw {
		raw[i] = codec.UnwrapRecord(r)
	}
	return raw, nil
}

func runDiff(opts bouldercli.Options, codec *boulder.Codec, out io.Writer, stderr io.Writer) int {
	refs, err := readResults(opts.Files[0], codec)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 3
	}
	cands, err := readResults(opts.Files[1], codec)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 3
	}

	code := 0
	n := len(refs)
	if len(cands) != n {
		cmdutil.Warnf(stderr, opts.Quiet, "record counts differ: %d vs %d", len(refs), len(cands))
		code = 1
		if len(cands) < n {
			n = len(cands)
		}
	}
	for i := 0; i < n; i++ {
		rep := compare.Records(refs[i], cands[i], opts.Tolerance)
		writeReport(out, i+1, rep, opts.Quiet)
		if !rep.Agree() {
			code = 1
		}
	}
	return code
}

func writeReport(w io.Writer, rec int, rep compare.Report, quiet bool) {
	for _, d := range rep.Disagree {
		_, _ = fmt.Fprintf(w, "disagree\trecord %d\t%s\t%s\t%s\n", rec, d.Key, d.Ref, d.Cand)
	}
	if quiet {
		return
	}
	for _, k := range rep.OnlyInRef {
		_, _ = fmt.Fprintf(w, "only-ref\trecord %d\t%s\n", rec, k)
	}
	for _, k := range rep.OnlyInCand {
		_, _ = fmt.Fprintf(w, "only-cand\trecord %d\t%s\n", rec, k)
	}
	for _, d := range rep.Differ {
		_, _ = fmt.Fprintf(w, "differ\trecord %d\t%s\t%s\t%s\n", rec, d.Key, d.Ref, d.Cand)
	}
	if rep.Agree() {
		_, _ = fmt.Fprintf(w, "agree\trecord %d\t%d keys in common\n", rec, rep.Common)
	}
}
