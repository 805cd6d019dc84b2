// internal/engine/designer.go
package engine

import (
	"context"
	"io"
	"sync"

	"p3io/core/boulder"
	"p3io/internal/p3home"
)

// ThermoPathTag is injected when a design record does not name one.
const ThermoPathTag = "PRIMER_THERMODYNAMIC_PARAMETERS_PATH"

// Designer runs one primer3 design for a fully merged argument record and
// returns the raw result record (scalar values; see boulder.UnwrapRecord).
type Designer interface {
	Design(ctx context.Context, args *boulder.Record) (*boulder.Record, error)
}

// SubprocessDesigner drives primer3_core over stdin/stdout.
type SubprocessDesigner struct {
	Runner *Runner
	Home   p3home.Home
	Codec  *boulder.Codec

	// Optional transcripts of every call, written whole per call.
	InputLog  io.Writer
	OutputLog io.Writer
	ErrorLog  io.Writer

	logMu sync.Mutex
}

// NewSubprocessDesigner resolves path tags against home.
func NewSubprocessDesigner(r *Runner, home p3home.Home, tags *boulder.TagTable) *SubprocessDesigner {
	return &SubprocessDesigner{
		Runner: r,
		Home:   home,
		Codec:  boulder.NewCodec(tags, home),
	}
}

func (d *SubprocessDesigner) codec() *boulder.Codec {
	if d.Codec == nil {
		return boulder.Default
	}
	return d.Codec
}

// Design formats args, runs primer3_core and parses its output. A
// PRIMER_ERROR in the output is returned as *EngineError together with
// the parsed record.
func (d *SubprocessDesigner) Design(ctx context.Context, args *boulder.Record) (*boulder.Record, error) {
	in := args.Clone()
	if !in.Has(ThermoPathTag) && d.Home.Dir != "" {
		in.Set(ThermoPathTag, boulder.Str(d.Home.ThermoPath()))
	}
	data, err := d.codec().Format(in)
	if err != nil {
		return nil, err
	}
	tool, err := d.Home.Tool("primer3_core")
	if err != nil {
		return nil, err
	}
	stdout, stderr, runErr := d.Runner.Run(ctx, tool, nil, data)
	d.transcribe(data, stdout, stderr)

	var out *boulder.Record
	if len(stdout) > 0 {
		if out, err = d.codec().Parse(stdout); err != nil {
			return nil, err
		}
	}
	if msg := out.GetString("PRIMER_ERROR"); msg != "" {
		ee := &EngineError{Tool: "primer3_core", Diagnostic: msg}
		if prev, ok := runErr.(*EngineError); ok {
			ee.ExitCode = prev.ExitCode
		}
		return out, ee
	}
	if runErr != nil {
		return nil, runErr
	}
	if out == nil {
		out = boulder.NewRecord()
	}
	return out, nil
}

func (d *SubprocessDesigner) transcribe(in, out, errb []byte) {
	if d.InputLog == nil && d.OutputLog == nil && d.ErrorLog == nil {
		return
	}
	d.logMu.Lock()
	defer d.logMu.Unlock()
	if d.InputLog != nil {
		_, _ = d.InputLog.Write(in)
	}
	if d.OutputLog != nil && len(out) > 0 {
		_, _ = d.OutputLog.Write(out)
	}
	if d.ErrorLog != nil && len(errb) > 0 {
		_, _ = d.ErrorLog.Write(errb)
	}
}
