// internal/args/accumulate.go
package args

import (
	"strings"

	"p3io/core/boulder"
)

// Key prefixes used by primer3 to tell argument groups apart.
const (
	GlobalPrefix   = "PRIMER_"
	SequencePrefix = "SEQUENCE_"
	FilePrefix     = "P3_"
)

// Split partitions rec by key prefix. Keys with none of the known
// prefixes go with the globals.
func Split(rec *boulder.Record) (global, seq, p3 *boulder.Record) {
	global, seq, p3 = boulder.NewRecord(), boulder.NewRecord(), boulder.NewRecord()
	rec.Range(func(k string, v boulder.Value) bool {
		switch {
		case strings.HasPrefix(k, SequencePrefix):
			seq.Set(k, v)
		case strings.HasPrefix(k, FilePrefix):
			p3.Set(k, v)
		default:
			global.Set(k, v)
		}
		return true
	})
	return global, seq, p3
}

// Accumulator holds global arguments between design calls. Build with
// reset=true starts from an empty set; reset=false extends what earlier
// calls left behind. The zero value is ready to use. Not safe for
// concurrent use; give each goroutine its own.
type Accumulator struct {
	global *boulder.Record
}

// Build merges global then seq (seq wins) into a fresh record. global may
// be nil when the caller relies on globals from earlier calls.
func (a *Accumulator) Build(global, seq *boulder.Record, reset bool) *boulder.Record {
	if reset || a.global == nil {
		a.global = boulder.NewRecord()
	}
	a.global.Merge(global)
	out := a.global.Clone()
	out.Merge(seq)
	return out
}

// Globals returns a copy of the accumulated globals.
func (a *Accumulator) Globals() *boulder.Record {
	if a.global == nil {
		return boulder.NewRecord()
	}
	return a.global.Clone()
}

func (a *Accumulator) Reset() { a.global = nil }

// Feed handles one record of a primer3 input stream: PRIMER_ keys persist
// into later records, SEQUENCE_ keys apply to this record only.
func (a *Accumulator) Feed(rec *boulder.Record) *boulder.Record {
	g, s, p3 := Split(rec)
	out := a.Build(g, s, false)
	out.Merge(p3)
	return out
}
