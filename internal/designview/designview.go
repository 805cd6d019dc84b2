// Package designview reads the primer pairs out of a primer3_core result
// record.
package designview

import (
	"strconv"

	"p3io/core/boulder"
	"p3io/pkg/api"
)

// Oligo is one picked primer or internal oligo.
type Oligo struct {
	Sequence  string
	Start     int // 0-based; for right primers the 3' end, as the engine reports it
	Length    int
	Tm        float64
	GCPercent float64
	Penalty   float64
	SelfAny   float64
	SelfEnd   float64
	Hairpin   float64
	EndStab   float64
}

// Pair is one ranked primer pair.
type Pair struct {
	Rank        int
	Left, Right Oligo
	Internal    *Oligo
	ProductSize int
	Penalty     float64
	ComplAny    float64
	ComplEnd    float64
}

// Design is the typed view of one result record.
type Design struct {
	SequenceID string
	Pairs      []Pair
	Explain    map[string]string
	Warning    string
	Error      string
}

var explainKeys = []string{
	"PRIMER_LEFT_EXPLAIN",
	"PRIMER_RIGHT_EXPLAIN",
	"PRIMER_INTERNAL_EXPLAIN",
	"PRIMER_PAIR_EXPLAIN",
}

// FromRecord builds a Design from an unwrapped result record. seqID comes
// from the input record, since the engine does not echo it.
func FromRecord(seqID string, out *boulder.Record) Design {
	d := Design{
		SequenceID: seqID,
		Warning:    out.GetString("PRIMER_WARNING"),
		Error:      out.GetString("PRIMER_ERROR"),
	}
	for _, k := range explainKeys {
		if s := out.GetString(k); s != "" {
			if d.Explain == nil {
				d.Explain = map[string]string{}
			}
			d.Explain[k] = s
		}
	}
	n := intOf(out, "PRIMER_PAIR_NUM_RETURNED")
	for i := 0; i < n; i++ {
		idx := strconv.Itoa(i)
		p := Pair{
			Rank:        i,
			Left:        oligoAt(out, "PRIMER_LEFT_"+idx),
			Right:       oligoAt(out, "PRIMER_RIGHT_"+idx),
			ProductSize: intOf(out, "PRIMER_PAIR_"+idx+"_PRODUCT_SIZE"),
			Penalty:     floatOf(out, "PRIMER_PAIR_"+idx+"_PENALTY"),
			ComplAny:    floatOf(out, "PRIMER_PAIR_"+idx+"_COMPL_ANY_TH"),
			ComplEnd:    floatOf(out, "PRIMER_PAIR_"+idx+"_COMPL_END_TH"),
		}
		if out.Has("PRIMER_INTERNAL_" + idx + "_SEQUENCE") {
			in := oligoAt(out, "PRIMER_INTERNAL_"+idx)
			p.Internal = &in
		}
		d.Pairs = append(d.Pairs, p)
	}
	return d
}

func oligoAt(rec *boulder.Record, base string) Oligo {
	o := Oligo{
		Sequence:  rec.GetString(base + "_SEQUENCE"),
		Tm:        floatOf(rec, base+"_TM"),
		GCPercent: floatOf(rec, base+"_GC_PERCENT"),
		Penalty:   floatOf(rec, base+"_PENALTY"),
		SelfAny:   floatOf(rec, base+"_SELF_ANY_TH"),
		SelfEnd:   floatOf(rec, base+"_SELF_END_TH"),
		Hairpin:   floatOf(rec, base+"_HAIRPIN_TH"),
		EndStab:   floatOf(rec, base+"_END_STABILITY"),
	}
	if v, ok := rec.Get(base); ok {
		if p, ok := v.AsPair(); ok {
			o.Start, o.Length = p[0], p[1]
		}
	}
	return o
}

func intOf(rec *boulder.Record, key string) int {
	v, _ := rec.Get(key)
	n, _ := v.AsInt()
	return n
}

func floatOf(rec *boulder.Record, key string) float64 {
	v, _ := rec.Get(key)
	f, _ := v.AsFloat()
	return f
}

// ToAPI converts a Design into the public wire type.
func ToAPI(d Design) api.DesignV1 {
	out := api.DesignV1{
		SequenceID: d.SequenceID,
		Pairs:      make([]api.PrimerPairV1, 0, len(d.Pairs)),
		Explain:    d.Explain,
		Warning:    d.Warning,
		Error:      d.Error,
	}
	for _, p := range d.Pairs {
		ap := api.PrimerPairV1{
			Rank:        p.Rank,
			Left:        toAPIOligo(p.Left),
			Right:       toAPIOligo(p.Right),
			ProductSize: p.ProductSize,
			Penalty:     p.Penalty,
			ComplAny:    p.ComplAny,
			ComplEnd:    p.ComplEnd,
		}
		if p.Internal != nil {
			in := toAPIOligo(*p.Internal)
			ap.Internal = &in
		}
		out.Pairs = append(out.Pairs, ap)
	}
	return out
}

func toAPIOligo(o Oligo) api.OligoV1 {
	return api.OligoV1{
		Sequence:  o.Sequence,
		Start:     o.Start,
		Length:    o.Length,
		Tm:        o.Tm,
		GCPercent: o.GCPercent,
		Penalty:   o.Penalty,
		SelfAny:   o.SelfAny,
		SelfEnd:   o.SelfEnd,
		Hairpin:   o.Hairpin,
		EndStab:   o.EndStab,
	}
}
