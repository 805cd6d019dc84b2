// Package compare checks two design results against each other with a
// relative tolerance, and checks that a boulder stream survives a
// parse/unwrap/format round trip.
package compare

import (
	"math"
	"sort"

	"p3io/core/boulder"
)

// DefaultTolerance is the allowed relative difference between numbers.
const DefaultTolerance = 0.05

// Diff is one key whose values differ.
type Diff struct {
	Key       string
	Ref, Cand boulder.Value
}

// Report is the outcome of Records. Only Disagree makes two results
// disagree; the other lists are informational.
type Report struct {
	Common     int
	OnlyInRef  []string
	OnlyInCand []string
	Disagree   []Diff // numeric, outside tolerance
	Differ     []Diff // any other inequality
}

func (r Report) Agree() bool { return len(r.Disagree) == 0 }

// Records compares cand against ref. ref is the divisor for the relative
// difference, so a zero reference never disagrees. A zero candidate against
// a negative reference is also accepted.
func Records(ref, cand *boulder.Record, tol float64) Report {
	if tol < 0 {
		tol = DefaultTolerance
	}
	var rep Report
	ref.Range(func(k string, rv boulder.Value) bool {
		cv, ok := cand.Get(k)
		if !ok {
			rep.OnlyInRef = append(rep.OnlyInRef, k)
			return true
		}
		rep.Common++
		if rv.Equal(cv) {
			return true
		}
		d := Diff{Key: k, Ref: rv, Cand: cv}
		rn, rok := rv.AsFloat()
		cn, cok := cv.AsFloat()
		if !rok || !cok {
			rep.Differ = append(rep.Differ, d)
			return true
		}
		if rn == 0 || math.Abs((rn-cn)/rn) <= tol || (cn == 0 && rn < 0) {
			rep.Differ = append(rep.Differ, d)
			return true
		}
		rep.Disagree = append(rep.Disagree, d)
		return true
	})
	cand.Range(func(k string, _ boulder.Value) bool {
		if !ref.Has(k) {
			rep.OnlyInCand = append(rep.OnlyInCand, k)
		}
		return true
	})
	sort.Strings(rep.OnlyInRef)
	sort.Strings(rep.OnlyInCand)
	sortDiffs(rep.Disagree)
	sortDiffs(rep.Differ)
	return rep
}

func sortDiffs(ds []Diff) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].Key < ds[j].Key })
}
