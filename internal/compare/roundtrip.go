package compare

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"p3io/core/boulder"
)

// LineDiff is a key whose rendered values changed in a round trip.
type LineDiff struct {
	Record int
	Key    string
	Before []string
	After  []string
}

// RoundTrip parses a boulder stream, unwraps every record, formats it again
// and reports the keys whose values changed. Values are compared after
// trimming whitespace, and numbers by value, so "60.00" and "60.0" match.
// Line order within a record is not significant.
func RoundTrip(c *boulder.Codec, data []byte) ([]LineDiff, error) {
	recs, err := c.ParseMulti(data)
	if err != nil {
		return nil, err
	}
	var out []LineDiff
	for i, raw := range recs {
		formatted, err := c.Format(c.UnwrapRecord(raw))
		if err != nil {
			return out, errors.Wrapf(err, "record %d", i+1)
		}
		again, err := c.Parse(formatted)
		if err != nil {
			return out, errors.Wrapf(err, "record %d", i+1)
		}
		before, after := lines(raw), lines(again)
		keys := make([]string, 0, len(before))
		for k := range before {
			keys = append(keys, k)
		}
		for k := range after {
			if _, ok := before[k]; !ok {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !sameLines(before[k], after[k]) {
				out = append(out, LineDiff{Record: i, Key: k, Before: before[k], After: after[k]})
			}
		}
	}
	return out, nil
}

// lines collects the raw text of every line per key.
func lines(rec *boulder.Record) map[string][]string {
	m := make(map[string][]string, rec.Len())
	rec.Range(func(k string, v boulder.Value) bool {
		els := []boulder.Value{v}
		if v.Kind() == boulder.KindRepeated {
			els = v.Values()
		}
		for _, el := range els {
			s, _ := el.AsString()
			m[k] = append(m[k], s)
		}
		return true
	})
	return m
}

func sameLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameText(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameText(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == b {
		return true
	}
	x, errA := strconv.ParseFloat(a, 64)
	y, errB := strconv.ParseFloat(b, 64)
	return errA == nil && errB == nil && x == y
}
