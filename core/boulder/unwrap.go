package boulder

import (
	"strconv"
	"strings"
)

// parseStep is one attempt of the unwrap cascade. Order matters: ints
// before floats, space before dash before comma, single tuples before
// grouped tuples.
type parseStep struct {
	name  string
	parse func(string) (Value, bool)
}

var unwrapSteps = []parseStep{
	{"int", parseIntLit},
	{"float", parseFloatLit},
	{"space-ints", parseSpaceInts},
	{"dash-ints", func(s string) (Value, bool) { return parseSepInts(s, "-") }},
	{"comma-ints", func(s string) (Value, bool) { return parseSepInts(s, ",") }},
	{"dash-pairs", parseDashPairs},
	{"space-groups", func(s string) (Value, bool) { return parseGroups(strings.Fields(s)) }},
	{"semicolon-groups", parseSemicolonGroups},
}

// Unwrap guesses the native type of a boulder value. The wire format
// carries no type tags, so a value no step accepts is returned as a
// scalar; this never fails. The key is accepted for symmetry with Wrap.
func (c *Codec) Unwrap(_ string, raw string) Value {
	for _, st := range unwrapSteps {
		if v, ok := st.parse(raw); ok {
			return v
		}
	}
	return Str(raw)
}

func parseIntLit(s string) (Value, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Value{}, false
	}
	return Int(n), true
}

func parseFloatLit(s string) (Value, bool) {
	t := strings.TrimSpace(s)
	if !strings.Contains(t, ".") {
		return Value{}, false
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return Value{}, false
	}
	return Float(f), true
}

func parseSpaceInts(s string) (Value, bool) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return Value{}, false
	}
	xs, ok := atois(fields, false)
	if !ok {
		return Value{}, false
	}
	return Ints(xs...), true
}

func parseSepInts(s, sep string) (Value, bool) {
	parts := strings.Split(strings.TrimSpace(s), sep)
	if len(parts) < 2 {
		return Value{}, false
	}
	xs, ok := atois(parts, false)
	if !ok {
		return Value{}, false
	}
	return tupleValue(xs), true
}

func parseDashPairs(s string) (Value, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Value{}, false
	}
	ps := make([]Pair, len(fields))
	for i, f := range fields {
		xs, ok := atois(strings.Split(f, "-"), false)
		if !ok || len(xs) != 2 {
			return Value{}, false
		}
		ps[i] = Pair{xs[0], xs[1]}
	}
	if len(ps) == 1 {
		return PairOf(ps[0][0], ps[0][1]), true
	}
	return Pairs(ps...), true
}

func parseSemicolonGroups(s string) (Value, bool) {
	groups := strings.Split(s, ";")
	for i := range groups {
		groups[i] = strings.TrimSpace(groups[i])
	}
	return parseGroups(groups)
}

// parseGroups reads comma-separated groups where an empty field means
// Unset. All groups must have 2 or all must have 4 fields.
func parseGroups(groups []string) (Value, bool) {
	if len(groups) == 0 {
		return Value{}, false
	}
	rows := make([][]int, len(groups))
	for i, g := range groups {
		xs, ok := atois(strings.Split(g, ","), true)
		if !ok {
			return Value{}, false
		}
		if len(xs) != 2 && len(xs) != 4 {
			return Value{}, false
		}
		if i > 0 && len(xs) != len(rows[0]) {
			return Value{}, false
		}
		rows[i] = xs
	}
	if len(rows) == 1 {
		return tupleValue(rows[0]), true
	}
	v, err := nestedInts(rows)
	if err != nil {
		return Value{}, false
	}
	return v, true
}

func tupleValue(xs []int) Value {
	switch len(xs) {
	case 2:
		return PairOf(xs[0], xs[1])
	case 4:
		return QuadOf(xs[0], xs[1], xs[2], xs[3])
	}
	return Ints(xs...)
}

func atois(parts []string, blankUnset bool) ([]int, bool) {
	out := make([]int, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" && blankUnset {
			out[i] = Unset
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}
