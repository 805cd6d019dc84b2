// core/boulder/value.go
package boulder

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindScalar Kind = iota
	KindInt
	KindFloat
	KindPair
	KindQuad
	KindIntList
	KindPairList
	KindQuadList
	KindRepeated
)

var kindNames = [...]string{
	KindScalar:   "scalar",
	KindInt:      "int",
	KindFloat:    "float",
	KindPair:     "pair",
	KindQuad:     "quad",
	KindIntList:  "int-list",
	KindPairList: "pair-list",
	KindQuadList: "quad-list",
	KindRepeated: "repeated",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Unset marks an unspecified slot in interval and quadruple tuples. It is
// written as an empty field on the wire.
const Unset = -1

// Pair is an interval (start,length) or a size range (min-max).
type Pair [2]int

// Quad is one entry of a paired ok-region list: left start, left length,
// right start, right length.
type Quad [4]int

// Value is one argument or result value. The zero Value is the empty scalar.
type Value struct {
	kind  Kind
	str   string
	num   int
	flt   float64
	ints  []int
	pairs []Pair
	quads []Quad
	vals  []Value
}

func Str(s string) Value       { return Value{kind: KindScalar, str: s} }
func Int(i int) Value          { return Value{kind: KindInt, num: i} }
func Float(f float64) Value    { return Value{kind: KindFloat, flt: f} }
func PairOf(a, b int) Value    { return Value{kind: KindPair, ints: []int{a, b}} }
func QuadOf(a, b, c, d int) Value {
	return Value{kind: KindQuad, ints: []int{a, b, c, d}}
}

// Ints builds a plain integer list.
func Ints(xs ...int) Value {
	return Value{kind: KindIntList, ints: append([]int(nil), xs...)}
}

// Pairs builds a list of intervals or size ranges.
func Pairs(ps ...Pair) Value {
	return Value{kind: KindPairList, pairs: append([]Pair(nil), ps...)}
}

// Quads builds a quadruple list.
func Quads(qs ...Quad) Value {
	return Value{kind: KindQuadList, quads: append([]Quad(nil), qs...)}
}

// Repeat holds the successive values of a repeatable key in line order.
func Repeat(vs ...Value) Value {
	return Value{kind: KindRepeated, vals: append([]Value(nil), vs...)}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool) { return v.str, v.kind == KindScalar }
func (v Value) AsInt() (int, bool)       { return v.num, v.kind == KindInt }

// AsFloat accepts Int values as well, since the engine prints integral
// floats without a decimal point in a few fields.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.flt, true
	case KindInt:
		return float64(v.num), true
	}
	return 0, false
}

func (v Value) AsPair() (Pair, bool) {
	if v.kind != KindPair {
		return Pair{}, false
	}
	return Pair{v.ints[0], v.ints[1]}, true
}

func (v Value) AsQuad() (Quad, bool) {
	if v.kind != KindQuad {
		return Quad{}, false
	}
	return Quad{v.ints[0], v.ints[1], v.ints[2], v.ints[3]}, true
}

func (v Value) AsInts() ([]int, bool) {
	return append([]int(nil), v.ints...), v.kind == KindIntList
}

func (v Value) AsPairs() ([]Pair, bool) {
	return append([]Pair(nil), v.pairs...), v.kind == KindPairList
}

func (v Value) AsQuads() ([]Quad, bool) {
	return append([]Quad(nil), v.quads...), v.kind == KindQuadList
}

// Values returns the elements of a Repeated value.
func (v Value) Values() []Value {
	if v.kind != KindRepeated {
		return nil
	}
	return append([]Value(nil), v.vals...)
}

// IsSeq reports whether v is one of the sequence variants.
func (v Value) IsSeq() bool {
	switch v.kind {
	case KindPair, KindQuad, KindIntList, KindPairList, KindQuadList:
		return true
	}
	return false
}

// Len is the element count of a sequence or repeated value, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindPair, KindQuad, KindIntList:
		return len(v.ints)
	case KindPairList:
		return len(v.pairs)
	case KindQuadList:
		return len(v.quads)
	case KindRepeated:
		return len(v.vals)
	}
	return 0
}

// Equal compares kind and contents. Floats compare exactly.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.str == o.str
	case KindInt:
		return v.num == o.num
	case KindFloat:
		return v.flt == o.flt || (math.IsNaN(v.flt) && math.IsNaN(o.flt))
	case KindPair, KindQuad, KindIntList:
		return equalSlices(v.ints, o.ints)
	case KindPairList:
		return equalSlices(v.pairs, o.pairs)
	case KindQuadList:
		return equalSlices(v.quads, o.quads)
	case KindRepeated:
		if len(v.vals) != len(o.vals) {
			return false
		}
		for i := range v.vals {
			if !v.vals[i].Equal(o.vals[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders a debugging form: scalars quoted, tuples in parentheses.
func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return strconv.Quote(v.str)
	case KindInt:
		return strconv.Itoa(v.num)
	case KindFloat:
		return formatFloat(v.flt)
	case KindPair, KindQuad, KindIntList:
		return tuple(v.ints)
	case KindPairList:
		parts := make([]string, len(v.pairs))
		for i, p := range v.pairs {
			parts[i] = tuple(p[:])
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindQuadList:
		parts := make([]string, len(v.quads))
		for i, q := range v.quads {
			parts[i] = tuple(q[:])
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindRepeated:
		parts := make([]string, len(v.vals))
		for i, e := range v.vals {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprintf("<%s>", v.kind)
}

func tuple(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Native returns plain Go values: string, int, float64, []int, [][]int or
// []any for repeated values. Used by the JSON and YAML writers.
func (v Value) Native() any {
	switch v.kind {
	case KindScalar:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	case KindPair, KindQuad, KindIntList:
		return append([]int{}, v.ints...)
	case KindPairList:
		out := make([][]int, len(v.pairs))
		for i, p := range v.pairs {
			out[i] = []int{p[0], p[1]}
		}
		return out
	case KindQuadList:
		out := make([][]int, len(v.quads))
		for i, q := range v.quads {
			out[i] = []int{q[0], q[1], q[2], q[3]}
		}
		return out
	case KindRepeated:
		out := make([]any, len(v.vals))
		for i, e := range v.vals {
			out[i] = e.Native()
		}
		return out
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

// FromNative converts plain Go values into a Value. Lists of ints become
// Ints; lists of 2- or 4-element int lists become Pairs or Quads. A flat
// 2- or 4-element list stays Ints; the formatter decides how to render it
// from the key class.
func FromNative(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		return t, nil
	case string:
		return Str(t), nil
	case bool:
		if t {
			return Int(1), nil
		}
		return Int(0), nil
	case int:
		return Int(t), nil
	case int64:
		return Int(int(t)), nil
	case uint64:
		return Int(int(t)), nil
	case float64:
		return Float(t), nil
	case float32:
		return Float(float64(t)), nil
	case []int:
		return Ints(t...), nil
	case [][]int:
		return nestedInts(t)
	case []any:
		return fromList(t)
	case nil:
		return Str(""), nil
	}
	return Value{}, errors.Errorf("unsupported value type %T", x)
}

func fromList(xs []any) (Value, error) {
	if len(xs) == 0 {
		return Ints(), nil
	}
	if _, nested := xs[0].([]any); !nested {
		ints := make([]int, len(xs))
		for i, x := range xs {
			n, err := toInt(x)
			if err != nil {
				return Value{}, errors.Wrapf(err, "element %d", i)
			}
			ints[i] = n
		}
		return Ints(ints...), nil
	}
	rows := make([][]int, len(xs))
	for i, x := range xs {
		inner, ok := x.([]any)
		if !ok {
			return Value{}, errors.Errorf("element %d: mixed nested and flat list", i)
		}
		row := make([]int, len(inner))
		for j, y := range inner {
			n, err := toInt(y)
			if err != nil {
				return Value{}, errors.Wrapf(err, "element %d.%d", i, j)
			}
			row[j] = n
		}
		rows[i] = row
	}
	return nestedInts(rows)
}

func nestedInts(rows [][]int) (Value, error) {
	if len(rows) == 0 {
		return Pairs(), nil
	}
	switch n := len(rows[0]); n {
	case 2:
		ps := make([]Pair, len(rows))
		for i, r := range rows {
			if len(r) != 2 {
				return Value{}, errors.Errorf("element %d has %d values, want 2", i, len(r))
			}
			ps[i] = Pair{r[0], r[1]}
		}
		return Pairs(ps...), nil
	case 4:
		qs := make([]Quad, len(rows))
		for i, r := range rows {
			if len(r) != 4 {
				return Value{}, errors.Errorf("element %d has %d values, want 4", i, len(r))
			}
			qs[i] = Quad{r[0], r[1], r[2], r[3]}
		}
		return Quads(qs...), nil
	default:
		return Value{}, errors.Errorf("nested elements must have 2 or 4 values, got %d", n)
	}
}

func toInt(x any) (int, error) {
	switch t := x.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case uint64:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, errors.Errorf("%v is not an integer", t)
		}
		return int(t), nil
	case nil:
		return Unset, nil
	}
	return 0, errors.Errorf("%v (%T) is not an integer", x, x)
}

// formatFloat keeps a decimal point so the value reads back as a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
