package boulder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PathResolver turns the value of a path-class tag into a path the engine
// can open.
type PathResolver interface {
	ResolvePath(key, value string) (string, error)
}

// Codec converts between Values and boulder text using a tag table and an
// optional path resolver. A Codec is immutable after construction and safe
// for concurrent use.
type Codec struct {
	Tags  *TagTable
	Paths PathResolver
}

// NewCodec returns a Codec; a nil table means DefaultTags.
func NewCodec(tags *TagTable, paths PathResolver) *Codec {
	if tags == nil {
		tags = DefaultTags()
	}
	return &Codec{Tags: tags, Paths: paths}
}

// FormatError reports a value that cannot be rendered for its key.
type FormatError struct {
	Key   string
	Value Value
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("boulder: cannot format %s=%s (%s): %v", e.Key, e.Value, e.Value.Kind(), e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
func (e *FormatError) Cause() error  { return e.Err }

var (
	errRepeated  = errors.New("repeated values are expanded by Format, not Wrap")
	errLineBreak = errors.New("value contains a line break")
)

// Wrap renders one value in its boulder form for key.
func (c *Codec) Wrap(key string, v Value) (string, error) {
	s, err := c.wrap(key, v)
	if err == nil && strings.ContainsAny(s, "\r\n") {
		err = errLineBreak
	}
	if err != nil {
		return "", &FormatError{Key: key, Value: v, Err: err}
	}
	return s, nil
}

func (c *Codec) wrap(key string, v Value) (string, error) {
	class := c.Tags.Class(key)
	switch v.kind {
	case KindScalar:
		if class == ClassPath && c.Paths != nil {
			return c.Paths.ResolvePath(key, v.str)
		}
		return v.str, nil
	case KindInt:
		return strconv.Itoa(v.num), nil
	case KindFloat:
		return formatFloat(v.flt), nil
	case KindRepeated:
		return "", errRepeated
	}

	if v.Len() == 0 {
		return "", nil
	}
	switch class {
	case ClassQuad:
		return wrapQuads(v)
	case ClassInterval:
		return wrapPairs(v, ",")
	case ClassSizeRange:
		return wrapPairs(v, "-")
	}

	switch v.kind {
	case KindPair, KindQuad, KindIntList:
		return joinInts(v.ints, " ", false), nil
	case KindPairList:
		return joinPairs(v.pairs, "-"), nil
	}
	return "", errors.Errorf("%s needs a quad-class key", v.kind)
}

func wrapQuads(v Value) (string, error) {
	switch v.kind {
	case KindQuad:
		return joinInts(v.ints, ",", true), nil
	case KindIntList:
		if len(v.ints) != 4 {
			return "", errors.Errorf("quadruple needs 4 values, got %d", len(v.ints))
		}
		return joinInts(v.ints, ",", true), nil
	case KindQuadList:
		parts := make([]string, len(v.quads))
		for i, q := range v.quads {
			parts[i] = joinInts(q[:], ",", true)
		}
		return strings.Join(parts, " ; "), nil
	}
	return "", errors.Errorf("quadruple list cannot hold a %s", v.kind)
}

func wrapPairs(v Value, sep string) (string, error) {
	switch v.kind {
	case KindPair:
		return joinInts(v.ints, sep, false), nil
	case KindIntList:
		if len(v.ints) != 2 {
			return "", errors.Errorf("pair needs 2 values, got %d", len(v.ints))
		}
		return joinInts(v.ints, sep, false), nil
	case KindPairList:
		return joinPairs(v.pairs, sep), nil
	}
	return "", errors.Errorf("pair list cannot hold a %s", v.kind)
}

func joinInts(xs []int, sep string, blankUnset bool) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		if blankUnset && x == Unset {
			continue
		}
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, sep)
}

func joinPairs(ps []Pair, sep string) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = strconv.Itoa(p[0]) + sep + strconv.Itoa(p[1])
	}
	return strings.Join(parts, " ")
}
