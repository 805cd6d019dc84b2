// core/boulder/codec.go
package boulder

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Terminator is the line that ends a boulder record.
const Terminator = "="

var errNotUTF8 = errors.New("boulder: input is not valid UTF-8")

// Format serializes rec as KEY=VALUE lines followed by a "=" line.
// Repeatable keys get one line per element. Any value that cannot be
// rendered aborts the whole record.
func (c *Codec) Format(rec *Record) ([]byte, error) {
	var b bytes.Buffer
	var err error
	rec.Range(func(k string, v Value) bool {
		if kerr := checkKey(k); kerr != nil {
			err = &FormatError{Key: k, Value: v, Err: kerr}
			return false
		}
		if c.Tags.Repeatable(k) {
			for _, el := range elements(v) {
				if err = c.writeLine(&b, k, el); err != nil {
					return false
				}
			}
			return true
		}
		err = c.writeLine(&b, k, v)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	b.WriteString(Terminator + "\n")
	return b.Bytes(), nil
}

func (c *Codec) writeLine(b *bytes.Buffer, k string, v Value) error {
	s, err := c.Wrap(k, v)
	if err != nil {
		return err
	}
	b.WriteString(k)
	b.WriteByte('=')
	b.WriteString(s)
	b.WriteByte('\n')
	return nil
}

func checkKey(k string) error {
	switch {
	case k == "":
		return errors.New("empty key")
	case strings.ContainsAny(k, "=\r\n"):
		return errors.New("key contains '=' or a line break")
	}
	return nil
}

// elements splits the value of a repeatable key into its per-line parts.
func elements(v Value) []Value {
	switch v.kind {
	case KindRepeated:
		return v.vals
	case KindPairList:
		out := make([]Value, len(v.pairs))
		for i, p := range v.pairs {
			out[i] = PairOf(p[0], p[1])
		}
		return out
	case KindQuadList:
		out := make([]Value, len(v.quads))
		for i, q := range v.quads {
			out[i] = QuadOf(q[0], q[1], q[2], q[3])
		}
		return out
	}
	return []Value{v}
}

// Parse reads one record. Values are kept as raw scalars, surrounding
// spaces included; UnwrapRecord applies type inference as a separate pass.
// Blank lines, lines without a key and the terminator are skipped.
func (c *Codec) Parse(data []byte) (*Record, error) {
	if !utf8.Valid(data) {
		return nil, errNotUTF8
	}
	return c.parseLines(strings.Split(string(data), "\n")), nil
}

func (c *Codec) parseLines(lines []string) *Record {
	rec := NewRecord()
	for _, line := range lines {
		k, v, ok := splitLine(line)
		if !ok {
			continue
		}
		if c.Tags.Repeatable(k) {
			rec.Append(k, Str(v))
			continue
		}
		rec.Set(k, Str(v))
	}
	return rec
}

// splitLine drops a trailing \r and any indentation before the key; the
// value is kept byte for byte.
func splitLine(line string) (key, val string, ok bool) {
	line = strings.TrimLeft(strings.TrimSuffix(line, "\r"), " \t")
	if line == "" {
		return "", "", false
	}
	key, val, ok = strings.Cut(line, "=")
	if !ok || key == "" {
		return "", "", false
	}
	return key, val, true
}

// ParseMulti splits a stream on lines consisting of "=" (with \n or \r\n
// endings) and parses each non-blank chunk.
func (c *Codec) ParseMulti(data []byte) ([]*Record, error) {
	if !utf8.Valid(data) {
		return nil, errNotUTF8
	}
	var (
		out   []*Record
		chunk []string
	)
	flush := func() {
		if !allBlank(chunk) {
			out = append(out, c.parseLines(chunk))
		}
		chunk = chunk[:0]
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimRight(line, "\r") == Terminator {
			flush()
			continue
		}
		chunk = append(chunk, line)
	}
	flush()
	return out, nil
}

func allBlank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// UnwrapRecord returns a copy of rec with every scalar (and every element
// of a repeated value) passed through Unwrap.
func (c *Codec) UnwrapRecord(rec *Record) *Record {
	out := NewRecord()
	rec.Range(func(k string, v Value) bool {
		out.Set(k, c.unwrapValue(k, v))
		return true
	})
	return out
}

func (c *Codec) unwrapValue(k string, v Value) Value {
	switch v.kind {
	case KindScalar:
		return c.Unwrap(k, v.str)
	case KindRepeated:
		out := make([]Value, len(v.vals))
		for i, e := range v.vals {
			out[i] = c.unwrapValue(k, e)
		}
		return Repeat(out...)
	}
	return v
}

// Reader yields records one at a time from a boulder stream.
type Reader struct {
	c  *Codec
	sc *bufio.Scanner
}

// maxLine bounds a single boulder line; templates can be long.
const maxLine = 64 << 20

func (c *Codec) NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), maxLine)
	return &Reader{c: c, sc: sc}
}

// Next returns the next non-blank record, or io.EOF.
func (r *Reader) Next() (*Record, error) {
	var chunk []string
	for r.sc.Scan() {
		line := r.sc.Text()
		if !utf8.ValidString(line) {
			return nil, errNotUTF8
		}
		if strings.TrimRight(line, "\r") == Terminator {
			if allBlank(chunk) {
				chunk = chunk[:0]
				continue
			}
			return r.c.parseLines(chunk), nil
		}
		chunk = append(chunk, line)
	}
	if err := r.sc.Err(); err != nil {
		return nil, errors.Wrap(err, "boulder: read")
	}
	if !allBlank(chunk) {
		return r.c.parseLines(chunk), nil
	}
	return nil, io.EOF
}

// Default uses DefaultTags and no path resolver.
var Default = NewCodec(nil, nil)

func Wrap(key string, v Value) (string, error) { return Default.Wrap(key, v) }
func Unwrap(key, raw string) Value             { return Default.Unwrap(key, raw) }
func Format(rec *Record) ([]byte, error)       { return Default.Format(rec) }
func Parse(data []byte) (*Record, error)       { return Default.Parse(data) }
func ParseMulti(data []byte) ([]*Record, error) {
	return Default.ParseMulti(data)
}
func UnwrapRecord(rec *Record) *Record { return Default.UnwrapRecord(rec) }
