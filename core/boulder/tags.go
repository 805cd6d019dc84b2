// core/boulder/tags.go
package boulder

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Class selects the formatting rule applied to a key's value.
type Class uint8

const (
	ClassScalar    Class = iota // passed through
	ClassInterval               // a,b  (start,length)
	ClassSizeRange              // a-b
	ClassQuad                   // a,b,c,d ; e,f,g,h
	ClassPath                   // resolved against the install directory
)

var classNames = map[Class]string{
	ClassScalar:    "scalar",
	ClassInterval:  "interval",
	ClassSizeRange: "size-range",
	ClassQuad:      "quad",
	ClassPath:      "path",
}

func (c Class) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return "class(?)"
}

// ParseClass accepts the names printed by Class.String.
func ParseClass(s string) (Class, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for c, name := range classNames {
		if name == want {
			return c, nil
		}
	}
	return ClassScalar, errors.Errorf("unknown tag class %q", s)
}

// DefaultTagVersion names the engine release the default table was
// checked against.
const DefaultTagVersion = "primer3 2.x"

// TagTable maps engine tags to formatting classes and records which tags
// may repeat within one record. Keys not in the table are scalars.
type TagTable struct {
	Version    string
	classes    map[string]Class
	repeatable map[string]bool
}

func NewTagTable(version string) *TagTable {
	return &TagTable{
		Version:    version,
		classes:    map[string]Class{},
		repeatable: map[string]bool{},
	}
}

// DefaultTags returns a fresh copy of the built-in table.
func DefaultTags() *TagTable {
	t := NewTagTable(DefaultTagVersion)
	for _, k := range []string{
		"SEQUENCE_INCLUDED_REGION",
		"SEQUENCE_TARGET",
		"SEQUENCE_EXCLUDED_REGION",
		"SEQUENCE_INTERNAL_EXCLUDED_REGION",
	} {
		t.Set(k, ClassInterval)
	}
	t.Set("PRIMER_PRODUCT_SIZE_RANGE", ClassSizeRange)
	t.Set("SEQUENCE_PRIMER_PAIR_OK_REGION_LIST", ClassQuad)
	t.Set("PRIMER_THERMODYNAMIC_PARAMETERS_PATH", ClassPath)
	t.SetRepeatable("SEQUENCE_EXCLUDED_REGION", true)
	t.SetRepeatable("SEQUENCE_INTERNAL_EXCLUDED_REGION", true)
	return t
}

func (t *TagTable) Class(key string) Class {
	if t == nil {
		return ClassScalar
	}
	return t.classes[key]
}

func (t *TagTable) Repeatable(key string) bool {
	return t != nil && t.repeatable[key]
}

// Set assigns a class; ClassScalar removes the key from the table.
func (t *TagTable) Set(key string, c Class) {
	if c == ClassScalar {
		delete(t.classes, key)
		return
	}
	t.classes[key] = c
}

func (t *TagTable) SetRepeatable(key string, on bool) {
	if on {
		t.repeatable[key] = true
		return
	}
	delete(t.repeatable, key)
}

func (t *TagTable) Clone() *TagTable {
	out := NewTagTable(t.Version)
	for k, c := range t.classes {
		out.classes[k] = c
	}
	for k := range t.repeatable {
		out.repeatable[k] = true
	}
	return out
}

// Keys lists the tags of class c in sorted order.
func (t *TagTable) Keys(c Class) []string {
	var out []string
	for k, kc := range t.classes {
		if kc == c {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// RepeatableKeys lists the repeatable tags in sorted order.
func (t *TagTable) RepeatableKeys() []string {
	out := make([]string, 0, len(t.repeatable))
	for k := range t.repeatable {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Validate checks tag spelling and that no path tag is marked repeatable.
func (t *TagTable) Validate() error {
	check := func(k string) error {
		if k == "" {
			return errors.New("empty tag name")
		}
		for _, r := range k {
			if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_') {
				return errors.Errorf("tag %q: only A-Z, 0-9 and _ are allowed", k)
			}
		}
		return nil
	}
	for k := range t.classes {
		if err := check(k); err != nil {
			return err
		}
	}
	for k := range t.repeatable {
		if err := check(k); err != nil {
			return err
		}
		if t.classes[k] == ClassPath {
			return errors.Errorf("tag %q: path tags cannot repeat", k)
		}
	}
	return nil
}
