package boulder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is an insertion-ordered mapping of tag to Value. The zero Record
// is ready to use. Records are not safe for concurrent mutation.
type Record struct {
	keys []string
	vals map[string]Value
}

func NewRecord() *Record { return &Record{vals: map[string]Value{}} }

// RecordOf builds a record from alternating key, value arguments. It is
// meant for literals and panics on an odd argument count, a non-string key
// or a value FromNative rejects; use FromNative and Set for untrusted data.
func RecordOf(kv ...any) *Record {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("boulder.RecordOf: odd argument count %d", len(kv)))
	}
	r := NewRecord()
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("boulder.RecordOf: key %d is %T, not string", i/2, kv[i]))
		}
		v, err := FromNative(kv[i+1])
		if err != nil {
			panic(fmt.Sprintf("boulder.RecordOf: %s: %v", k, err))
		}
		r.Set(k, v)
	}
	return r
}

// Set stores v under key. An existing key keeps its position.
func (r *Record) Set(key string, v Value) {
	if r.vals == nil {
		r.vals = map[string]Value{}
	}
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
}

// Append adds v to the Repeated value under key, creating it if needed.
func (r *Record) Append(key string, v Value) {
	cur, ok := r.Get(key)
	if !ok || cur.kind != KindRepeated {
		r.Set(key, Repeat(v))
		return
	}
	// copy so clones never share a backing array
	cur.vals = append(append(make([]Value, 0, len(cur.vals)+1), cur.vals...), v)
	r.vals[key] = cur
}

func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.vals[key]
	return v, ok
}

// GetString returns the scalar text under key, or "" if absent.
func (r *Record) GetString(key string) string {
	v, ok := r.Get(key)
	if !ok {
		return ""
	}
	switch v.kind {
	case KindScalar:
		return v.str
	case KindInt:
		return strconv.Itoa(v.num)
	case KindFloat:
		return formatFloat(v.flt)
	}
	return ""
}

func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

func (r *Record) Delete(key string) {
	if _, ok := r.vals[key]; !ok {
		return
	}
	delete(r.vals, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// Range calls fn in insertion order until fn returns false.
func (r *Record) Range(fn func(key string, v Value) bool) {
	if r == nil {
		return
	}
	for _, k := range r.keys {
		if !fn(k, r.vals[k]) {
			return
		}
	}
}

func (r *Record) Clone() *Record {
	out := NewRecord()
	r.Range(func(k string, v Value) bool {
		out.Set(k, v)
		return true
	})
	return out
}

// Merge overlays other onto r: shared keys take other's value in place,
// new keys are appended in other's order.
func (r *Record) Merge(other *Record) {
	other.Range(func(k string, v Value) bool {
		r.Set(k, v)
		return true
	})
}

// WithPrefix returns the entries whose key starts with prefix.
func (r *Record) WithPrefix(prefix string) *Record {
	out := NewRecord()
	r.Range(func(k string, v Value) bool {
		if strings.HasPrefix(k, prefix) {
			out.Set(k, v)
		}
		return true
	})
	return out
}

// Equal compares keys, order and values.
func (r *Record) Equal(o *Record) bool {
	if r.Len() != o.Len() {
		return false
	}
	if r.Len() == 0 {
		return true
	}
	for i, k := range r.keys {
		if o.keys[i] != k || !r.vals[k].Equal(o.vals[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON writes an object with keys in record order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range r.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := json.Marshal(r.vals[k])
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
