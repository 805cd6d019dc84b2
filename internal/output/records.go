// internal/output/records.go
package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"p3io/core/boulder"
	"p3io/internal/jsonutil"
)

// WriteBoulder writes one record in boulder form.
func WriteBoulder(w io.Writer, c *boulder.Codec, rec *boulder.Record) error {
	b, err := c.Format(rec)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteJSON writes a single JSON array of records (pretty-indented).
func WriteJSON(w io.Writer, recs []*boulder.Record) error {
	if recs == nil {
		recs = []*boulder.Record{}
	}
	return jsonutil.EncodePretty(w, recs)
}

// RecordNode renders rec as an ordered YAML mapping.
func RecordNode(rec *boulder.Record) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var err error
	rec.Range(func(k string, v boulder.Value) bool {
		var vn *yaml.Node
		if vn, err = valueNode(v); err != nil {
			return false
		}
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, vn)
		return true
	})
	return m, err
}

func valueNode(v boulder.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case boulder.KindFloat:
		// keep the decimal point so the value reads back as a float
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: v.String()}, nil
	case boulder.KindRepeated:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, el := range v.Values() {
			n, err := valueNode(el)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(v.Native()); err != nil {
		return nil, err
	}
	if n.Kind == yaml.SequenceNode {
		n.Style = yaml.FlowStyle
	}
	return n, nil
}

// WriteYAML writes each record as one document of a YAML stream.
func WriteYAML(w io.Writer, recs []*boulder.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, rec := range recs {
		n, err := RecordNode(rec)
		if err != nil {
			return err
		}
		if err := enc.Encode(n); err != nil {
			return err
		}
	}
	return enc.Close()
}
