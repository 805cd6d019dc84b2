// internal/args/load.go
package args

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"p3io/core/boulder"
	"p3io/internal/inputs"
)

// Format names an argument file syntax.
type Format string

const (
	FormatBoulder Format = "boulder"
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json" // JSON with comments and trailing commas
)

// FormatFromPath picks the syntax from the file extension, looking past a
// compression suffix; unknown extensions are read as boulder.
func FormatFromPath(path string) Format {
	p := strings.ToLower(path)
	for _, z := range []string{".gz", ".zst", ".lz4"} {
		p = strings.TrimSuffix(p, z)
	}
	switch filepath.Ext(p) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json", ".jsonc":
		return FormatJSON
	}
	return FormatBoulder
}

// LoadFile reads one argument record from path ("-" for stdin; gzip, zstd
// and lz4 files are decompressed).
func LoadFile(path string, c *boulder.Codec) (*boulder.Record, error) {
	data, err := inputs.ReadAll(path)
	if err != nil {
		return nil, err
	}
	rec, err := Decode(data, FormatFromPath(path), c)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return rec, nil
}

// Decode parses data in format f. Boulder values stay raw scalars so they
// reach the engine exactly as written; YAML and JSON keep key order and
// scalar types.
func Decode(data []byte, f Format, c *boulder.Codec) (*boulder.Record, error) {
	if c == nil {
		c = boulder.Default
	}
	switch f {
	case FormatBoulder:
		return c.Parse(data)
	case FormatJSON:
		data = jsonc.ToJSON(data)
	case FormatYAML:
	default:
		return nil, errors.Errorf("unknown argument format %q", f)
	}
	root, err := mappingRoot(data)
	if err != nil || root == nil {
		return boulder.NewRecord(), err
	}
	return recordFromNode(root)
}

func mappingRoot(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing arguments")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: arguments must be a mapping of tag to value", root.Line)
	}
	return root, nil
}

func recordFromNode(root *yaml.Node) (*boulder.Record, error) {
	rec := boulder.NewRecord()
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, vn := root.Content[i].Value, root.Content[i+1]
		v, err := nodeValue(vn)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: %s", vn.Line, k)
		}
		rec.Set(k, v)
	}
	return rec, nil
}

func nodeValue(n *yaml.Node) (boulder.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int":
			var i int
			if err := n.Decode(&i); err != nil {
				return boulder.Value{}, err
			}
			return boulder.Int(i), nil
		case "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return boulder.Value{}, err
			}
			return boulder.Float(f), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return boulder.Value{}, err
			}
			return boulder.FromNative(b)
		case "!!null":
			return boulder.Str(""), nil
		}
		return boulder.Str(n.Value), nil
	case yaml.SequenceNode:
		var xs []any
		if err := n.Decode(&xs); err != nil {
			return boulder.Value{}, err
		}
		return boulder.FromNative(xs)
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	}
	return boulder.Value{}, errors.New("nested mappings are not supported")
}

// LoadConditions reads a YAML or JSON conditions file over the defaults.
// Unknown keys are an error.
func LoadConditions(path string) (Conditions, error) {
	c := DefaultConditions()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Wrapf(err, "reading %s", path)
	}
	if FormatFromPath(path) == FormatJSON {
		data = jsonc.ToJSON(data)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return c, errors.Wrapf(err, "parsing %s", path)
	}
	return c, c.Validate()
}

type tagFile struct {
	Version    string            `yaml:"version"`
	Base       string            `yaml:"base"`
	Classes    map[string]string `yaml:"classes"`
	Repeatable []string          `yaml:"repeatable"`
}

// LoadTags reads a tag-table extension. base: default (or empty) starts
// from the built-in table, base: none from an empty one.
func LoadTags(path string) (*boulder.TagTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if FormatFromPath(path) == FormatJSON {
		data = jsonc.ToJSON(data)
	}
	var tf tagFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	var t *boulder.TagTable
	switch strings.ToLower(tf.Base) {
	case "", "default":
		t = boulder.DefaultTags()
	case "none":
		t = boulder.NewTagTable("")
	default:
		return nil, errors.Errorf("%s: unknown base table %q", path, tf.Base)
	}
	if tf.Version != "" {
		t.Version = tf.Version
	}
	for k, name := range tf.Classes {
		cl, err := boulder.ParseClass(name)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: %s", path, k)
		}
		t.Set(k, cl)
	}
	for _, k := range tf.Repeatable {
		t.SetRepeatable(k, true)
	}
	if err := t.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return t, nil
}
