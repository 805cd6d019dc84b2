package boulder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapTagClasses(t *testing.T) {
	cases := []struct {
		name string
		key  string
		v    Value
		want string
	}{
		{"interval pair", "SEQUENCE_EXCLUDED_REGION", PairOf(5, 7), "5,7"},
		{"interval list", "SEQUENCE_EXCLUDED_REGION", Pairs(Pair{5, 7}, Pair{11, 13}), "5,7 11,13"},
		{"interval flat", "SEQUENCE_TARGET", Ints(10, 20), "10,20"},
		{"size range pair", "PRIMER_PRODUCT_SIZE_RANGE", PairOf(7, 11), "7-11"},
		{"size range list", "PRIMER_PRODUCT_SIZE_RANGE", Pairs(Pair{75, 100}, Pair{100, 125}), "75-100 100-125"},
		{"quad list", "SEQUENCE_PRIMER_PAIR_OK_REGION_LIST", Quads(Quad{1, 2, 3, 4}, Quad{5, 6, Unset, Unset}), "1,2,3,4 ; 5,6,,"},
		{"single quad", "SEQUENCE_PRIMER_PAIR_OK_REGION_LIST", QuadOf(Unset, Unset, 100, 20), ",,100,20"},
		{"plain ints", "SEQUENCE_QUALITY", Ints(40, 40, 30), "40 40 30"},
		{"unclassified pairs", "FOO", Pairs(Pair{1, 2}, Pair{3, 4}), "1-2 3-4"},
		{"unclassified pair", "FOO", PairOf(1, 2), "1 2"},
		{"empty list", "SEQUENCE_TARGET", Ints(), ""},
		{"int", "PRIMER_OPT_SIZE", Int(20), "20"},
		{"float", "PRIMER_OPT_TM", Float(60), "60.0"},
		{"float frac", "PRIMER_MAX_TM", Float(63.5), "63.5"},
		{"scalar", "SEQUENCE_ID", Str("MH1000"), "MH1000"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Wrap(c.key, c.v)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestWrapErrors(t *testing.T) {
	cases := []struct {
		key string
		v   Value
	}{
		{"FOO", Quads(Quad{1, 2, 3, 4})},
		{"SEQUENCE_TARGET", Ints(1, 2, 3)},
		{"SEQUENCE_PRIMER_PAIR_OK_REGION_LIST", Ints(1, 2)},
		{"SEQUENCE_TARGET", Quads(Quad{1, 2, 3, 4})},
		{"SEQUENCE_ID", Str("a\nb")},
		{"SEQUENCE_EXCLUDED_REGION", Repeat(PairOf(1, 2))},
	}
	for _, c := range cases {
		_, err := Wrap(c.key, c.v)
		require.Error(t, err, "%s=%s", c.key, c.v)
		var fe *FormatError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, c.key, fe.Key)
		assert.Contains(t, err.Error(), c.v.Kind().String())
	}
}

type dirResolver struct{ home string }

func (d dirResolver) ResolvePath(_, v string) (string, error) {
	p := filepath.Join(d.home, v)
	if _, err := os.Stat(p); err != nil {
		return "", err
	}
	return p + string(filepath.Separator), nil
}

func TestWrapPathUsesResolver(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(home, "primer3_config"), 0o755))

	c := NewCodec(nil, dirResolver{home: home})
	got, err := c.Wrap("PRIMER_THERMODYNAMIC_PARAMETERS_PATH", Str("primer3_config"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "primer3_config")+string(filepath.Separator), got)

	_, err = c.Wrap("PRIMER_THERMODYNAMIC_PARAMETERS_PATH", Str("missing"))
	assert.Error(t, err)

	// Without a resolver the value passes through.
	got, err = Wrap("PRIMER_THERMODYNAMIC_PARAMETERS_PATH", Str("missing"))
	require.NoError(t, err)
	assert.Equal(t, "missing", got)
}
