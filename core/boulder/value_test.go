package boulder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromNative(t *testing.T) {
	cases := []struct {
		in   any
		want Value
	}{
		{"ATCG", Str("ATCG")},
		{42, Int(42)},
		{true, Int(1)},
		{60.0, Float(60)},
		{[]int{1, 2, 3}, Ints(1, 2, 3)},
		{[][]int{{5, 7}, {11, 13}}, Pairs(Pair{5, 7}, Pair{11, 13})},
		{[]any{[]any{1, 2, 3, 4}, []any{5, 6, nil, nil}}, Quads(Quad{1, 2, 3, 4}, Quad{5, 6, Unset, Unset})},
		{nil, Str("")},
	}
	for _, c := range cases {
		got, err := FromNative(c.in)
		require.NoError(t, err, "%v", c.in)
		assert.True(t, got.Equal(c.want), "%v: got %s want %s", c.in, got, c.want)
	}

	_, err := FromNative([][]int{{1, 2, 3}})
	assert.Error(t, err)
	_, err = FromNative(struct{}{})
	assert.Error(t, err)
}

func TestValueAccessors(t *testing.T) {
	p, ok := PairOf(36, 342).AsPair()
	require.True(t, ok)
	assert.Equal(t, Pair{36, 342}, p)

	_, ok = Int(3).AsPair()
	assert.False(t, ok)

	f, ok := Int(3).AsFloat()
	require.True(t, ok)
	assert.Equal(t, 3.0, f)

	r := Repeat(PairOf(1, 2), PairOf(3, 4))
	assert.Equal(t, 2, r.Len())
	assert.False(t, r.IsSeq())
	assert.True(t, Ints().IsSeq())
}

func TestValueJSON(t *testing.T) {
	b, err := json.Marshal(Quads(Quad{1, 2, Unset, Unset}))
	require.NoError(t, err)
	assert.JSONEq(t, `[[1,2,-1,-1]]`, string(b))

	rec := RecordOf("B", 1, "A", "x")
	b, err = json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"B":1,"A":"x"}`, string(b))
}
