package boulder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendDoesNotLeakIntoClone(t *testing.T) {
	orig := NewRecord()
	orig.Append("SEQUENCE_EXCLUDED_REGION", PairOf(1, 2))
	orig.Append("SEQUENCE_EXCLUDED_REGION", PairOf(3, 4))
	orig.Append("SEQUENCE_EXCLUDED_REGION", PairOf(9, 9)) // leaves spare capacity
	clone := orig.Clone()

	orig.Append("SEQUENCE_EXCLUDED_REGION", PairOf(5, 6))
	clone.Append("SEQUENCE_EXCLUDED_REGION", PairOf(7, 8))

	v, _ := orig.Get("SEQUENCE_EXCLUDED_REGION")
	assert.True(t, v.Equal(Repeat(PairOf(1, 2), PairOf(3, 4), PairOf(9, 9), PairOf(5, 6))), "%s", v)
	v, _ = clone.Get("SEQUENCE_EXCLUDED_REGION")
	assert.True(t, v.Equal(Repeat(PairOf(1, 2), PairOf(3, 4), PairOf(9, 9), PairOf(7, 8))), "%s", v)
}

func TestRecordOf(t *testing.T) {
	rec := RecordOf("SEQUENCE_ID", "x", "PRIMER_OPT_SIZE", 20, "SEQUENCE_TARGET", [][]int{{5, 10}})
	require.Equal(t, []string{"SEQUENCE_ID", "PRIMER_OPT_SIZE", "SEQUENCE_TARGET"}, rec.Keys())
	v, _ := rec.Get("PRIMER_OPT_SIZE")
	assert.True(t, v.Equal(Int(20)))

	assert.Panics(t, func() { RecordOf("SEQUENCE_ID") })
	assert.Panics(t, func() { RecordOf(1, "x") })
	assert.Panics(t, func() { RecordOf("SEQUENCE_TARGET", [][]int{{1, 2, 3}}) })
	assert.Panics(t, func() { RecordOf("P3_COMMENT", struct{}{}) })
}
