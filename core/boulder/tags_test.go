package boulder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTags(t *testing.T) {
	tt := DefaultTags()
	assert.Equal(t, ClassInterval, tt.Class("SEQUENCE_TARGET"))
	assert.Equal(t, ClassSizeRange, tt.Class("PRIMER_PRODUCT_SIZE_RANGE"))
	assert.Equal(t, ClassQuad, tt.Class("SEQUENCE_PRIMER_PAIR_OK_REGION_LIST"))
	assert.Equal(t, ClassPath, tt.Class("PRIMER_THERMODYNAMIC_PARAMETERS_PATH"))
	assert.Equal(t, ClassScalar, tt.Class("SEQUENCE_ID"))
	assert.Equal(t, []string{"SEQUENCE_EXCLUDED_REGION", "SEQUENCE_INTERNAL_EXCLUDED_REGION"}, tt.RepeatableKeys())
	require.NoError(t, tt.Validate())

	// Each call is a fresh copy.
	tt.Set("SEQUENCE_TARGET", ClassScalar)
	assert.Equal(t, ClassInterval, DefaultTags().Class("SEQUENCE_TARGET"))
}

func TestTagTableValidate(t *testing.T) {
	tt := NewTagTable("test")
	tt.Set("bad-name", ClassInterval)
	assert.Error(t, tt.Validate())

	tt = NewTagTable("test")
	tt.Set("P", ClassPath)
	tt.SetRepeatable("P", true)
	assert.Error(t, tt.Validate())
}

func TestParseClass(t *testing.T) {
	for _, c := range []Class{ClassScalar, ClassInterval, ClassSizeRange, ClassQuad, ClassPath} {
		got, err := ParseClass(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseClass("triple")
	assert.Error(t, err)
}

func TestNilTagTable(t *testing.T) {
	var tt *TagTable
	assert.Equal(t, ClassScalar, tt.Class("SEQUENCE_TARGET"))
	assert.False(t, tt.Repeatable("SEQUENCE_EXCLUDED_REGION"))
}
