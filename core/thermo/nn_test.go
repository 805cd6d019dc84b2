package thermo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplexInputValidation(t *testing.T) {
	for name, tc := range map[string]struct {
		seq    string
		ct, na float64
	}{
		"too short":  {"A", 5e-7, 0.05},
		"zero CT":    {"ACGT", 0, 0.05},
		"zero salt":  {"ACGT", 5e-7, 0},
		"ambiguity":  {"ACGN", 5e-7, 0.05},
		"whitespace": {"  ", 5e-7, 0.05},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Duplex(tc.seq, tc.ct, tc.na)
			assert.Error(t, err)
		})
	}
}

func TestDuplexSumsStacks(t *testing.T) {
	// AC is read as GT on the other strand; both ends are A/T.
	r, err := Duplex("AC", 5e-7, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.2-8.4+2*2.2, r.DH, 1e-9)
	assert.InDelta(t, -5.7-22.4+2*6.9, r.DS, 1e-9)
	// ln(1 M) is zero, so no salt correction applies.
	assert.InDelta(t, r.DS, r.DSSalt, 1e-12)
}

func TestDuplexStrandSymmetry(t *testing.T) {
	a, err := Duplex("AAAAAAAAAA", 5e-7, 0.05)
	require.NoError(t, err)
	b, err := Duplex("TTTTTTTTTT", 5e-7, 0.05)
	require.NoError(t, err)
	assert.InDelta(t, a.TmC, b.TmC, 1e-9)

	fwd, err := Duplex("CATGCTTACTGGAAGAGAGG", 5e-7, 0.05)
	require.NoError(t, err)
	rev, err := Duplex("CCTCTCTTCCAGTAAGCATG", 5e-7, 0.05)
	require.NoError(t, err)
	assert.InDelta(t, fwd.TmC, rev.TmC, 1e-9)
}

func TestDuplexSelfComplementary(t *testing.T) {
	r, err := Duplex("ACGTACGT", 5e-7, 0.05)
	require.NoError(t, err)
	// symmetry penalty and CT/1 instead of CT/4
	want := r.DH*1000/(r.DSSalt+R*math.Log(5e-7)) - 273.15
	assert.InDelta(t, want, r.TmC, 1e-9)
	assert.InDelta(t, 21.0, r.TmC, 0.5)
}

func TestDuplexTrends(t *testing.T) {
	base, err := Duplex("GTAAAACGACGGCCAGT", 5e-7, 0.05)
	require.NoError(t, err)

	salty, err := Duplex("GTAAAACGACGGCCAGT", 5e-7, 0.5)
	require.NoError(t, err)
	assert.Greater(t, salty.TmC, base.TmC)

	conc, err := Duplex("GTAAAACGACGGCCAGT", 5e-5, 0.05)
	require.NoError(t, err)
	assert.Greater(t, conc.TmC, base.TmC)

	gc, err := Duplex("GCGCGGCCGCGGCGCCGC", 5e-7, 0.05)
	require.NoError(t, err)
	at, err := Duplex("ATATTAATATTATAATAT", 5e-7, 0.05)
	require.NoError(t, err)
	assert.Greater(t, gc.TmC, at.TmC)
}

func TestDuplexLowercase(t *testing.T) {
	up, err := Duplex("CATGCTTACTGG", 5e-7, 0.05)
	require.NoError(t, err)
	lo, err := Duplex("catgcttactgg", 5e-7, 0.05)
	require.NoError(t, err)
	assert.Equal(t, up, lo)
}
