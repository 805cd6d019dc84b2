package thermocli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p3io/internal/args"
)

func TestParseArgsDefaults(t *testing.T) {
	o, err := ParseArgs(NewFlagSet("x"), []string{"tm", "ACGTACGTACGT"})
	require.NoError(t, err)
	assert.Equal(t, CalcTm, o.Calc)
	assert.Equal(t, EngineSubprocess, o.Engine)
	assert.Equal(t, args.DefaultConditions(), o.Cond)
	assert.Equal(t, []string{"ACGTACGTACGT"}, o.Seqs)
}

func TestParseArgsConditionFlags(t *testing.T) {
	o, err := ParseArgs(NewFlagSet("x"), []string{
		"hairpin", "--mv", "0.1M", "--dna", "0.25uM", "--dv=3", "--structure", "--tm-method", "breslauer", "ACGT",
	})
	require.NoError(t, err)
	assert.InDelta(t, 100, o.Cond.MonovalentMM, 1e-9)
	assert.InDelta(t, 250, o.Cond.DNAnM, 1e-9)
	assert.InDelta(t, 3, o.Cond.DivalentMM, 1e-9)
	assert.True(t, o.Cond.OutputStructure)
	assert.Equal(t, "breslauer", o.Cond.TmMethod)
}

func TestParseArgsConditionsFileWithOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cond.yaml")
	require.NoError(t, os.WriteFile(p, []byte("mv_conc: 20\ndv_conc: 4\n"), 0o644))
	o, err := ParseArgs(NewFlagSet("x"), []string{"tm", "--conditions", p, "--dv", "2", "ACGT"})
	require.NoError(t, err)
	assert.InDelta(t, 20, o.Cond.MonovalentMM, 1e-9) // from file
	assert.InDelta(t, 2, o.Cond.DivalentMM, 1e-9)    // flag wins
	assert.InDelta(t, 50, o.Cond.DNAnM, 1e-9)        // default
}

func TestParseArgsErrors(t *testing.T) {
	for _, argv := range [][]string{
		{},
		{"melt", "ACGT"},
		{"tm"},
		{"heterodimer", "ACGT"},
		{"hairpin", "--engine", "builtin", "ACGT"},
		{"tm", "--engine", "gpu", "ACGT"},
		{"tm", "--tm-method", "nope", "ACGT"},
		{"tm", "-o", "yaml", "ACGT"},
	} {
		_, err := ParseArgs(NewFlagSet("x"), argv)
		assert.Error(t, err, "%v", argv)
	}
}
