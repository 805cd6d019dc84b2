package args

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConditions(t *testing.T) {
	c := DefaultConditions()
	require.NoError(t, c.Validate())
	assert.Equal(t, 50.0, c.MonovalentMM)
	assert.Equal(t, 1.5, c.DivalentMM)
	assert.Equal(t, 0.6, c.DNTPmM)
	assert.Equal(t, 50.0, c.DNAnM)
	assert.Equal(t, 37.0, c.TempC)
	assert.Equal(t, 30, c.MaxLoop)
	assert.Equal(t, 60, c.MaxNNLength)

	tm, err := c.TmMethodCode()
	require.NoError(t, err)
	assert.Equal(t, 1, tm)
	salt, err := c.SaltMethodCode()
	require.NoError(t, err)
	assert.Equal(t, 1, salt)
}

func TestConditionsUnknownMethod(t *testing.T) {
	c := DefaultConditions()
	c.SaltMethod = "OWCZARZY"
	n, err := c.SaltMethodCode()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	c.TmMethod = "wallace"
	err = c.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMethod))
	assert.Contains(t, err.Error(), "breslauer, santalucia")
}

func TestConditionsValidateRanges(t *testing.T) {
	c := DefaultConditions()
	c.MaxLoop = 31
	assert.Error(t, c.Validate())

	c = DefaultConditions()
	c.DNAnM = 0
	assert.Error(t, c.Validate())

	c = DefaultConditions()
	c.MonovalentMM = -1
	assert.Error(t, c.Validate())
}

// Callers own their conditions; changing one copy leaves others alone.
func TestConditionsAreValues(t *testing.T) {
	a := DefaultConditions()
	b := a
	b.MonovalentMM = 200
	assert.Equal(t, 50.0, a.MonovalentMM)
	assert.Equal(t, 200.0, b.Solution().MonovalentMM)
}
