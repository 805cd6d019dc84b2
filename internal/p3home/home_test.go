package p3home

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ConfigDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ntthal"), []byte("#!/bin/sh\n"), 0o755))
	return dir
}

func TestLocateFromEnv(t *testing.T) {
	dir := fakeHome(t)
	t.Setenv(EnvVar, dir)
	h, err := Locate("")
	require.NoError(t, err)
	assert.Equal(t, dir, h.Dir)
	assert.Equal(t, filepath.Join(dir, ConfigDir)+string(filepath.Separator), h.ThermoPath())
}

func TestLocateExplicitMissing(t *testing.T) {
	_, err := Locate(filepath.Join(t.TempDir(), "nope"))
	var pe *PathError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Tried, "nope")
}

func TestLocateNothing(t *testing.T) {
	t.Setenv(EnvVar, "")
	_, err := Locate("")
	// The test binary has no primer3 install next to it.
	assert.ErrorIs(t, err, ErrNoHome)
}

func TestResolvePath(t *testing.T) {
	dir := fakeHome(t)
	h := Home{Dir: dir}
	want := filepath.Join(dir, ConfigDir) + string(filepath.Separator)

	for _, in := range []string{"primer3_config", "./primer3_config", "../primer3_config", "./../primer3_config/"} {
		got, err := h.ResolvePath("PRIMER_THERMODYNAMIC_PARAMETERS_PATH", in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	// Existing directories are kept verbatim.
	abs := filepath.Join(dir, ConfigDir)
	got, err := h.ResolvePath("K", abs)
	require.NoError(t, err)
	assert.Equal(t, abs, got)

	_, err = h.ResolvePath("K", "./missing_config")
	var pe *PathError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "K", pe.Key)
	assert.Equal(t, filepath.Join(dir, "missing_config"), pe.Tried)
}

func TestTool(t *testing.T) {
	dir := fakeHome(t)
	h := Home{Dir: dir}
	p, err := h.Tool("ntthal")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ntthal"), p)

	_, err = h.Tool("definitely-not-a-primer3-tool")
	assert.Error(t, err)
}
