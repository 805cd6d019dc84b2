package engine

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"p3io/internal/p3home"
)

// fakeHome writes shell scripts standing in for the engine executables.
func fakeHome(t *testing.T, tools map[string]string) p3home.Home {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine scripts need /bin/sh")
	}
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, p3home.ConfigDir), 0o755))
	for name, body := range tools {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+body), 0o755))
	}
	return p3home.Home{Dir: dir}
}

func readFile(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}
