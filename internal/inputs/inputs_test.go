package inputs

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p3io/core/boulder"
)

const stream = "SEQUENCE_ID=a\nPRIMER_OPT_SIZE=20\n=\nSEQUENCE_ID=b\n=\n"

func compressed(t *testing.T, kind string) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	switch kind {
	case "gz":
		w = gzip.NewWriter(&buf)
	case "zst":
		zw, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		w = zw
	case "lz4":
		w = lz4.NewWriter(&buf)
	default:
		return []byte(stream)
	}
	_, err := io.WriteString(w, stream)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestOpenSniffsCompression(t *testing.T) {
	dir := t.TempDir()
	for _, kind := range []string{"plain", "gz", "zst", "lz4"} {
		t.Run(kind, func(t *testing.T) {
			// No suffix: detection must come from the magic number.
			p := filepath.Join(dir, "in_"+kind)
			require.NoError(t, os.WriteFile(p, compressed(t, kind), 0o644))
			got, err := ReadAll(p)
			require.NoError(t, err)
			assert.Equal(t, stream, string(got))
		})
	}
}

func TestOpenStdin(t *testing.T) {
	old := Stdin
	defer func() { Stdin = old }()
	Stdin = bytes.NewReader(compressed(t, "gz"))
	got, err := ReadAll("-")
	require.NoError(t, err)
	assert.Equal(t, stream, string(got))
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.p3", "b.p3", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
	got, err := Expand([]string{"-", filepath.Join(dir, "*.p3"), "literal"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-", filepath.Join(dir, "a.p3"), filepath.Join(dir, "b.p3"), "literal"}, got)

	_, err = Expand([]string{filepath.Join(dir, "*.none")})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no input matched"))
}

func TestRecordsAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.p3.zst")
	b := filepath.Join(dir, "b.p3")
	require.NoError(t, os.WriteFile(a, compressed(t, "zst"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("SEQUENCE_ID=c\n=\n"), 0o644))

	rs := NewRecords(boulder.Default, []string{a, b})
	defer func() { _ = rs.Close() }()
	var ids []string
	for {
		rec, err := rs.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		ids = append(ids, rec.GetString("SEQUENCE_ID"))
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, b, rs.Source())
}
