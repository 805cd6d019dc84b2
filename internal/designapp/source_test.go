package designapp

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p3io/core/boulder"
	"p3io/internal/inputs"
)

// Keys are already in merge order: globals, then SEQUENCE_*, then P3_*.
const freeText = "PRIMER_TASK=007\nPRIMER_PRODUCT_SIZE_RANGE=100-300  301-400\nSEQUENCE_ID=12-34\nSEQUENCE_TEMPLATE=ACGT\nSEQUENCE_EXCLUDED_REGION=1,5\nSEQUENCE_EXCLUDED_REGION=9,2\nP3_COMMENT=1,2\n=\n"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func formatAll(t *testing.T, s *source) string {
	t.Helper()
	var out []byte
	for {
		rec, err := s.next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		b, err := s.codec.Format(rec)
		require.NoError(t, err)
		out = append(out, b...)
	}
	require.NoError(t, s.close())
	return string(out)
}

func TestSourceStreamReachesFormatUnchanged(t *testing.T) {
	codec := boulder.NewCodec(nil, nil)
	s := &source{codec: codec, streams: inputs.NewRecords(codec, []string{writeFile(t, "in.bio", freeText)})}
	assert.Equal(t, freeText, formatAll(t, s))
}

func TestSourceSeqFileReachesFormatUnchanged(t *testing.T) {
	codec := boulder.NewCodec(nil, nil)
	s := &source{codec: codec, seqs: []string{writeFile(t, "seq.bio", freeText)}}
	assert.Equal(t, freeText, formatAll(t, s))
}

func TestSourceKeepsSequenceID(t *testing.T) {
	codec := boulder.NewCodec(nil, nil)
	s := &source{codec: codec, streams: inputs.NewRecords(codec, []string{writeFile(t, "in.bio", freeText)})}
	rec, err := s.next()
	require.NoError(t, err)
	assert.Equal(t, "12-34", rec.GetString("SEQUENCE_ID"))
	require.NoError(t, s.close())
}
