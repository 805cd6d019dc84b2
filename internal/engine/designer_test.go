package engine

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p3io/core/boulder"
)

const fakePrimer3 = `cat > "$(dirname "$0")/last_input"
cat <<'OUT'
SEQUENCE_ID=MH1000
PRIMER_LEFT_NUM_RETURNED=1
PRIMER_LEFT_0=46,21
PRIMER_LEFT_0_TM=59.823
=
OUT
`

func TestSubprocessDesigner(t *testing.T) {
	h := fakeHome(t, map[string]string{"primer3_core": fakePrimer3})
	d := NewSubprocessDesigner(&Runner{}, h, nil)
	var inLog, outLog bytes.Buffer
	d.InputLog, d.OutputLog = &inLog, &outLog

	in := boulder.NewRecord()
	in.Set("SEQUENCE_ID", boulder.Str("MH1000"))
	in.Set("SEQUENCE_INCLUDED_REGION", boulder.PairOf(36, 342))

	out, err := d.Design(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "46,21", out.GetString("PRIMER_LEFT_0"))

	sent := readFile(t, filepath.Join(h.Dir, "last_input"))
	assert.Equal(t, "SEQUENCE_ID=MH1000\n"+
		"SEQUENCE_INCLUDED_REGION=36,342\n"+
		"PRIMER_THERMODYNAMIC_PARAMETERS_PATH="+h.ThermoPath()+"\n"+
		"=\n", sent)
	assert.Equal(t, sent, inLog.String())
	assert.True(t, strings.HasPrefix(outLog.String(), "SEQUENCE_ID=MH1000\n"))
	assert.False(t, in.Has(ThermoPathTag), "caller's record is not modified")
}

func TestSubprocessDesignerResolvesRelativeThermoPath(t *testing.T) {
	h := fakeHome(t, map[string]string{"primer3_core": fakePrimer3})
	d := NewSubprocessDesigner(&Runner{}, h, nil)
	in := boulder.RecordOf("SEQUENCE_ID", "x", ThermoPathTag, "./primer3_config")
	_, err := d.Design(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, filepath.Join(h.Dir, "last_input")), ThermoPathTag+"="+h.ThermoPath()+"\n")

	in = boulder.RecordOf("SEQUENCE_ID", "x", ThermoPathTag, "no_such_config")
	_, err = d.Design(context.Background(), in)
	var fe *boulder.FormatError
	assert.True(t, errors.As(err, &fe), "%v", err)
}

func TestSubprocessDesignerPrimerError(t *testing.T) {
	h := fakeHome(t, map[string]string{"primer3_core": "cat >/dev/null\nprintf 'SEQUENCE_ID=x\\nPRIMER_ERROR=Missing SEQUENCE tag\\n=\\n'\nexit 255\n"})
	d := NewSubprocessDesigner(&Runner{}, h, nil)
	out, err := d.Design(context.Background(), boulder.RecordOf("SEQUENCE_ID", "x"))
	var ee *EngineError
	require.True(t, errors.As(err, &ee), "%v", err)
	assert.Equal(t, "Missing SEQUENCE tag", ee.Diagnostic)
	assert.Equal(t, 255, ee.ExitCode)
	require.NotNil(t, out)
	assert.Equal(t, "x", out.GetString("SEQUENCE_ID"))
}

func TestSubprocessDesignerFormatErrorSpawnsNothing(t *testing.T) {
	h := fakeHome(t, map[string]string{"primer3_core": fakePrimer3})
	d := NewSubprocessDesigner(&Runner{}, h, nil)
	in := boulder.RecordOf("FOO", [][]int{{1, 2, 3, 4}})
	_, err := d.Design(context.Background(), in)
	var fe *boulder.FormatError
	require.True(t, errors.As(err, &fe))
	assert.NoFileExists(t, filepath.Join(h.Dir, "last_input"))
}
