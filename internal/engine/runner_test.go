package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerPassesStdinAndArgs(t *testing.T) {
	h := fakeHome(t, map[string]string{"echoer": `echo "$@"; cat`})
	var r Runner
	out, _, err := r.Run(context.Background(), filepath.Join(h.Dir, "echoer"), []string{"-a", "b"}, []byte("in\n"))
	require.NoError(t, err)
	assert.Equal(t, "-a b\nin\n", string(out))
}

func TestRunnerExitStatus(t *testing.T) {
	h := fakeHome(t, map[string]string{"fail": "echo 'bad things' >&2\nexit 3\n"})
	var r Runner
	_, _, err := r.Run(context.Background(), filepath.Join(h.Dir, "fail"), nil, nil)
	var ee *EngineError
	require.True(t, errors.As(err, &ee), "%v", err)
	assert.Equal(t, 3, ee.ExitCode)
	assert.Equal(t, "fail", ee.Tool)
	assert.Equal(t, "bad things", ee.Diagnostic)
}

func TestRunnerTimeout(t *testing.T) {
	h := fakeHome(t, map[string]string{"slow": "exec sleep 5\n"})
	r := Runner{Timeout: 100 * time.Millisecond}
	start := time.Now()
	_, _, err := r.Run(context.Background(), filepath.Join(h.Dir, "slow"), nil, nil)
	var te *TimeoutError
	require.True(t, errors.As(err, &te), "%v", err)
	assert.Equal(t, "slow", te.Tool)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestRunnerCancel(t *testing.T) {
	h := fakeHome(t, map[string]string{"slow": "exec sleep 5\n"})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	var r Runner
	_, _, err := r.Run(ctx, filepath.Join(h.Dir, "slow"), nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunnerMissingTool(t *testing.T) {
	var r Runner
	_, _, err := r.Run(context.Background(), filepath.Join(t.TempDir(), "nope"), nil, nil)
	require.Error(t, err)
	var ee *EngineError
	assert.False(t, errors.As(err, &ee))
}
