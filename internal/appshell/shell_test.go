package appshell

import (
	"context"
	"io"
	"testing"
)

func TestRunMainDefaultsToHelp(t *testing.T) {
	var got []string
	code := runMain(func(_ context.Context, argv []string, _, _ io.Writer) int {
		got = argv
		return 0
	}, nil, io.Discard, io.Discard)
	if code != 0 || len(got) != 1 || got[0] != "-h" {
		t.Fatalf("code=%d argv=%v", code, got)
	}
}

func TestRunMainPassesExitCode(t *testing.T) {
	code := runMain(func(context.Context, []string, io.Writer, io.Writer) int { return 3 }, []string{"x"}, io.Discard, io.Discard)
	if code != 3 {
		t.Fatalf("code=%d", code)
	}
}
