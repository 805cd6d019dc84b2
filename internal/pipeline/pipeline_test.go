package pipeline

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"p3io/core/boulder"
	"p3io/internal/engine"
)

// Compile-time check: the concrete designers satisfy the minimal contract.
var (
	_ Designer = (*engine.SubprocessDesigner)(nil)
	_ Designer = (*engine.CachedDesigner)(nil)
)

// fakeDesigner echoes SEQUENCE_ID after a random delay; ids starting with
// "bad" fail.
type fakeDesigner struct{}

func (fakeDesigner) Design(ctx context.Context, in *boulder.Record) (*boulder.Record, error) {
	time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
	id := in.GetString("SEQUENCE_ID")
	if strings.HasPrefix(id, "bad") {
		return nil, &engine.EngineError{Tool: "fake", Diagnostic: id}
	}
	out := boulder.NewRecord()
	out.Set("SEQUENCE_ID", boulder.Str(id))
	return out, nil
}

func records(n int) []*boulder.Record {
	out := make([]*boulder.Record, n)
	for i := range out {
		out[i] = boulder.RecordOf("SEQUENCE_ID", "s"+strconv.Itoa(i))
	}
	return out
}

func TestForEachResult_Ordered(t *testing.T) {
	recs := records(50)
	recs[7] = boulder.RecordOf("SEQUENCE_ID", "bad7")
	var got []string
	var nErr int
	err := ForEachResult(context.Background(), Config{Threads: 4}, SliceSource(recs), fakeDesigner{}, func(r Result) error {
		if r.Err != nil {
			nErr++
			got = append(got, r.Args.GetString("SEQUENCE_ID"))
			return nil
		}
		got = append(got, r.Out.GetString("SEQUENCE_ID"))
		return nil
	})
	if err != nil {
		t.Fatalf("pipeline err: %v", err)
	}
	if len(got) != 50 || nErr != 1 {
		t.Fatalf("got %d results, %d errors", len(got), nErr)
	}
	for i, id := range got {
		want := "s" + strconv.Itoa(i)
		if i == 7 {
			want = "bad7"
		}
		if id != want {
			t.Fatalf("result %d: got %s want %s", i, id, want)
		}
	}
}

func TestForEachResult_VisitErrorStops(t *testing.T) {
	stop := errors.New("stop")
	n := 0
	err := ForEachResult(context.Background(), Config{Threads: 2}, SliceSource(records(100)), fakeDesigner{}, func(r Result) error {
		n++
		if n == 3 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected stop error, got %v", err)
	}
	if n != 3 {
		t.Fatalf("visit called %d times after error", n)
	}
}

func TestForEachResult_SourceError(t *testing.T) {
	bad := errors.New("read failed")
	calls := 0
	next := func() (*boulder.Record, error) {
		calls++
		if calls > 2 {
			return nil, bad
		}
		return boulder.RecordOf("SEQUENCE_ID", "x"), nil
	}
	n := 0
	err := ForEachResult(context.Background(), Config{Threads: 1}, next, fakeDesigner{}, func(Result) error { n++; return nil })
	if !errors.Is(err, bad) {
		t.Fatalf("expected source error, got %v", err)
	}
	if n != 2 {
		t.Fatalf("expected the 2 records read before the error, got %d", n)
	}
}

func TestForEachResult_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ForEachResult(ctx, Config{Threads: 2}, SliceSource(records(10)), fakeDesigner{}, func(Result) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
