package jsonlutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestStartWritesLines(t *testing.T) {
	var buf bytes.Buffer
	in, done := Start[int](&buf, 1, func(enc *json.Encoder, v int) error { return enc.Encode(v) }, func(error) bool { return false })
	for i := 0; i < 3; i++ {
		in <- i
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}
	if buf.String() != "0\n1\n2\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestStartDrainsAfterError(t *testing.T) {
	bad := errors.New("boom")
	in, done := Start[int](&bytes.Buffer{}, 1, func(*json.Encoder, int) error { return bad }, func(error) bool { return false })
	// More sends than the buffer holds must not block.
	for i := 0; i < 10; i++ {
		in <- i
	}
	close(in)
	if err := <-done; !errors.Is(err, bad) {
		t.Fatalf("want boom, got %v", err)
	}
}
