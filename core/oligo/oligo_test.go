package oligo

import (
	"errors"
	"testing"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"ACGTRYMKSWHDBV": "ACGTNNNNNNNNNN",
		"acgtrymkswhdbv": "acgtnnnnnnnnnn",
		"":               "",
	}
	for in, want := range cases {
		got, err := Sanitize(in)
		if err != nil {
			t.Fatalf("Sanitize(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("Sanitize(%q)=%q want %q", in, got, want)
		}
	}
	_, err := Sanitize("ZACGT")
	var be *BaseError
	if !errors.As(err, &be) || be.Base != 'Z' || be.Pos != 1 {
		t.Fatalf("expected BaseError for Z at 1, got %v", err)
	}
}

func TestReverseComplement(t *testing.T) {
	cases := []struct {
		in       string
		sanitize bool
		want     string
	}{
		{"ACGTRYMKSWHDBV", false, "BVHDWSMKRYACGT"},
		{"ACGTRYMKSWHDBV", true, "NNNNNNNNNNACGT"},
		{"acgtrymkswhdbv", false, "bvhdwsmkryacgt"},
		{"acgtrymkswhdbv", true, "nnnnnnnnnnacgt"},
		{"AAACCC", false, "GGGTTT"},
	}
	for _, c := range cases {
		got, err := ReverseComplement(c.in, c.sanitize)
		if err != nil {
			t.Fatalf("ReverseComplement(%q,%v): %v", c.in, c.sanitize, err)
		}
		if got != c.want {
			t.Fatalf("ReverseComplement(%q,%v)=%q want %q", c.in, c.sanitize, got, c.want)
		}
	}
	if _, err := ReverseComplement("ZACGT", false); err == nil {
		t.Fatal("expected error for Z")
	}
	// U sanitizes to N but has no complement of its own.
	if _, err := ReverseComplement("ACU", false); err == nil {
		t.Fatal("expected error for U without sanitize")
	}
	if got, err := ReverseComplement("ACU", true); err != nil || got != "NGT" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestValidate(t *testing.T) {
	got, err := Validate(" acg'T ")
	if err != nil || got != "ACGT" {
		t.Fatalf("Validate: %q %v", got, err)
	}
	if _, err := Validate(""); err == nil {
		t.Fatal("expected error for empty oligo")
	}
	if _, err := Validate("ACGX"); err == nil {
		t.Fatal("expected error for X")
	}
	if !IsACGT("acgT") || IsACGT("ACGN") {
		t.Fatal("IsACGT")
	}
}
