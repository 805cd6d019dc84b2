// core/oligo/oligo.go
package oligo

import (
	"fmt"
)

// LUTs are indexed by ASCII byte; 0 marks a byte that is not a base.
// Case is preserved in both directions.
var (
	complement [128]byte
	sanitized  [128]byte
)

func init() {
	pairs := []string{"AT", "CG", "RY", "SS", "WW", "KM", "BV", "DH", "NN"}
	for _, p := range pairs {
		a, b := p[0], p[1]
		complement[a], complement[b] = b, a
		complement[a|0x20], complement[b|0x20] = b|0x20, a|0x20
	}
	for _, c := range []byte("ACGT") {
		sanitized[c], sanitized[c|0x20] = c, c|0x20
	}
	for _, c := range []byte("RYMKSWHDBVNU") {
		sanitized[c], sanitized[c|0x20] = 'N', 'n'
	}
}

// BaseError reports a byte that is not an IUPAC DNA code.
type BaseError struct {
	Base byte
	Pos  int // 1-based
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("invalid base %q at %d; allowed: A C G T R Y S W K M B D H V N", e.Base, e.Pos)
}

// Sanitize replaces IUPAC ambiguity codes with N (n for lower case),
// leaving A C G T untouched.
func Sanitize(seq string) (string, error) {
	out := []byte(seq)
	for i, b := range out {
		var c byte
		if b < 128 {
			c = sanitized[b]
		}
		if c == 0 {
			return "", &BaseError{Base: b, Pos: i + 1}
		}
		out[i] = c
	}
	return string(out), nil
}

// ReverseComplement returns the reverse complement of seq, optionally
// sanitizing it first. Ambiguity codes complement to their IUPAC partner.
func ReverseComplement(seq string, sanitize bool) (string, error) {
	if sanitize {
		s, err := Sanitize(seq)
		if err != nil {
			return "", err
		}
		seq = s
	}
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := seq[n-1-i]
		var c byte
		if b < 128 {
			c = complement[b]
		}
		if c == 0 {
			return "", &BaseError{Base: b, Pos: n - i}
		}
		out[i] = c
	}
	return string(out), nil
}
