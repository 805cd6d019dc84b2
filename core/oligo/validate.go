// core/oligo/validate.go
package oligo

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Normalize removes spaces/quotes and uppercases bases.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

// Validate returns a normalized sequence or an error if any char is non-IUPAC.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return s, errors.New("empty oligo")
	}
	for i := 0; i < len(s); i++ {
		if s[i] >= 128 || complement[s[i]] == 0 {
			return "", &BaseError{Base: s[i], Pos: i + 1}
		}
	}
	return s, nil
}

// IsACGT reports whether s holds only unambiguous bases (either case).
func IsACGT(s string) bool {
	return s != "" && strings.Trim(s, "ACGTacgt") == ""
}
