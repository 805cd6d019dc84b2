// core/thermo/nn.go
// Nearest-neighbor model for a perfectly matched DNA duplex, SantaLucia &
// Hicks (2004) unified parameters. ΔH in kcal/mol, ΔS in cal/(K·mol),
// temperatures in °C.
package thermo

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// R is the gas constant in cal/(K·mol).
const R = 1.9872

type stack struct{ dH, dS float64 }

// stacks holds the ten unique Watson-Crick stacks at 1 M Na+, keyed by the
// 5'→3' dinucleotide of either strand.
var stacks = map[string]stack{
	"AA": {-7.6, -21.3},
	"AT": {-7.2, -20.4},
	"TA": {-7.2, -21.3},
	"CA": {-8.5, -22.7},
	"GT": {-8.4, -22.4},
	"CT": {-7.8, -21.0},
	"GA": {-8.2, -22.2},
	"CG": {-10.6, -27.2},
	"GC": {-9.8, -24.4},
	"GG": {-8.0, -19.9},
}

var (
	initiation = stack{0.2, -5.7}
	terminalAT = stack{2.2, 6.9}
	symmetry   = stack{0, -1.4}
)

// Result is the outcome of a duplex calculation.
type Result struct {
	DH     float64 // kcal/mol
	DS     float64 // cal/(K·mol) at 1 M Na+
	DSSalt float64 // cal/(K·mol) after the salt correction
	TmC    float64
}

// Duplex returns the two-state melting temperature of seq against its
// perfect complement. ctM is the total strand concentration and naM the
// monovalent cation concentration, both in mol/L.
func Duplex(seq string, ctM, naM float64) (Result, error) {
	s := strings.ToUpper(strings.TrimSpace(seq))
	switch {
	case len(s) < 2:
		return Result{}, errors.New("duplex needs at least 2 bases")
	case ctM <= 0:
		return Result{}, errors.New("strand concentration must be > 0")
	case naM <= 0:
		return Result{}, errors.New("cation concentration must be > 0")
	}
	rc, ok := revComp(s)
	if !ok {
		return Result{}, errors.Errorf("non-ACGT base in %q", seq)
	}

	sum := initiation
	add := func(st stack) {
		sum.dH += st.dH
		sum.dS += st.dS
	}
	n := len(s)
	for i := 0; i+1 < n; i++ {
		st, ok := stacks[s[i:i+2]]
		if !ok {
			// same stack read on the other strand
			st = stacks[rc[n-i-2:n-i]]
		}
		add(st)
	}
	for _, end := range []byte{s[0], s[n-1]} {
		if end == 'A' || end == 'T' {
			add(terminalAT)
		}
	}
	x := 4.0
	if s == rc {
		add(symmetry)
		x = 1
	}

	dsSalt := sum.dS + 0.368*float64(n-1)*math.Log(naM)
	tmK := sum.dH * 1000 / (dsSalt + R*math.Log(ctM/x))
	return Result{DH: sum.dH, DS: sum.dS, DSSalt: dsSalt, TmC: tmK - 273.15}, nil
}

func revComp(s string) (string, bool) {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		var c byte
		switch s[i] {
		case 'A':
			c = 'T'
		case 'C':
			c = 'G'
		case 'G':
			c = 'C'
		case 'T':
			c = 'A'
		default:
			return "", false
		}
		out[len(s)-1-i] = c
	}
	return string(out), true
}
