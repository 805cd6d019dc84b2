// core/thermo/oligo.go
package thermo

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Solution describes the reaction mix the way primer3 names it: salts in
// mM, oligo in nM, DMSO in percent, formamide in mol/L.
type Solution struct {
	MonovalentMM float64
	DivalentMM   float64
	DNTPmM       float64
	DNAnM        float64
	DMSOPercent  float64
	DMSOFactor   float64
	FormamideM   float64
}

// NaEquivalentMM folds free Mg2+ into a monovalent equivalent
// (von Ahsen et al. 2001): Na_eq = Na + 120*sqrt(Mg - dNTP).
func (s Solution) NaEquivalentMM() float64 {
	free := s.DivalentMM - s.DNTPmM
	if s.DivalentMM == 0 || free < 0 {
		free = 0
	}
	return s.MonovalentMM + 120*math.Sqrt(free)
}

// OligoTm is the two-state Tm of seq against its perfect complement.
func OligoTm(seq string, sol Solution) (Result, error) {
	p := strings.ToUpper(strings.TrimSpace(seq))
	res, err := Duplex(p, sol.DNAnM*1e-9, sol.NaEquivalentMM()*1e-3)
	if err != nil {
		return Result{}, errors.Wrap(err, "oligo tm")
	}
	res.TmC -= sol.DMSOPercent * sol.DMSOFactor
	if sol.FormamideM != 0 {
		res.TmC += (0.453*gcFraction(p) - 2.88) * sol.FormamideM
	}
	return res, nil
}

// DeltaG returns ΔG (kcal/mol) at tempC from ΔH (kcal/mol) and ΔS (cal/K·mol).
func DeltaG(dHkcal, dScal, tempC float64) float64 {
	return dHkcal - (tempC+273.15)*dScal/1000.0
}

func gcFraction(s string) float64 {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "G") + strings.Count(s, "C")
	return float64(n) / float64(len(s))
}
