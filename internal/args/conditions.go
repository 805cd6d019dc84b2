// internal/args/conditions.go
package args

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"p3io/core/thermo"
)

// Method tables map names to the integers the engine expects.
var (
	TmMethods = map[string]int{
		"breslauer":  0,
		"santalucia": 1,
	}
	SaltMethods = map[string]int{
		"schildkraut": 0,
		"santalucia":  1,
		"owczarzy":    2,
	}
)

// ErrUnknownMethod is returned for a tm or salt correction name not in the tables.
var ErrUnknownMethod = errors.New("unknown method")

// Conditions are the solution and algorithm settings for thermodynamic
// calls. Each caller owns its own value; nothing here is shared.
type Conditions struct {
	MonovalentMM    float64 `yaml:"mv_conc"`
	DivalentMM      float64 `yaml:"dv_conc"`
	DNTPmM          float64 `yaml:"dntp_conc"`
	DNAnM           float64 `yaml:"dna_conc"`
	TempC           float64 `yaml:"temp_c"`
	MaxLoop         int     `yaml:"max_loop"`
	DMSOPercent     float64 `yaml:"dmso_conc"`
	DMSOFactor      float64 `yaml:"dmso_fact"`
	FormamideM      float64 `yaml:"formamide_conc"`
	AnnealingTempC  float64 `yaml:"annealing_temp_c"`
	MaxNNLength     int     `yaml:"max_nn_length"`
	TmMethod        string  `yaml:"tm_method"`
	SaltMethod      string  `yaml:"salt_corrections_method"`
	OutputStructure bool    `yaml:"output_structure"`
	TmOnly          bool    `yaml:"temp_only"` // ask ntthal for Tm alone
}

// DefaultConditions match primer3web defaults.
func DefaultConditions() Conditions {
	return Conditions{
		MonovalentMM:   50,
		DivalentMM:     1.5,
		DNTPmM:         0.6,
		DNAnM:          50,
		TempC:          37,
		MaxLoop:        30,
		DMSOPercent:    0,
		DMSOFactor:     0.6,
		FormamideM:     0.8,
		AnnealingTempC: -10,
		MaxNNLength:    60,
		TmMethod:       "santalucia",
		SaltMethod:     "santalucia",
	}
}

func lookupMethod(table map[string]int, kind, name string) (int, error) {
	n, ok := table[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownMethod, "%s method %q (want one of %s)", kind, name, strings.Join(methodNames(table), ", "))
	}
	return n, nil
}

func methodNames(table map[string]int) []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c Conditions) TmMethodCode() (int, error) { return lookupMethod(TmMethods, "tm", c.TmMethod) }
func (c Conditions) SaltMethodCode() (int, error) {
	return lookupMethod(SaltMethods, "salt correction", c.SaltMethod)
}

// Validate rejects negative concentrations and unknown method names.
func (c Conditions) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"mv_conc", c.MonovalentMM},
		{"dv_conc", c.DivalentMM},
		{"dntp_conc", c.DNTPmM},
		{"dmso_conc", c.DMSOPercent},
	} {
		if f.v < 0 {
			return errors.Errorf("%s must be >= 0 (got %g)", f.name, f.v)
		}
	}
	if c.DNAnM <= 0 {
		return errors.Errorf("dna_conc must be > 0 (got %g)", c.DNAnM)
	}
	if c.MaxLoop < 0 || c.MaxLoop > 30 {
		return errors.Errorf("max_loop must be in [0,30] (got %d)", c.MaxLoop)
	}
	if c.MaxNNLength < 1 {
		return errors.Errorf("max_nn_length must be >= 1 (got %d)", c.MaxNNLength)
	}
	if _, err := c.TmMethodCode(); err != nil {
		return err
	}
	_, err := c.SaltMethodCode()
	return err
}

// Solution converts to the in-process Tm estimator's input.
func (c Conditions) Solution() thermo.Solution {
	return thermo.Solution{
		MonovalentMM: c.MonovalentMM,
		DivalentMM:   c.DivalentMM,
		DNTPmM:       c.DNTPmM,
		DNAnM:        c.DNAnM,
		DMSOPercent:  c.DMSOPercent,
		DMSOFactor:   c.DMSOFactor,
		FormamideM:   c.FormamideM,
	}
}
