// internal/engine/thermo.go
package engine

import (
	"bytes"
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"p3io/internal/args"
	"p3io/internal/p3home"
)

// MaxAlignLength is the longest sequence the thermodynamic alignment
// accepts for hairpins and homodimers; dimers need one side within it.
const MaxAlignLength = 60

// ThermoResult is one hairpin or dimer calculation. Found is false when
// no structure forms; the numbers are then zero.
type ThermoResult struct {
	Found     bool
	DS        float64 // cal/(K·mol)
	DH        float64 // cal/mol
	DG        float64 // cal/mol
	Tm        float64 // °C
	Structure string  // ASCII diagram, when requested
}

// Thermo computes oligo thermodynamics under caller-supplied conditions.
type Thermo interface {
	Tm(ctx context.Context, seq string, c args.Conditions) (float64, error)
	Hairpin(ctx context.Context, seq string, c args.Conditions) (ThermoResult, error)
	Homodimer(ctx context.Context, seq string, c args.Conditions) (ThermoResult, error)
	Heterodimer(ctx context.Context, seq1, seq2 string, c args.Conditions) (ThermoResult, error)
	EndStability(ctx context.Context, seq1, seq2 string, c args.Conditions) (ThermoResult, error)
}

// Calculation types understood by ntthal -a.
const (
	calcHairpin = "HAIRPIN"
	calcAny     = "ANY"
	calcEnd1    = "END1"
)

var ntthalRe = regexp.MustCompile(`dS\s+=\s+(\S+)\s+dH\s+=\s+(\S+)\s+dG\s+=\s+(\S+)\s+t\s+=\s+(\S+)`)

// ParseNtthal reads ntthal's summary line and the structure diagram
// after it. Output without a summary is a zero, not-found result.
func ParseNtthal(out []byte) ThermoResult {
	m := ntthalRe.FindSubmatch(out)
	if m == nil {
		return ThermoResult{}
	}
	var vals [4]float64
	for i := range vals {
		f, err := strconv.ParseFloat(string(m[i+1]), 64)
		if err != nil {
			return ThermoResult{}
		}
		vals[i] = f
	}
	res := ThermoResult{Found: true, DS: vals[0], DH: vals[1], DG: vals[2], Tm: vals[3]}
	if i := bytes.IndexByte(out, '\n'); i >= 0 {
		res.Structure = string(out[i+1:])
	}
	return res
}

// SubprocessThermo shells out to oligotm and ntthal.
type SubprocessThermo struct {
	Runner *Runner
	Home   p3home.Home
}

func fmtNum(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func (t *SubprocessThermo) Tm(ctx context.Context, seq string, c args.Conditions) (float64, error) {
	tm, err := c.TmMethodCode()
	if err != nil {
		return 0, err
	}
	sc, err := c.SaltMethodCode()
	if err != nil {
		return 0, err
	}
	tool, err := t.Home.Tool("oligotm")
	if err != nil {
		return 0, err
	}
	argv := []string{
		"-mv", fmtNum(c.MonovalentMM),
		"-dv", fmtNum(c.DivalentMM),
		"-n", fmtNum(c.DNTPmM),
		"-d", fmtNum(c.DNAnM),
		"-tp", strconv.Itoa(tm),
		"-sc", strconv.Itoa(sc),
		"-dm", fmtNum(c.DMSOPercent),
		"-df", fmtNum(c.DMSOFactor),
		"-fo", fmtNum(c.FormamideM),
		seq,
	}
	out, _, err := t.Runner.Run(ctx, tool, argv, nil)
	if err != nil {
		return 0, err
	}
	v, perr := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if perr != nil {
		return 0, &EngineError{Tool: "oligotm", Diagnostic: "unexpected output " + strconv.Quote(strings.TrimSpace(string(out)))}
	}
	return v, nil
}

func (t *SubprocessThermo) Hairpin(ctx context.Context, seq string, c args.Conditions) (ThermoResult, error) {
	if err := checkSingle(seq); err != nil {
		return ThermoResult{}, err
	}
	return t.ntthal(ctx, calcHairpin, seq, seq, c)
}

func (t *SubprocessThermo) Homodimer(ctx context.Context, seq string, c args.Conditions) (ThermoResult, error) {
	if err := checkSingle(seq); err != nil {
		return ThermoResult{}, err
	}
	return t.ntthal(ctx, calcAny, seq, seq, c)
}

func (t *SubprocessThermo) Heterodimer(ctx context.Context, seq1, seq2 string, c args.Conditions) (ThermoResult, error) {
	if err := checkPair(seq1, seq2); err != nil {
		return ThermoResult{}, err
	}
	return t.ntthal(ctx, calcAny, seq1, seq2, c)
}

func (t *SubprocessThermo) EndStability(ctx context.Context, seq1, seq2 string, c args.Conditions) (ThermoResult, error) {
	if err := checkPair(seq1, seq2); err != nil {
		return ThermoResult{}, err
	}
	return t.ntthal(ctx, calcEnd1, seq1, seq2, c)
}

func (t *SubprocessThermo) ntthal(ctx context.Context, calc, s1, s2 string, c args.Conditions) (ThermoResult, error) {
	tool, err := t.Home.Tool("ntthal")
	if err != nil {
		return ThermoResult{}, err
	}
	argv := []string{
		"-a", calc,
		"-mv", fmtNum(c.MonovalentMM),
		"-dv", fmtNum(c.DivalentMM),
		"-n", fmtNum(c.DNTPmM),
		"-d", fmtNum(c.DNAnM),
		"-t", fmtNum(c.TempC),
		"-maxloop", strconv.Itoa(c.MaxLoop),
	}
	if p := t.Home.ThermoPath(); p != "" {
		argv = append(argv, "-path", p)
	}
	argv = append(argv, "-s1", s1, "-s2", s2)
	if c.TmOnly {
		argv = append(argv, "-r")
	}
	out, _, err := t.Runner.Run(ctx, tool, argv, nil)
	if err != nil {
		return ThermoResult{}, err
	}
	if c.TmOnly {
		if v, perr := strconv.ParseFloat(strings.TrimSpace(string(out)), 64); perr == nil {
			return ThermoResult{Found: true, Tm: v}, nil
		}
	}
	res := ParseNtthal(out)
	if !c.OutputStructure {
		res.Structure = ""
	}
	return res, nil
}

func checkSingle(seq string) error {
	if len(seq) > MaxAlignLength {
		return errors.Wrapf(ErrTooLong, "%d bp (max %d)", len(seq), MaxAlignLength)
	}
	return nil
}

func checkPair(seq1, seq2 string) error {
	if len(seq1) > MaxAlignLength && len(seq2) > MaxAlignLength {
		return errors.Wrapf(ErrTooLong, "both sequences exceed %d bp (%d and %d)", MaxAlignLength, len(seq1), len(seq2))
	}
	return nil
}

// AssessOligo runs the hairpin and homodimer checks for one oligo.
func AssessOligo(ctx context.Context, t Thermo, seq string, c args.Conditions) (hairpin, homodimer ThermoResult, err error) {
	if hairpin, err = t.Hairpin(ctx, seq, c); err != nil {
		return
	}
	homodimer, err = t.Homodimer(ctx, seq, c)
	return
}
