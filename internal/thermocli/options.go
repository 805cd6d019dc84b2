package thermocli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"p3io/internal/args"
	"p3io/internal/clibase"
	"p3io/internal/cliutil"
	"p3io/internal/output"
)

// Calculations.
const (
	CalcTm           = "tm"
	CalcHairpin      = "hairpin"
	CalcHomodimer    = "homodimer"
	CalcHeterodimer  = "heterodimer"
	CalcEndStability = "end-stability"
)

// Engines.
const (
	EngineSubprocess = "subprocess"
	EngineBuiltin    = "builtin"
)

type Options struct {
	clibase.Common

	Calc     string
	Engine   string
	Sanitize bool
	CondFile string
	Cond     args.Conditions
	Seqs     []string
}

func NewFlagSet(name string) *pflag.FlagSet { return cliutil.NewFlagSet(name) }

func Usage(out io.Writer, fs *pflag.FlagSet, name string) {
	clibase.PrintUsage(out, fs, name, "oligo thermodynamics through oligotm / ntthal", func(out io.Writer) {
		_, _ = io.WriteString(out, "Usage:\n")
		_, _ = io.WriteString(out, "  "+name+" tm [options] SEQ...\n")
		_, _ = io.WriteString(out, "  "+name+" hairpin|homodimer [options] SEQ...\n")
		_, _ = io.WriteString(out, "  "+name+" heterodimer|end-stability [options] SEQ1 SEQ2\n")
		_, _ = io.WriteString(out, "\nConcentrations accept units, e.g. --mv 50mM --dna 250nM.\n")
	})
}

func Examples(out io.Writer, name string) {
	clibase.PrintExamples(out, name, []clibase.Example{
		{Note: "Melting temperature with the in-process estimator", Cmd: "%s tm --engine builtin GTAAAACGACGGCCAGT"},
		{Note: "Hairpin with structure, JSON out", Cmd: "%s hairpin --structure -o json CCCCCATCCGATCAGGGGG"},
		{Note: "3' end stability at 3 mM Mg2+", Cmd: "%s end-stability --dv 3mM AGCTAGCTAGCTAGCT ACGTACGATCGATCGA"},
	})
}

// condFlags copies one flag's field between Conditions values, so flags set
// on the command line can override a --conditions file.
var condFlags = map[string]func(dst, src *args.Conditions){
	"mv":             func(d, s *args.Conditions) { d.MonovalentMM = s.MonovalentMM },
	"dv":             func(d, s *args.Conditions) { d.DivalentMM = s.DivalentMM },
	"dntp":           func(d, s *args.Conditions) { d.DNTPmM = s.DNTPmM },
	"dna":            func(d, s *args.Conditions) { d.DNAnM = s.DNAnM },
	"temp":           func(d, s *args.Conditions) { d.TempC = s.TempC },
	"max-loop":       func(d, s *args.Conditions) { d.MaxLoop = s.MaxLoop },
	"dmso":           func(d, s *args.Conditions) { d.DMSOPercent = s.DMSOPercent },
	"dmso-fact":      func(d, s *args.Conditions) { d.DMSOFactor = s.DMSOFactor },
	"formamide":      func(d, s *args.Conditions) { d.FormamideM = s.FormamideM },
	"annealing-temp": func(d, s *args.Conditions) { d.AnnealingTempC = s.AnnealingTempC },
	"max-nn-length":  func(d, s *args.Conditions) { d.MaxNNLength = s.MaxNNLength },
	"tm-method":      func(d, s *args.Conditions) { d.TmMethod = s.TmMethod },
	"salt-method":    func(d, s *args.Conditions) { d.SaltMethod = s.SaltMethod },
	"structure":      func(d, s *args.Conditions) { d.OutputStructure = s.OutputStructure },
	"tm-only":        func(d, s *args.Conditions) { d.TmOnly = s.TmOnly },
}

func registerConditions(fs *pflag.FlagSet, c *args.Conditions) {
	cliutil.ConcVar(fs, &c.MonovalentMM, "mv", "mM", "monovalent cation concentration")
	cliutil.ConcVar(fs, &c.DivalentMM, "dv", "mM", "divalent cation concentration")
	cliutil.ConcVar(fs, &c.DNTPmM, "dntp", "mM", "dNTP concentration")
	cliutil.ConcVar(fs, &c.DNAnM, "dna", "nM", "oligo concentration")
	fs.Float64Var(&c.TempC, "temp", c.TempC, "simulation temperature (°C) for dG")
	fs.IntVar(&c.MaxLoop, "max-loop", c.MaxLoop, "maximum hairpin loop size")
	fs.Float64Var(&c.DMSOPercent, "dmso", c.DMSOPercent, "DMSO concentration (%)")
	fs.Float64Var(&c.DMSOFactor, "dmso-fact", c.DMSOFactor, "Tm correction per % DMSO")
	fs.Float64Var(&c.FormamideM, "formamide", c.FormamideM, "formamide concentration (mol/l)")
	fs.Float64Var(&c.AnnealingTempC, "annealing-temp", c.AnnealingTempC, "annealing temperature (°C); negative disables")
	fs.IntVar(&c.MaxNNLength, "max-nn-length", c.MaxNNLength, "longest sequence for the NN model")
	fs.StringVar(&c.TmMethod, "tm-method", c.TmMethod, "breslauer | santalucia")
	fs.StringVar(&c.SaltMethod, "salt-method", c.SaltMethod, "schildkraut | santalucia | owczarzy")
	fs.BoolVar(&c.OutputStructure, "structure", false, "include the ASCII structure")
	fs.BoolVar(&c.TmOnly, "tm-only", false, "ask ntthal for the melting temperature only")
}

func ParseArgs(fs *pflag.FlagSet, argv []string) (Options, error) {
	o := Options{Cond: args.DefaultConditions()}
	cmd, rest := cliutil.SplitSubcommand(argv)
	o.Calc = cmd

	noHeader := clibase.Register(fs, &o.Common, output.FormatText)
	fs.StringVar(&o.Engine, "engine", EngineSubprocess, "subprocess | builtin (tm only)")
	fs.BoolVar(&o.Sanitize, "sanitize", false, "replace ambiguity codes with N instead of rejecting them")
	fs.StringVar(&o.CondFile, "conditions", "", "YAML/JSON conditions file; flags override it")
	registerConditions(fs, &o.Cond)

	if err := fs.Parse(rest); err != nil {
		return o, err
	}
	if err := clibase.AfterParse(&o.Common, noHeader, output.FormatText, output.FormatJSON); err != nil {
		return o, err
	}
	if o.Version {
		return o, nil
	}

	if o.CondFile != "" {
		base, err := args.LoadConditions(o.CondFile)
		if err != nil {
			return o, err
		}
		fs.Visit(func(f *pflag.Flag) {
			if set, ok := condFlags[f.Name]; ok {
				set(&base, &o.Cond)
			}
		})
		o.Cond = base
	}
	if err := o.Cond.Validate(); err != nil {
		return o, err
	}

	o.Seqs = fs.Args()
	switch o.Calc {
	case CalcTm, CalcHairpin, CalcHomodimer:
		if len(o.Seqs) == 0 {
			return o, errors.Errorf("%s: at least one sequence is required", o.Calc)
		}
	case CalcHeterodimer, CalcEndStability:
		if len(o.Seqs) != 2 {
			return o, errors.Errorf("%s: need exactly two sequences", o.Calc)
		}
	case "":
		return o, errors.New("missing calculation (tm | hairpin | homodimer | heterodimer | end-stability)")
	default:
		return o, errors.Errorf("unknown calculation %q", o.Calc)
	}
	switch o.Engine {
	case EngineSubprocess:
	case EngineBuiltin:
		if o.Calc != CalcTm {
			return o, errors.Errorf("--engine builtin supports tm only")
		}
	default:
		return o, errors.Errorf("--engine must be %q or %q", EngineSubprocess, EngineBuiltin)
	}
	return o, nil
}
