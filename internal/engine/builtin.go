// internal/engine/builtin.go
package engine

import (
	"context"

	"p3io/core/thermo"
	"p3io/internal/args"
)

// BuiltinThermo answers Tm in process with the nearest-neighbor model in
// core/thermo. Alignment-based calls are not available.
type BuiltinThermo struct{}

func (BuiltinThermo) Tm(ctx context.Context, seq string, c args.Conditions) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	res, err := thermo.OligoTm(seq, c.Solution())
	if err != nil {
		return 0, err
	}
	return res.TmC, nil
}

func (BuiltinThermo) Hairpin(context.Context, string, args.Conditions) (ThermoResult, error) {
	return ThermoResult{}, ErrUnsupported
}

func (BuiltinThermo) Homodimer(context.Context, string, args.Conditions) (ThermoResult, error) {
	return ThermoResult{}, ErrUnsupported
}

func (BuiltinThermo) Heterodimer(context.Context, string, string, args.Conditions) (ThermoResult, error) {
	return ThermoResult{}, ErrUnsupported
}

func (BuiltinThermo) EndStability(context.Context, string, string, args.Conditions) (ThermoResult, error) {
	return ThermoResult{}, ErrUnsupported
}
