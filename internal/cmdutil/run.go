package cmdutil

import (
	"context"

	"p3io/core/boulder"
	"p3io/internal/pipeline"
)

// RunStream runs the design pipeline, applies a visitor, and streams results via send.
// It returns the number of kept outputs and the first error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	next func() (*boulder.Record, error),
	d pipeline.Designer,
	visit func(pipeline.Result) (bool, T, error),
	send func(T) error,
) (int, error) {
	total := 0
	err := pipeline.ForEachResult(ctx, cfg, next, d, func(r pipeline.Result) error {
		keep, out, vErr := visit(r)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, err
}
