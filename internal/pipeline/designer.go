// internal/pipeline/designer.go
package pipeline

import (
	"context"

	"p3io/core/boulder"
)

// Designer is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Designer interface {
	Design(ctx context.Context, args *boulder.Record) (*boulder.Record, error)
}
