// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"io"
	"sync"

	"p3io/core/boulder"
)

// Config controls the design pipeline.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// Result is one design. Err holds a per-record engine failure; Out may
// still carry the engine's partial output (e.g. PRIMER_ERROR).
type Result struct {
	Index int // 0-based position in the input stream
	Args  *boulder.Record
	Out   *boulder.Record
	Err   error
}

// ForEachResult pulls records from next until io.EOF, designs them on
// cfg.Threads workers and calls visit once per record in input order.
// Per-record engine errors go to visit in Result.Err; an error from next
// or visit stops the run and is returned (including context cancellation).
func ForEachResult(
	ctx context.Context,
	cfg Config,
	next func() (*boulder.Record, error),
	d Designer,
	visit func(Result) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		idx  int
		args *boulder.Record
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan Result, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					out, err := d.Design(ctx, j.args)
					select {
					case results <- Result{Index: j.idx, Args: j.args, Out: out, Err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: release results in input order.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]Result)
		want := 0
		for r := range results {
			if cerr != nil {
				continue
			}
			pending[r.Index] = r
			for {
				nr, ok := pending[want]
				if !ok {
					break
				}
				delete(pending, want)
				want++
				if err := visit(nr); err != nil {
					cerr = err
					cancel()
					break
				}
			}
		}
	}()

	// Feed work
	var ferr error
feed:
	for i := 0; ; i++ {
		rec, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			ferr = err
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{idx: i, args: rec}:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cerr != nil {
		return cerr
	}
	if ferr != nil {
		return ferr
	}
	return parent.Err()
}

// SliceSource adapts a slice to the next func ForEachResult expects.
func SliceSource(recs []*boulder.Record) func() (*boulder.Record, error) {
	i := 0
	return func() (*boulder.Record, error) {
		if i >= len(recs) {
			return nil, io.EOF
		}
		i++
		return recs[i-1], nil
	}
}
