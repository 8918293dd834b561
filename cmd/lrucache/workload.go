package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"golang.org/x/sync/errgroup"

	"lrucache/internal/cache"
)

// workload drives one shared cache from several goroutines with a random mix
// of reads and writes.
type workload struct {
	cache     *cache.Cache[string, string]
	workers   int
	ops       int
	keySpace  int
	valueSize int
}

// run starts the workers and waits for them. It returns ctx.Err() if the
// context is cancelled before every worker is done.
func (w *workload) run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for id := 0; id < w.workers; id++ {
		eg.Go(func() error {
			return w.worker(ctx, id)
		})
	}
	return eg.Wait()
}

func (w *workload) worker(ctx context.Context, id int) error {
	rng := rand.New(rand.NewPCG(uint64(id), uint64(w.ops)))

	for i := 0; i < w.ops; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		key := fmt.Sprintf("key-%d", rng.IntN(w.keySpace))

		// Reads dominate, as they do for a memoization layer.
		if rng.IntN(4) == 0 {
			size := 1 + rng.IntN(w.valueSize)
			w.cache.Set(key, strings.Repeat("v", size))
			continue
		}
		_, _ = w.cache.Get(key)
	}

	return nil
}
