package main

import (
	"context"
	"time"

	"lrucache/internal/cache"
)

// reportLoop periodically logs the cache counters until ctx is done.
func reportLoop(ctx context.Context, src cache.StatsSource,
	every time.Duration) {

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logStats("stats", src.Stats())
		}
	}
}

func logStats(prefix string, s cache.Stats) {
	lookups := s.Hits + s.Misses
	hitRate := 0.0
	if lookups > 0 {
		hitRate = float64(s.Hits) / float64(lookups)
	}

	mainLog.Infof("%s: items=%d weight=%d/%d hits=%d misses=%d "+
		"evictions=%d hit_rate=%.3f", prefix, s.Items, s.Weight,
		s.Capacity, s.Hits, s.Misses, s.Evictions, hitRate)
}
