package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"lrucache/internal/cache"
)

func TestWorkloadRun(t *testing.T) {
	c := cache.New[string, string](cache.Config[string]{
		Capacity: 32,
		Weigher:  cache.LenWeigher[string](),
	})

	w := &workload{
		cache:     c,
		workers:   4,
		ops:       500,
		keySpace:  64,
		valueSize: 8,
	}
	require.NoError(t, w.run(context.Background()))

	s := c.Stats()
	require.Positive(t, s.Items)
	require.LessOrEqual(t, s.Weight, 32)
	require.Equal(t, c.TotalWeight(), s.Weight)
}

func TestWorkloadCancelled(t *testing.T) {
	c := cache.New[string, string](cache.Config[string]{Capacity: 4})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &workload{
		cache:     c,
		workers:   2,
		ops:       1000,
		keySpace:  8,
		valueSize: 4,
	}
	require.ErrorIs(t, w.run(ctx), context.Canceled)
}

func TestReportLoopStops(t *testing.T) {
	c := cache.New[string, string](cache.Config[string]{Capacity: 4})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reportLoop(ctx, c, time.Millisecond)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("report loop did not stop")
	}
}

func TestRunDemoWorkload(t *testing.T) {
	cfg := defaultConfig()
	cfg.DebugLevel = "off"
	cfg.Ops = 200
	cfg.ReportInterval = 0

	require.NoError(t, run(&cfg))
}

func TestServeMetrics(t *testing.T) {
	c := cache.New[string, string](cache.Config[string]{Capacity: 4})
	c.Set("a", "A")

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(
		cache.NewCollector("lrucache", "demo", c),
	))

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- serveMetricsOn(ctx, lis, reg)
	}()

	resp, err := http.Get("http://" + lis.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `lrucache_items{cache="demo"} 1`)

	cancel()
	select {
	case err := <-errChan:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("metrics server did not shut down")
	}
}

func TestServeMetricsBadAddress(t *testing.T) {
	err := serveMetrics(
		context.Background(), "256.0.0.1:1", prometheus.NewRegistry(),
	)
	require.ErrorContains(t, err, "metrics server")
}
