package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"lrucache/internal/cache"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		mainLog.Errorf("Shutting down with error: %v", err)
		os.Exit(1)
	}
}

// run builds the cache described by cfg and drives it until the workload
// finishes or a shutdown signal arrives.
func run(cfg *config) error {
	if err := setLogLevels(cfg.DebugLevel); err != nil {
		return err
	}

	// Signal-aware context is the root of ownership for long-lived
	// background work.
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	c := cache.New[string, string](cache.Config[string]{
		Capacity: cfg.Capacity,
		Weigher:  cfg.weigher(),
		Name:     "demo",
	})

	mainLog.Infof("config: capacity=%d weigher=%s workers=%d ops=%d",
		cfg.Capacity, cfg.Weigher, cfg.Workers, cfg.Ops)

	reg := prometheus.NewRegistry()
	collector := cache.NewCollector("lrucache", "demo", c)
	if err := reg.Register(collector); err != nil {
		return fmt.Errorf("unable to register cache collector: %w",
			err)
	}

	runLRUDemo()
	runOversizedDemo()

	// The report loop and the metrics server only stop on shutdown, so
	// they get their own context that is cancelled once the workload is
	// done.
	bgCtx, cancelBg := context.WithCancel(ctx)
	defer cancelBg()

	bg, bgCtx := errgroup.WithContext(bgCtx)
	if cfg.MetricsAddr != "" {
		bg.Go(func() error {
			return serveMetrics(bgCtx, cfg.MetricsAddr, reg)
		})
	}
	if cfg.ReportInterval > 0 {
		bg.Go(func() error {
			reportLoop(bgCtx, c, cfg.ReportInterval)
			return nil
		})
	}

	w := &workload{
		cache:     c,
		workers:   cfg.Workers,
		ops:       cfg.Ops,
		keySpace:  cfg.KeySpace,
		valueSize: cfg.ValueSize,
	}
	start := time.Now()
	werr := w.run(ctx)

	logStats("workload done", c.Stats())
	mainLog.Infof("workload took %v", time.Since(start))

	if cfg.MetricsAddr != "" && werr == nil {
		mainLog.Infof("Serving metrics on %s, press Ctrl+C to exit",
			cfg.MetricsAddr)

		select {
		case <-ctx.Done():
		case <-bgCtx.Done():
		}
	}

	cancelBg()
	if err := bg.Wait(); err != nil {
		return err
	}

	if werr != nil && !errors.Is(werr, context.Canceled) {
		return werr
	}
	return nil
}

// serveMetrics listens on addr and exposes reg over HTTP until ctx is done.
func serveMetrics(ctx context.Context, addr string,
	reg *prometheus.Registry) error {

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics server: %w", err)
	}

	return serveMetricsOn(ctx, lis, reg)
}

// serveMetricsOn serves /metrics on lis until ctx is done. lis is closed when
// serveMetricsOn returns.
func serveMetricsOn(ctx context.Context, lis net.Listener,
	reg *prometheus.Registry) error {

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		reg, promhttp.HandlerOpts{},
	))

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(lis)
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("metrics server: %w", err)

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), 5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}
	return nil
}
