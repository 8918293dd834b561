package main

import (
	"fmt"
	"time"

	"github.com/btcsuite/btclog"
	"github.com/jessevdk/go-flags"

	"lrucache/internal/cache"
)

const (
	defaultCapacity       = 64
	defaultWeigher        = weigherUnit
	defaultLogLevel       = "info"
	defaultWorkers        = 4
	defaultOps            = 10000
	defaultKeySpace       = 256
	defaultValueSize      = 16
	defaultReportInterval = time.Second

	weigherUnit = "unit"
	weigherLen  = "len"
)

// config defines the configuration options for the driver.
//
// See defaultConfig for the defaults. Values are taken from the config file
// first and command line flags override them.
type config struct {
	ConfigFile string `long:"configfile" description:"Path to an INI configuration file"`

	Capacity int    `long:"capacity" description:"Cache capacity in weight units"`
	Weigher  string `long:"weigher" description:"How values are weighed" choice:"unit" choice:"len"`

	DebugLevel  string `long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
	MetricsAddr string `long:"metricsaddr" description:"Serve Prometheus metrics on this host:port; empty disables"`

	Workers        int           `long:"workers" description:"Concurrent goroutines in the random workload"`
	Ops            int           `long:"ops" description:"Operations per worker"`
	KeySpace       int           `long:"keyspace" description:"Number of distinct keys in the workload"`
	ValueSize      int           `long:"valuesize" description:"Maximum value length in bytes"`
	ReportInterval time.Duration `long:"reportinterval" description:"How often to log cache stats; 0 disables"`
}

// defaultConfig returns a config filled with the defaults.
func defaultConfig() config {
	return config{
		Capacity:       defaultCapacity,
		Weigher:        defaultWeigher,
		DebugLevel:     defaultLogLevel,
		Workers:        defaultWorkers,
		Ops:            defaultOps,
		KeySpace:       defaultKeySpace,
		ValueSize:      defaultValueSize,
		ReportInterval: defaultReportInterval,
	}
}

// loadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
func loadConfig(args []string) (*config, error) {
	preCfg := defaultConfig()
	if _, err := newParser(&preCfg).ParseArgs(args); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if preCfg.ConfigFile != "" {
		parser := newParser(&cfg)
		err := flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("unable to parse config file "+
				"%s: %w", preCfg.ConfigFile, err)
		}
	}

	if _, err := newParser(&cfg).ParseArgs(args); err != nil {
		return nil, err
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func newParser(cfg *config) *flags.Parser {
	return flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
}

// validateConfig checks cfg for values the driver cannot run with.
func validateConfig(cfg *config) error {
	cacheCfg := cache.Config[string]{Capacity: cfg.Capacity}
	if err := cacheCfg.Validate(); err != nil {
		return fmt.Errorf("invalid capacity: %w", err)
	}

	switch cfg.Weigher {
	case weigherUnit, weigherLen:
	default:
		return fmt.Errorf("unknown weigher %q", cfg.Weigher)
	}

	if _, ok := btclog.LevelFromString(cfg.DebugLevel); !ok {
		return fmt.Errorf("invalid debuglevel %q", cfg.DebugLevel)
	}

	switch {
	case cfg.Workers < 0:
		return fmt.Errorf("workers must not be negative, got %d",
			cfg.Workers)
	case cfg.Ops < 0:
		return fmt.Errorf("ops must not be negative, got %d", cfg.Ops)
	case cfg.KeySpace <= 0:
		return fmt.Errorf("keyspace must be positive, got %d",
			cfg.KeySpace)
	case cfg.ValueSize <= 0:
		return fmt.Errorf("valuesize must be positive, got %d",
			cfg.ValueSize)
	case cfg.ReportInterval < 0:
		return fmt.Errorf("reportinterval must not be negative, "+
			"got %v", cfg.ReportInterval)
	}

	return nil
}

// weigher returns the cache weigher selected by cfg.
func (cfg *config) weigher() cache.Weigher[string] {
	if cfg.Weigher == weigherLen {
		return cache.LenWeigher[string]()
	}
	return cache.UnitWeigher[string]()
}
