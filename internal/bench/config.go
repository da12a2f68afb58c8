package bench

import (
	"strconv"

	"github.com/coregx/poolbench/matcher"
	"github.com/jessevdk/go-flags"
)

// Environment variables read by LoadConfig.
const (
	EnvThreads     = "REGEX_BENCH_THREADS"
	EnvWhich       = "REGEX_BENCH_WHICH"
	EnvPool        = "REGEX_BENCH_POOL"
	EnvLog         = "REGEX_BENCH_LOG"
	EnvMetricsFile = "REGEX_BENCH_METRICS_FILE"
)

// options mirrors the environment. Values stay strings so that errors can
// quote exactly what was set.
type options struct {
	Threads     string `long:"threads" env:"REGEX_BENCH_THREADS" description:"Number of worker threads"`
	Which       string `long:"which" env:"REGEX_BENCH_WHICH" description:"Strategy: cloned or shared"`
	Pool        string `long:"pool" env:"REGEX_BENCH_POOL" default:"owner" description:"Scratch pool: owner or sync"`
	Log         string `long:"log" env:"REGEX_BENCH_LOG" description:"Log environment: dev or prod; unset disables logging"`
	MetricsFile string `long:"metrics-file" env:"REGEX_BENCH_METRICS_FILE" description:"Write Prometheus metrics to this file after the run"`
}

// Config is the validated run configuration.
type Config struct {
	Threads     int
	Strategy    Strategy
	Pool        matcher.PoolKind
	LogEnv      string
	MetricsFile string
}

// LoadConfig reads the configuration from the environment. Command-line
// arguments are not consulted.
//
// Returns a *ConfigError for a missing or malformed setting and an
// *UnrecognizedStrategyError for an unknown strategy selector.
func LoadConfig() (Config, error) {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	if _, err := parser.ParseArgs([]string{}); err != nil {
		return Config{}, &ConfigError{Field: "environment", Err: err}
	}
	return opts.config()
}

func (o *options) config() (Config, error) {
	var cfg Config

	if o.Threads == "" {
		return Config{}, &ConfigError{Field: EnvThreads, Err: ErrMissing}
	}
	n, err := strconv.Atoi(o.Threads)
	if err != nil {
		return Config{}, &ConfigError{Field: EnvThreads, Value: o.Threads, Err: err}
	}
	if n < 1 {
		return Config{}, &ConfigError{Field: EnvThreads, Value: o.Threads, Err: ErrNotPositive}
	}
	cfg.Threads = n

	if o.Which == "" {
		return Config{}, &ConfigError{Field: EnvWhich, Err: ErrMissing}
	}
	if cfg.Strategy, err = ParseStrategy(o.Which); err != nil {
		return Config{}, err
	}

	if o.Pool == "" {
		cfg.Pool = matcher.PoolOwner
	} else if cfg.Pool, err = matcher.ParsePoolKind(o.Pool); err != nil {
		return Config{}, &ConfigError{Field: EnvPool, Value: o.Pool, Err: err}
	}

	cfg.LogEnv = o.Log
	cfg.MetricsFile = o.MetricsFile
	return cfg, nil
}
