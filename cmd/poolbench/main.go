/*
Command poolbench measures how much sharing one regex matcher's scratch
pool between threads costs compared with giving each thread its own clone.

It is configured entirely through the environment:

	REGEX_BENCH_THREADS=4 REGEX_BENCH_WHICH=cloned poolbench
	REGEX_BENCH_THREADS=4 REGEX_BENCH_WHICH=shared poolbench

On success it prints one line, the elapsed wall-clock time of the
fan-out/join phase, and exits 0. Any failure is reported on stderr with exit
status 1.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/coregx/poolbench/internal/bench"
	"github.com/coregx/poolbench/internal/logging"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "poolbench: %v\n", err)
		os.Exit(1)
	}
}

func run(stdout io.Writer) error {
	cfg, err := bench.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logging.NewLoggerFromEnv(cfg.LogEnv)
	if err != nil {
		return err
	}
	defer log.AtExit()

	re, err := bench.CompileWorkload(cfg.Pool)
	if err != nil {
		return err
	}
	log.Debug("matcher compiled",
		zap.String("pool", cfg.Pool.String()),
		zap.Int("nfa_states", re.NumStates()),
	)

	opts := []bench.Option{bench.WithLogger(log)}
	var metrics *bench.Metrics
	if cfg.MetricsFile != "" {
		metrics = bench.NewMetrics()
		opts = append(opts, bench.WithMetrics(metrics))
	}

	runner, err := bench.NewRunner(re, cfg.Threads, opts...)
	if err != nil {
		return err
	}
	res, err := runner.Run(cfg.Strategy)
	if err != nil {
		return err
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics to %s: %w", cfg.MetricsFile, err)
		}
	}

	_, err = fmt.Fprintln(stdout, res.Elapsed)
	return err
}
