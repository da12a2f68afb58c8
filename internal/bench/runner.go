// Package bench measures what sharing one matcher's scratch pool costs a
// group of concurrently searching threads.
//
// A Runner owns a compiled matcher and a thread count and offers two
// strategies over the same workload. Cloned gives every worker a clone of
// the matcher and with it a private pool. Shared gives every worker the same
// clone, so all of them compete for one pool. Only the fan-out/join phase is
// timed; compiling the matcher happens before a Runner exists.
package bench

import (
	"runtime"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/coregx/poolbench/internal/logging"
	"github.com/coregx/poolbench/internal/threadid"
	"github.com/coregx/poolbench/matcher"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one successful run.
type Result struct {
	Strategy   Strategy
	Threads    int
	Iterations int
	// Matches is the number of successful searches over all workers.
	Matches int
	// Elapsed covers spawning the workers through joining the last one.
	Elapsed time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithIterations overrides the number of searches per worker.
func WithIterations(n int) Option {
	return func(r *Runner) {
		r.iterations = n
	}
}

// WithHaystack overrides the haystack every search runs against.
func WithHaystack(haystack string) Option {
	return func(r *Runner) {
		r.haystack = []byte(haystack)
	}
}

// WithLogger sets the logger. The default, also used for a nil log,
// discards everything.
func WithLogger(log *logging.Logger) Option {
	return func(r *Runner) {
		if log == nil {
			r.log = logging.NewNop()
			return
		}
		r.log = log.Named("bench")
	}
}

// WithMetrics records every run into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// Runner executes the workload with either strategy.
type Runner struct {
	re         *matcher.Matcher
	threads    int
	iterations int
	haystack   []byte
	pool       string

	log     *logging.Logger
	metrics *Metrics

	// beforeWork, when set, runs at the start of every worker with the
	// matcher that worker searches with.
	beforeWork func(worker int, re *matcher.Matcher)
}

// NewRunner returns a Runner for re with the given number of worker threads.
// threads and the iteration count must be at least one.
func NewRunner(re *matcher.Matcher, threads int, opts ...Option) (*Runner, error) {
	if re == nil {
		return nil, &ConfigError{Field: "matcher", Err: ErrMissing}
	}
	if threads < 1 {
		return nil, &ConfigError{Field: "threads", Value: strconv.Itoa(threads), Err: ErrNotPositive}
	}
	r := &Runner{
		re:         re,
		threads:    threads,
		iterations: Iterations,
		haystack:   []byte(Haystack),
		pool:       re.Config().Pool.String(),
		log:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.iterations < 1 {
		return nil, &ConfigError{Field: "iterations", Value: strconv.Itoa(r.iterations), Err: ErrNotPositive}
	}
	return r, nil
}

// Threads returns the number of workers each run spawns.
func (r *Runner) Threads() int {
	return r.threads
}

// Run executes strategy s. An unknown strategy fails before any worker is
// spawned.
func (r *Runner) Run(s Strategy) (Result, error) {
	switch s {
	case Cloned:
		return r.Cloned()
	case Shared:
		return r.Shared()
	}
	return Result{}, &UnrecognizedStrategyError{Value: s.String()}
}

// Cloned runs the workload with one matcher clone, and so one scratch pool,
// per worker.
func (r *Runner) Cloned() (Result, error) {
	counts := make([]int, r.threads)
	var g errgroup.Group

	start := time.Now()
	for i := 0; i < r.threads; i++ {
		r.spawn(&g, Cloned, i, r.re.Clone(), counts)
	}
	err := g.Wait()
	elapsed := time.Since(start)

	return r.finish(Cloned, counts, elapsed, err)
}

// Shared runs the workload with a single clone whose scratch pool every
// worker competes for.
func (r *Runner) Shared() (Result, error) {
	counts := make([]int, r.threads)
	var g errgroup.Group

	start := time.Now()
	re := r.re.Clone()
	for i := 0; i < r.threads; i++ {
		r.spawn(&g, Shared, i, re, counts)
	}
	err := g.Wait()
	elapsed := time.Since(start)

	return r.finish(Shared, counts, elapsed, err)
}

// spawn starts worker on its own OS thread. The worker stores its match
// count in counts[worker] and converts a panic into a *WorkerFailure.
func (r *Runner) spawn(g *errgroup.Group, s Strategy, worker int, re *matcher.Matcher, counts []int) {
	g.Go(func() (err error) {
		// Never unlocked: the thread exits with the goroutine, so no
		// worker thread outlives its run.
		runtime.LockOSThread()

		defer func() {
			if v := recover(); v != nil {
				err = &WorkerFailure{Worker: worker, Value: v, Stack: debug.Stack()}
			}
		}()

		if r.beforeWork != nil {
			r.beforeWork(worker, re)
		}
		if ce := r.log.Check(zap.DebugLevel, "worker started"); ce != nil {
			ce.Write(zap.Int("worker", worker), zap.Int("tid", threadid.Get()))
		}

		haystack := r.haystack
		started := time.Now()
		matched := 0
		for i := 0; i < r.iterations; i++ {
			if re.IsMatch(haystack) {
				matched++
			}
		}
		r.metrics.observeWorker(s, r.pool, time.Since(started))

		counts[worker] = matched
		return nil
	})
}

func (r *Runner) finish(s Strategy, counts []int, elapsed time.Duration, err error) (Result, error) {
	if err != nil {
		r.log.Error("run failed", zap.Stringer("strategy", s), zap.Error(err))
		return Result{}, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return Result{}, &WorkloadIntegrityError{Strategy: s, Threads: r.threads, Iterations: r.iterations}
	}

	res := Result{
		Strategy:   s,
		Threads:    r.threads,
		Iterations: r.iterations,
		Matches:    total,
		Elapsed:    elapsed,
	}
	r.metrics.observeRun(res, r.pool)
	r.log.Info("run finished",
		zap.Stringer("strategy", s),
		zap.String("pool", r.pool),
		zap.Int("threads", r.threads),
		zap.Int("iterations", r.iterations),
		zap.Int("matches", total),
		zap.Duration("elapsed", elapsed),
	)
	return res, nil
}
