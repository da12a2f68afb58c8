package bench

import (
	"errors"
	"fmt"
)

var (
	// ErrMissing reports a required setting that was not provided.
	ErrMissing = errors.New("not set")

	// ErrNotPositive reports a count below one.
	ErrNotPositive = errors.New("must be a positive integer")
)

// ConfigError reports a missing or malformed setting.
type ConfigError struct {
	// Field is the environment variable or option name.
	Field string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if errors.Is(e.Err, ErrMissing) {
		return fmt.Sprintf("config: %s %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config: %s=%q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// UnrecognizedStrategyError reports a strategy selector other than "cloned"
// or "shared".
type UnrecognizedStrategyError struct {
	Value string
}

// Error implements the error interface.
func (e *UnrecognizedStrategyError) Error() string {
	return fmt.Sprintf("unrecognized %s=%s", EnvWhich, e.Value)
}

// WorkloadIntegrityError reports a run in which no search matched. The
// fixed workload always matches, so a zero count means the measurement is
// meaningless.
type WorkloadIntegrityError struct {
	Strategy   Strategy
	Threads    int
	Iterations int
}

// Error implements the error interface.
func (e *WorkloadIntegrityError) Error() string {
	return fmt.Sprintf("workload integrity: %s run with %d threads x %d iterations matched nothing",
		e.Strategy, e.Threads, e.Iterations)
}

// WorkerFailure reports a worker that panicked. Its count is never folded
// into a result.
type WorkerFailure struct {
	Worker int
	Value  any
	Stack  []byte
}

// Error implements the error interface.
func (e *WorkerFailure) Error() string {
	return fmt.Sprintf("worker %d failed: %v", e.Worker, e.Value)
}

// Unwrap returns the panic value if it was an error.
func (e *WorkerFailure) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
