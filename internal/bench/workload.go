package bench

import "github.com/coregx/poolbench/matcher"

// The fixed workload. The empty pattern matches every haystack, so each
// search is about as cheap as a search can be and the per-search cost is
// dominated by getting scratch space.
const (
	Pattern    = ""
	Haystack   = "ZQZQZQZQ"
	Iterations = 100_000
)

// DFASizeLimit is the lazy DFA budget the workload is compiled with.
const DFASizeLimit = 50 << 20

// WorkloadConfig returns the matcher configuration for the workload:
// Unicode off, lazy DFA sized to DFASizeLimit, scratch pools of kind pool.
func WorkloadConfig(pool matcher.PoolKind) matcher.Config {
	config := matcher.DefaultConfig().WithDFASizeLimit(DFASizeLimit)
	config.Unicode = false
	config.Pool = pool
	return config
}

// CompileWorkload compiles Pattern with WorkloadConfig(pool).
func CompileWorkload(pool matcher.PoolKind) (*matcher.Matcher, error) {
	return matcher.Compile(Pattern, WorkloadConfig(pool))
}
