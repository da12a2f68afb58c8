package matcher

import (
	"fmt"
	"strings"
)

// PoolKind selects the scratch cache implementation backing a Matcher.
type PoolKind uint8

const (
	// PoolOwner uses pool.Pool: lock-free owner slot, mutex for everyone else.
	PoolOwner PoolKind = iota
	// PoolSync uses pool.SyncPool, which is backed by sync.Pool.
	PoolSync
)

// String returns the name accepted by ParsePoolKind.
func (k PoolKind) String() string {
	switch k {
	case PoolOwner:
		return "owner"
	case PoolSync:
		return "sync"
	default:
		return fmt.Sprintf("PoolKind(%d)", uint8(k))
	}
}

// ParsePoolKind parses "owner" or "sync". Matching is case-insensitive.
func ParsePoolKind(s string) (PoolKind, error) {
	switch strings.ToLower(s) {
	case "owner":
		return PoolOwner, nil
	case "sync":
		return PoolSync, nil
	}
	return 0, &ConfigError{
		Field:   "Pool",
		Message: fmt.Sprintf("unknown pool kind %q (want owner or sync)", s),
	}
}

// dfaBytesPerState approximates the memory of one lazy DFA state with a
// full 256-entry transition table.
const dfaBytesPerState = 256

// Config controls compilation and the search-time resources of a Matcher.
//
// Example:
//
//	config := matcher.DefaultConfig()
//	config.Unicode = false
//	config = config.WithDFASizeLimit(50 << 20)
//	m, err := matcher.Compile("", config)
type Config struct {
	// Unicode enables Unicode character classes (\pL and friends) and makes
	// the NFA respect UTF-8 boundaries for empty matches.
	// Default: true
	Unicode bool

	// CaseInsensitive compiles the pattern as if it started with (?i).
	// Default: false
	CaseInsensitive bool

	// EnableDFA gives every scratch space its own lazy DFA. Haystacks too
	// long for the bounded backtracker are searched with it.
	// Default: true
	EnableDFA bool

	// MaxDFAStates caps the state cache of each lazy DFA.
	// Default: 10000
	MaxDFAStates uint32

	// EnablePrefilter builds an Aho-Corasick automaton for patterns that
	// are a literal or an alternation of literals. Haystacks it rejects
	// never reach the scratch pool.
	// Default: true
	EnablePrefilter bool

	// NFASizeLimit is the maximum number of NFA states a compiled pattern
	// may have.
	// Default: 1 << 20
	NFASizeLimit int

	// MaxRecursionDepth limits recursion during NFA compilation.
	// Default: 100
	MaxRecursionDepth int

	// Pool selects the scratch cache implementation.
	// Default: PoolOwner
	Pool PoolKind
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Unicode:           true,
		CaseInsensitive:   false,
		EnableDFA:         true,
		MaxDFAStates:      10_000,
		EnablePrefilter:   true,
		NFASizeLimit:      1 << 20,
		MaxRecursionDepth: 100,
		Pool:              PoolOwner,
	}
}

// WithDFASizeLimit returns a copy of c whose lazy DFA state cap corresponds
// to roughly bytes of transition tables, clamped to [1, 1,000,000] states.
func (c Config) WithDFASizeLimit(bytes int) Config {
	states := bytes / dfaBytesPerState
	switch {
	case states < 1:
		states = 1
	case states > 1_000_000:
		states = 1_000_000
	}
	c.MaxDFAStates = uint32(states)
	return c
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MaxDFAStates: 1 to 1,000,000 (checked only when EnableDFA is set)
//   - NFASizeLimit: at least 1
//   - MaxRecursionDepth: 10 to 1,000
//   - Pool: PoolOwner or PoolSync
func (c Config) Validate() error {
	if c.EnableDFA && (c.MaxDFAStates < 1 || c.MaxDFAStates > 1_000_000) {
		return &ConfigError{
			Field:   "MaxDFAStates",
			Message: "must be between 1 and 1,000,000",
		}
	}
	if c.NFASizeLimit < 1 {
		return &ConfigError{
			Field:   "NFASizeLimit",
			Message: "must be at least 1",
		}
	}
	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 1_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 10 and 1,000",
		}
	}
	if c.Pool != PoolOwner && c.Pool != PoolSync {
		return &ConfigError{
			Field:   "Pool",
			Message: "unknown pool kind " + c.Pool.String(),
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "regexp: invalid config: " + e.Field + ": " + e.Message
}
