package bench

import "fmt"

// Strategy selects how workers get at the matcher.
type Strategy uint8

const (
	// Cloned hands every worker its own clone, and therefore its own
	// scratch pool.
	Cloned Strategy = iota + 1
	// Shared hands every worker the same matcher and scratch pool.
	Shared
)

// String returns the selector value for s.
func (s Strategy) String() string {
	switch s {
	case Cloned:
		return "cloned"
	case Shared:
		return "shared"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// ParseStrategy maps a selector value to a Strategy. Matching is exact.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "cloned":
		return Cloned, nil
	case "shared":
		return Shared, nil
	}
	return 0, &UnrecognizedStrategyError{Value: s}
}
