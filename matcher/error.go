package matcher

import (
	"errors"
	"fmt"
	"regexp/syntax"
)

// ErrSizeLimit reports a compiled program larger than Config.NFASizeLimit.
var ErrSizeLimit = errors.New("compiled program exceeds size limit")

// CompileError wraps a pattern rejected at compile time.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
// Syntax errors are returned unchanged so messages match the stdlib.
func (e *CompileError) Error() string {
	var syntaxErr *syntax.Error
	if errors.As(e.Err, &syntaxErr) {
		return e.Err.Error()
	}
	return fmt.Sprintf("regexp: Compile(%q): %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
