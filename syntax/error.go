package syntax

import (
	"errors"
	"fmt"
)

// Parse errors
var (
	// ErrUnexpectedEndOfInput indicates an atom was required but the pattern ended
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")

	// ErrUnbalancedGroup indicates a '(' without a matching ')', or a stray ')'
	ErrUnbalancedGroup = errors.New("unbalanced group")

	// ErrMissingOperand indicates an atom was required but '|' or ')' was found
	ErrMissingOperand = errors.New("missing operand")

	// ErrEmptyExpression indicates an empty pattern or an empty group "()"
	ErrEmptyExpression = errors.New("empty expression")

	// ErrNestingDepth indicates groups are nested deeper than Config.MaxDepth
	ErrNestingDepth = errors.New("group nesting too deep")
)

// Error describes a failure to parse a pattern.
type Error struct {
	Err     error
	Pos     int    // index of the offending code unit
	Pattern string // the full pattern being parsed
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("error parsing pattern `%s` at unit %d: %v", e.Pattern, e.Pos, e.Err)
}

// Unwrap returns the underlying sentinel error
func (e *Error) Unwrap() error {
	return e.Err
}
