// Package errors provides sentinel errors and error types for the variant engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidConfig indicates an invalid configuration value or an
	// unknown variant identifier.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidMove indicates a malformed move string.
	ErrInvalidMove = errors.New("invalid move")

	// ErrPredicateSyntax indicates a malformed predicate expression.
	ErrPredicateSyntax = errors.New("predicate syntax error")

	// ErrInvalidLayout indicates a malformed board layout string.
	ErrInvalidLayout = errors.New("invalid board layout")

	// ErrUnknownGame indicates a game identifier that is not being hosted.
	ErrUnknownGame = errors.New("unknown game")

	// ErrGameOver indicates a move submitted after the game ended.
	ErrGameOver = errors.New("game is over")

	// ErrNotYourTurn indicates a move submitted by the side not on turn.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrIllegalMove indicates a well-formed move outside the legal set.
	ErrIllegalMove = errors.New("illegal move")
)

// MoveError wraps errors with move context. It implements the error
// interface and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err  error  // The underlying error
	Move string // The move text that caused the error
	Side string // Side that submitted the move (if known)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Side != "" {
		parts = append(parts, e.Side)
	}
	parts = append(parts, fmt.Sprintf("move %q", e.Move))

	context := strings.Join(parts, " ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error with input location context.
// It's used for predicate expressions and board layouts.
type ParseError struct {
	Err      error  // The underlying error
	Input    string // The text being parsed
	Pos      int    // Byte offset in Input (0-based, -1 if unknown)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Pos >= 0 {
		parts = append(parts, fmt.Sprintf("offset %d", e.Pos))
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
// It forwards to the standard library so callers need a single import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
