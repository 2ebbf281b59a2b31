// Package errors provides sentinel errors and error types for the connect4 engine.
// Every failure in the engine is a precondition violation by the caller; the
// sentinels below name them, and the structured types carry the board context
// that produced them while still supporting errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidMove indicates a play into a full column or a column out of range.
	ErrInvalidMove = errors.New("invalid move")

	// ErrEmptyHistory indicates an undo with no plies played.
	ErrEmptyHistory = errors.New("empty move history")

	// ErrNoLegalMoves indicates a search requested on a position without valid moves.
	ErrNoLegalMoves = errors.New("no legal moves")

	// ErrInvalidDepth indicates a search depth that is not positive.
	ErrInvalidDepth = errors.New("invalid search depth")

	// ErrSearchAborted indicates a search stopped by its context before completion.
	ErrSearchAborted = errors.New("search aborted")

	// ErrInvalidNotation indicates a malformed move string.
	ErrInvalidNotation = errors.New("invalid move notation")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGameOver indicates a move requested after the game has finished.
	ErrGameOver = errors.New("game is over")

	// ErrRecordNotFound indicates a stored game or position that does not exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicatePosition indicates a position that was already seen in a batch.
	ErrDuplicatePosition = errors.New("duplicate position")
)

// MoveError wraps errors with board context: the column that was requested
// and the ply at which it was requested.
type MoveError struct {
	Err    error  // The underlying error
	Column int    // 0-based column requested
	Ply    int    // Number of plies played when the move was requested
	Moves  string // Position in digit notation, if known
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	parts := []string{fmt.Sprintf("column %d", e.Column), fmt.Sprintf("ply %d", e.Ply)}
	if e.Moves != "" {
		parts = append(parts, fmt.Sprintf("position %q", e.Moves))
	}

	context := strings.Join(parts, ", ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a notation error with its location in the input.
type ParseError struct {
	Err    error  // The underlying error
	Input  string // The text being parsed
	Offset int    // 0-based byte offset of the offending character (-1 if unknown)
	Got    string // What was found instead
	Line   int    // Line number in a batch file (0 if not applicable)
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}
	if e.Offset >= 0 && e.Input != "" {
		parts = append(parts, fmt.Sprintf("offset %d in %q", e.Offset, e.Input))
	}
	if e.Got != "" {
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

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
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
