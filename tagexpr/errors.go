package tagexpr

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyClause indicates a clause that is blank after trimming
	ErrEmptyClause = errors.New("empty clause")

	// ErrEmptyTerm indicates a term with no tag name
	ErrEmptyTerm = errors.New("empty term")

	// ErrInvalidName indicates a tag name containing whitespace
	ErrInvalidName = errors.New("invalid tag name")

	// ErrInvalidLimit indicates a ':' suffix that is not a non-negative integer
	ErrInvalidLimit = errors.New("invalid limit")
)

// MalformedTermError reports a single tag token that could not be parsed.
type MalformedTermError struct {
	Raw    string // token as supplied, before trimming
	Reason error  // one of ErrEmptyTerm, ErrInvalidName, ErrInvalidLimit
}

func (e *MalformedTermError) Error() string {
	return fmt.Sprintf("malformed term %q: %v", e.Raw, e.Reason)
}

func (e *MalformedTermError) Unwrap() error {
	return e.Reason
}

// MalformedClauseError reports a clause string that could not be compiled.
// Err is either ErrEmptyClause or the *MalformedTermError of the offending token.
type MalformedClauseError struct {
	Index int // position in the compiled clause list, -1 when parsed standalone
	Raw   string
	Err   error
}

func (e *MalformedClauseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("malformed clause #%d %q: %v", e.Index+1, e.Raw, e.Err)
	}
	return fmt.Sprintf("malformed clause %q: %v", e.Raw, e.Err)
}

func (e *MalformedClauseError) Unwrap() error {
	return e.Err
}
