package mention

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is returned when a mention that passed type filtering carries a
	// missing or malformed identifier. The whole parse is aborted.
	ErrParse = errors.New("invalid mention identifier format")

	// ErrInvalidPayload is returned by ParseJSON when the body is not valid JSON.
	ErrInvalidPayload = errors.New("invalid mentions payload")

	// ErrTooManyMentions is returned by EnsureAtMostOne when more than one
	// mention of the queried type is present.
	ErrTooManyMentions = errors.New("multiple mentions of the same type; disambiguation required")

	// ErrNilValidator is returned when ParseAndValidate is called without a validator.
	ErrNilValidator = errors.New("mention validator is nil")

	// ErrNilIDParser is returned when ParseWith is called without an identifier parser.
	ErrNilIDParser = errors.New("mention identifier parser is nil")

	// ErrInvalidID is returned by the bundled IDParser implementations.
	// Parse never surfaces it directly; it is replaced by a ParseError.
	ErrInvalidID = errors.New("invalid identifier")
)

const (
	reasonMissingID = "missing identifier"
	reasonInvalidID = "invalid identifier format"
)

// ParseError describes the mention that aborted a parse.
// It never carries the raw identifier value.
type ParseError struct {
	// Index is the position of the offending element in the mentions list.
	Index  int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mention %d: %s", e.Index, e.Reason)
}

// Unwrap lets errors.Is(err, ErrParse) match.
func (e *ParseError) Unwrap() error {
	return ErrParse
}
