package rules

import (
	"errors"
	"fmt"
)

// Errors returned by rule compilation.
var (
	// ErrEmptyDelimiter indicates a definition with an empty opening or
	// closing delimiter.
	ErrEmptyDelimiter = errors.New("empty delimiter")

	// ErrBadTriggerKey indicates a trigger key that is not exactly one
	// character.
	ErrBadTriggerKey = errors.New("trigger key must be a single character")

	// ErrKeyNotInRule indicates a trigger key that appears in neither
	// the opening delimiter nor as the sole closing character, so no
	// keystroke routed to the rule could ever apply it.
	ErrKeyNotInRule = errors.New("trigger key not locatable in rule delimiters")
)

// DefinitionError describes a malformed rule definition. It carries the
// trigger key and the offending field so a configuration author can
// find and fix the definition.
type DefinitionError struct {
	// Key is the trigger key the definition was registered under.
	Key string

	// Index is the definition's position under the key (0-based).
	Index int

	// Field names the offending field, when one can be identified.
	Field string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("pair %q definition %d: field %s: %v", e.Key, e.Index, e.Field, e.Err)
	}
	return fmt.Sprintf("pair %q definition %d: %v", e.Key, e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *DefinitionError) Unwrap() error { return e.Err }
