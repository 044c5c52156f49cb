package oracle

import "fmt"

// Match identifies a delimiter occurrence in the buffer.
type Match struct {
	// Row is the 0-indexed line number of the delimiter.
	Row int

	// Col is the 0-indexed byte column of the delimiter within its line.
	Col int

	// Text is the delimiter text as it appears in the buffer.
	Text string
}

// String returns a human-readable representation of the match.
func (m Match) String() string {
	return fmt.Sprintf("%q@(%d:%d)", m.Text, m.Row, m.Col)
}

// Oracle answers bracket-balance and span queries against the buffer
// state current at the moment of the keystroke. Implementations must
// answer synchronously; no edit has been applied when they are queried.
type Oracle interface {
	// UnmatchedOpeningBefore returns the most recent opening delimiter of
	// the given pair type before (row, col) that has no corresponding
	// closer between itself and the position.
	UnmatchedOpeningBefore(opening, closing string, row, col int) (Match, bool)

	// UnmatchedClosingAfter returns the nearest closing delimiter of the
	// given pair type after (row, col) that has no corresponding opener
	// between the position and itself.
	UnmatchedClosingAfter(opening, closing string, row, col int) (Match, bool)

	// SpanKindAt returns the name of the syntactic span (for example
	// "string" or "comment") enclosing the position, if any.
	SpanKindAt(row, col int) (string, bool)

	// SyntaxScopeAt returns the fine-grained syntax identity at the
	// position (for example "string.block"), if any. It is used by
	// scope-gated rule predicates.
	SyntaxScopeAt(row, col int) (string, bool)
}

// Null is an Oracle that answers "no" to every query. The engine uses
// it when no index is available; pairing then relies on cursor-local
// text alone.
type Null struct{}

// UnmatchedOpeningBefore implements Oracle.
func (Null) UnmatchedOpeningBefore(opening, closing string, row, col int) (Match, bool) {
	return Match{}, false
}

// UnmatchedClosingAfter implements Oracle.
func (Null) UnmatchedClosingAfter(opening, closing string, row, col int) (Match, bool) {
	return Match{}, false
}

// SpanKindAt implements Oracle.
func (Null) SpanKindAt(row, col int) (string, bool) { return "", false }

// SyntaxScopeAt implements Oracle.
func (Null) SyntaxScopeAt(row, col int) (string, bool) { return "", false }
