package span

import "fmt"

// Kind distinguishes the two ends of a token occurrence.
type Kind uint8

const (
	// Opening marks the opening end of a delimiter or span.
	Opening Kind = iota

	// Closing marks the closing end.
	Closing
)

// String returns the kind name.
func (k Kind) String() string {
	if k == Closing {
		return "closing"
	}
	return "opening"
}

// Token describes a delimiter pair or a span as defined by a language.
// Tokens are compared by value when pairing openers with closers.
type Token struct {
	// Opening is the opening text. Never empty for a valid token.
	Opening string

	// Closing is the closing text. Empty for spans that run to the end
	// of the line (line comments).
	Closing string

	// Name is the span name ("string", "comment", "math"); empty for
	// plain delimiters.
	Name string

	// Block marks spans that persist across line breaks.
	Block bool
}

// IsDelimiter reports whether the token is a plain delimiter pair
// rather than a named span.
func (t Token) IsDelimiter() bool { return t.Name == "" }

// IsZero reports whether the token is the zero value, used as the
// "no span open" carry-over state.
func (t Token) IsZero() bool { return t.Opening == "" }

// Scope returns the fine-grained identity of the span: the name
// qualified by its form, for example "comment.line" or "string.block".
// Delimiters have no scope.
func (t Token) Scope() string {
	switch {
	case t.Name == "":
		return ""
	case t.Closing == "":
		return t.Name + ".line"
	case t.Block:
		return t.Name + ".block"
	default:
		return t.Name
	}
}

// Match is one token occurrence on a line.
type Match struct {
	// Token identifies what matched.
	Token Token

	// Col is the byte column of the occurrence within its line.
	Col int

	// Kind tells which end of the token this is.
	Kind Kind

	// Height is the nesting depth assigned when the occurrence paired
	// with its counterpart. Meaningful only when Matched is true.
	Height int

	// Matched reports whether the occurrence paired up.
	Matched bool
}

// Text returns the occurrence's literal text.
func (m Match) Text() string {
	if m.Kind == Closing && m.Token.Closing != "" {
		return m.Token.Closing
	}
	return m.Token.Opening
}

// Len returns the occurrence's length in bytes.
func (m Match) Len() int { return len(m.Text()) }

// String returns a debug representation of the match.
func (m Match) String() string {
	h := "unmatched"
	if m.Matched {
		h = fmt.Sprintf("height=%d", m.Height)
	}
	return fmt.Sprintf("%s %q@%d (%s)", m.Kind, m.Text(), m.Col, h)
}

// LineMatch is a Match together with its line number.
type LineMatch struct {
	Match

	// Row is the 0-indexed line the match occurs on.
	Row int
}
