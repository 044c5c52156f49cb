package editctx

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/autopair/internal/oracle"
)

// Mode identifies how the host editor is interpreting input.
type Mode uint8

const (
	// ModeInsert is ordinary text insertion.
	ModeInsert Mode = iota

	// ModeCommand is command-line input (for example a ":" prompt).
	ModeCommand
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "insert"
	case ModeCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Context is an immutable snapshot of editor state at the moment of a
// keystroke. Col is a byte offset within Line; the cursor sits between
// Line[:Col] and Line[Col:].
type Context struct {
	row      int
	col      int
	line     string
	mode     Mode
	language string
	oracle   oracle.Oracle

	// Memoized derived fields. Each is computed at most once.
	charUnder     rune
	charUnderOK   bool
	charUnderDone bool

	lastNonBlank     int
	lastNonBlankDone bool

	escaped     bool
	escapedDone bool

	spanKind     string
	spanKindOK   bool
	spanKindDone bool

	scope     string
	scopeOK   bool
	scopeDone bool
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithMode sets the editor mode. The default is ModeInsert.
func WithMode(m Mode) Option {
	return func(c *Context) { c.mode = m }
}

// WithLanguage sets the buffer's language (filetype) name.
func WithLanguage(lang string) Option {
	return func(c *Context) { c.language = lang }
}

// WithOracle sets the span/match oracle consulted for balance and
// scope queries. The default answers "no" to everything.
func WithOracle(o oracle.Oracle) Option {
	return func(c *Context) { c.oracle = o }
}

// New creates a Context for the cursor at (row, col) on the given line.
// col is clamped to [0, len(line)].
func New(line string, row, col int, opts ...Option) *Context {
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	c := &Context{
		row:    row,
		col:    col,
		line:   line,
		oracle: oracle.Null{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.oracle == nil {
		c.oracle = oracle.Null{}
	}
	return c
}

// Row returns the 0-indexed cursor line.
func (c *Context) Row() int { return c.row }

// Col returns the cursor's byte column within the line.
func (c *Context) Col() int { return c.col }

// Line returns the full text of the cursor line.
func (c *Context) Line() string { return c.line }

// Mode returns the editor mode at the time of the keystroke.
func (c *Context) Mode() Mode { return c.mode }

// Language returns the buffer's language name, or "" when unknown.
func (c *Context) Language() string { return c.language }

// Oracle returns the span/match oracle. It is never nil.
func (c *Context) Oracle() oracle.Oracle { return c.oracle }

// TextBefore returns up to n bytes of line text immediately before the
// cursor. A negative n returns the whole prefix.
func (c *Context) TextBefore(n int) string {
	if n < 0 || n > c.col {
		return c.line[:c.col]
	}
	return c.line[c.col-n : c.col]
}

// TextAfter returns up to n bytes of line text at and after the cursor.
// A negative n returns the whole suffix.
func (c *Context) TextAfter(n int) string {
	rest := c.line[c.col:]
	if n < 0 || n > len(rest) {
		return rest
	}
	return rest[:n]
}

// MatchesBefore reports whether the text immediately before the cursor
// is exactly s.
func (c *Context) MatchesBefore(s string) bool {
	return strings.HasSuffix(c.line[:c.col], s)
}

// MatchesAfter reports whether the text immediately after the cursor
// is exactly s.
func (c *Context) MatchesAfter(s string) bool {
	return strings.HasPrefix(c.line[c.col:], s)
}

// MatchesBeforePadded reports whether s precedes the cursor with exactly
// one space of padding between s and the cursor. Used for padded-pair
// detection.
func (c *Context) MatchesBeforePadded(s string) bool {
	return c.MatchesBefore(s + " ")
}

// MatchesAfterPadded reports whether s follows the cursor with exactly
// one space of padding between the cursor and s.
func (c *Context) MatchesAfterPadded(s string) bool {
	return c.MatchesAfter(" " + s)
}

// CharUnder returns the character directly under (after) the cursor.
// ok is false at end of line.
func (c *Context) CharUnder() (r rune, ok bool) {
	if !c.charUnderDone {
		c.charUnderDone = true
		if c.col < len(c.line) {
			c.charUnder, _ = utf8.DecodeRuneInString(c.line[c.col:])
			c.charUnderOK = true
		}
	}
	return c.charUnder, c.charUnderOK
}

// LastNonBlankCol returns the byte column of the nearest non-whitespace
// character before the cursor, or -1 when only whitespace (or nothing)
// precedes it.
func (c *Context) LastNonBlankCol() int {
	if !c.lastNonBlankDone {
		c.lastNonBlankDone = true
		c.lastNonBlank = -1
		for i := c.col - 1; i >= 0; i-- {
			if c.line[i] != ' ' && c.line[i] != '\t' {
				c.lastNonBlank = i
				break
			}
		}
	}
	return c.lastNonBlank
}

// Escaped reports whether the cursor position is escaped: an odd number
// of contiguous backslashes immediately precedes it. A backslash that is
// itself escaped does not escape the next character, which the parity
// of the run accounts for.
func (c *Context) Escaped() bool {
	if !c.escapedDone {
		c.escapedDone = true
		n := 0
		for i := c.col - 1; i >= 0 && c.line[i] == '\\'; i-- {
			n++
		}
		c.escaped = n%2 == 1
	}
	return c.escaped
}

// SpanKind returns the name of the syntactic span enclosing the cursor,
// as reported by the oracle.
func (c *Context) SpanKind() (string, bool) {
	if !c.spanKindDone {
		c.spanKindDone = true
		c.spanKind, c.spanKindOK = c.oracle.SpanKindAt(c.row, c.col)
	}
	return c.spanKind, c.spanKindOK
}

// SyntaxScope returns the fine-grained syntax identity at the cursor,
// as reported by the oracle.
func (c *Context) SyntaxScope() (string, bool) {
	if !c.scopeDone {
		c.scopeDone = true
		c.scope, c.scopeOK = c.oracle.SyntaxScopeAt(c.row, c.col)
	}
	return c.scope, c.scopeOK
}
