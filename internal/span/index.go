package span

import (
	"strings"

	"github.com/dshills/autopair/internal/oracle"
)

// Index is a full parse of a buffer snapshot: per-line token matches
// with nesting heights, per-line carry-over states, and indent levels.
// It implements oracle.Oracle. An Index is immutable; reparse to
// refresh it after edits.
type Index struct {
	lang    Language
	matches [][]Match
	states  []Token
	indents []int
}

// Option configures parsing.
type Option func(*parseConfig)

type parseConfig struct {
	tabWidth int
}

// WithTabWidth sets the tab width used for indent levels. The default
// is 4.
func WithTabWidth(w int) Option {
	return func(c *parseConfig) {
		if w > 0 {
			c.tabWidth = w
		}
	}
}

// Parse lexes the given lines under the named language and assigns
// pairing heights. Unknown language names fall back to a bracket-only
// definition.
func Parse(language string, lines []string, opts ...Option) *Index {
	cfg := parseConfig{tabWidth: 4}
	for _, opt := range opts {
		opt(&cfg)
	}

	lang := Lookup(language)
	matches, states := lex(lang, lines)
	assignHeights(matches)

	return &Index{
		lang:    lang,
		matches: matches,
		states:  states,
		indents: IndentLevels(lines, cfg.tabWidth),
	}
}

// ParseString is a convenience wrapper splitting text on line breaks.
func ParseString(language, text string, opts ...Option) *Index {
	return Parse(language, strings.Split(text, "\n"), opts...)
}

// Language returns the language definition the index was parsed with.
func (x *Index) Language() Language { return x.lang }

// Lines returns the number of indexed lines.
func (x *Index) Lines() int { return len(x.matches) }

// LineMatches returns the token matches of one line, or nil for an
// out-of-range line. The returned slice must not be modified.
func (x *Index) LineMatches(row int) []Match {
	if row < 0 || row >= len(x.matches) {
		return nil
	}
	return x.matches[row]
}

// IndentLevel returns the indent level of a line in spaces, or 0 for
// an out-of-range line.
func (x *Index) IndentLevel(row int) int {
	if row < 0 || row >= len(x.indents) {
		return 0
	}
	return x.indents[row]
}

// fromPosition walks matches at and after (row, col) in buffer order,
// stopping when fn returns false.
func (x *Index) fromPosition(row, col int, fn func(LineMatch) bool) {
	if row < 0 {
		row, col = 0, 0
	}
	for r := row; r < len(x.matches); r++ {
		for _, m := range x.matches[r] {
			if r == row && m.Col < col {
				continue
			}
			if !fn(LineMatch{Match: m, Row: r}) {
				return
			}
		}
	}
}

// toPosition walks matches strictly before (row, col) in reverse buffer
// order, stopping when fn returns false.
func (x *Index) toPosition(row, col int, fn func(LineMatch) bool) {
	if row >= len(x.matches) {
		row, col = len(x.matches)-1, int(^uint(0)>>1)
	}
	for r := row; r >= 0; r-- {
		line := x.matches[r]
		for i := len(line) - 1; i >= 0; i-- {
			m := line[i]
			if r == row && m.Col >= col {
				continue
			}
			if !fn(LineMatch{Match: m, Row: r}) {
				return
			}
		}
	}
}

// StackHeightAt returns the bracket nesting depth at a position: the
// height implied by the nearest paired match after it, or before it
// when nothing paired follows.
func (x *Index) StackHeightAt(row, col int) int {
	height := 0
	found := false

	x.fromPosition(row, col, func(m LineMatch) bool {
		if !m.Matched {
			return true
		}
		height = m.Height
		if m.Kind == Closing {
			height++
		}
		found = true
		return false
	})
	if found {
		return height
	}

	x.toPosition(row, col, func(m LineMatch) bool {
		if !m.Matched {
			return true
		}
		height = m.Height
		if m.Kind == Opening {
			height++
		}
		found = true
		return false
	})
	if found {
		return height
	}
	return 0
}

// UnmatchedOpeningBefore returns the most recent unmatched opening
// delimiter of the given pair type before (row, col) that an inserted
// closer at the position would genuinely close. Walking backward, a
// paired match at a height above the cursor's enclosing scope ends the
// search unless it is an opener of the same pair type, in which case
// the scope widens to it.
func (x *Index) UnmatchedOpeningBefore(opening, closing string, row, col int) (oracle.Match, bool) {
	cursor := x.StackHeightAt(row, col)
	lowest := cursor
	current := cursor

	var result oracle.Match
	found := false

	x.toPosition(row, col, func(m LineMatch) bool {
		if !m.Token.IsDelimiter() {
			return true
		}
		if m.Matched {
			if m.Height < lowest {
				if m.Kind == Opening && m.Token.Opening == opening && m.Token.Closing == closing {
					lowest = m.Height
				} else {
					return false
				}
			}
			current = m.Height
			if m.Kind == Closing {
				current++
			}
		}
		if m.Kind == Opening && !m.Matched && current == lowest &&
			m.Token.Opening == opening && m.Token.Closing == closing {
			result = oracle.Match{Row: m.Row, Col: m.Col, Text: m.Text()}
			found = true
			return false
		}
		return true
	})

	return result, found
}

// UnmatchedClosingAfter returns the nearest unmatched closing delimiter
// of the given pair type after (row, col), mirroring
// UnmatchedOpeningBefore in the forward direction.
func (x *Index) UnmatchedClosingAfter(opening, closing string, row, col int) (oracle.Match, bool) {
	cursor := x.StackHeightAt(row, col)
	lowest := cursor
	current := cursor

	var result oracle.Match
	found := false

	x.fromPosition(row, col, func(m LineMatch) bool {
		if !m.Token.IsDelimiter() {
			return true
		}
		if m.Matched {
			if m.Height < lowest {
				if m.Kind == Closing && m.Token.Opening == opening && m.Token.Closing == closing {
					lowest = m.Height
				} else {
					return false
				}
			}
			current = m.Height
			if m.Kind == Opening {
				current++
			}
		}
		if m.Kind == Closing && !m.Matched && current == lowest &&
			m.Token.Opening == opening && m.Token.Closing == closing {
			result = oracle.Match{Row: m.Row, Col: m.Col, Text: m.Text()}
			found = true
			return false
		}
		return true
	})

	return result, found
}

// spanAt returns the span token enclosing a position, if any. Spans
// opened on the cursor line before the column win; otherwise the state
// carried in from the previous line applies, unless that span closes
// on the cursor line before the column.
func (x *Index) spanAt(row, col int) (Token, bool) {
	if row < 0 || row >= len(x.matches) {
		return Token{}, false
	}

	line := x.matches[row]
	for i := len(line) - 1; i >= 0; i-- {
		m := line[i]
		if m.Kind != Opening || m.Token.IsDelimiter() || m.Col > col {
			continue
		}
		end := x.spanClosingOnLine(row, m)
		if end == nil || end.Col+end.Len() > col {
			return m.Token, true
		}
		// This span ends before the position; earlier spans on the
		// line cannot enclose it either unless nested, which flat
		// spans never are. Keep scanning for robustness.
	}

	var carried Token
	if row > 0 {
		carried = x.states[row-1]
	}
	if carried.IsZero() {
		return Token{}, false
	}
	// The carried-in span may close on this line before the position.
	for _, m := range line {
		if m.Kind == Closing && m.Token == carried {
			if m.Col+m.Len() <= col {
				return Token{}, false
			}
			break
		}
	}
	return carried, true
}

// spanClosingOnLine finds the closing match pairing a span opening on
// the same line, or nil when the span overflows the line.
func (x *Index) spanClosingOnLine(row int, opening Match) *Match {
	for _, m := range x.matches[row] {
		if m.Kind == Closing && m.Col > opening.Col && m.Token == opening.Token &&
			m.Matched == opening.Matched && m.Height == opening.Height {
			return &m
		}
	}
	return nil
}

// SpanKindAt returns the name of the span enclosing the position.
func (x *Index) SpanKindAt(row, col int) (string, bool) {
	tok, ok := x.spanAt(row, col)
	if !ok {
		return "", false
	}
	return tok.Name, true
}

// SyntaxScopeAt returns the qualified span identity at the position,
// for example "comment.line" or "string.block".
func (x *Index) SyntaxScopeAt(row, col int) (string, bool) {
	tok, ok := x.spanAt(row, col)
	if !ok {
		return "", false
	}
	return tok.Scope(), true
}

// MatchAt returns the match covering a position, if any.
func (x *Index) MatchAt(row, col int) (Match, bool) {
	for _, m := range x.LineMatches(row) {
		if col >= m.Col && col < m.Col+m.Len() {
			return m, true
		}
	}
	return Match{}, false
}

// MatchPair returns the opening and closing matches of the pair whose
// either end covers the position. Unmatched delimiters have no pair.
func (x *Index) MatchPair(row, col int) (open, close LineMatch, ok bool) {
	at, found := x.MatchAt(row, col)
	if !found || !at.Matched {
		return LineMatch{}, LineMatch{}, false
	}

	self := LineMatch{Match: at, Row: row}
	if at.Kind == Opening {
		x.fromPosition(row, at.Col+1, func(m LineMatch) bool {
			if m.Kind == Closing && m.Token == at.Token && m.Matched && m.Height == at.Height {
				open, close, ok = self, m, true
				return false
			}
			return true
		})
	} else {
		x.toPosition(row, at.Col, func(m LineMatch) bool {
			if m.Kind == Opening && m.Token == at.Token && m.Matched && m.Height == at.Height {
				open, close, ok = m, self, true
				return false
			}
			return true
		})
	}
	return open, close, ok
}
