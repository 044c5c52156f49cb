package span

import "strings"

// lex scans the lines of a buffer and returns the token matches found
// on each line plus each line's carry-over state: the block span (zero
// Token if none) still open when the line ends. Content inside a span
// is opaque; no delimiters are recorded there. A backslash escapes the
// character after it, and an escaped backslash escapes nothing.
func lex(lang Language, lines []string) (matches [][]Match, states []Token) {
	matches = make([][]Match, 0, len(lines))
	states = make([]Token, 0, len(lines))

	var open Token // span currently open, carried across lines when Block

	for _, line := range lines {
		lineMatches := []Match{}

		pos := 0
		if !open.IsZero() {
			end, closed := scanSpan(line, 0, open)
			if closed {
				lineMatches = append(lineMatches, Match{
					Token: open,
					Col:   end - len(open.Closing),
					Kind:  Closing,
				})
				open = Token{}
			}
			pos = end
		}

		escaped := false
		for pos < len(line) && open.IsZero() {
			if escaped {
				escaped = false
				pos++
				continue
			}
			if line[pos] == '\\' {
				escaped = true
				pos++
				continue
			}

			if def, ok := spanOpenerAt(lang, line, pos); ok {
				tok := Token{Opening: def.Open, Closing: def.Close, Name: def.Name, Block: def.Block}
				lineMatches = append(lineMatches, Match{Token: tok, Col: pos, Kind: Opening})
				start := pos + len(def.Open)
				end, closed := scanSpan(line, start, tok)
				if closed {
					lineMatches = append(lineMatches, Match{
						Token: tok,
						Col:   end - len(tok.Closing),
						Kind:  Closing,
					})
				} else {
					open = tok
				}
				pos = end
				continue
			}

			if m, ok := delimiterAt(lang, line, pos); ok {
				lineMatches = append(lineMatches, m)
				pos += m.Len()
				continue
			}

			pos++
		}

		matches = append(matches, lineMatches)

		// Line spans and inline strings never survive a line break.
		if !open.IsZero() && !open.Block {
			open = Token{}
		}
		states = append(states, open)
	}

	return matches, states
}

// scanSpan scans line text from start for the span's closing token,
// honoring escapes. It returns the position just past the closer and
// whether the span closed on this line. Spans with no closing token
// always run to the end of the line.
func scanSpan(line string, start int, tok Token) (end int, closed bool) {
	if tok.Closing == "" {
		return len(line), false
	}
	escaped := false
	for p := start; p < len(line); p++ {
		if escaped {
			escaped = false
			continue
		}
		if line[p] == '\\' {
			escaped = true
			continue
		}
		if strings.HasPrefix(line[p:], tok.Closing) {
			return p + len(tok.Closing), true
		}
	}
	return len(line), false
}

// spanOpenerAt returns the span definition opening at line[pos], if
// any. Spans are pre-sorted longest-opener-first.
func spanOpenerAt(lang Language, line string, pos int) (SpanDef, bool) {
	for _, def := range lang.Spans {
		if strings.HasPrefix(line[pos:], def.Open) {
			return def, true
		}
	}
	return SpanDef{}, false
}

// delimiterAt returns the delimiter match at line[pos], if any.
func delimiterAt(lang Language, line string, pos int) (Match, bool) {
	for _, pair := range lang.Delimiters {
		tok := Token{Opening: pair[0], Closing: pair[1]}
		if strings.HasPrefix(line[pos:], pair[0]) {
			return Match{Token: tok, Col: pos, Kind: Opening}, true
		}
		if strings.HasPrefix(line[pos:], pair[1]) {
			return Match{Token: tok, Col: pos, Kind: Closing}, true
		}
	}
	return Match{}, false
}

// assignHeights pairs openers with closers across the whole buffer and
// assigns nesting heights. A closer pairs with the nearest opener of
// the same token on the stack; openers skipped over in the process are
// unmatched. Whatever remains on the stack at the end is unmatched.
func assignHeights(matches [][]Match) {
	type ref struct{ row, idx int }
	var stack []ref

	at := func(r ref) *Match { return &matches[r.row][r.idx] }

	for row := range matches {
	outer:
		for idx := range matches[row] {
			m := &matches[row][idx]
			if m.Kind == Opening {
				stack = append(stack, ref{row, idx})
				continue
			}
			for i := len(stack) - 1; i >= 0; i-- {
				if at(stack[i]).Token == m.Token {
					// Openings skipped over never pair.
					for _, skipped := range stack[i+1:] {
						at(skipped).Matched = false
					}
					opening := at(stack[i])
					stack = stack[:i]
					opening.Height = len(stack)
					opening.Matched = true
					m.Height = len(stack)
					m.Matched = true
					continue outer
				}
			}
			m.Matched = false
		}
	}

	for _, r := range stack {
		at(r).Matched = false
	}
}
