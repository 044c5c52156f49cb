// Package span builds a per-line index of delimiters and syntactic
// spans (strings, comments, math) for a buffer, and answers the
// bracket-balance and span queries the pairing engine consults.
//
// Parsing is a flat, language-aware lexical scan: each line yields the
// delimiter and span tokens found outside of enclosing spans, and a
// carry-over state records any block span left open at the line's end.
// After lexing, a single pass assigns nesting heights by pairing
// openers with closers on a stack; delimiters that never pair stay
// marked unmatched, which is exactly what the unmatched-opening/closing
// queries look for.
//
// An Index is a full parse of a snapshot of the buffer. It is not
// updated incrementally; reparse the buffer to refresh it.
package span
