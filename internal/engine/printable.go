package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/autopair/internal/editctx"
	"github.com/dshills/autopair/internal/rules"
)

// tryRule evaluates one candidate rule for a typed rune. The second
// return value is false when the rule does not apply in this context
// and the next candidate should be tried.
func (e *Engine) tryRule(r rune, rule *rules.Rule, ctx *editctx.Context) (Decision, bool) {
	if rule.Symmetric() {
		return e.symmetric(rule, ctx)
	}
	if c, ok := singleRune(rule.Opening); ok && c == r {
		return e.openPair(rule, ctx)
	}
	if c, ok := singleRune(rule.Closing); ok && c == r {
		return e.closePair(rule, ctx)
	}
	return e.midOpener(r, rule, ctx)
}

// symmetric handles a rule whose opener and closer are the same string.
func (e *Engine) symmetric(rule *rules.Rule, ctx *editctx.Context) (Decision, bool) {
	if !rule.CanOpenOrClose(ctx) {
		return Passthrough(), true
	}
	if ctx.Escaped() {
		// The typed delimiter is an escaped literal.
		return Passthrough(), true
	}

	delim := rule.Opening
	if ctx.MatchesAfter(delim) {
		return skip(len(delim)), true
	}

	if utf8.RuneCountInString(delim) > 1 {
		// Emit only the remainder not already typed before the cursor
		// and not already present after it, so the 2nd/3rd character of
		// a triple delimiter extends instead of duplicating.
		open := delim[overlapBefore(ctx, delim):]
		close := delim[:len(delim)-overlapAfter(ctx, delim)]
		return Decision{Op: OpEdit, InsertBefore: open, InsertAfter: close}, true
	}

	return insertPair(delim, delim), true
}

// openPair handles a typed single-character opener of an asymmetric
// rule.
func (e *Engine) openPair(rule *rules.Rule, ctx *editctx.Context) (Decision, bool) {
	if !rule.CanOpen(ctx) {
		return Passthrough(), true
	}
	if ctx.Escaped() {
		return Passthrough(), true
	}
	if _, found := ctx.Oracle().UnmatchedClosingAfter(rule.Opening, rule.Closing, ctx.Row(), ctx.Col()); found {
		// An unmatched closer already waits after the cursor; opening a
		// redundant pair would unbalance it further.
		return Passthrough(), true
	}
	return insertPair(rule.Opening, rule.Closing), true
}

// closePair handles a typed single-character closer of an asymmetric
// rule.
func (e *Engine) closePair(rule *rules.Rule, ctx *editctx.Context) (Decision, bool) {
	if !rule.CanClose(ctx) {
		return Passthrough(), true
	}
	if _, found := ctx.Oracle().UnmatchedOpeningBefore(rule.Opening, rule.Closing, ctx.Row(), ctx.Col()); found {
		// A new closing delimiter is genuinely needed.
		return literal(rule.Closing), true
	}
	if ctx.MatchesAfter(rule.Closing) {
		return skip(len(rule.Closing)), true
	}
	if ctx.MatchesAfterPadded(rule.Closing) {
		return skip(len(rule.Closing) + 1), true
	}
	return literal(rule.Closing), true
}

// midOpener handles a typed key that is one character within a
// multi-character opener, such as the quote in `r#"`.
func (e *Engine) midOpener(r rune, rule *rules.Rule, ctx *editctx.Context) (Decision, bool) {
	i := strings.IndexRune(rule.Opening, r)
	if i < 0 {
		// Compilation guarantees every trigger route is locatable; this
		// indicates a rule-compilation bug, not a runtime condition.
		// Abort this keystroke's edit and let the key through.
		e.log.Error().
			Str("opening", rule.Opening).
			Str("closing", rule.Closing).
			Str("key", string(r)).
			Msg("trigger key not locatable in opener")
		return Passthrough(), true
	}

	if ctx.MatchesBefore(rule.Opening[:i]) {
		// The literal prefix is already typed: emit the rest of the
		// opener plus the full closer.
		if !rule.CanOpen(ctx) {
			return Passthrough(), true
		}
		if ctx.Escaped() {
			return Passthrough(), true
		}
		return insertPair(rule.Opening[i:], rule.Closing), true
	}

	if ctx.MatchesBefore(rule.Opening) {
		// The full opener precedes the cursor: the keystroke closes the
		// pair.
		if !rule.CanClose(ctx) {
			return Passthrough(), true
		}
		return literal(rule.Closing), true
	}

	return Decision{}, false
}

// overlapBefore returns the length of the longest proper prefix of
// delim already present immediately before the cursor.
func overlapBefore(ctx *editctx.Context, delim string) int {
	for k := len(delim) - 1; k > 0; k-- {
		if ctx.MatchesBefore(delim[:k]) {
			return k
		}
	}
	return 0
}

// overlapAfter returns the length of the longest proper suffix of delim
// already present immediately after the cursor.
func overlapAfter(ctx *editctx.Context, delim string) int {
	for k := len(delim) - 1; k > 0; k-- {
		if ctx.MatchesAfter(delim[len(delim)-k:]) {
			return k
		}
	}
	return 0
}

// singleRune returns s's only rune when s is exactly one rune long.
func singleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	return r, size == len(s) && size > 0
}
