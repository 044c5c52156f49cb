package engine

import (
	"github.com/rs/zerolog"

	"github.com/dshills/autopair/internal/editctx"
	"github.com/dshills/autopair/internal/rules"
)

// Engine evaluates compiled pairing rules against keystroke contexts.
// It holds no mutable state beyond the logger; the same Engine may be
// used for every keystroke of a session.
type Engine struct {
	index *rules.Index
	log   zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for invariant violations. The
// default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an Engine over a compiled rule index.
func New(index *rules.Index, opts ...Option) *Engine {
	e := &Engine{
		index: index,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Index returns the engine's compiled rule index.
func (e *Engine) Index() *rules.Index { return e.index }

// OnRune handles a printable character key. Candidate rules for the
// rune are tried in priority order; the first applicable one decides.
// With no applicable rule the key passes through unmodified.
func (e *Engine) OnRune(r rune, ctx *editctx.Context) Decision {
	for _, rule := range e.index.Candidates(r) {
		if !rule.Applicable(ctx) {
			continue
		}
		if d, ok := e.tryRule(r, rule, ctx); ok {
			return d
		}
	}
	return Passthrough()
}

// OnBackspace handles the backspace key: a rule whose delimiters
// surround the cursor as a tight pair collapses both delimiters; a
// padded pair collapses only the padding spaces.
func (e *Engine) OnBackspace(ctx *editctx.Context) Decision {
	for _, rule := range e.index.All() {
		if !rule.Applicable(ctx) || !rule.CanBackspace(ctx) {
			continue
		}
		if ctx.MatchesBeforePadded(rule.Opening) && ctx.MatchesAfterPadded(rule.Closing) {
			return collapse(1, 1)
		}
		if ctx.MatchesBefore(rule.Opening) && ctx.MatchesAfter(rule.Closing) {
			return collapse(len(rule.Opening), len(rule.Closing))
		}
	}
	return Passthrough()
}

// OnEnter handles the enter key inside a surrounding pair: the pair is
// split so opener and closer end up on their own lines with the cursor
// on a new, independently indented line between them. Padding spaces of
// a padded pair are removed first.
func (e *Engine) OnEnter(ctx *editctx.Context) Decision {
	for _, rule := range e.index.All() {
		if !rule.Applicable(ctx) || !rule.CanEnter(ctx) {
			continue
		}
		if ctx.MatchesBeforePadded(rule.Opening) && ctx.MatchesAfterPadded(rule.Closing) {
			return Decision{
				Op:           OpEdit,
				DeleteBefore: 1,
				DeleteAfter:  1,
				InsertBefore: "\n",
				InsertAfter:  "\n",
				SplitPair:    true,
			}
		}
		if ctx.MatchesBefore(rule.Opening) && ctx.MatchesAfter(rule.Closing) {
			return Decision{
				Op:           OpEdit,
				InsertBefore: "\n",
				InsertAfter:  "\n",
				SplitPair:    true,
			}
		}
	}
	return Passthrough()
}

// OnSpace handles the space key inside a tight pair: one padding space
// is inserted on each side of the cursor.
func (e *Engine) OnSpace(ctx *editctx.Context) Decision {
	for _, rule := range e.index.All() {
		if !rule.Applicable(ctx) || !rule.CanSpace(ctx) {
			continue
		}
		if ctx.MatchesBefore(rule.Opening) && ctx.MatchesAfter(rule.Closing) {
			return Decision{Op: OpEdit, InsertBefore: " ", InsertAfter: " "}
		}
	}
	return Passthrough()
}
