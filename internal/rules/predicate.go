package rules

import (
	"slices"

	"github.com/dshills/autopair/internal/editctx"
)

// Predicate decides whether a rule (or one of its actions) applies in
// the given keystroke context. Implementations must be side-effect free
// and cheap; they run on every candidate rule for every keystroke.
type Predicate interface {
	Eval(ctx *editctx.Context) bool
}

// Func adapts an ordinary function to a Predicate. It is the extension
// point for host-supplied custom conditions.
type Func func(ctx *editctx.Context) bool

// Eval implements Predicate.
func (f Func) Eval(ctx *editctx.Context) bool { return f(ctx) }

type constPredicate bool

func (p constPredicate) Eval(*editctx.Context) bool { return bool(p) }

// Always returns a predicate that is always true.
func Always() Predicate { return constPredicate(true) }

// Never returns a predicate that is always false.
func Never() Predicate { return constPredicate(false) }

type languagePredicate []string

func (p languagePredicate) Eval(ctx *editctx.Context) bool {
	return slices.Contains(p, ctx.Language())
}

// Languages returns a predicate that is true when the buffer's language
// is one of the given names.
func Languages(names ...string) Predicate {
	return languagePredicate(slices.Clone(names))
}

type spanPredicate struct {
	kinds []string
	allow bool
}

func (p spanPredicate) Eval(ctx *editctx.Context) bool {
	kind, ok := ctx.SpanKind()
	if !ok {
		// Outside any span: an allow-list fails, a deny-list passes.
		return !p.allow
	}
	return slices.Contains(p.kinds, kind) == p.allow
}

// InSpan returns a predicate that is true only when the cursor is inside
// a span with one of the given kinds (for example "string", "math").
func InSpan(kinds ...string) Predicate {
	return spanPredicate{kinds: slices.Clone(kinds), allow: true}
}

// NotInSpan returns a predicate that is false when the cursor is inside
// a span with one of the given kinds.
func NotInSpan(kinds ...string) Predicate {
	return spanPredicate{kinds: slices.Clone(kinds), allow: false}
}

type insertOnlyPredicate struct{}

func (insertOnlyPredicate) Eval(ctx *editctx.Context) bool {
	return ctx.Mode() != editctx.ModeCommand
}

// InsertOnly returns a predicate that fails in command-line mode.
func InsertOnly() Predicate { return insertOnlyPredicate{} }

type andPredicate []Predicate

func (p andPredicate) Eval(ctx *editctx.Context) bool {
	for _, sub := range p {
		if !sub.Eval(ctx) {
			return false
		}
	}
	return true
}

// And returns a predicate that is true when every given predicate is.
// Nil entries are skipped. With no entries the result is Always.
func And(preds ...Predicate) Predicate {
	kept := make(andPredicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return Always()
	case 1:
		return kept[0]
	default:
		return kept
	}
}
