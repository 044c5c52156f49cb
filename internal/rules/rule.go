package rules

import (
	"fmt"

	"github.com/dshills/autopair/internal/editctx"
)

// Actions holds the per-action predicates of a compiled rule. Absent or
// boolean action settings in a Definition compile to constant predicates,
// so evaluation never branches on representation.
type Actions struct {
	// Open gates inserting the pair when the opener is typed
	// (asymmetric rules).
	Open Predicate

	// Close gates closing/skip-over behavior when the closer is typed
	// (asymmetric rules).
	Close Predicate

	// OpenOrClose gates the combined behavior of symmetric rules.
	OpenOrClose Predicate

	// Enter gates splitting a surrounding pair onto separate lines.
	Enter Predicate

	// Backspace gates collapsing a surrounding pair.
	Backspace Predicate

	// Space gates inserting padding inside a surrounding pair.
	Space Predicate
}

// Rule is a compiled pairing rule. Rules are immutable once compiled and
// safe to share across keystrokes.
type Rule struct {
	// Opening is the opening delimiter text. Never empty.
	Opening string

	// Closing is the closing delimiter text. Never empty.
	Closing string

	// Priority orders candidate rules under a trigger key; higher wins.
	Priority int

	// seq is the declaration order, used as the stable tie-break.
	seq int

	when    Predicate
	actions Actions
}

// Symmetric reports whether the opener and closer are the same string
// (for example quotes). Only the OpenOrClose action is meaningful for
// symmetric rules.
func (r *Rule) Symmetric() bool { return r.Opening == r.Closing }

// Applicable evaluates the rule's composite applicability predicate:
// mode restriction, language gate, and any custom condition.
func (r *Rule) Applicable(ctx *editctx.Context) bool {
	return r.when.Eval(ctx)
}

// CanOpen reports whether the open action is enabled in this context.
func (r *Rule) CanOpen(ctx *editctx.Context) bool { return r.actions.Open.Eval(ctx) }

// CanClose reports whether the close action is enabled in this context.
func (r *Rule) CanClose(ctx *editctx.Context) bool { return r.actions.Close.Eval(ctx) }

// CanOpenOrClose reports whether the symmetric action is enabled in
// this context.
func (r *Rule) CanOpenOrClose(ctx *editctx.Context) bool { return r.actions.OpenOrClose.Eval(ctx) }

// CanEnter reports whether the enter action is enabled in this context.
func (r *Rule) CanEnter(ctx *editctx.Context) bool { return r.actions.Enter.Eval(ctx) }

// CanBackspace reports whether the backspace action is enabled in this
// context.
func (r *Rule) CanBackspace(ctx *editctx.Context) bool { return r.actions.Backspace.Eval(ctx) }

// CanSpace reports whether the space action is enabled in this context.
func (r *Rule) CanSpace(ctx *editctx.Context) bool { return r.actions.Space.Eval(ctx) }

// String returns a short description of the rule.
func (r *Rule) String() string {
	return fmt.Sprintf("pair(%q, %q, prio=%d)", r.Opening, r.Closing, r.Priority)
}
