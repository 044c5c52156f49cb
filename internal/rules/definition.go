package rules

// Toggle is a per-action setting in a Definition: unset (the zero
// value) means enabled, a boolean disables or enables unconditionally,
// and a predicate decides per keystroke.
type Toggle struct {
	pred Predicate
}

// Bool returns a Toggle fixed to the given value.
func Bool(v bool) Toggle { return Toggle{pred: constPredicate(v)} }

// Pred returns a Toggle decided by the given predicate.
func Pred(p Predicate) Toggle { return Toggle{pred: p} }

// resolve returns the toggle's predicate, defaulting to Always.
func (t Toggle) resolve() Predicate {
	if t.pred == nil {
		return Always()
	}
	return t.pred
}

// Definition is a raw, declarative pairing rule as supplied by
// configuration or by the host. Compile validates it and produces an
// immutable Rule.
type Definition struct {
	// Opening is the opening delimiter. When empty it defaults to the
	// trigger key the definition is registered under.
	Opening string

	// Closing is the closing delimiter. Required.
	Closing string

	// Priority overrides the computed default when non-nil. The default
	// is len(Opening) + len(Closing), plus 4 when a custom predicate is
	// present so conditional rules outrank unconditional ones of equal
	// delimiter length.
	Priority *int

	// Languages restricts the rule to buffers with one of these
	// language names. Empty means no restriction.
	Languages []string

	// Cmdline, when non-nil and false, disables the rule in
	// command-line mode. The default allows it.
	Cmdline *bool

	// When is an optional custom applicability condition, consulted
	// after the mode and language gates.
	When Predicate

	// Per-action toggles. The zero value enables the action.
	Open        Toggle
	Close       Toggle
	OpenOrClose Toggle
	Enter       Toggle
	Backspace   Toggle
	Space       Toggle
}

// Pair is shorthand for a symmetric-or-plain definition with only a
// closing delimiter, mirroring the bare-string configuration form.
func Pair(closing string) Definition {
	return Definition{Closing: closing}
}
