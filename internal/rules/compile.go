package rules

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// customPriorityBonus is added to the default priority of definitions
// carrying a custom predicate, so conditional rules outrank
// unconditional ones of equal delimiter length without manual tuning.
const customPriorityBonus = 4

// Compile turns a mapping of trigger keys to definitions into a
// read-only Index. Each definition is validated; the first invalid one
// aborts compilation with a DefinitionError.
//
// Keys are processed in sorted order and definitions under a key in
// slice order, which fixes the declaration sequence used to break
// priority ties deterministically.
func Compile(defs map[string][]Definition) (*Index, error) {
	idx := &Index{byKey: make(map[rune][]*Rule)}

	keys := make([]string, 0, len(defs))
	for k := range defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seq := 0
	for _, k := range keys {
		key, size := utf8.DecodeRuneInString(k)
		if k == "" || size != len(k) {
			return nil, &DefinitionError{Key: k, Field: "key", Err: ErrBadTriggerKey}
		}

		for i, def := range defs[k] {
			rule, err := compileOne(key, def, seq)
			if err != nil {
				if de, ok := err.(*DefinitionError); ok {
					de.Key = k
					de.Index = i
				}
				return nil, err
			}
			seq++

			idx.register(key, rule)
			if c, _ := utf8.DecodeRuneInString(rule.Closing); c != key {
				idx.register(c, rule)
			}
		}
	}

	idx.finish()
	return idx, nil
}

// compileOne validates a single definition and builds its Rule.
func compileOne(key rune, def Definition, seq int) (*Rule, error) {
	closing := def.Closing
	if closing == "" {
		return nil, &DefinitionError{Field: "closing", Err: ErrEmptyDelimiter}
	}

	opening := def.Opening
	if opening == "" {
		opening = string(key)
	}

	// Every trigger route into the rule must be locatable: the key
	// itself, and the closing delimiter's first character when it is
	// registered as a second trigger. Rejecting here keeps the engine's
	// opener-lookup invariant from ever firing for compiled rules.
	if err := checkTrigger(key, opening, closing); err != nil {
		return nil, &DefinitionError{Field: "opening", Err: err}
	}
	if c, _ := utf8.DecodeRuneInString(closing); c != key {
		if err := checkTrigger(c, opening, closing); err != nil {
			return nil, &DefinitionError{Field: "closing", Err: err}
		}
	}

	priority := len(opening) + len(closing)
	if def.When != nil {
		priority += customPriorityBonus
	}
	if def.Priority != nil {
		priority = *def.Priority
	}

	var preds []Predicate
	if def.Cmdline != nil && !*def.Cmdline {
		preds = append(preds, InsertOnly())
	}
	if len(def.Languages) > 0 {
		preds = append(preds, Languages(def.Languages...))
	}
	if def.When != nil {
		preds = append(preds, def.When)
	}

	return &Rule{
		Opening:  opening,
		Closing:  closing,
		Priority: priority,
		seq:      seq,
		when:     And(preds...),
		actions: Actions{
			Open:        def.Open.resolve(),
			Close:       def.Close.resolve(),
			OpenOrClose: def.OpenOrClose.resolve(),
			Enter:       def.Enter.resolve(),
			Backspace:   def.Backspace.resolve(),
			Space:       def.Space.resolve(),
		},
	}, nil
}

// checkTrigger reports whether a keystroke of trigger can be located
// within the rule's delimiters by the decision engine.
func checkTrigger(trigger rune, opening, closing string) error {
	if strings.ContainsRune(opening, trigger) {
		return nil
	}
	if c, size := utf8.DecodeRuneInString(closing); size == len(closing) && c == trigger {
		return nil
	}
	return ErrKeyNotInRule
}
