// Package editctx provides the per-keystroke editor snapshot that
// pairing rules query to decide applicability.
//
// A Context is constructed at the start of a keystroke handler and
// discarded when the handler returns. It is immutable from the caller's
// point of view: derived facts (character under the cursor, escape
// state, enclosing span) are computed lazily on first access and
// memoized for the Context's lifetime, since several candidate rules
// may ask for the same fact during a single decision. A Context is
// never shared across keystrokes and is not safe for concurrent use.
package editctx
