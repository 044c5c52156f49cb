// Package engine implements the per-keystroke pairing decision
// procedure.
//
// Each handler is a pure function of the keystroke and an editctx
// snapshot: it selects the single applicable rule (or none) from the
// compiled index and returns a Decision describing the resulting text
// edit, or a passthrough telling the host to apply the key's default
// behavior. Handlers never return errors on the keystroke path; every
// lookup failure or non-match degrades to a passthrough so the engine
// can never block ordinary typing. Handling a keystroke emits one
// composed edit plus cursor movement and never synthesizes further
// keystrokes.
package engine
