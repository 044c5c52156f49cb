// Package rules defines pairing rules and compiles raw definitions into
// the key-indexed structure the decision engine evaluates per keystroke.
//
// A Definition is the declarative surface consumed from configuration:
// a closing delimiter plus optional opener, priority, language gate,
// custom predicate, and per-action toggles. Compile turns a mapping of
// trigger keys to definitions into an Index: for each trigger rune an
// ordered list of candidate rules, sorted by descending priority with
// declaration order as the tie-break. The Index is built once per
// configuration and read-only afterward; reloading a configuration is a
// full recompile, never an incremental patch.
package rules
