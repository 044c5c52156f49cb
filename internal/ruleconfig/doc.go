// Package ruleconfig loads pairing rule definitions from TOML
// configuration files.
//
// A configuration maps trigger keys to definitions under a [pairs]
// table; a definition is a bare closing string, an inline table, or an
// array of tables for multiple rules under one key. Custom conditions
// are written as Lua functions evaluated in a sandboxed interpreter
// with only the base, table, string, and math libraries open.
//
// The Reloader watches a configuration file and recompiles the rule
// index on change; the compiled index is swapped atomically and a
// failed reload keeps the previous one, so a half-saved file never
// breaks typing.
package ruleconfig
