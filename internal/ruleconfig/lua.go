package ruleconfig

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/autopair/internal/editctx"
	"github.com/dshills/autopair/internal/logging"
	"github.com/dshills/autopair/internal/rules"
)

// LuaEnv is a sandboxed Lua interpreter for configuration predicates.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes all
// predicate evaluations. The keystroke path is single-threaded anyway,
// so the lock is uncontended in practice.
type LuaEnv struct {
	mu sync.Mutex
	L  *lua.LState
}

// NewLuaEnv creates a Lua environment with only safe libraries open.
func NewLuaEnv() *LuaEnv {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	// io, os, debug, and package stay closed: predicates are pure
	// functions over the keystroke context.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	return &LuaEnv{L: L}
}

// Close releases the interpreter.
func (e *LuaEnv) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.L.Close()
}

// CompilePredicate compiles Lua source that must evaluate to a
// function of one argument, the keystroke context table. The table
// carries row, col, line, before, after, language, mode, and (when an
// oracle is attached) span and scope. Rows and columns are 0-indexed.
func (e *LuaEnv) CompilePredicate(src string) (rules.Predicate, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.L.DoString("return (" + src + ")"); err != nil {
		return nil, fmt.Errorf("compiling lua predicate: %w", err)
	}
	val := e.L.Get(-1)
	e.L.Pop(1)

	fn, ok := val.(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("lua predicate must be a function, got %s", val.Type())
	}

	return &luaPredicate{
		env: e,
		fn:  fn,
		log: logging.GetLogger("ruleconfig"),
	}, nil
}

type luaPredicate struct {
	env *LuaEnv
	fn  *lua.LFunction
	log zerolog.Logger
}

// Eval calls the Lua function with the context table. A runtime error
// in the predicate is a decision-time non-match: it is logged and the
// predicate reports false.
func (p *luaPredicate) Eval(ctx *editctx.Context) bool {
	p.env.mu.Lock()
	defer p.env.mu.Unlock()

	L := p.env.L
	tbl := L.NewTable()
	L.SetField(tbl, "row", lua.LNumber(ctx.Row()))
	L.SetField(tbl, "col", lua.LNumber(ctx.Col()))
	L.SetField(tbl, "line", lua.LString(ctx.Line()))
	L.SetField(tbl, "before", lua.LString(ctx.TextBefore(-1)))
	L.SetField(tbl, "after", lua.LString(ctx.TextAfter(-1)))
	L.SetField(tbl, "language", lua.LString(ctx.Language()))
	L.SetField(tbl, "mode", lua.LString(ctx.Mode().String()))
	if kind, ok := ctx.SpanKind(); ok {
		L.SetField(tbl, "span", lua.LString(kind))
	}
	if scope, ok := ctx.SyntaxScope(); ok {
		L.SetField(tbl, "scope", lua.LString(scope))
	}

	if err := L.CallByParam(lua.P{Fn: p.fn, NRet: 1, Protect: true}, tbl); err != nil {
		p.log.Warn().Err(err).Msg("lua predicate failed")
		return false
	}
	ret := L.Get(-1)
	L.Pop(1)
	return lua.LVAsBool(ret)
}
