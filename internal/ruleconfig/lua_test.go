package ruleconfig

import (
	"testing"

	"github.com/dshills/autopair/internal/editctx"
	"github.com/dshills/autopair/internal/oracle"
	"github.com/dshills/autopair/internal/rules"
)

func TestCompilePredicate(t *testing.T) {
	env := NewLuaEnv()
	defer env.Close()

	tests := []struct {
		name string
		src  string
		line string
		col  int
		want bool
	}{
		{
			name: "constant true",
			src:  "function(ctx) return true end",
			want: true,
		},
		{
			name: "constant false",
			src:  "function(ctx) return false end",
			want: false,
		},
		{
			name: "reads col",
			src:  "function(ctx) return ctx.col == 2 end",
			line: "ab",
			col:  2,
			want: true,
		},
		{
			name: "reads before text",
			src:  `function(ctx) return ctx.before:sub(-1) == "=" end`,
			line: "x =",
			col:  3,
			want: true,
		},
		{
			name: "reads language",
			src:  `function(ctx) return ctx.language == "go" end`,
			want: true,
		},
		{
			name: "nil result is false",
			src:  "function(ctx) return nil end",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := env.CompilePredicate(tt.src)
			if err != nil {
				t.Fatalf("CompilePredicate() error = %v", err)
			}
			ctx := editctx.New(tt.line, 0, tt.col, editctx.WithLanguage("go"))
			if got := pred.Eval(ctx); got != tt.want {
				t.Errorf("Eval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompilePredicateErrors(t *testing.T) {
	env := NewLuaEnv()
	defer env.Close()

	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", "function(ctx return true end"},
		{"not a function", "42"},
		{"string value", `"hello"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.CompilePredicate(tt.src); err == nil {
				t.Error("CompilePredicate() succeeded, want error")
			}
		})
	}
}

func TestPredicateRuntimeErrorIsFalse(t *testing.T) {
	env := NewLuaEnv()
	defer env.Close()

	pred, err := env.CompilePredicate(`function(ctx) error("boom") end`)
	if err != nil {
		t.Fatalf("CompilePredicate() error = %v", err)
	}
	if pred.Eval(editctx.New("", 0, 0)) {
		t.Error("Eval() = true, want false on runtime error")
	}
}

type spanOracle struct {
	oracle.Null
	kind string
}

func (o spanOracle) SpanKindAt(row, col int) (string, bool) { return o.kind, true }

func TestPredicateSeesSpan(t *testing.T) {
	env := NewLuaEnv()
	defer env.Close()

	pred, err := env.CompilePredicate(`function(ctx) return ctx.span == "string" end`)
	if err != nil {
		t.Fatalf("CompilePredicate() error = %v", err)
	}

	inString := editctx.New("", 0, 0, editctx.WithOracle(spanOracle{kind: "string"}))
	if !pred.Eval(inString) {
		t.Error("Eval() inside string span = false, want true")
	}

	outside := editctx.New("", 0, 0)
	if pred.Eval(outside) {
		t.Error("Eval() outside any span = true, want false")
	}
}

func TestSandboxExcludesIO(t *testing.T) {
	env := NewLuaEnv()
	defer env.Close()

	pred, err := env.CompilePredicate(`function(ctx) return io ~= nil or os ~= nil end`)
	if err != nil {
		t.Fatalf("CompilePredicate() error = %v", err)
	}
	if pred.Eval(editctx.New("", 0, 0)) {
		t.Error("io or os available in sandbox, want neither")
	}
}

func TestLoaderCompilesWhenPredicate(t *testing.T) {
	defs := loadString(t, `
[pairs."("]
closing = ")"
when = 'function(ctx) return ctx.before ~= "" end'
`)
	def := defs["("][0]
	if def.When == nil {
		t.Fatal("When = nil, want compiled predicate")
	}
	if def.When.Eval(editctx.New("", 0, 0)) {
		t.Error("Eval() on empty line = true, want false")
	}
	if !def.When.Eval(editctx.New("x", 0, 1)) {
		t.Error("Eval() after text = false, want true")
	}
}

func TestLoaderCompilesToggleFunction(t *testing.T) {
	defs := loadString(t, `
[pairs."("]
closing = ")"
space = 'function(ctx) return ctx.language == "lisp" end'
`)
	idx, err := rules.Compile(defs)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	rule := idx.Candidates('(')[0]

	lisp := editctx.New("()", 0, 1, editctx.WithLanguage("lisp"))
	other := editctx.New("()", 0, 1, editctx.WithLanguage("go"))

	if !rule.CanSpace(lisp) {
		t.Error("CanSpace() in lisp = false, want true")
	}
	if rule.CanSpace(other) {
		t.Error("CanSpace() in go = true, want false")
	}
}
