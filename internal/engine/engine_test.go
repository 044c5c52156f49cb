package engine

import (
	"testing"

	"github.com/dshills/autopair/internal/editctx"
	"github.com/dshills/autopair/internal/oracle"
	"github.com/dshills/autopair/internal/rules"
)

// fakeOracle answers the balance queries with fixed results.
type fakeOracle struct {
	oracle.Null
	unmatchedOpenBefore bool
	unmatchedCloseAfter bool
}

func (f fakeOracle) UnmatchedOpeningBefore(opening, closing string, row, col int) (oracle.Match, bool) {
	return oracle.Match{Text: opening}, f.unmatchedOpenBefore
}

func (f fakeOracle) UnmatchedClosingAfter(opening, closing string, row, col int) (oracle.Match, bool) {
	return oracle.Match{Text: closing}, f.unmatchedCloseAfter
}

func defaultEngine(t *testing.T) *Engine {
	t.Helper()
	idx, err := rules.Compile(rules.Defaults())
	if err != nil {
		t.Fatalf("Compile(Defaults()) error = %v", err)
	}
	return New(idx)
}

func ctxAt(line string, col int, opts ...editctx.Option) *editctx.Context {
	return editctx.New(line, 0, col, opts...)
}

func TestOnRuneOpener(t *testing.T) {
	eng := defaultEngine(t)

	tests := []struct {
		name string
		line string
		col  int
		key  rune
		want Decision
	}{
		{
			name: "open paren inserts pair",
			line: "foo",
			col:  3,
			key:  '(',
			want: Decision{Op: OpEdit, InsertBefore: "(", InsertAfter: ")"},
		},
		{
			name: "open bracket inserts pair",
			line: "",
			col:  0,
			key:  '[',
			want: Decision{Op: OpEdit, InsertBefore: "[", InsertAfter: "]"},
		},
		{
			name: "escaped opener passes through",
			line: `\`,
			col:  1,
			key:  '(',
			want: Passthrough(),
		},
		{
			name: "double escaped opener pairs",
			line: `\\`,
			col:  2,
			key:  '(',
			want: Decision{Op: OpEdit, InsertBefore: "(", InsertAfter: ")"},
		},
		{
			name: "unbound key passes through",
			line: "",
			col:  0,
			key:  'x',
			want: Passthrough(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.OnRune(tt.key, ctxAt(tt.line, tt.col))
			if got != tt.want {
				t.Errorf("OnRune(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestOnRuneCloser(t *testing.T) {
	eng := defaultEngine(t)

	tests := []struct {
		name string
		line string
		col  int
		key  rune
		ora  oracle.Oracle
		want Decision
	}{
		{
			name: "skip over closer",
			line: "()",
			col:  1,
			key:  ')',
			want: skip(1),
		},
		{
			name: "skip over padded closer",
			line: "( )",
			col:  1,
			key:  ')',
			want: skip(2),
		},
		{
			name: "no closer ahead inserts literal",
			line: "foo",
			col:  3,
			key:  ')',
			want: literal(")"),
		},
		{
			name: "unmatched opener before forces literal over skip",
			line: "()",
			col:  1,
			key:  ')',
			ora:  fakeOracle{unmatchedOpenBefore: true},
			want: literal(")"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []editctx.Option
			if tt.ora != nil {
				opts = append(opts, editctx.WithOracle(tt.ora))
			}
			got := eng.OnRune(tt.key, ctxAt(tt.line, tt.col, opts...))
			if got != tt.want {
				t.Errorf("OnRune(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestOnRuneOpenerWithUnmatchedCloserAhead(t *testing.T) {
	eng := defaultEngine(t)
	ctx := ctxAt("foo)", 0, editctx.WithOracle(fakeOracle{unmatchedCloseAfter: true}))
	if got := eng.OnRune('(', ctx); !got.IsPassthrough() {
		t.Errorf("OnRune('(') with unmatched closer ahead = %v, want passthrough", got)
	}
}

func TestOnRuneSymmetric(t *testing.T) {
	eng := defaultEngine(t)

	tests := []struct {
		name string
		line string
		col  int
		lang string
		key  rune
		want Decision
	}{
		{
			name: "quote inserts pair",
			line: "x = ",
			col:  4,
			lang: "go",
			key:  '"',
			want: Decision{Op: OpEdit, InsertBefore: `"`, InsertAfter: `"`},
		},
		{
			name: "quote skips over closer",
			line: `""`,
			col:  1,
			lang: "go",
			key:  '"',
			want: skip(1),
		},
		{
			name: "escaped quote passes through",
			line: `"\`,
			col:  2,
			lang: "go",
			key:  '"',
			want: Passthrough(),
		},
		{
			name: "second python quote extends toward triple",
			line: `""`,
			col:  2,
			lang: "python",
			key:  '"',
			want: Decision{Op: OpEdit, InsertBefore: `"`, InsertAfter: `"""`},
		},
		{
			name: "triple quote skip",
			line: `""""""`,
			col:  3,
			lang: "python",
			key:  '"',
			want: skip(3),
		},
		{
			name: "backtick fence extends in markdown",
			line: "``",
			col:  2,
			lang: "markdown",
			key:  '`',
			want: Decision{Op: OpEdit, InsertBefore: "`", InsertAfter: "```"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.OnRune(tt.key, ctxAt(tt.line, tt.col, editctx.WithLanguage(tt.lang)))
			if got != tt.want {
				t.Errorf("OnRune(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestOnRuneMidOpener(t *testing.T) {
	eng := defaultEngine(t)

	tests := []struct {
		name string
		line string
		col  int
		lang string
		key  rune
		want Decision
	}{
		{
			name: "raw string prefix completes opener and closer",
			line: "r#",
			col:  2,
			lang: "rust",
			key:  '"',
			want: Decision{Op: OpEdit, InsertBefore: `"`, InsertAfter: `"#`},
		},
		{
			name: "full raw opener closes",
			line: `r#"`,
			col:  3,
			lang: "rust",
			key:  '"',
			want: literal(`"#`),
		},
		{
			name: "no raw context falls through to plain quote",
			line: "x = ",
			col:  4,
			lang: "rust",
			key:  '"',
			want: Decision{Op: OpEdit, InsertBefore: `"`, InsertAfter: `"`},
		},
		{
			name: "raw rule gated off outside rust",
			line: "r#",
			col:  2,
			lang: "go",
			key:  '"',
			want: Decision{Op: OpEdit, InsertBefore: `"`, InsertAfter: `"`},
		},
		{
			name: "escaped raw prefix passes through",
			line: `r#\`,
			col:  3,
			lang: "rust",
			key:  '"',
			want: Passthrough(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.OnRune(tt.key, ctxAt(tt.line, tt.col, editctx.WithLanguage(tt.lang)))
			if got != tt.want {
				t.Errorf("OnRune(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestOnRuneActionDisabled(t *testing.T) {
	idx, err := rules.Compile(map[string][]rules.Definition{
		"(": {{Closing: ")", Open: rules.Bool(false)}},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	eng := New(idx)

	if got := eng.OnRune('(', ctxAt("", 0)); !got.IsPassthrough() {
		t.Errorf("OnRune('(') with open disabled = %v, want passthrough", got)
	}
	// The close action stays available.
	if got := eng.OnRune(')', ctxAt(")", 0)); got != skip(1) {
		t.Errorf("OnRune(')') = %v, want %v", got, skip(1))
	}
}

func TestOnBackspace(t *testing.T) {
	eng := defaultEngine(t)

	tests := []struct {
		name string
		line string
		col  int
		want Decision
	}{
		{
			name: "tight pair collapses",
			line: "()",
			col:  1,
			want: collapse(1, 1),
		},
		{
			name: "padded pair removes padding",
			line: "(  )",
			col:  2,
			want: collapse(1, 1),
		},
		{
			name: "multi char pair collapses whole delimiters",
			line: `""""""`,
			col:  3,
			want: collapse(3, 3),
		},
		{
			name: "no surrounding pair passes through",
			line: "ab",
			col:  1,
			want: Passthrough(),
		},
		{
			name: "opener alone passes through",
			line: "(",
			col:  1,
			want: Passthrough(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.OnBackspace(ctxAt(tt.line, tt.col, editctx.WithLanguage("python")))
			if got != tt.want {
				t.Errorf("OnBackspace() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOnEnter(t *testing.T) {
	eng := defaultEngine(t)

	tests := []struct {
		name string
		line string
		col  int
		want Decision
	}{
		{
			name: "tight pair splits",
			line: "{}",
			col:  1,
			want: Decision{Op: OpEdit, InsertBefore: "\n", InsertAfter: "\n", SplitPair: true},
		},
		{
			name: "padded pair drops padding and splits",
			line: "{  }",
			col:  2,
			want: Decision{Op: OpEdit, DeleteBefore: 1, DeleteAfter: 1, InsertBefore: "\n", InsertAfter: "\n", SplitPair: true},
		},
		{
			name: "no pair passes through",
			line: "x",
			col:  1,
			want: Passthrough(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.OnEnter(ctxAt(tt.line, tt.col))
			if got != tt.want {
				t.Errorf("OnEnter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOnEnterDisabledForSingleQuote(t *testing.T) {
	eng := defaultEngine(t)
	if got := eng.OnEnter(ctxAt("''", 1)); !got.IsPassthrough() {
		t.Errorf("OnEnter() inside '' = %v, want passthrough", got)
	}
}

func TestOnSpace(t *testing.T) {
	eng := defaultEngine(t)

	tests := []struct {
		name string
		line string
		col  int
		want Decision
	}{
		{
			name: "tight pair pads",
			line: "()",
			col:  1,
			want: Decision{Op: OpEdit, InsertBefore: " ", InsertAfter: " "},
		},
		{
			name: "already padded passes through",
			line: "(  )",
			col:  2,
			want: Passthrough(),
		},
		{
			name: "no pair passes through",
			line: "ab",
			col:  1,
			want: Passthrough(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.OnSpace(ctxAt(tt.line, tt.col))
			if got != tt.want {
				t.Errorf("OnSpace() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecisionDeterministic(t *testing.T) {
	// Equal-priority rules under one key must yield the same decision on
	// every compile, regardless of map iteration order.
	p := 10
	defs := map[string][]rules.Definition{
		"(": {
			{Closing: ")", Priority: &p},
			{Closing: "()", Priority: &p, Space: rules.Bool(false)},
		},
	}
	want := Decision{Op: OpEdit, InsertBefore: "(", InsertAfter: ")"}
	for i := 0; i < 20; i++ {
		idx, err := rules.Compile(defs)
		if err != nil {
			t.Fatalf("Compile() error = %v", err)
		}
		got := New(idx).OnRune('(', ctxAt("", 0))
		if got != want {
			t.Fatalf("iteration %d: OnRune('(') = %v, want %v", i, got, want)
		}
	}
}

func TestCommandModeGate(t *testing.T) {
	no := false
	idx, err := rules.Compile(map[string][]rules.Definition{
		"(": {{Closing: ")", Cmdline: &no}},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	eng := New(idx)

	insert := ctxAt("", 0)
	command := ctxAt("", 0, editctx.WithMode(editctx.ModeCommand))

	if got := eng.OnRune('(', insert); !got.IsEdit() {
		t.Errorf("OnRune in insert mode = %v, want edit", got)
	}
	if got := eng.OnRune('(', command); !got.IsPassthrough() {
		t.Errorf("OnRune in command mode = %v, want passthrough", got)
	}
}
