package span

import "testing"

func TestStackHeightAt(t *testing.T) {
	tests := []struct {
		name string
		text string
		row  int
		col  int
		want int
	}{
		{"empty buffer", "", 0, 0, 0},
		{"before any pair", "(())", 0, 0, 0},
		{"inside outer", "( () )", 0, 1, 1},
		{"inside inner", "(())", 0, 2, 2},
		{"after all pairs", "(())", 0, 4, 0},
		{"between lines", "{\n\n}", 1, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := ParseString("", tt.text)
			if got := x.StackHeightAt(tt.row, tt.col); got != tt.want {
				t.Errorf("StackHeightAt(%d, %d) = %d, want %d", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestUnmatchedOpeningBefore(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		row     int
		col     int
		found   bool
		wantRow int
		wantCol int
	}{
		{
			name: "lone opener",
			text: "(",
			row:  0, col: 1,
			found:   true,
			wantRow: 0, wantCol: 0,
		},
		{
			name: "unmatched outer behind matched pair",
			text: "( ( )",
			row:  0, col: 5,
			found:   true,
			wantRow: 0, wantCol: 0,
		},
		{
			name: "balanced pair",
			text: "()",
			row:  0, col: 2,
			found: false,
		},
		{
			name: "stray closer only",
			text: ")",
			row:  0, col: 1,
			found: false,
		},
		{
			name: "opener on earlier line",
			text: "(\nfoo",
			row:  1, col: 3,
			found:   true,
			wantRow: 0, wantCol: 0,
		},
		{
			name: "different pair type",
			text: "[",
			row:  0, col: 1,
			found: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := ParseString("", tt.text)
			m, found := x.UnmatchedOpeningBefore("(", ")", tt.row, tt.col)
			if found != tt.found {
				t.Fatalf("found = %v, want %v (match %v)", found, tt.found, m)
			}
			if found && (m.Row != tt.wantRow || m.Col != tt.wantCol) {
				t.Errorf("match at (%d, %d), want (%d, %d)", m.Row, m.Col, tt.wantRow, tt.wantCol)
			}
			if found && m.Text != "(" {
				t.Errorf("match text = %q, want %q", m.Text, "(")
			}
		})
	}
}

func TestUnmatchedClosingAfter(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		row     int
		col     int
		found   bool
		wantRow int
		wantCol int
	}{
		{
			name: "lone closer",
			text: ")",
			row:  0, col: 0,
			found:   true,
			wantRow: 0, wantCol: 0,
		},
		{
			name: "closer past matched pair",
			text: "( ) )",
			row:  0, col: 0,
			found:   true,
			wantRow: 0, wantCol: 4,
		},
		{
			name: "balanced pair",
			text: "()",
			row:  0, col: 0,
			found: false,
		},
		{
			name: "closer on later line",
			text: "foo\n)",
			row:  0, col: 0,
			found:   true,
			wantRow: 1, wantCol: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := ParseString("", tt.text)
			m, found := x.UnmatchedClosingAfter("(", ")", tt.row, tt.col)
			if found != tt.found {
				t.Fatalf("found = %v, want %v (match %v)", found, tt.found, m)
			}
			if found && (m.Row != tt.wantRow || m.Col != tt.wantCol) {
				t.Errorf("match at (%d, %d), want (%d, %d)", m.Row, m.Col, tt.wantRow, tt.wantCol)
			}
		})
	}
}

func TestSpanKindAt(t *testing.T) {
	tests := []struct {
		name string
		lang string
		text string
		row  int
		col  int
		kind string
		ok   bool
	}{
		{"inside inline string", "go", `x = "abc"`, 0, 6, "string", true},
		{"after inline string", "go", `x = "abc" y`, 0, 10, "", false},
		{"before string", "go", `x = "abc"`, 0, 2, "", false},
		{"inside line comment", "go", "a // b", 0, 5, "comment", true},
		{"inside block comment line 2", "go", "/*\nhello\n*/", 1, 3, "comment", true},
		{"after block comment close", "go", "/*\nhello\n*/ x", 2, 3, "", false},
		{"inside python triple quote", "python", `x = """` + "\ntext", 1, 2, "string", true},
		{"no spans in plain language", "", `"abc"`, 0, 2, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := ParseString(tt.lang, tt.text)
			kind, ok := x.SpanKindAt(tt.row, tt.col)
			if ok != tt.ok || kind != tt.kind {
				t.Errorf("SpanKindAt(%d, %d) = (%q, %v), want (%q, %v)",
					tt.row, tt.col, kind, ok, tt.kind, tt.ok)
			}
		})
	}
}

func TestSyntaxScopeAt(t *testing.T) {
	tests := []struct {
		name  string
		lang  string
		text  string
		row   int
		col   int
		scope string
		ok    bool
	}{
		{"line comment", "go", "// x", 0, 3, "comment.line", true},
		{"block comment", "go", "/* x */", 0, 4, "comment.block", true},
		{"inline string", "go", `"x"`, 0, 1, "string", true},
		{"block string", "go", "`x`", 0, 1, "string.block", true},
		{"outside", "go", "x", 0, 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := ParseString(tt.lang, tt.text)
			scope, ok := x.SyntaxScopeAt(tt.row, tt.col)
			if ok != tt.ok || scope != tt.scope {
				t.Errorf("SyntaxScopeAt(%d, %d) = (%q, %v), want (%q, %v)",
					tt.row, tt.col, scope, ok, tt.scope, tt.ok)
			}
		})
	}
}

func TestMatchPair(t *testing.T) {
	x := ParseString("", "f(a[b])")

	open, close, ok := x.MatchPair(0, 1)
	if !ok {
		t.Fatal("MatchPair(0, 1) not found")
	}
	if open.Col != 1 || close.Col != 6 {
		t.Errorf("MatchPair(0, 1) = %d..%d, want 1..6", open.Col, close.Col)
	}

	open, close, ok = x.MatchPair(0, 5)
	if !ok {
		t.Fatal("MatchPair(0, 5) not found")
	}
	if open.Col != 3 || close.Col != 5 {
		t.Errorf("MatchPair(0, 5) = %d..%d, want 3..5", open.Col, close.Col)
	}

	if _, _, ok := x.MatchPair(0, 0); ok {
		t.Error("MatchPair(0, 0) on plain text: ok = true, want false")
	}

	x = ParseString("", "(")
	if _, _, ok := x.MatchPair(0, 0); ok {
		t.Error("MatchPair on unmatched opener: ok = true, want false")
	}
}

func TestIndentLevels(t *testing.T) {
	got := IndentLevels([]string{"a", "  b", "\tc", "", "    ", "d"}, 4)
	want := []int{0, 2, 4, 4, 4, 0}
	if len(got) != len(want) {
		t.Fatalf("IndentLevels() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IndentLevels()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestIndexIndentLevel(t *testing.T) {
	x := Parse("go", []string{"func f() {", "\tx := 1", "}"}, WithTabWidth(8))
	if got := x.IndentLevel(1); got != 8 {
		t.Errorf("IndentLevel(1) = %d, want 8", got)
	}
	if got := x.IndentLevel(99); got != 0 {
		t.Errorf("IndentLevel(99) = %d, want 0", got)
	}
}

func TestLookup(t *testing.T) {
	if got := Lookup("js").Name; got != "javascript" {
		t.Errorf("Lookup(\"js\").Name = %q, want %q", got, "javascript")
	}

	unknown := Lookup("brainfuck")
	if unknown.Name != "brainfuck" {
		t.Errorf("Lookup(unknown).Name = %q, want %q", unknown.Name, "brainfuck")
	}
	if len(unknown.Delimiters) == 0 {
		t.Error("Lookup(unknown) has no delimiters, want bracket fallback")
	}
	if len(unknown.Spans) != 0 {
		t.Errorf("Lookup(unknown) has spans: %v", unknown.Spans)
	}

	py := Lookup("python")
	for i := 1; i < len(py.Spans); i++ {
		if len(py.Spans[i-1].Open) < len(py.Spans[i].Open) {
			t.Fatalf("spans not sorted longest-opener-first: %v", py.Spans)
		}
	}
}
