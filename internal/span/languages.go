package span

import "sort"

// SpanDef declares a span recognized by a language: a string, comment,
// or other named region whose interior is opaque to delimiter matching.
type SpanDef struct {
	// Open is the opening text.
	Open string

	// Close is the closing text. Empty means the span runs to the end
	// of the line.
	Close string

	// Name is the span name reported by span queries.
	Name string

	// Block marks spans that continue across line breaks until closed.
	Block bool
}

// Language declares what the lexer recognizes for one filetype.
type Language struct {
	// Name is the canonical language name.
	Name string

	// Delimiters lists the opening/closing bracket pairs.
	Delimiters [][2]string

	// Spans lists the comment, string, and other span definitions.
	// Longer openers take precedence at a given position.
	Spans []SpanDef
}

var defaultDelimiters = [][2]string{
	{"(", ")"},
	{"[", "]"},
	{"{", "}"},
}

func cLike(name string, extra ...SpanDef) Language {
	spans := []SpanDef{
		{Open: "//", Name: "comment"},
		{Open: "/*", Close: "*/", Name: "comment", Block: true},
		{Open: `"`, Close: `"`, Name: "string"},
		{Open: "'", Close: "'", Name: "string"},
	}
	return Language{
		Name:       name,
		Delimiters: defaultDelimiters,
		Spans:      append(spans, extra...),
	}
}

// languages maps filetype names (and aliases) to their definitions.
var languages = map[string]Language{
	"c":          cLike("c"),
	"cpp":        cLike("cpp"),
	"java":       cLike("java"),
	"javascript": cLike("javascript", SpanDef{Open: "`", Close: "`", Name: "string", Block: true}),
	"typescript": cLike("typescript", SpanDef{Open: "`", Close: "`", Name: "string", Block: true}),
	"go": {
		Name:       "go",
		Delimiters: defaultDelimiters,
		Spans: []SpanDef{
			{Open: "//", Name: "comment"},
			{Open: "/*", Close: "*/", Name: "comment", Block: true},
			{Open: `"`, Close: `"`, Name: "string"},
			{Open: "'", Close: "'", Name: "string"},
			{Open: "`", Close: "`", Name: "string", Block: true},
		},
	},
	"rust": {
		Name:       "rust",
		Delimiters: defaultDelimiters,
		Spans: []SpanDef{
			{Open: "//", Name: "comment"},
			{Open: "/*", Close: "*/", Name: "comment", Block: true},
			{Open: `r#"`, Close: `"#`, Name: "string", Block: true},
			{Open: `"`, Close: `"`, Name: "string"},
		},
	},
	"python": {
		Name:       "python",
		Delimiters: defaultDelimiters,
		Spans: []SpanDef{
			{Open: "#", Name: "comment"},
			{Open: `"""`, Close: `"""`, Name: "string", Block: true},
			{Open: "'''", Close: "'''", Name: "string", Block: true},
			{Open: `"`, Close: `"`, Name: "string"},
			{Open: "'", Close: "'", Name: "string"},
		},
	},
	"lua": {
		Name:       "lua",
		Delimiters: defaultDelimiters,
		Spans: []SpanDef{
			{Open: "--[[", Close: "]]", Name: "comment", Block: true},
			{Open: "--", Name: "comment"},
			{Open: `"`, Close: `"`, Name: "string"},
			{Open: "'", Close: "'", Name: "string"},
		},
	},
	"sql": {
		Name:       "sql",
		Delimiters: defaultDelimiters,
		Spans: []SpanDef{
			{Open: "--", Name: "comment"},
			{Open: "#", Name: "comment"},
			{Open: "/*", Close: "*/", Name: "comment", Block: true},
			{Open: "$$", Close: "$$", Name: "string", Block: true},
			{Open: `"`, Close: `"`, Name: "string"},
			{Open: "'", Close: "'", Name: "string"},
			{Open: "`", Close: "`", Name: "string"},
		},
	},
	"vim": {
		Name:       "vim",
		Delimiters: defaultDelimiters,
	},
	"tex": {
		Name:       "tex",
		Delimiters: defaultDelimiters,
		Spans: []SpanDef{
			{Open: "%", Name: "comment"},
			{Open: "$$", Close: "$$", Name: "math", Block: true},
			{Open: "$", Close: "$", Name: "math"},
		},
	},
	"markdown": {
		Name:       "markdown",
		Delimiters: defaultDelimiters,
		Spans: []SpanDef{
			{Open: "```", Close: "```", Name: "code", Block: true},
			{Open: "`", Close: "`", Name: "code"},
			{Open: "$", Close: "$", Name: "math"},
		},
	},
}

var aliases = map[string]string{
	"c++":   "cpp",
	"js":    "javascript",
	"jsx":   "javascript",
	"ts":    "typescript",
	"tsx":   "typescript",
	"latex": "tex",
	"md":    "markdown",
	"mysql": "sql",
}

// Lookup returns the language definition for a filetype name, falling
// back to a bare bracket-only language for unknown filetypes. The
// returned definition has its spans sorted longest-opener-first so the
// lexer always takes the longest match at a position.
func Lookup(name string) Language {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	lang, ok := languages[name]
	if !ok {
		lang = Language{Name: name, Delimiters: defaultDelimiters}
	}
	spans := make([]SpanDef, len(lang.Spans))
	copy(spans, lang.Spans)
	sort.SliceStable(spans, func(i, j int) bool {
		return len(spans[i].Open) > len(spans[j].Open)
	})
	lang.Spans = spans
	return lang
}

// Known returns the sorted names of languages with full definitions.
func Known() []string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
