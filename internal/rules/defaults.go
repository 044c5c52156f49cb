package rules

// Defaults returns the built-in rule set: the common bracket pairs,
// quote pairs, and a few language-gated multi-character pairs. Hosts
// typically merge user configuration over this map before compiling.
func Defaults() map[string][]Definition {
	return map[string][]Definition{
		"(": {Pair(")")},
		"[": {Pair("]")},
		"{": {Pair("}")},
		"'": {
			{Opening: "'''", Closing: "'''", Languages: []string{"python"}},
			{Closing: "'", Enter: Bool(false)},
		},
		`"`: {
			{Opening: `r#"`, Closing: `"#`, Languages: []string{"rust"}},
			{Opening: `"""`, Closing: `"""`, Languages: []string{"python"}},
			{Closing: `"`, Enter: Bool(false)},
		},
		"`": {
			{Opening: "```", Closing: "```", Languages: []string{"markdown"}},
			{Closing: "`", Enter: Bool(false)},
		},
	}
}
