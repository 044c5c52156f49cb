package span

// IndentLevels returns the indent level of each line in spaces, with
// tabs counting tabWidth each. Lines containing only whitespace inherit
// the previous line's level so a cursor on a blank line still sees the
// surrounding indentation.
func IndentLevels(lines []string, tabWidth int) []int {
	indents := make([]int, 0, len(lines))
	last := -1

outer:
	for _, line := range lines {
		indent := 0
		for i := 0; i < len(line); i++ {
			switch line[i] {
			case ' ':
				indent++
			case '\t':
				indent += tabWidth
			default:
				indents = append(indents, indent)
				last = indent
				continue outer
			}
		}
		// Whitespace-only line.
		if last < 0 {
			last = indent
		}
		indents = append(indents, last)
	}
	return indents
}
