package linebuf

import (
	"strings"

	"github.com/dshills/autopair/internal/engine"
)

// Buffer is a minimal line-based text buffer with a cursor. The cursor
// column is a byte offset within the cursor line; the cursor sits
// between Line()[:Col()] and Line()[Col():]. Buffer is not safe for
// concurrent use.
type Buffer struct {
	lines  []string
	row    int
	col    int
	indent string
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithIndent sets the text used for one level of indentation when a
// pair is split across lines. The default is a tab.
func WithIndent(indent string) Option {
	return func(b *Buffer) { b.indent = indent }
}

// New creates a buffer with the given lines and the cursor at (0, 0).
// With no lines the buffer holds one empty line.
func New(lines []string, opts ...Option) *Buffer {
	if len(lines) == 0 {
		lines = []string{""}
	}
	b := &Buffer{
		lines:  append([]string(nil), lines...),
		indent: "\t",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromString creates a buffer from newline-separated text.
func FromString(text string, opts ...Option) *Buffer {
	return New(strings.Split(text, "\n"), opts...)
}

// Row returns the cursor line index.
func (b *Buffer) Row() int { return b.row }

// Col returns the cursor byte column.
func (b *Buffer) Col() int { return b.col }

// Line returns the text of the cursor line.
func (b *Buffer) Line() string { return b.lines[b.row] }

// Lines returns a copy of the buffer's lines.
func (b *Buffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// String returns the buffer text joined with newlines.
func (b *Buffer) String() string {
	return strings.Join(b.lines, "\n")
}

// Marked returns the buffer text with "|" marking the cursor. Intended
// for tests and the simulator.
func (b *Buffer) Marked() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if i == b.row {
			sb.WriteString(line[:b.col])
			sb.WriteByte('|')
			sb.WriteString(line[b.col:])
		} else {
			sb.WriteString(line)
		}
	}
	return sb.String()
}

// SetCursor moves the cursor, clamping to the buffer.
func (b *Buffer) SetCursor(row, col int) {
	if row < 0 {
		row = 0
	}
	if row >= len(b.lines) {
		row = len(b.lines) - 1
	}
	if col < 0 {
		col = 0
	}
	if col > len(b.lines[row]) {
		col = len(b.lines[row])
	}
	b.row, b.col = row, col
}

// InsertText inserts text at the cursor, leaving the cursor after it.
// Newlines split the line.
func (b *Buffer) InsertText(text string) {
	line := b.lines[b.row]
	before, after := line[:b.col], line[b.col:]

	parts := strings.Split(before+text, "\n")
	parts[len(parts)-1] += after

	tail := append([]string(nil), b.lines[b.row+1:]...)
	b.lines = append(b.lines[:b.row], parts...)
	b.lines = append(b.lines, tail...)

	b.row += len(parts) - 1
	b.col = len(parts[len(parts)-1]) - len(after)
}

// InsertRune inserts one character at the cursor.
func (b *Buffer) InsertRune(r rune) {
	b.InsertText(string(r))
}

// Backspace deletes the character before the cursor, joining lines at
// column zero.
func (b *Buffer) Backspace() {
	if b.col > 0 {
		line := b.lines[b.row]
		// Delete one byte; callers type ASCII delimiters. Multi-byte
		// content is handled by deleting the full rune.
		cut := 1
		for b.col-cut > 0 && line[b.col-cut]&0xC0 == 0x80 {
			cut++
		}
		b.lines[b.row] = line[:b.col-cut] + line[b.col:]
		b.col -= cut
		return
	}
	if b.row == 0 {
		return
	}
	prev := b.lines[b.row-1]
	b.lines[b.row-1] = prev + b.lines[b.row]
	b.lines = append(b.lines[:b.row], b.lines[b.row+1:]...)
	b.row--
	b.col = len(prev)
}

// Newline splits the cursor line at the cursor.
func (b *Buffer) Newline() {
	b.InsertText("\n")
}

// TypeRune applies the decision for a typed character, falling back to
// plain insertion on passthrough.
func (b *Buffer) TypeRune(r rune, d engine.Decision) {
	if d.IsPassthrough() {
		b.InsertRune(r)
		return
	}
	b.apply(d)
}

// PressBackspace applies the decision for backspace.
func (b *Buffer) PressBackspace(d engine.Decision) {
	if d.IsPassthrough() {
		b.Backspace()
		return
	}
	b.apply(d)
}

// PressEnter applies the decision for enter.
func (b *Buffer) PressEnter(d engine.Decision) {
	if d.IsPassthrough() {
		b.Newline()
		return
	}
	b.apply(d)
}

// PressSpace applies the decision for space.
func (b *Buffer) PressSpace(d engine.Decision) {
	if d.IsPassthrough() {
		b.InsertRune(' ')
		return
	}
	b.apply(d)
}

// apply performs an edit decision as one composed operation around the
// cursor.
func (b *Buffer) apply(d engine.Decision) {
	line := b.lines[b.row]

	delBefore := min(d.DeleteBefore, b.col)
	delAfter := min(d.DeleteAfter, len(line)-b.col)
	before := line[:b.col-delBefore]
	after := line[b.col+delAfter:]

	if d.SplitPair {
		base := leadingWhitespace(before)
		mid := base + b.indent
		tail := append([]string(nil), b.lines[b.row+1:]...)
		b.lines = append(b.lines[:b.row], before, mid, base+after)
		b.lines = append(b.lines, tail...)
		b.row++
		b.col = len(mid)
		return
	}

	b.lines[b.row] = before + d.InsertBefore + d.InsertAfter + after
	b.col = len(before) + len(d.InsertBefore) + d.Advance
}

// leadingWhitespace returns the run of spaces and tabs opening a line.
func leadingWhitespace(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}
