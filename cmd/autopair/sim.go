package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/autopair/internal/editctx"
	"github.com/dshills/autopair/internal/engine"
	"github.com/dshills/autopair/internal/linebuf"
	"github.com/dshills/autopair/internal/span"
)

// runSim replays a keystroke script against an empty buffer and prints
// the buffer with the cursor marked after every command.
//
// Script commands, one per line:
//
//	t <text>    type each character of text through the engine
//	bs          press backspace
//	cr          press enter
//	sp          press space
//	move <r> <c> set the cursor
//	# ...       comment
func runSim(opts options) int {
	var in io.Reader
	if opts.simPath == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(opts.simPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	idx, err := loadIndex(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	sim := &simulator{
		engine: engine.New(idx),
		buf:    linebuf.New(nil, linebuf.WithIndent(opts.indent)),
		lang:   opts.language,
	}

	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := sim.exec(line); err != nil {
			fmt.Fprintf(os.Stderr, "Error: line %d: %v\n", lineNo, err)
			return 1
		}
		fmt.Printf("%-16s %s\n", line, marked(sim.buf))
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type simulator struct {
	engine *engine.Engine
	buf    *linebuf.Buffer
	lang   string
}

// context builds a fresh keystroke context over the current buffer,
// reparsing the span index so oracle answers track the edits.
func (s *simulator) context() *editctx.Context {
	idx := span.Parse(s.lang, s.buf.Lines())
	return editctx.New(s.buf.Line(), s.buf.Row(), s.buf.Col(),
		editctx.WithLanguage(s.lang),
		editctx.WithOracle(idx),
	)
}

func (s *simulator) exec(line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	switch cmd {
	case "t":
		for _, r := range rest {
			if r == ' ' {
				s.buf.PressSpace(s.engine.OnSpace(s.context()))
				continue
			}
			s.buf.TypeRune(r, s.engine.OnRune(r, s.context()))
		}
		return nil
	case "bs":
		s.buf.PressBackspace(s.engine.OnBackspace(s.context()))
		return nil
	case "cr":
		s.buf.PressEnter(s.engine.OnEnter(s.context()))
		return nil
	case "sp":
		s.buf.PressSpace(s.engine.OnSpace(s.context()))
		return nil
	case "move":
		fields := strings.Fields(rest)
		if len(fields) != 2 {
			return fmt.Errorf("move wants row and col")
		}
		row, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("bad row %q", fields[0])
		}
		col, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("bad col %q", fields[1])
		}
		s.buf.SetCursor(row, col)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// marked renders the buffer on one line with the cursor as "|".
func marked(buf *linebuf.Buffer) string {
	return strings.ReplaceAll(buf.Marked(), "\n", "\\n")
}
