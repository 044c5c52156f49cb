package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/autopair/internal/editctx"
	"github.com/dshills/autopair/internal/engine"
	"github.com/dshills/autopair/internal/linebuf"
	"github.com/dshills/autopair/internal/logging"
	"github.com/dshills/autopair/internal/ruleconfig"
	"github.com/dshills/autopair/internal/rules"
	"github.com/dshills/autopair/internal/span"
)

// runDemo opens a small terminal editor wired to the pairing engine.
// With -config the rules file is watched and recompiled live. Escape
// or Ctrl+Q quits.
func runDemo(opts options) int {
	// The demo owns the terminal; route logs away from it.
	logging.SetupWriter(io.Discard, opts.verbosity)

	index := func() *rules.Index { return nil }
	if opts.configPath != "" {
		reloader, err := ruleconfig.NewReloader(opts.configPath,
			ruleconfig.WithDefaults(rules.Defaults()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer reloader.Close()
		index = reloader.Index
	} else {
		idx, err := rules.Compile(rules.Defaults())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		index = func() *rules.Index { return idx }
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	d := &demo{
		screen: screen,
		buf:    linebuf.New(nil, linebuf.WithIndent(opts.indent)),
		lang:   opts.language,
		index:  index,
	}
	d.loop()
	return 0
}

type demo struct {
	screen tcell.Screen
	buf    *linebuf.Buffer
	lang   string
	index  func() *rules.Index
	status string
}

func (d *demo) loop() {
	for {
		d.draw()
		ev := d.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			d.screen.Sync()
		case *tcell.EventKey:
			if !d.handleKey(ev) {
				return
			}
		}
	}
}

// handleKey routes one key event through the engine. Returns false to
// quit.
func (d *demo) handleKey(ev *tcell.EventKey) bool {
	eng := engine.New(d.index())
	oracle := span.Parse(d.lang, d.buf.Lines())
	ctx := editctx.New(d.buf.Line(), d.buf.Row(), d.buf.Col(),
		editctx.WithLanguage(d.lang),
		editctx.WithOracle(oracle),
	)

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlQ:
		return false
	case tcell.KeyEnter:
		dec := eng.OnEnter(ctx)
		d.buf.PressEnter(dec)
		d.status = dec.String()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		dec := eng.OnBackspace(ctx)
		d.buf.PressBackspace(dec)
		d.status = dec.String()
	case tcell.KeyLeft:
		d.buf.SetCursor(d.buf.Row(), d.buf.Col()-1)
	case tcell.KeyRight:
		d.buf.SetCursor(d.buf.Row(), d.buf.Col()+1)
	case tcell.KeyUp:
		d.buf.SetCursor(d.buf.Row()-1, d.buf.Col())
	case tcell.KeyDown:
		d.buf.SetCursor(d.buf.Row()+1, d.buf.Col())
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			dec := eng.OnSpace(ctx)
			d.buf.PressSpace(dec)
			d.status = dec.String()
			break
		}
		dec := eng.OnRune(r, ctx)
		d.buf.TypeRune(r, dec)
		d.status = dec.String()
	}
	return true
}

func (d *demo) draw() {
	d.screen.Clear()
	width, height := d.screen.Size()

	plain := tcell.StyleDefault
	paired := tcell.StyleDefault.Reverse(true)

	oracle := span.Parse(d.lang, d.buf.Lines())
	open, close, havePair := oracle.MatchPair(d.buf.Row(), d.buf.Col())

	for row, line := range d.buf.Lines() {
		if row >= height-1 {
			break
		}
		x := 0
		for col, r := range line {
			if x >= width {
				break
			}
			style := plain
			if havePair && covered(open, row, col) || havePair && covered(close, row, col) {
				style = paired
			}
			d.screen.SetContent(x, row, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}

	status := fmt.Sprintf(" %s | %d:%d | %s | Esc quits", d.lang, d.buf.Row(), d.buf.Col(), d.status)
	for x, r := range status {
		if x >= width {
			break
		}
		d.screen.SetContent(x, height-1, r, nil, plain.Reverse(true))
	}

	d.screen.ShowCursor(displayCol(d.buf.Line(), d.buf.Col()), d.buf.Row())
	d.screen.Show()
}

// covered reports whether a match occupies (row, col).
func covered(m span.LineMatch, row, col int) bool {
	return m.Row == row && col >= m.Col && col < m.Col+m.Len()
}

// displayCol converts a byte column to a screen column.
func displayCol(line string, col int) int {
	x := 0
	for i, r := range line {
		if i >= col {
			break
		}
		x += runewidth.RuneWidth(r)
	}
	return x
}
