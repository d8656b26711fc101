package main

import (
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/pavl"
	"golang.org/x/term"
)

var (
	good = color.New(color.FgGreen)
	bad  = color.New(color.FgRed)
	head = color.New(color.FgBlue, color.Bold)
)

func setColor(disabled bool) {
	if disabled {
		color.NoColor = true
	}
}

// terminalWidth returns the width of the terminal on stdout, 0 if stdout
// is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(head.Sprint(title))
	if width := terminalWidth(); width > 0 {
		t.SetAllowedRowLength(width)
	}
	return t
}

// verdict colors a boolean outcome.
func verdict(ok bool, s string) string {
	if ok {
		return good.Sprint(s)
	}
	return bad.Sprint(s)
}

func formatStamp(t pavl.Timestamp) string {
	return "@" + strconv.FormatUint(uint64(t), 10)
}
