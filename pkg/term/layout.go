package term

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	xterm "golang.org/x/term"
)

const defaultWidth = 80

// Width reports the current terminal width in columns. It is queried fresh
// before every render because the window may be resized between prompts.
// Falls back to 80 when no attached descriptor reports a size.
func Width() int {
	for _, f := range []*os.File{os.Stderr, os.Stdout, os.Stdin} {
		if w, _, err := xterm.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

// VisualRows reports how many terminal rows text occupies when printed at
// the given width. Each logical line contributes ceil(renderedWidth/width)
// rows, where renderedWidth is measured after stripping ANSI escape
// sequences and accounts for double-width characters. An empty line, or a
// line that is pure escape codes, still occupies one row.
//
// Every erase in this package is sized by this function; erasing more rows
// than were printed clobbers live output, erasing fewer leaves stale rows.
func VisualRows(text string, width int) int {
	if width < 1 {
		width = 1
	}
	rows := 0
	for _, line := range strings.Split(text, "\n") {
		w := runewidth.StringWidth(ansi.Strip(line))
		if w == 0 {
			rows++
			continue
		}
		rows += (w + width - 1) / width
	}
	return rows
}

// EraseRows clears the n most recently printed rows. The cursor must sit on
// the last row of the region being erased; callers guarantee this by
// printing the final line without a trailing newline. The current row is
// cleared in place, then the cursor walks upward clearing each remaining
// row, finishing on the first row of the former region at column one.
func EraseRows(w io.Writer, n int) {
	if n <= 0 {
		return
	}
	fmt.Fprint(w, "\r\x1b[2K")
	for i := 1; i < n; i++ {
		fmt.Fprint(w, "\x1b[1A\x1b[2K")
	}
	flush(w)
}

// ShowCursor makes the cursor visible again after an interrupt or a
// cancelled generation may have hidden it.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\x1b[?25h")
	flush(w)
}

// ClearLine erases the current row and returns the cursor to column one.
func ClearLine(w io.Writer) {
	fmt.Fprint(w, "\r\x1b[K")
	flush(w)
}

// moveToColumn positions the cursor at the 1-indexed absolute column.
func moveToColumn(w io.Writer, col int) {
	fmt.Fprintf(w, "\x1b[%dG", col)
}

// flush pushes buffered output before the caller blocks on key input.
// *os.File writes are unbuffered; this matters for buffered writers used
// in tests and for any future buffered stderr.
func flush(w io.Writer) {
	type flusher interface{ Flush() error }
	if f, ok := w.(flusher); ok {
		_ = f.Flush()
	}
}
