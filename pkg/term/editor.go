package term

import (
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// EditOutcome describes how an edit session ended.
type EditOutcome int

const (
	// EditAccepted: the user pressed Enter; the returned text is the buffer.
	EditAccepted EditOutcome = iota
	// EditCancelled: the input stream ended; the caller treats the edit as
	// abandoned.
	EditCancelled
	// EditInterrupted: the user pressed Ctrl-C. The editor has already
	// erased its region and restored the cursor; the outermost call site is
	// responsible for exiting with code 130.
	EditInterrupted
)

// Editor edits a single line of text in place: the buffer is rendered on
// the current terminal row after Prompt, with Hint on the row below, and
// both rows are erased when the session ends. The buffer holds plain text
// only; the decoder never feeds it control bytes.
//
// The display math measures the final buffer state, so a buffer that wraps
// past one row mid-edit is redrawn on its first row only. Keeping edited
// commands under one row is a documented limitation of this editor.
type Editor struct {
	In     io.Reader
	Out    io.Writer
	Prompt string     // printed before the buffer, may be styled
	Hint   string     // one-row hint printed beneath the edit row
	Width  func() int // terminal width, queried fresh per measurement

	// KeepOnAccept leaves the edited row visible when Enter is pressed and
	// puts the cursor on the row below, the way a line prompt behaves. The
	// hint row is still cleared. Cancel and interrupt erase as usual.
	KeepOnAccept bool
}

// NewCommandEditor returns the editor used to revise a proposed shell
// command, reading keys from stdin and drawing on stderr.
func NewCommandEditor(in io.Reader, out io.Writer, styles Styles) *Editor {
	return &Editor{
		In:     in,
		Out:    out,
		Prompt: styles.Accent.Render("$") + " ",
		Hint: styles.Accent.Render(fmt.Sprintf("[%s] to confirm, [%s] to quit",
			styles.Bold.Render("Enter"), styles.Bold.Render("Ctrl+C"))),
		Width: Width,
	}
}

// Run edits initial until Enter, Ctrl-C, or end of input. The cursor starts
// at the end of the buffer. On every outcome the edit row and the hint row
// have been erased before Run returns.
func (e *Editor) Run(initial string) (string, EditOutcome) {
	buf := []rune(initial)
	pos := len(buf)

	promptWidth := runewidth.StringWidth(ansi.Strip(e.Prompt))

	// Edit row without trailing newline would leave the cursor mid-region
	// for the hint print, so: edit row, newline, hint row (no newline),
	// then reposition onto the edit row at the cursor column.
	fmt.Fprint(e.Out, e.Prompt+string(buf))
	fmt.Fprint(e.Out, "\n")
	fmt.Fprint(e.Out, e.Hint)
	fmt.Fprint(e.Out, "\x1b[1A")
	moveToColumn(e.Out, e.column(promptWidth, buf, pos))
	flush(e.Out)

	for {
		switch ev := readKeyFrom(e.In); ev.Key {
		case KeyEnter:
			if e.KeepOnAccept {
				fmt.Fprint(e.Out, "\x1b[1B\r\x1b[2K")
				flush(e.Out)
				return string(buf), EditAccepted
			}
			e.eraseRegion(buf)
			return string(buf), EditAccepted
		case KeyInterrupt:
			e.eraseRegion(buf)
			ShowCursor(e.Out)
			return string(buf), EditInterrupted
		case KeyEndOfInput:
			e.eraseRegion(buf)
			return "", EditCancelled
		case KeyBackspace:
			if pos > 0 {
				buf = append(buf[:pos-1], buf[pos:]...)
				pos--
				e.redraw(promptWidth, buf, pos)
			}
		case KeyDelete:
			if pos < len(buf) {
				buf = append(buf[:pos], buf[pos+1:]...)
				e.redraw(promptWidth, buf, pos)
			}
		case KeyArrowLeft:
			if pos > 0 {
				pos--
				moveToColumn(e.Out, e.column(promptWidth, buf, pos))
				flush(e.Out)
			}
		case KeyArrowRight:
			if pos < len(buf) {
				pos++
				moveToColumn(e.Out, e.column(promptWidth, buf, pos))
				flush(e.Out)
			}
		case KeyHome:
			pos = 0
			moveToColumn(e.Out, e.column(promptWidth, buf, pos))
			flush(e.Out)
		case KeyEnd:
			pos = len(buf)
			moveToColumn(e.Out, e.column(promptWidth, buf, pos))
			flush(e.Out)
		case KeyChar:
			buf = append(buf[:pos], append([]rune{ev.Char}, buf[pos:]...)...)
			pos++
			e.redraw(promptWidth, buf, pos)
		}
		// ArrowUp and Unrecognized are ignored.
	}
}

// column is the 1-indexed absolute cursor column for the given buffer
// position: prompt width plus the rendered width of the text before the
// cursor. Rendered width, not rune count, so a wide character in the seeded
// command keeps the cursor aligned.
func (e *Editor) column(promptWidth int, buf []rune, pos int) int {
	return promptWidth + runewidth.StringWidth(string(buf[:pos])) + 1
}

// redraw clears the edit row and reprints prompt and buffer, then puts the
// cursor back at pos.
func (e *Editor) redraw(promptWidth int, buf []rune, pos int) {
	fmt.Fprint(e.Out, "\r\x1b[K")
	fmt.Fprint(e.Out, e.Prompt+string(buf))
	moveToColumn(e.Out, e.column(promptWidth, buf, pos))
	flush(e.Out)
}

// eraseRegion removes the edit row and the hint row. The cursor sits on the
// edit row, so it first walks down to the last row of the region to satisfy
// EraseRows' precondition. Width is re-queried because the window may have
// been resized during the edit.
func (e *Editor) eraseRegion(buf []rune) {
	width := e.Width()
	rows := VisualRows(ansi.Strip(e.Prompt)+string(buf), width) + VisualRows(ansi.Strip(e.Hint), width)
	for i := 0; i < rows-1; i++ {
		fmt.Fprint(e.Out, "\x1b[1B")
	}
	EraseRows(e.Out, rows)
}
