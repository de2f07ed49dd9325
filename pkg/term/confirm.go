package term

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ConfirmResult is the user's decision for one confirmation prompt. It is
// consumed immediately by the caller, never stored.
type ConfirmResult int

const (
	ConfirmYes ConfirmResult = iota
	ConfirmNo
	ConfirmExplain
	ConfirmEdit
	ConfirmCancel
	// ConfirmInterrupted: Ctrl-C during the prompt. The erasable region has
	// been cleared and the cursor restored; the outermost call site exits
	// with code 130.
	ConfirmInterrupted
)

// Confirmer runs the display → decide → act cycle for a proposed command.
// Rendering goes to Out (stderr in production), keys come from In. When
// Interactive is false every confirmation returns ConfirmYes without
// reading a byte, so batch and piped invocations never block on a prompt.
type Confirmer struct {
	In          io.Reader
	Out         io.Writer
	Width       func() int
	Interactive bool
	Styles      Styles
}

// NewConfirmer builds the production confirmer: stdin keys, stderr
// rendering, live width, TTY-or-override interactivity.
func NewConfirmer() *Confirmer {
	return &Confirmer{
		In:          os.Stdin,
		Out:         os.Stderr,
		Width:       Width,
		Interactive: Interactive(),
		Styles:      NewStyles(os.Stderr),
	}
}

// DisplayCommand prints the proposed command and returns the number of
// visual rows it occupies, which the caller passes back into the confirm
// calls so the right region can be erased later. Multi-line commands get a
// header row and one "$ " row per line.
func (c *Confirmer) DisplayCommand(command string) int {
	width := c.Width()
	lines := strings.Split(command, "\n")
	if len(lines) == 1 {
		rows := VisualRows("$ "+command, width)
		fmt.Fprintf(c.Out, "%s %s\n", c.Styles.Accent.Render("$"), c.Styles.Command.Render(command))
		flush(c.Out)
		return rows
	}
	rows := VisualRows("> multiline command:", width)
	fmt.Fprintf(c.Out, "%s %s\n", c.Styles.Accent.Render(">"), c.Styles.Command.Render("multiline command:"))
	for _, line := range lines {
		rows += VisualRows("$ "+line, width)
		fmt.Fprintf(c.Out, "%s %s\n", c.Styles.Accent.Render("$"), line)
	}
	flush(c.Out)
	return rows
}

// DisplayExplanation prints an explanation and returns its row count. The
// model is asked to mark emphasis with <b>/<i>/<u> tags; they are converted
// to SGR when the sink supports color and dropped otherwise. Row accounting
// runs on the exact string printed.
func (c *Confirmer) DisplayExplanation(explanation string) int {
	width := c.Width()
	styled := RenderInlineTags(explanation, c.Styles.Colored())
	rows := VisualRows(styled, width)
	for _, line := range strings.Split(styled, "\n") {
		fmt.Fprintln(c.Out, line)
	}
	flush(c.Out)
	return rows
}

// RenderInlineTags converts the <b>/<i>/<u> emphasis markup used in
// explanation prompts into SGR sequences, or strips it when the output does
// not render color.
func RenderInlineTags(text string, colored bool) string {
	if colored {
		r := strings.NewReplacer(
			"<b>", "\x1b[1m", "</b>", "\x1b[22m",
			"<i>", "\x1b[3m", "</i>", "\x1b[23m",
			"<u>", "\x1b[4m", "</u>", "\x1b[24m",
		)
		return r.Replace(text)
	}
	r := strings.NewReplacer(
		"<b>", "", "</b>", "",
		"<i>", "", "</i>", "",
		"<u>", "", "</u>", "",
	)
	return r.Replace(text)
}

// ConfirmWithExplain asks for a decision on a freshly displayed command.
// cmdRows is the region DisplayCommand reported. Yes keeps the command
// visible and erases only the prompt; Explain erases the prompt so the
// caller can append the explanation to the region; Edit, Cancel, Interrupt
// and end-of-input erase everything printed so far.
func (c *Confirmer) ConfirmWithExplain(cmdRows int) ConfirmResult {
	if !c.Interactive {
		return ConfirmYes
	}

	promptRows := c.printPrompt(true)
	total := cmdRows + promptRows

	for {
		ev := readKeyFrom(c.In)
		switch {
		case ev.Key == KeyEnter || isChar(ev, 'y', 'Y'):
			EraseRows(c.Out, promptRows)
			return ConfirmYes
		case isChar(ev, 'e', 'E'):
			EraseRows(c.Out, promptRows)
			return ConfirmExplain
		case ev.Key == KeyArrowUp:
			EraseRows(c.Out, total)
			return ConfirmEdit
		case isChar(ev, 'n', 'N'):
			EraseRows(c.Out, total)
			return ConfirmCancel
		case ev.Key == KeyInterrupt:
			EraseRows(c.Out, total)
			ShowCursor(c.Out)
			return ConfirmInterrupted
		case ev.Key == KeyEndOfInput:
			EraseRows(c.Out, total)
			ShowCursor(c.Out)
			return ConfirmNo
		}
	}
}

// ConfirmExecution asks for the final decision after an explanation has
// been displayed. The command rows persist on Yes; the explanation rows are
// ephemeral and erased together with the prompt.
func (c *Confirmer) ConfirmExecution(cmdRows, explRows int) ConfirmResult {
	if !c.Interactive {
		return ConfirmYes
	}

	promptRows := c.printPrompt(false)
	total := cmdRows + explRows + promptRows

	for {
		ev := readKeyFrom(c.In)
		switch {
		case ev.Key == KeyEnter || isChar(ev, 'y', 'Y'):
			EraseRows(c.Out, explRows+promptRows)
			return ConfirmYes
		case ev.Key == KeyArrowUp:
			EraseRows(c.Out, total)
			return ConfirmEdit
		case isChar(ev, 'n', 'N'):
			EraseRows(c.Out, total)
			return ConfirmCancel
		case ev.Key == KeyInterrupt:
			EraseRows(c.Out, total)
			ShowCursor(c.Out)
			return ConfirmInterrupted
		case ev.Key == KeyEndOfInput:
			EraseRows(c.Out, total)
			ShowCursor(c.Out)
			return ConfirmNo
		}
	}
}

// printPrompt writes the question and key-hint rows, the hint without a
// trailing newline so the cursor ends on the last row of the erasable
// region, and returns the rows printed.
func (c *Confirmer) printPrompt(withExplain bool) int {
	width := c.Width()

	var question, hint string
	if withExplain {
		question = fmt.Sprintf("%s %s", c.Styles.Question.Render("Run this?"), c.Styles.Dim.Render("(Y/e/n)"))
		hint = c.Styles.Accent.Render("[Y/Enter] to execute, [E] to explain, [Arrow Up] to edit, [N] to cancel")
	} else {
		question = fmt.Sprintf("%s %s", c.Styles.Question.Render("Run this?"), c.Styles.Dim.Render("(Y/n)"))
		hint = c.Styles.Accent.Render("[Y/Enter] to execute, [Arrow Up] to edit, [N] to cancel")
	}

	rows := VisualRows(question, width)
	fmt.Fprintln(c.Out, question)
	rows += VisualRows(hint, width)
	fmt.Fprint(c.Out, hint)
	flush(c.Out)
	return rows
}

func isChar(ev KeyEvent, chars ...rune) bool {
	if ev.Key != KeyChar {
		return false
	}
	for _, c := range chars {
		if ev.Char == c {
			return true
		}
	}
	return false
}
