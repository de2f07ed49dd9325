package term

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestConfirmer(keys string, out *bytes.Buffer) *Confirmer {
	return &Confirmer{
		In:          strings.NewReader(keys),
		Out:         out,
		Width:       func() int { return 80 },
		Interactive: true,
		Styles:      NewStyles(out),
	}
}

func TestConfirmWithExplain_KeyMapping(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want ConfirmResult
	}{
		{"lowercase y", "y", ConfirmYes},
		{"uppercase y", "Y", ConfirmYes},
		{"enter", "\r", ConfirmYes},
		{"newline", "\n", ConfirmYes},
		{"lowercase e", "e", ConfirmExplain},
		{"uppercase e", "E", ConfirmExplain},
		{"arrow up", "\x1b[A", ConfirmEdit},
		{"lowercase n", "n", ConfirmCancel},
		{"uppercase n", "N", ConfirmCancel},
		{"ctrl-c", "\x03", ConfirmInterrupted},
		{"end of input", "", ConfirmNo},
		{"unrelated keys are skipped", "zq\x1b[Dy", ConfirmYes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := newTestConfirmer(tt.keys, &out)
			assert.Equal(t, tt.want, c.ConfirmWithExplain(1))
		})
	}
}

func TestConfirmExecution_KeyMapping(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want ConfirmResult
	}{
		{"yes", "y", ConfirmYes},
		{"enter", "\n", ConfirmYes},
		{"edit", "\x1b[A", ConfirmEdit},
		{"cancel", "n", ConfirmCancel},
		{"interrupt", "\x03", ConfirmInterrupted},
		{"end of input", "", ConfirmNo},
		// The explain key is not live on the post-explanation prompt.
		{"e then y", "ey", ConfirmYes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := newTestConfirmer(tt.keys, &out)
			assert.Equal(t, tt.want, c.ConfirmExecution(1, 2))
		})
	}
}

func TestConfirm_NonInteractiveReturnsYesWithoutReading(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("nnn")
	c := &Confirmer{
		In:          in,
		Out:         &out,
		Width:       func() int { return 80 },
		Interactive: false,
		Styles:      NewStyles(&out),
	}

	assert.Equal(t, ConfirmYes, c.ConfirmWithExplain(1))
	assert.Equal(t, ConfirmYes, c.ConfirmExecution(1, 1))
	assert.Equal(t, 3, in.Len(), "non-interactive confirm must not consume input")
	assert.Empty(t, out.String(), "non-interactive confirm must not render a prompt")
}

func TestConfirmWithExplain_YesErasesPromptOnly(t *testing.T) {
	var out bytes.Buffer
	c := newTestConfirmer("y", &out)

	c.ConfirmWithExplain(3)

	// The prompt occupies two rows (question and hint); the command region
	// above it stays on screen.
	assert.True(t, strings.HasSuffix(out.String(), "\r\x1b[2K\x1b[1A\x1b[2K"))
	assert.Equal(t, 1, strings.Count(out.String(), "\x1b[1A\x1b[2K"))
}

func TestConfirmWithExplain_CancelErasesCommandToo(t *testing.T) {
	var out bytes.Buffer
	c := newTestConfirmer("n", &out)

	c.ConfirmWithExplain(3)

	// Three command rows plus two prompt rows: clear in place once, walk up
	// four times.
	assert.Equal(t, 4, strings.Count(out.String(), "\x1b[1A\x1b[2K"))
}

func TestConfirmExecution_YesErasesExplanationAndPrompt(t *testing.T) {
	var out bytes.Buffer
	c := newTestConfirmer("y", &out)

	c.ConfirmExecution(2, 5)

	// Five explanation rows plus two prompt rows erased; the two command
	// rows stay.
	assert.Equal(t, 6, strings.Count(out.String(), "\x1b[1A\x1b[2K"))
}

func TestConfirm_InterruptShowsCursor(t *testing.T) {
	var out bytes.Buffer
	c := newTestConfirmer("\x03", &out)

	c.ConfirmWithExplain(1)

	assert.Contains(t, out.String(), "\x1b[?25h")
}

func TestDisplayCommand_SingleLine(t *testing.T) {
	var out bytes.Buffer
	c := newTestConfirmer("", &out)

	rows := c.DisplayCommand("ls -la")

	assert.Equal(t, 1, rows)
	assert.Equal(t, "$ ls -la\n", out.String())
}

func TestDisplayCommand_LongLineWraps(t *testing.T) {
	var out bytes.Buffer
	c := newTestConfirmer("", &out)
	c.Width = func() int { return 10 }

	rows := c.DisplayCommand(strings.Repeat("x", 20))

	// "$ " plus twenty characters at width ten.
	assert.Equal(t, 3, rows)
}

func TestDisplayCommand_Multiline(t *testing.T) {
	var out bytes.Buffer
	c := newTestConfirmer("", &out)

	rows := c.DisplayCommand("cd /tmp\nls")

	assert.Equal(t, 3, rows)
	rendered := out.String()
	assert.Contains(t, rendered, "> multiline command:")
	assert.Contains(t, rendered, "$ cd /tmp")
	assert.Contains(t, rendered, "$ ls")
}

func TestDisplayExplanation_RowsMatchOutput(t *testing.T) {
	var out bytes.Buffer
	c := newTestConfirmer("", &out)
	c.Width = func() int { return 40 }

	text := "Lists files.\nThe <b>-a</b> flag includes hidden entries."
	rows := c.DisplayExplanation(text)

	assert.Equal(t, VisualRows(RenderInlineTags(text, false), 40), rows)
	assert.NotContains(t, out.String(), "<b>")
}

func TestRenderInlineTags(t *testing.T) {
	in := "use <b>rm</b> with <i>care</i> and <u>read</u> first"

	plain := RenderInlineTags(in, false)
	assert.Equal(t, "use rm with care and read first", plain)

	colored := RenderInlineTags(in, true)
	assert.Contains(t, colored, "\x1b[1mrm\x1b[22m")
	assert.Contains(t, colored, "\x1b[3mcare\x1b[23m")
	assert.Contains(t, colored, "\x1b[4mread\x1b[24m")
}
