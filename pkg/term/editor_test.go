package term

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestEditor(keys string, out *bytes.Buffer) *Editor {
	e := NewCommandEditor(strings.NewReader(keys), out, NewStyles(out))
	e.Width = func() int { return 80 }
	return e
}

func TestEditorRun_AppendAndAccept(t *testing.T) {
	var out bytes.Buffer
	e := newTestEditor(" suffix\r", &out)

	text, outcome := e.Run("echo mock")

	assert.Equal(t, EditAccepted, outcome)
	assert.Equal(t, "echo mock suffix", text)
}

func TestEditorRun_KeepOnAcceptLeavesLine(t *testing.T) {
	var out bytes.Buffer
	e := newTestEditor("\r", &out)
	e.KeepOnAccept = true

	text, outcome := e.Run("ls")

	assert.Equal(t, EditAccepted, outcome)
	assert.Equal(t, "ls", text)
	// The edit row is not erased; the cursor drops to the cleared row below.
	assert.NotContains(t, out.String(), "\x1b[1A\x1b[2K")
	assert.Contains(t, out.String(), "\x1b[1B\r\x1b[2K")
}

func TestEditorRun_BackspaceFromEnd(t *testing.T) {
	var out bytes.Buffer
	e := newTestEditor("\x7f\x7f\r", &out)

	text, outcome := e.Run("echo mock")

	assert.Equal(t, EditAccepted, outcome)
	assert.Equal(t, "echo mo", text)
}

func TestEditorRun_AcceptUnchanged(t *testing.T) {
	var out bytes.Buffer
	e := newTestEditor("\n", &out)

	text, outcome := e.Run("ls -la")

	assert.Equal(t, EditAccepted, outcome)
	assert.Equal(t, "ls -la", text)
}

func TestEditorRun_InsertMidLine(t *testing.T) {
	var out bytes.Buffer
	// Four lefts put the cursor before "mock", then insert.
	e := newTestEditor("\x1b[D\x1b[D\x1b[D\x1b[Dreal \r", &out)

	text, outcome := e.Run("echo mock")

	assert.Equal(t, EditAccepted, outcome)
	assert.Equal(t, "echo real mock", text)
}

func TestEditorRun_HomeAndDelete(t *testing.T) {
	var out bytes.Buffer
	e := newTestEditor("\x1b[H\x1b[3~\x1b[3~\r", &out)

	text, outcome := e.Run("xxls")

	assert.Equal(t, EditAccepted, outcome)
	assert.Equal(t, "ls", text)
}

func TestEditorRun_EndAfterHome(t *testing.T) {
	var out bytes.Buffer
	e := newTestEditor("\x1b[H\x1b[F!\r", &out)

	text, outcome := e.Run("echo hi")

	assert.Equal(t, EditAccepted, outcome)
	assert.Equal(t, "echo hi!", text)
}

func TestEditorRun_BackspaceAtStartIsNoop(t *testing.T) {
	var out bytes.Buffer
	e := newTestEditor("\x1b[H\x7f\r", &out)

	text, outcome := e.Run("pwd")

	assert.Equal(t, EditAccepted, outcome)
	assert.Equal(t, "pwd", text)
}

func TestEditorRun_ArrowUpIgnored(t *testing.T) {
	var out bytes.Buffer
	e := newTestEditor("\x1b[A\r", &out)

	text, outcome := e.Run("uptime")

	assert.Equal(t, EditAccepted, outcome)
	assert.Equal(t, "uptime", text)
}

func TestEditorRun_Interrupt(t *testing.T) {
	var out bytes.Buffer
	e := newTestEditor("abc\x03", &out)

	_, outcome := e.Run("echo hi")

	assert.Equal(t, EditInterrupted, outcome)
	assert.Contains(t, out.String(), "\x1b[?25h")
}

func TestEditorRun_EndOfInputCancels(t *testing.T) {
	var out bytes.Buffer
	e := newTestEditor("", &out)

	text, outcome := e.Run("echo hi")

	assert.Equal(t, EditCancelled, outcome)
	assert.Empty(t, text)
}

func TestEditorRun_ErasesBothRowsOnAccept(t *testing.T) {
	var out bytes.Buffer
	e := newTestEditor("\r", &out)

	_, _ = e.Run("echo hi")

	rendered := out.String()
	assert.Contains(t, rendered, "$ echo hi")
	assert.Contains(t, rendered, "[Enter] to confirm, [Ctrl+C] to quit")
	// Edit row plus hint row: cursor walks down one, then clears two rows.
	assert.Contains(t, rendered, "\x1b[1B\r\x1b[2K\x1b[1A\x1b[2K")
}

func TestEditorRun_ControlBytesNeverEnterBuffer(t *testing.T) {
	var out bytes.Buffer
	e := newTestEditor("\x01\x02\x1b[Z\x07ok\r", &out)

	text, outcome := e.Run("echo ")

	assert.Equal(t, EditAccepted, outcome)
	assert.Equal(t, "echo ok", text)
}
