package term

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func decodeAll(input string) []KeyEvent {
	r := strings.NewReader(input)
	var events []KeyEvent
	for {
		ev := DecodeKey(r)
		events = append(events, ev)
		if ev.Key == KeyEndOfInput {
			return events
		}
	}
}

func TestDecodeKey_SingleBytes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Key
	}{
		{"newline is enter", "\n", KeyEnter},
		{"carriage return is enter", "\r", KeyEnter},
		{"ctrl-c is interrupt", "\x03", KeyInterrupt},
		{"del is backspace", "\x7f", KeyBackspace},
		{"bs is backspace", "\x08", KeyBackspace},
		{"other control byte is unrecognized", "\x01", KeyUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := DecodeKey(strings.NewReader(tt.input))
			assert.Equal(t, tt.want, ev.Key)
		})
	}
}

func TestDecodeKey_PrintableASCII(t *testing.T) {
	for b := byte(0x20); b <= 0x7e; b++ {
		ev := DecodeKey(strings.NewReader(string(b)))
		assert.Equal(t, KeyChar, ev.Key, "byte 0x%02x", b)
		assert.Equal(t, rune(b), ev.Char, "byte 0x%02x", b)
	}
}

func TestDecodeKey_EscapeSequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Key
	}{
		{"arrow up", "\x1b[A", KeyArrowUp},
		{"arrow right", "\x1b[C", KeyArrowRight},
		{"arrow left", "\x1b[D", KeyArrowLeft},
		{"home", "\x1b[H", KeyHome},
		{"end", "\x1b[F", KeyEnd},
		{"home tilde", "\x1b[1~", KeyHome},
		{"delete tilde", "\x1b[3~", KeyDelete},
		{"end tilde", "\x1b[4~", KeyEnd},
		{"arrow down is unrecognized", "\x1b[B", KeyUnrecognized},
		{"unknown final byte", "\x1b[Z", KeyUnrecognized},
		{"missing bracket", "\x1bO", KeyUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := DecodeKey(strings.NewReader(tt.input))
			assert.Equal(t, tt.want, ev.Key)
		})
	}
}

func TestDecodeKey_EOF(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty stream", ""},
		{"eof after escape", "\x1b"},
		{"eof after bracket", "\x1b["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := DecodeKey(strings.NewReader(tt.input))
			assert.Equal(t, KeyEndOfInput, ev.Key)
		})
	}
}

func TestDecodeKey_TildeSequenceConsumesTrailer(t *testing.T) {
	events := decodeAll("\x1b[3~x")
	assert.Equal(t, KeyDelete, events[0].Key)
	assert.Equal(t, KeyChar, events[1].Key)
	assert.Equal(t, 'x', events[1].Char)
}

func TestDecodeKey_MixedStream(t *testing.T) {
	events := decodeAll("ab\x1b[D\x7f\n")
	want := []Key{KeyChar, KeyChar, KeyArrowLeft, KeyBackspace, KeyEnter, KeyEndOfInput}
	var got []Key
	for _, ev := range events {
		got = append(got, ev.Key)
	}
	assert.Equal(t, want, got)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, assert.AnError }

func TestDecodeKey_ReadErrorFailsSafe(t *testing.T) {
	ev := DecodeKey(errReader{})
	assert.Equal(t, KeyEndOfInput, ev.Key)
}
