package term

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles groups the lipgloss styles used on the confirmation and editing
// surface. The renderer is bound to the output sink so color support is
// detected on stderr, not stdout, and degrades to plain text for piped
// output and in tests.
type Styles struct {
	colored bool

	Accent   lipgloss.Style // "$" markers and key hints
	Command  lipgloss.Style // the proposed command text
	Question lipgloss.Style // "Run this?"
	Dim      lipgloss.Style // secondary hints
	Bold     lipgloss.Style
	Check    lipgloss.Style // "✓" status marker
	Warning  lipgloss.Style
	Error    lipgloss.Style
}

// NewStyles builds styles rendered for out.
func NewStyles(out io.Writer) Styles {
	r := lipgloss.NewRenderer(out)
	colored := false
	if f, ok := out.(*os.File); ok {
		colored = os.Getenv("NO_COLOR") == "" && isatty.IsTerminal(f.Fd())
	}
	return Styles{
		colored:  colored,
		Accent:   r.NewStyle().Foreground(lipgloss.Color("6")),
		Command:  r.NewStyle().Bold(true),
		Question: r.NewStyle().Foreground(lipgloss.Color("3")),
		Dim:      r.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:     r.NewStyle().Bold(true),
		Check:    r.NewStyle().Foreground(lipgloss.Color("2")),
		Warning:  r.NewStyle().Foreground(lipgloss.Color("3")),
		Error:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Colored reports whether the sink renders SGR styling. Explanation markup
// conversion keys off this instead of re-probing the descriptor.
func (s Styles) Colored() bool { return s.colored }
