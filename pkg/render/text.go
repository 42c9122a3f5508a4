package render

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

const textIndent = "    "

var (
	numberStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#20B9B4"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2C4A54"))
	emptyStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#2C4A54"))
)

// TextFormatter renders notes for a terminal, numbered from the newest.
type TextFormatter struct {
	// Styled enables lipgloss colors. Leave it off for pipes and files.
	Styled bool
	// DeleteHint, when set, is printed under each note with the display
	// number substituted, e.g. "jot delete %d".
	DeleteHint string
}

// Format implements Formatter.
func (f TextFormatter) Format(entries []Entry) ([]byte, error) {
	var sb strings.Builder
	if len(entries) == 0 {
		sb.WriteString(f.style(emptyStyle, EmptyMessage))
		sb.WriteString("\n")
		return []byte(sb.String()), nil
	}

	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		number := fmt.Sprintf("[%d]", e.Number())
		sb.WriteString(f.style(numberStyle, number))
		sb.WriteString(" ")
		sb.WriteString(strings.ReplaceAll(plain(e.Text), "\n", "\n"+textIndent))
		sb.WriteString("\n")
		sb.WriteString(textIndent + f.style(mutedStyle, plain(e.Created)) + "\n")
		if f.DeleteHint != "" {
			hint := "delete: " + fmt.Sprintf(f.DeleteHint, e.Number())
			sb.WriteString(textIndent + f.style(mutedStyle, hint) + "\n")
		}
	}
	return []byte(sb.String()), nil
}

func (f TextFormatter) style(s lipgloss.Style, text string) string {
	if !f.Styled {
		return text
	}
	return s.Render(text)
}

// plain makes control runes other than newline and tab visible as escapes,
// so stored text cannot drive the terminal.
func plain(s string) string {
	if strings.IndexFunc(s, isUnsafe) < 0 {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		switch {
		case !isUnsafe(r):
			sb.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&sb, "\\x%02x", r)
		default:
			fmt.Fprintf(&sb, "\\u%04x", r)
		}
	}
	return sb.String()
}

func isUnsafe(r rune) bool {
	if r == '\n' || r == '\t' {
		return false
	}
	return unicode.IsControl(r) || unicode.Is(unicode.Bidi_Control, r)
}
