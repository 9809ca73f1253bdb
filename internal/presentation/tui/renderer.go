package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that lays out node content with glamour.
// Content is plain text: it is escaped first, so markdown syntax shows as typed
// and line breaks are kept. The style follows the terminal background.
// width <= 0 keeps glamour's default.
func NewRenderer(width int) func(string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(content string) (string, error) {
			return content, nil
		}
	}

	return func(content string) (string, error) {
		return r.Render(EscapeMarkdown(content))
	}
}

// EscapeMarkdown turns plain text into markdown that renders to the same text.
// Every ASCII punctuation character is backslash-escaped and every line break
// becomes a hard break.
func EscapeMarkdown(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		var b strings.Builder
		b.Grow(len(line))
		for _, r := range line {
			if r < 0x80 && isASCIIPunct(byte(r)) {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\\\n")
}

func isASCIIPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}
