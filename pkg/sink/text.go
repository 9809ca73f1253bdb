package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/aide/pkg/domain"
	"github.com/muesli/termenv"
)

// ContentRenderer transforms node content (usually markdown) before display.
type ContentRenderer func(string) (string, error)

// TextSink writes the conversation as plain text, numbering the choices
// so a line-based runner can accept either the number or the label.
type TextSink struct {
	Writer      io.Writer
	Renderer    ContentRenderer
	Interactive bool

	out *termenv.Output
}

// TextSinkOption configures a TextSink.
type TextSinkOption func(*TextSink)

// WithRenderer sets the content renderer (e.g. glamour).
func WithRenderer(r ContentRenderer) TextSinkOption {
	return func(s *TextSink) {
		s.Renderer = r
	}
}

// WithInteractive makes clear signals wipe the terminal instead of
// printing a separator.
func WithInteractive(interactive bool) TextSinkOption {
	return func(s *TextSink) {
		s.Interactive = interactive
	}
}

// NewTextSink creates a text sink. A nil writer means stdout.
func NewTextSink(w io.Writer, opts ...TextSinkOption) *TextSink {
	if w == nil {
		w = os.Stdout
	}
	s := &TextSink{Writer: w}
	for _, opt := range opts {
		opt(s)
	}
	s.out = termenv.NewOutput(w)
	return s
}

func (s *TextSink) OnRenderNode(ctx context.Context, event domain.RenderEvent) {
	content := event.Content
	if s.Renderer != nil {
		if rendered, err := s.Renderer(content); err == nil {
			content = rendered
		}
	}
	fmt.Fprintln(s.Writer, strings.TrimSpace(content))

	if event.Media != nil {
		title := s.out.String(event.Media.DisplayTitle()).Bold()
		fmt.Fprintf(s.Writer, "[video] %s\n", title)
		if u := event.Media.EmbedURL(); u != "" {
			fmt.Fprintf(s.Writer, "        %s\n", u)
		}
	}

	for i, c := range event.Choices {
		fmt.Fprintf(s.Writer, "  %d) %s\n", i+1, c.Label)
	}
	if event.Terminal() {
		fmt.Fprintln(s.Writer, s.out.String("(type 'reset' to start over)").Faint())
	}
}

func (s *TextSink) OnUserEcho(ctx context.Context, label string) {
	echo := s.out.String("you: " + label).Foreground(s.out.Color("#818cf8"))
	fmt.Fprintf(s.Writer, "\n%s\n\n", echo)
}

func (s *TextSink) OnClearTranscript(ctx context.Context) {
	if s.Interactive {
		s.out.ClearScreen()
		return
	}
	fmt.Fprintln(s.Writer, "----")
}
