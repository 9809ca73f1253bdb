package runner

import (
	"io"
	"log/slog"

	"github.com/aretw0/aide/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInput sets the line source (default: os.Stdin).
func WithInput(r io.Reader) Option {
	return func(run *Runner) {
		run.Input = r
	}
}

// WithOutput sets where prompts and hints are written (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.Output = w
	}
}

// WithDisplay sets the sink receiving the conversation events.
func WithDisplay(display ports.RenderSink) Option {
	return func(r *Runner) {
		r.Display = display
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithHeadless disables the prompt and hints, for JSON hosts.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}
