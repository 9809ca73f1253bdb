package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/aretw0/aide/pkg/domain"
	"github.com/aretw0/aide/pkg/ports"
)

// Conversation is the part of the assistant the runner drives.
type Conversation interface {
	Start(ctx context.Context) error
	Choose(ctx context.Context, label, target string) error
	Reset(ctx context.Context) error
}

// Runner reads user input and feeds it to a Conversation.
// It must be registered as the conversation's sink so it learns the choices
// offered by each rendered node.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Display  ports.RenderSink
	Logger   *slog.Logger
	Headless bool

	mu      sync.Mutex
	choices []domain.Choice
	reader  *lineReader
}

// NewRunner creates a Runner reading stdin and writing prompts to stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) OnRenderNode(ctx context.Context, event domain.RenderEvent) {
	r.mu.Lock()
	r.choices = append([]domain.Choice(nil), event.Choices...)
	r.mu.Unlock()
	if r.Display != nil {
		r.Display.OnRenderNode(ctx, event)
	}
}

func (r *Runner) OnUserEcho(ctx context.Context, label string) {
	if r.Display != nil {
		r.Display.OnUserEcho(ctx, label)
	}
}

func (r *Runner) OnClearTranscript(ctx context.Context) {
	r.mu.Lock()
	r.choices = nil
	r.mu.Unlock()
	if r.Display != nil {
		r.Display.OnClearTranscript(ctx)
	}
}

// Choices returns the choices of the last rendered node.
func (r *Runner) Choices() []domain.Choice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Choice(nil), r.choices...)
}

// Run starts the conversation and processes input until quit, EOF or
// context cancellation. EOF and quit return nil.
func (r *Runner) Run(ctx context.Context, conv Conversation) error {
	if r.reader == nil {
		r.reader = newLineReader(r.Input)
	}
	defer func() {
		r.reader.Close()
		r.reader = nil
	}()

	if err := conv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start conversation: %w", err)
	}

	for {
		r.prompt()
		line, err := r.reader.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		clean, err := CleanLine(line)
		if err != nil {
			r.refuse(err)
			continue
		}

		choices := r.Choices()
		cmd, err := ParseCommand(clean, choices)
		if err != nil {
			r.Logger.Debug("unrecognized input", "input", clean, "err", err)
			r.explain(choices)
			continue
		}

		switch cmd.Kind {
		case CommandNone:
			continue
		case CommandQuit:
			return nil
		case CommandReset:
			if err := conv.Reset(ctx); err != nil {
				return fmt.Errorf("failed to reset conversation: %w", err)
			}
		case CommandChoose:
			if err := conv.Choose(ctx, cmd.Choice.Label, cmd.Choice.Next); err != nil {
				// The engine already logged it and stays on the current node.
				var nf *domain.NodeNotFoundError
				if !errors.As(err, &nf) {
					return err
				}
				r.hint("Sorry, that answer leads nowhere. Please pick another one.")
			}
		}
	}
}

func (r *Runner) prompt() {
	if !r.Headless && r.Output != nil {
		fmt.Fprint(r.Output, "> ")
	}
}

func (r *Runner) hint(format string, args ...any) {
	if !r.Headless && r.Output != nil {
		fmt.Fprintf(r.Output, format+"\n", args...)
	}
}

func (r *Runner) refuse(err error) {
	r.Logger.Debug("input refused", "err", err)
	var ie *InputError
	if errors.As(err, &ie) {
		r.hint("%s Please try again.", ie.Hint())
		return
	}
	r.hint("Error: %v. Please try again.", err)
}

func (r *Runner) explain(choices []domain.Choice) {
	if len(choices) == 0 {
		r.hint("The conversation is over. Type 'reset' to start over or 'quit' to leave.")
		return
	}
	r.hint("Please type a number between 1 and %d, a choice label, 'reset' or 'quit'.", len(choices))
}
