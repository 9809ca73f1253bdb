package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/aide"
	"github.com/aretw0/aide/internal/config"
	"github.com/aretw0/aide/internal/presentation/tui"
	"github.com/aretw0/aide/pkg/observability"
	"github.com/aretw0/aide/pkg/ports"
	"github.com/aretw0/aide/pkg/runner"
	"github.com/aretw0/aide/pkg/sink"
	"golang.org/x/term"
)

// SessionOptions configures an interactive chat session.
type SessionOptions struct {
	Config config.Config
	JSON   bool
	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger
}

// RunSession runs one conversation on the given streams until quit, EOF or
// interruption.
func RunSession(ctx context.Context, opts SessionOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	interactive, width := terminal(opts.Out)
	quiet := opts.JSON || !interactive

	var display ports.RenderSink
	if opts.JSON {
		display = sink.NewJSONSink(opts.Out)
	} else {
		sinkOpts := []sink.TextSinkOption{sink.WithInteractive(interactive)}
		if interactive {
			sinkOpts = append(sinkOpts, sink.WithRenderer(tui.NewRenderer(width)))
		}
		display = sink.NewTextSink(opts.Out, sinkOpts...)
	}

	r := runner.NewRunner(
		runner.WithInput(opts.In),
		runner.WithOutput(opts.Out),
		runner.WithDisplay(display),
		runner.WithLogger(opts.Logger),
		runner.WithHeadless(opts.JSON),
	)

	assistant, cleanup, err := NewAssistant(ctx, opts.Config, opts.Logger,
		aide.WithSink(r),
		aide.WithLifecycleHooks(observability.LoggingHooks(opts.Logger)),
	)
	if err != nil {
		return err
	}
	defer cleanup()

	if !quiet {
		tui.PrintBanner(opts.Out, aide.Version)
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	runErr := r.Run(sigCtx, assistant)
	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}

	logCompletion(opts.Out, assistant.Current().CurrentNodeID, runErr, quiet, sigCtx.Signal())
	return handleExecutionError(runErr)
}

// terminal reports whether w is a terminal and its width.
func terminal(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return true, 0
	}
	return true, width
}
