/*
Package runner drives an interactive conversation from a line-based input.

The Runner sits between the engine and the display sink: it is itself a
RenderSink, remembers the choices of the last rendered node and forwards every
event to the display. After each render it reads a line and translates it into
an engine call:

  - a number 1..n selects the n-th choice
  - the label of a choice (case-insensitive) selects it
  - "reset" or "restart" starts over
  - "quit" or "exit" (or EOF) ends the session

Lines that look like JSON objects are decoded as commands, for hosts driving the
runner programmatically:

	{"choice": 2}
	{"label": "Account"}
	{"command": "reset"}

# Usage

	r := runner.NewRunner(
		runner.WithInput(os.Stdin),
		runner.WithOutput(os.Stdout),
		runner.WithDisplay(sink.NewTextSink(os.Stdout)),
	)
	assistant, _ := aide.New(ctx, aide.WithSink(r))
	if err := r.Run(ctx, assistant); err != nil {
		log.Fatal(err)
	}
*/
package runner
