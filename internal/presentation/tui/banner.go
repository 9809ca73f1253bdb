package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the aide banner to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"        _     _      ", "#818cf8"},
		{"   __ _(_) __| | ___ ", "#a78bfa"},
		{"  / _` | |/ _` |/ _ \\", "#c084fc"},
		{" | (_| | | (_| |  __/", "#e879f9"},
		{"  \\__,_|_|\\__,_|\\___|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  help assistant "+version).Faint())
	fmt.Fprintln(w)
}
