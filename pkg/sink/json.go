package sink

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/aide/pkg/domain"
)

// JSONSink writes each event as a JSON line.
type JSONSink struct {
	Encoder *json.Encoder
	Logger  *slog.Logger
}

// NewJSONSink creates a JSON-Lines sink. A nil writer means stdout.
func NewJSONSink(w io.Writer) *JSONSink {
	if w == nil {
		w = os.Stdout
	}
	return &JSONSink{
		Encoder: json.NewEncoder(w),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (s *JSONSink) OnRenderNode(ctx context.Context, event domain.RenderEvent) {
	s.write(Entry{Type: EntryRender, Event: &event})
}

func (s *JSONSink) OnUserEcho(ctx context.Context, label string) {
	s.write(Entry{Type: EntryEcho, Label: label})
}

func (s *JSONSink) OnClearTranscript(ctx context.Context) {
	s.write(Entry{Type: EntryClear})
}

func (s *JSONSink) write(e Entry) {
	if err := s.Encoder.Encode(e); err != nil {
		s.Logger.Error("failed to write event", "type", e.Type, "err", err)
	}
}
