package sink

import (
	"context"
	"sync"

	"github.com/aretw0/aide/pkg/domain"
)

// EntryType identifies a transcript entry.
type EntryType string

const (
	EntryRender EntryType = "render"
	EntryEcho   EntryType = "echo"
	EntryClear  EntryType = "clear"
)

// Entry is one event received by a sink.
type Entry struct {
	Type  EntryType           `json:"type"`
	Event *domain.RenderEvent `json:"event,omitempty"`
	Label string              `json:"label,omitempty"`
}

// Recorder is a RenderSink keeping the visible transcript in memory.
// A clear signal discards the transcript, as a widget would.
type Recorder struct {
	mu         sync.Mutex
	transcript []Entry
	log        []Entry
	clears     int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) OnRenderNode(ctx context.Context, event domain.RenderEvent) {
	r.append(Entry{Type: EntryRender, Event: &event})
}

func (r *Recorder) OnUserEcho(ctx context.Context, label string) {
	r.append(Entry{Type: EntryEcho, Label: label})
}

func (r *Recorder) OnClearTranscript(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transcript = nil
	r.clears++
	r.log = append(r.log, Entry{Type: EntryClear})
}

func (r *Recorder) append(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transcript = append(r.transcript, e)
	r.log = append(r.log, e)
}

// Transcript returns what is currently visible (everything since the last clear).
func (r *Recorder) Transcript() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.transcript...)
}

// Log returns every event received, clears included.
func (r *Recorder) Log() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.log...)
}

// Drain returns the full log and empties it, keeping the transcript.
func (r *Recorder) Drain() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.log
	r.log = nil
	return out
}

// Clears returns how many clear signals were received.
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

// LastRender returns the most recent render event still in the transcript.
func (r *Recorder) LastRender() (domain.RenderEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.transcript) - 1; i >= 0; i-- {
		if r.transcript[i].Type == EntryRender {
			return *r.transcript[i].Event, true
		}
	}
	return domain.RenderEvent{}, false
}
