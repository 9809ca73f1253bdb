package ports

import (
	"context"

	"github.com/aretw0/aide/pkg/domain"
)

// RenderSink turns engine events into visible output.
// The engine calls it synchronously from Start, Choose and Reset.
type RenderSink interface {
	// OnRenderNode displays a node's content, media and choices.
	OnRenderNode(ctx context.Context, event domain.RenderEvent)

	// OnUserEcho displays the label the user selected.
	OnUserEcho(ctx context.Context, label string)

	// OnClearTranscript discards everything displayed so far.
	OnClearTranscript(ctx context.Context)
}
