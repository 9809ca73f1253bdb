package sink

import (
	"context"

	"github.com/aretw0/aide/pkg/domain"
	"github.com/aretw0/aide/pkg/ports"
)

type multi []ports.RenderSink

// Multi returns a sink forwarding every event to each of sinks in order.
func Multi(sinks ...ports.RenderSink) ports.RenderSink {
	return multi(sinks)
}

func (m multi) OnRenderNode(ctx context.Context, event domain.RenderEvent) {
	for _, s := range m {
		s.OnRenderNode(ctx, event)
	}
}

func (m multi) OnUserEcho(ctx context.Context, label string) {
	for _, s := range m {
		s.OnUserEcho(ctx, label)
	}
}

func (m multi) OnClearTranscript(ctx context.Context) {
	for _, s := range m {
		s.OnClearTranscript(ctx)
	}
}
