package runtime

import (
	"context"

	"github.com/aretw0/aide/pkg/domain"
)

// render builds the event for node, resolving its video against the catalog.
// A missing video degrades the presentation but is not an error.
func (e *Engine) render(ctx context.Context, node domain.Node) domain.RenderEvent {
	event := domain.RenderEvent{
		NodeID:  node.ID,
		Content: node.Content,
		Choices: append([]domain.Choice{}, node.Options...),
	}

	index, isVideo := node.VideoRef()
	if !isVideo {
		return event
	}

	video, ok := e.catalog.Get(index)
	if !ok {
		if len(e.catalog) == 0 {
			e.logger.Warn("no videos available", "node_id", node.ID, "video_index", index)
		} else {
			e.logger.Warn("video not found", "node_id", node.ID, "video_index", index, "catalog_size", len(e.catalog))
		}
		e.emit(ctx, e.hooks.OnMediaMissing, domain.EventMediaMissing, &domain.NodeEvent{
			NodeID:     node.ID,
			Kind:       node.Kind,
			VideoIndex: index,
		})
		return event
	}

	event.Media = &video
	return event
}
