package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/aide/pkg/domain"
)

// LoggingHooks returns lifecycle hooks writing one debug line per event.
// Not-found and missing-media events are already logged by the engine at
// error and warn level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	log := func(ctx context.Context, e *domain.NodeEvent) {
		attrs := []any{"node_id", e.NodeID}
		if e.Kind != "" {
			attrs = append(attrs, "kind", e.Kind)
		}
		if e.Label != "" {
			attrs = append(attrs, "label", e.Label)
		}
		logger.DebugContext(ctx, string(e.Type), attrs...)
	}
	return domain.LifecycleHooks{
		OnNodeEnter:  log,
		OnUserChoice: log,
		OnReset:      log,
	}
}
