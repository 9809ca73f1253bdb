package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/aide/pkg/domain"
	"github.com/aretw0/aide/pkg/ports"
)

// Engine walks the decision tree and drives a render sink.
// It owns the single conversation state and is not safe for concurrent use:
// the sink side is expected to serialize user input.
type Engine struct {
	tree        *domain.Tree
	catalog     domain.Catalog
	sink        ports.RenderSink
	state       *domain.State
	entryNodeID string
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithEntryNode sets the root node id (default: "start").
func WithEntryNode(id string) EngineOption {
	return func(e *Engine) {
		if id != "" {
			e.entryNodeID = id
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine positioned on the root node.
// The tree and catalog are read-only for the engine's lifetime.
// Construction does not validate the tree; bad references surface on access.
func NewEngine(tree *domain.Tree, catalog domain.Catalog, sink ports.RenderSink, opts ...EngineOption) *Engine {
	e := &Engine{
		tree:        tree,
		catalog:     catalog,
		sink:        sink,
		entryNodeID: domain.RootNodeID,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sink == nil {
		e.sink = discardSink{}
	}
	e.state = domain.NewState(e.entryNodeID)
	return e
}

// Start positions the conversation on the root node and renders it.
func (e *Engine) Start(ctx context.Context) error {
	e.state = domain.NewState(e.entryNodeID)

	node, ok := e.tree.Get(e.entryNodeID)
	if !ok {
		return e.notFound(ctx, e.entryNodeID)
	}
	e.enter(ctx, node)
	return nil
}

// Choose executes the transition selected by the user.
//
// The label is always echoed. Choose does not check that (label, target) belongs
// to the current node's options: callers must only pass pairs taken from the last
// render event. When target is absent the conversation stays where it is and a
// *domain.NodeNotFoundError is returned; the engine remains usable.
func (e *Engine) Choose(ctx context.Context, label, target string) error {
	e.sink.OnUserEcho(ctx, label)
	e.emit(ctx, e.hooks.OnUserChoice, domain.EventUserChoice, &domain.NodeEvent{
		NodeID: target,
		Label:  label,
	})

	node, ok := e.tree.Get(target)
	if !ok {
		return e.notFound(ctx, target)
	}

	e.logger.Debug("transition", "from", e.state.CurrentNodeID, "node_id", target, "label", label)
	e.state.CurrentNodeID = target
	e.state.History = append(e.state.History, target)
	e.enter(ctx, node)
	return nil
}

// Reset clears the transcript and starts over from the root.
func (e *Engine) Reset(ctx context.Context) error {
	e.sink.OnClearTranscript(ctx)
	e.emit(ctx, e.hooks.OnReset, domain.EventReset, &domain.NodeEvent{NodeID: e.entryNodeID})
	return e.Start(ctx)
}

// Current returns a copy of the conversation state.
func (e *Engine) Current() domain.State {
	return e.state.Clone()
}

// EntryNodeID returns the root node id.
func (e *Engine) EntryNodeID() string {
	return e.entryNodeID
}

// Resolve builds the render event of any node without touching the state.
func (e *Engine) Resolve(ctx context.Context, nodeID string) (domain.RenderEvent, error) {
	node, ok := e.tree.Get(nodeID)
	if !ok {
		return domain.RenderEvent{}, &domain.NodeNotFoundError{NodeID: nodeID, From: e.state.CurrentNodeID}
	}
	return e.render(ctx, node), nil
}

// Inspect returns every node of the tree in id order.
func (e *Engine) Inspect() []domain.Node {
	return e.tree.Nodes()
}

// Tree returns the tree the engine walks.
func (e *Engine) Tree() *domain.Tree {
	return e.tree
}

// Catalog returns the video catalog used for media resolution.
func (e *Engine) Catalog() domain.Catalog {
	return e.catalog
}

func (e *Engine) enter(ctx context.Context, node domain.Node) {
	e.emit(ctx, e.hooks.OnNodeEnter, domain.EventNodeEnter, &domain.NodeEvent{
		NodeID: node.ID,
		Kind:   node.Kind,
	})
	e.sink.OnRenderNode(ctx, e.render(ctx, node))
}

func (e *Engine) notFound(ctx context.Context, target string) error {
	err := &domain.NodeNotFoundError{NodeID: target, From: e.state.CurrentNodeID}
	e.logger.Error("node not found", "node_id", target, "current", e.state.CurrentNodeID)
	e.emit(ctx, e.hooks.OnNodeNotFound, domain.EventNodeNotFound, &domain.NodeEvent{NodeID: target})
	return err
}

func (e *Engine) emit(ctx context.Context, hook func(context.Context, *domain.NodeEvent), typ domain.EventType, ev *domain.NodeEvent) {
	if hook == nil {
		return
	}
	ev.EventBase = domain.EventBase{Timestamp: time.Now(), Type: typ}
	hook(ctx, ev)
}

type discardSink struct{}

func (discardSink) OnRenderNode(context.Context, domain.RenderEvent) {}
func (discardSink) OnUserEcho(context.Context, string)               {}
func (discardSink) OnClearTranscript(context.Context)                {}
