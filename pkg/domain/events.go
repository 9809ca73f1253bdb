package domain

import (
	"context"
	"time"
)

// RenderEvent is what the engine asks a sink to display when a node is entered.
type RenderEvent struct {
	NodeID  string   `json:"node_id"`
	Content string   `json:"content"`
	Media   *Video   `json:"media,omitempty"`
	Choices []Choice `json:"choices"`
}

// Terminal reports whether the event offers no choices.
func (e RenderEvent) Terminal() bool {
	return len(e.Choices) == 0
}

// EventType defines the category of a lifecycle event.
type EventType string

const (
	EventNodeEnter    EventType = "node_enter"
	EventUserChoice   EventType = "user_choice"
	EventNodeNotFound EventType = "node_not_found"
	EventMediaMissing EventType = "media_missing"
	EventReset        EventType = "reset"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// NodeEvent describes an engine event related to a node.
type NodeEvent struct {
	EventBase
	NodeID     string   `json:"node_id"`
	Kind       NodeKind `json:"kind,omitempty"`
	Label      string   `json:"label,omitempty"`
	VideoIndex int      `json:"video_index,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnNodeEnter    func(context.Context, *NodeEvent)
	OnUserChoice   func(context.Context, *NodeEvent)
	OnNodeNotFound func(context.Context, *NodeEvent)
	OnMediaMissing func(context.Context, *NodeEvent)
	OnReset        func(context.Context, *NodeEvent)
}

// Merge returns hooks calling h first and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnNodeEnter:    chain(h.OnNodeEnter, other.OnNodeEnter),
		OnUserChoice:   chain(h.OnUserChoice, other.OnUserChoice),
		OnNodeNotFound: chain(h.OnNodeNotFound, other.OnNodeNotFound),
		OnMediaMissing: chain(h.OnMediaMissing, other.OnMediaMissing),
		OnReset:        chain(h.OnReset, other.OnReset),
	}
}

func chain(a, b func(context.Context, *NodeEvent)) func(context.Context, *NodeEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *NodeEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
