package dsl

import (
	"fmt"

	"github.com/aretw0/aide/pkg/adapters/memory"
	"github.com/aretw0/aide/pkg/domain"
)

// Builder manages the tree construction.
type Builder struct {
	nodes map[string]*NodeBuilder
	order []string
}

// New creates a new tree builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the tree.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID:   id,
			Kind: domain.KindText,
		},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Nodes returns the configured nodes in insertion order.
func (b *Builder) Nodes() []domain.Node {
	nodes := make([]domain.Node, 0, len(b.order))
	for _, id := range b.order {
		nodes = append(nodes, b.nodes[id].node)
	}
	return nodes
}

// Tree returns the configured nodes as a tree.
func (b *Builder) Tree() *domain.Tree {
	return domain.NewTree(b.Nodes()...)
}

// Build compiles the tree into a memory loader.
func (b *Builder) Build() (*memory.Loader, error) {
	loader, err := memory.NewFromNodes(b.Nodes()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
