package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/aide/internal/compiler"
	"github.com/aretw0/aide/pkg/domain"
)

// Loader implements ports.TreeLoader using an in-memory set of nodes.
type Loader struct {
	nodes []domain.Node
}

// NewFromNodes creates a loader from domain objects.
func NewFromNodes(nodes ...domain.Node) (*Loader, error) {
	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node missing ID")
		}
	}
	return &Loader{nodes: nodes}, nil
}

// New creates a loader from raw JSON node documents keyed by id.
func New(data map[string]string) (*Loader, error) {
	ids := make([]string, 0, len(data))
	for id := range data {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order

	nodes := make([]domain.Node, 0, len(data))
	for _, id := range ids {
		tree, err := compiler.ParseTree([]byte(fmt.Sprintf("{%q: %s}", id, data[id])), compiler.FormatJSON)
		if err != nil {
			return nil, err
		}
		n, _ := tree.Get(id)
		nodes = append(nodes, n)
	}
	return &Loader{nodes: nodes}, nil
}

// LoadTree returns a tree over the loader's nodes.
func (l *Loader) LoadTree(ctx context.Context) (*domain.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return domain.NewTree(l.nodes...), nil
}
