package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/aide/internal/compiler"
	"github.com/aretw0/aide/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository (one document per node) to ports.TreeLoader.
type Loader struct {
	Repo *loam.TypedRepository[NodeMetadata]
}

// New creates a Loam adapter over an initialized repository.
func New(repo *loam.TypedRepository[NodeMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers as json.Number, so video_index decodes exactly.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[NodeMetadata](repo)), nil
}

// LoadTree lists every document and builds the tree.
// Documents resolving to the same id overwrite each other in listing order.
func (l *Loader) LoadTree(ctx context.Context) (*domain.Tree, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	nodes := make([]domain.Node, 0, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		content := strings.TrimSpace(doc.Content)
		if content == "" {
			content = doc.Data.Content
		}

		node, err := compiler.BuildNode(id, compiler.NodeDocument{
			ID:         id,
			Content:    content,
			Type:       doc.Data.Type,
			VideoIndex: doc.Data.VideoIndex,
			Options:    doc.Data.Options,
		})
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return domain.NewTree(nodes...), nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
