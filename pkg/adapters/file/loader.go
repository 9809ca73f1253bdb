package file

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/aide/internal/compiler"
	"github.com/aretw0/aide/pkg/domain"
)

// Loader implements ports.TreeLoader for a single JSON or YAML document on disk.
type Loader struct {
	Path string
}

// New creates a file loader.
func New(path string) *Loader {
	return &Loader{Path: path}
}

// LoadTree reads and parses the document.
func (l *Loader) LoadTree(ctx context.Context) (*domain.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}
	return compiler.ParseTree(data, compiler.DetectFormat(l.Path, data))
}
