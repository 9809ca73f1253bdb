// Package treestore obtains the decision tree from a location string.
package treestore

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/aretw0/aide/pkg/adapters/file"
	"github.com/aretw0/aide/pkg/adapters/loam"
	"github.com/aretw0/aide/pkg/adapters/remote"
	"github.com/aretw0/aide/pkg/domain"
	"github.com/aretw0/aide/pkg/ports"
)

// DefaultSource is where the widget publishes its tree.
const DefaultSource = "static/data/chatbot_tree.json"

// Loader picks the adapter for source:
// http(s) URLs are fetched, directories are opened as Loam repositories,
// anything else is read as a JSON or YAML file.
func Loader(source string, client *http.Client) (ports.TreeLoader, error) {
	if source == "" {
		return nil, fmt.Errorf("empty tree source")
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return remote.NewTreeLoader(source, client), nil
	}
	if info, err := os.Stat(source); err == nil && info.IsDir() {
		return loam.Open(source)
	}
	return file.New(source), nil
}

// Load obtains the tree at source. Any failure is reported as a *domain.LoadError.
func Load(ctx context.Context, source string, client *http.Client) (*domain.Tree, error) {
	loader, err := Loader(source, client)
	if err != nil {
		return nil, &domain.LoadError{Source: source, Err: err}
	}
	return LoadFrom(ctx, source, loader)
}

// LoadFrom runs loader and wraps its failure as a *domain.LoadError labelled with source.
func LoadFrom(ctx context.Context, source string, loader ports.TreeLoader) (*domain.Tree, error) {
	tree, err := loader.LoadTree(ctx)
	if err != nil {
		return nil, &domain.LoadError{Source: source, Err: err}
	}
	return tree, nil
}

// Get looks up a node. Absence is a valid outcome the caller must handle.
func Get(tree *domain.Tree, id string) (domain.Node, bool) {
	return tree.Get(id)
}
