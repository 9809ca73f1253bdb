package remote

import (
	"context"
	"net/http"
	"strings"

	"github.com/aretw0/aide/internal/compiler"
	"github.com/aretw0/aide/pkg/domain"
)

// TreeLoader implements ports.TreeLoader over HTTP.
type TreeLoader struct {
	URL    string
	Client *http.Client
}

// NewTreeLoader creates a loader for the document at url.
// A nil client falls back to DefaultClient.
func NewTreeLoader(url string, client *http.Client) *TreeLoader {
	return &TreeLoader{URL: url, Client: client}
}

// LoadTree fetches and parses the document.
func (l *TreeLoader) LoadTree(ctx context.Context) (*domain.Tree, error) {
	body, contentType, err := get(ctx, l.Client, l.URL)
	if err != nil {
		return nil, err
	}
	format := compiler.DetectFormat(l.URL, body)
	if strings.Contains(contentType, "yaml") {
		format = compiler.FormatYAML
	}
	return compiler.ParseTree(body, format)
}
