package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/aide/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a tree document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// NodeDocument is the decoded header of a node, shared by every tree source.
// Fields not listed here are ignored.
type NodeDocument struct {
	ID         string          `mapstructure:"id"`
	Content    string          `mapstructure:"content"`
	Type       string          `mapstructure:"type"`
	VideoIndex *int            `mapstructure:"video_index"`
	Options    []domain.Choice `mapstructure:"options"`
}

// DetectFormat guesses the document format from its name, falling back to content sniffing.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	if strings.Contains(name, "yaml") {
		return FormatYAML
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// ParseTree decodes a whole tree document: a mapping from node id to node.
func ParseTree(data []byte, format Format) (*domain.Tree, error) {
	raw, err := decodeDocument(data, format)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make([]domain.Node, 0, len(raw))
	for _, id := range ids {
		fields, ok := raw[id].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("node %q: %w: expected an object, got %T", id, domain.ErrInvalidNode, raw[id])
		}
		node, err := DecodeNode(id, fields)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return domain.NewTree(nodes...), nil
}

// DecodeNode converts the generic fields of one node into a domain.Node.
// The id argument wins over any "id" field inside the document.
func DecodeNode(id string, fields map[string]any) (domain.Node, error) {
	var doc NodeDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &doc,
		TagName: "mapstructure",
	})
	if err != nil {
		return domain.Node{}, err
	}
	if err := decoder.Decode(fields); err != nil {
		return domain.Node{}, fmt.Errorf("node %q: %w: %v", id, domain.ErrInvalidNode, err)
	}
	return BuildNode(id, doc)
}

// BuildNode checks the kind variant of a decoded document and builds the node.
func BuildNode(id string, doc NodeDocument) (domain.Node, error) {
	kind := domain.NodeKind(doc.Type)
	if kind == "" {
		kind = domain.KindText
	}
	if !kind.Valid() {
		return domain.Node{}, fmt.Errorf("node %q: %w: unknown type %q", id, domain.ErrInvalidNode, doc.Type)
	}

	node := domain.Node{
		ID:      id,
		Kind:    kind,
		Content: doc.Content,
	}
	if len(doc.Options) > 0 {
		node.Options = doc.Options
	}

	if kind == domain.KindVideo {
		if doc.VideoIndex == nil {
			return domain.Node{}, fmt.Errorf("node %q: %w: video node without video_index", id, domain.ErrInvalidNode)
		}
		if *doc.VideoIndex < 0 {
			return domain.Node{}, fmt.Errorf("node %q: %w: negative video_index %d", id, domain.ErrInvalidNode, *doc.VideoIndex)
		}
		node.VideoIndex = *doc.VideoIndex
	}
	return node, nil
}

func decodeDocument(data []byte, format Format) (map[string]any, error) {
	var raw map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml tree: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse json tree: %w", err)
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, fmt.Errorf("failed to parse json tree: unexpected data after the document")
		}
	}
	if raw == nil {
		return nil, fmt.Errorf("tree document is empty")
	}
	return raw, nil
}
