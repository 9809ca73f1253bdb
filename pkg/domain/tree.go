package domain

import (
	"encoding/json"
	"sort"
)

// RootNodeID is the well-known entry point of every tree.
const RootNodeID = "start"

// Tree is an immutable decision tree keyed by node id.
type Tree struct {
	nodes map[string]Node
}

// NewTree builds a tree from nodes. Later nodes overwrite earlier ones with the same id.
func NewTree(nodes ...Node) *Tree {
	m := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		m[n.ID] = n
	}
	return &Tree{nodes: m}
}

// Get looks up a node. Absence is a normal outcome.
func (t *Tree) Get(id string) (Node, bool) {
	if t == nil {
		return Node{}, false
	}
	n, ok := t.nodes[id]
	return n, ok
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// IDs returns all node ids in lexical order.
func (t *Tree) IDs() []string {
	if t == nil {
		return nil
	}
	ids := make([]string, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Nodes returns all nodes in id order.
func (t *Tree) Nodes() []Node {
	ids := t.IDs()
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.nodes[id])
	}
	return out
}

// NodeDocument is the wire shape of a node inside a tree document.
type NodeDocument struct {
	Content    string   `json:"content" yaml:"content"`
	Type       NodeKind `json:"type" yaml:"type"`
	VideoIndex *int     `json:"video_index,omitempty" yaml:"video_index,omitempty"`
	Options    []Choice `json:"options" yaml:"options"`
}

// Document converts the tree back to its id-keyed wire shape.
func (t *Tree) Document() map[string]NodeDocument {
	doc := make(map[string]NodeDocument, t.Len())
	if t == nil {
		return doc
	}
	for id, n := range t.nodes {
		d := NodeDocument{Content: n.Content, Type: n.Kind, Options: n.Options}
		if d.Options == nil {
			d.Options = []Choice{}
		}
		if idx, ok := n.VideoRef(); ok {
			d.VideoIndex = &idx
		}
		doc[id] = d
	}
	return doc
}

// MarshalJSON encodes the tree as its wire document.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Document())
}
