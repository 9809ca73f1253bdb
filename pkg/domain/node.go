package domain

// NodeKind tags the presentation variant of a node.
type NodeKind string

const (
	// KindText displays content and its options.
	KindText NodeKind = "text"
	// KindVideo displays content, its options and a video taken from the catalog.
	KindVideo NodeKind = "video"
)

// Valid reports whether k is one of the known kinds.
func (k NodeKind) Valid() bool {
	return k == KindText || k == KindVideo
}

// Node is one point of the decision tree.
type Node struct {
	ID      string   `json:"id" yaml:"id"`
	Kind    NodeKind `json:"type" yaml:"type"`
	Content string   `json:"content" yaml:"content"`

	// VideoIndex is the position in the catalog. Only meaningful when Kind is KindVideo.
	VideoIndex int `json:"video_index" yaml:"video_index"`

	// Options are the outgoing choices. An empty list marks a terminal node.
	Options []Choice `json:"options" yaml:"options"`
}

// NewTextNode builds a text node.
func NewTextNode(id, content string, options ...Choice) Node {
	return Node{ID: id, Kind: KindText, Content: content, Options: options}
}

// NewVideoNode builds a video node pointing at the catalog position index.
func NewVideoNode(id, content string, index int, options ...Choice) Node {
	return Node{ID: id, Kind: KindVideo, Content: content, VideoIndex: index, Options: options}
}

// VideoRef returns the catalog position referenced by the node, if any.
func (n Node) VideoRef() (int, bool) {
	if n.Kind != KindVideo {
		return 0, false
	}
	return n.VideoIndex, true
}

// Terminal reports whether the node has no outgoing choices.
func (n Node) Terminal() bool {
	return len(n.Options) == 0
}
