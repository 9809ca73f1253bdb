package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/aide/pkg/domain"
)

// GraphOverlay contains conversation state to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid produces a Mermaid flowchart from the tree nodes.
// Shapes:
//   - root: ((Circle))
//   - video: [[Subroutine]]
//   - terminal: ([Stadium])
//   - default: [Rectangle]
//
// Nodes are named n0, n1... in input order and labelled with their id, so any
// id is safe. Edges carry the choice label. Targets missing from nodes are
// drawn with a dotted arrow so broken links stand out.
func GenerateMermaid(nodes []domain.Node, rootID string, overlay *GraphOverlay) string {
	names := newNamer()
	for _, n := range nodes {
		names.name(n.ID)
	}
	known := len(names.ids)

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range nodes {
		name := names.name(node.ID)

		opener, closer := "[", "]"
		switch {
		case node.ID == rootID:
			opener, closer = "((", "))"
		case node.Kind == domain.KindVideo:
			opener, closer = "[[", "]]"
		case node.Terminal():
			opener, closer = "([", "])"
		}

		label := escapeLabel(node.ID)
		if index, ok := node.VideoRef(); ok {
			label = fmt.Sprintf("%s <br/> video #%d", label, index)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", name, opener, label, closer)

		for _, opt := range node.Options {
			arrow := fmt.Sprintf("-- \"%s\" -->", escapeLabel(opt.Label))
			if i, ok := names.index[opt.Next]; !ok || i >= known {
				arrow = fmt.Sprintf("-. \"%s\" .->", escapeLabel(opt.Label))
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", name, arrow, names.name(opt.Next))
		}
	}

	// Broken targets still need a visible label.
	for _, id := range names.ids[known:] {
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", names.name(id), escapeLabel(id))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			name, ok := names.lookup(id)
			if ok && !visited[name] {
				visited[name] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", name)
			}
		}

		if name, ok := names.lookup(overlay.CurrentNode); ok {
			fmt.Fprintf(&sb, "    class %s current;\n", name)
		}
	}

	return sb.String()
}

// escapeLabel makes s safe inside a quoted Mermaid label.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

// namer hands out Mermaid-safe node names in first-seen order.
type namer struct {
	ids   []string
	index map[string]int
}

func newNamer() *namer {
	return &namer{index: make(map[string]int)}
}

func (n *namer) name(id string) string {
	i, ok := n.index[id]
	if !ok {
		i = len(n.ids)
		n.index[id] = i
		n.ids = append(n.ids, id)
	}
	return nodeName(i)
}

func (n *namer) lookup(id string) (string, bool) {
	i, ok := n.index[id]
	if !ok {
		return "", false
	}
	return nodeName(i), true
}

func nodeName(i int) string {
	return fmt.Sprintf("n%d", i)
}
