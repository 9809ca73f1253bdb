package dsl

import "github.com/aretw0/aide/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Text sets the content of the node and marks it as a text node.
func (n *NodeBuilder) Text(content string) *NodeBuilder {
	n.node.Kind = domain.KindText
	n.node.Content = content
	return n
}

// Video sets the content of the node and shows the catalog video at index.
func (n *NodeBuilder) Video(content string, index int) *NodeBuilder {
	n.node.Kind = domain.KindVideo
	n.node.Content = content
	n.node.VideoIndex = index
	return n
}

// Option appends a choice leading to target.
func (n *NodeBuilder) Option(label, target string) *NodeBuilder {
	n.node.Options = append(n.node.Options, domain.Choice{Label: label, Next: target})
	return n
}

// Terminal drops every choice, ending the conversation at this node.
func (n *NodeBuilder) Terminal() *NodeBuilder {
	n.node.Options = nil
	return n
}

// Add starts the next node, allowing a whole tree in one chain.
func (n *NodeBuilder) Add(id string) *NodeBuilder {
	return n.builder.Add(id)
}

// Build returns the underlying domain.Node.
func (n *NodeBuilder) Build() domain.Node {
	return n.node
}
