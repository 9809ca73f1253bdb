package domain

import (
	"errors"
	"fmt"
)

// ErrNodeNotFound is matched by NodeNotFoundError through errors.Is.
var ErrNodeNotFound = errors.New("node not found")

// ErrInvalidNode is returned when a node document is structurally wrong.
var ErrInvalidNode = errors.New("invalid node")

// LoadError reports that the tree document could not be obtained or parsed.
// It is fatal: no conversation can run without a tree.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load tree from %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NodeNotFoundError reports a transition to an id absent from the tree.
type NodeNotFoundError struct {
	NodeID string
	// From is the node the conversation stayed on.
	From string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node %q not found (staying on %q)", e.NodeID, e.From)
}

func (e *NodeNotFoundError) Is(target error) bool {
	return target == ErrNodeNotFound
}
