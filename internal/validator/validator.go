package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/aide/pkg/domain"
)

// Problem is a single defect found in a tree.
type Problem struct {
	NodeID  string
	Message string
}

func (p Problem) String() string {
	if p.NodeID == "" {
		return p.Message
	}
	return fmt.Sprintf("%s: %s", p.NodeID, p.Message)
}

// AggregateError lists every problem found by ValidateTree.
type AggregateError struct {
	Problems []Problem
}

func (e *AggregateError) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Problems), strings.Join(lines, "\n- "))
}

// ValidateTree crawls the tree from rootID and reports broken links,
// unreachable nodes and video indices outside the catalog.
// Video indices are only checked when the catalog is non-empty, since an
// empty catalog is the normal degraded mode.
func ValidateTree(tree *domain.Tree, rootID string, catalog domain.Catalog) error {
	var problems []Problem

	if _, ok := tree.Get(rootID); !ok {
		problems = append(problems, Problem{NodeID: rootID, Message: "root node not found"})
	}

	visited := make(map[string]bool)
	queue := []string{rootID}
	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		node, ok := tree.Get(currentID)
		if !ok {
			continue
		}
		for _, opt := range node.Options {
			if opt.Next == "" {
				problems = append(problems, Problem{NodeID: currentID, Message: fmt.Sprintf("choice %q has no target", opt.Label)})
				continue
			}
			if _, ok := tree.Get(opt.Next); !ok {
				problems = append(problems, Problem{NodeID: currentID, Message: fmt.Sprintf("choice %q points to missing node %q", opt.Label, opt.Next)})
				continue
			}
			if !visited[opt.Next] {
				queue = append(queue, opt.Next)
			}
		}
	}

	for _, node := range tree.Nodes() {
		if !visited[node.ID] {
			problems = append(problems, Problem{NodeID: node.ID, Message: "unreachable from " + rootID})
		}
		if index, ok := node.VideoRef(); ok && len(catalog) > 0 && index >= len(catalog) {
			problems = append(problems, Problem{
				NodeID:  node.ID,
				Message: fmt.Sprintf("video index %d out of range (catalog has %d videos)", index, len(catalog)),
			})
		}
	}

	if len(problems) > 0 {
		return &AggregateError{Problems: problems}
	}
	return nil
}
