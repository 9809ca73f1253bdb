package domain

// State is the position of the single conversation.
type State struct {
	// CurrentNodeID is the node currently displayed.
	CurrentNodeID string `json:"current_node_id"`

	// History is the path of nodes entered since the last start or reset.
	History []string `json:"history"`
}

// NewState creates a state positioned on the root node.
func NewState(rootID string) *State {
	return &State{
		CurrentNodeID: rootID,
		History:       []string{rootID},
	}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() State {
	c := State{CurrentNodeID: s.CurrentNodeID}
	c.History = append([]string(nil), s.History...)
	return c
}
