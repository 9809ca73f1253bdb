package domain

// Choice is a user-selectable transition to another node.
type Choice struct {
	Label string `json:"label" yaml:"label" mapstructure:"label"`
	Next  string `json:"next" yaml:"next" mapstructure:"next"`
}
