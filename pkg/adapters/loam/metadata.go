package loam

import (
	"github.com/aretw0/aide/pkg/domain"
)

// NodeMetadata is the frontmatter of a node document.
// The markdown body is the node content.
type NodeMetadata struct {
	ID         string          `json:"id" mapstructure:"id"`
	Type       string          `json:"type" mapstructure:"type"`
	Content    string          `json:"content" mapstructure:"content"`
	VideoIndex *int            `json:"video_index" mapstructure:"video_index"`
	Options    []domain.Choice `json:"options" mapstructure:"options"`
}
