package domain

import "net/url"

// UntitledVideo is shown when a descriptor carries no title.
const UntitledVideo = "Untitled video"

// EmbedBaseURL is the privacy-enhanced player used to build embed references.
const EmbedBaseURL = "https://www.youtube-nocookie.com/embed/"

// Video describes one entry of the video catalog.
type Video struct {
	ID    string `json:"video_id" yaml:"video_id" mapstructure:"video_id"`
	Title string `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
}

// DisplayTitle returns the title or the placeholder when it is empty.
func (v Video) DisplayTitle() string {
	if v.Title == "" {
		return UntitledVideo
	}
	return v.Title
}

// EmbedURL returns the player URL for the video, or "" when the descriptor has no id.
func (v Video) EmbedURL() string {
	if v.ID == "" {
		return ""
	}
	return EmbedBaseURL + url.PathEscape(v.ID) + "?rel=0&enablejsapi=1"
}

// Catalog is the ordered list of videos referenced by position from nodes.
type Catalog []Video

// Get returns the video at index. Negative or out of range indices are absent.
func (c Catalog) Get(index int) (Video, bool) {
	if index < 0 || index >= len(c) {
		return Video{}, false
	}
	return c[index], true
}
