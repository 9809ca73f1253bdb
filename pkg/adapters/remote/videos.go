package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aretw0/aide/pkg/domain"
)

// DefaultVideosPath is where the help pages publish their video list.
const DefaultVideosPath = "/utilisateur/aide/api/videos/"

// DefaultVideosURL resolves DefaultVideosPath against the origin of base,
// an http(s) URL such as the site root or the tree document location.
func DefaultVideosURL(base string) (string, error) {
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return "", fmt.Errorf("base %q is not an http(s) URL", base)
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	return u.ResolveReference(&url.URL{Path: DefaultVideosPath}).String(), nil
}

// VideoSource implements ports.VideoSource over HTTP.
type VideoSource struct {
	URL    string
	Client *http.Client
}

// NewVideoSource creates a source fetching the catalog from url.
func NewVideoSource(url string, client *http.Client) *VideoSource {
	return &VideoSource{URL: url, Client: client}
}

// FetchVideos fetches the JSON array of video descriptors.
func (s *VideoSource) FetchVideos(ctx context.Context) (domain.Catalog, error) {
	body, _, err := get(ctx, s.Client, s.URL)
	if err != nil {
		return nil, err
	}
	var catalog domain.Catalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, fmt.Errorf("malformed video list: %w", err)
	}
	if catalog == nil {
		return nil, fmt.Errorf("malformed video list: expected an array")
	}
	return catalog, nil
}
