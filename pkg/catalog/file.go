package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/aide/pkg/domain"
	"gopkg.in/yaml.v3"
)

// ReadFile reads a catalog exported by the host page (a JSON or YAML list of
// {video_id, title}). The result is never nil, so it can be passed to WithInjected.
func ReadFile(path string) (domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read video file: %w", err)
	}

	var videos domain.Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &videos)
	default:
		err = json.Unmarshal(data, &videos)
	}
	if err != nil {
		return nil, fmt.Errorf("malformed video file %s: %w", path, err)
	}
	if videos == nil {
		videos = domain.Catalog{}
	}
	return videos, nil
}
