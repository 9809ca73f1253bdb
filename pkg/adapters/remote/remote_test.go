package remote_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/aide/pkg/adapters/remote"
	"github.com/aretw0/aide/pkg/domain"
	contract "github.com/aretw0/aide/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeLoader_Contract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"start": {"content": "Hi", "options": [{"label": "Next", "next": "n2"}]}, "n2": {"content": "Bye"}}`))
	}))
	defer srv.Close()

	contract.TreeLoaderContractTest(t, remote.NewTreeLoader(srv.URL+"/static/data/chatbot_tree.json", srv.Client()), []domain.Node{
		domain.NewTextNode("start", "Hi", domain.Choice{Label: "Next", Next: "n2"}),
		domain.NewTextNode("n2", "Bye"),
	})
}

func TestTreeLoader_YAMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte("start:\n  content: Hi\n"))
	}))
	defer srv.Close()

	tree, err := remote.NewTreeLoader(srv.URL+"/tree", nil).LoadTree(context.Background())
	require.NoError(t, err)
	start, ok := tree.Get("start")
	require.True(t, ok)
	assert.Equal(t, "Hi", start.Content)
}

func TestTreeLoader_Status(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := remote.NewTreeLoader(srv.URL, nil).LoadTree(context.Background())
	var statusErr *remote.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestVideoSource_FetchVideos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, remote.DefaultVideosPath, r.URL.Path)
		_, _ = w.Write([]byte(`[{"video_id": "abc", "title": "T"}, {"video_id": "def"}]`))
	}))
	defer srv.Close()

	catalog, err := remote.NewVideoSource(srv.URL+remote.DefaultVideosPath, nil).FetchVideos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Catalog{{ID: "abc", Title: "T"}, {ID: "def"}}, catalog)
}

func TestVideoSource_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`<html>`)) }},
		{"object instead of array", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"video_id": "x"}`)) }},
		{"null body", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`null`)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := remote.NewVideoSource(srv.URL, nil).FetchVideos(context.Background())
			assert.Error(t, err)
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := remote.NewVideoSource(url, nil).FetchVideos(context.Background())
		assert.Error(t, err)
	})
}

func TestDefaultVideosURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"https://example.org", "https://example.org/utilisateur/aide/api/videos/"},
		{"https://example.org/static/data/chatbot_tree.json", "https://example.org/utilisateur/aide/api/videos/"},
		{"http://localhost:8080/help/", "http://localhost:8080/utilisateur/aide/api/videos/"},
	}
	for _, tt := range tests {
		got, err := remote.DefaultVideosURL(tt.base)
		require.NoError(t, err, tt.base)
		assert.Equal(t, tt.want, got)
	}

	_, err := remote.DefaultVideosURL("static/data/chatbot_tree.json")
	assert.Error(t, err)
	_, err = remote.DefaultVideosURL("")
	assert.Error(t, err)
}
