package aide_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/aretw0/aide"
	"github.com/aretw0/aide/internal/testutils"
	"github.com/aretw0/aide/pkg/adapters/remote"
	"github.com/aretw0/aide/pkg/catalog"
	"github.com/aretw0/aide/pkg/domain"
	"github.com/aretw0/aide/pkg/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hiByeJSON = `{
	"start": {"content": "Hi", "type": "text", "options": [{"label": "Go", "next": "b"}]},
	"b": {"content": "Bye", "type": "text", "options": []}
}`

func writeTree(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNew_HiByeFromFile(t *testing.T) {
	ctx := context.Background()
	rec := sink.NewRecorder()

	a, err := aide.New(ctx,
		aide.WithTreeSource(writeTree(t, hiByeJSON)),
		aide.WithVideos(domain.Catalog{}),
		aide.WithSink(rec),
	)
	require.NoError(t, err)

	require.NoError(t, a.Start(ctx))
	require.NoError(t, a.Choose(ctx, "Go", "b"))

	log := rec.Log()
	require.Len(t, log, 3)
	assert.Equal(t, "Hi", log[0].Event.Content)
	assert.Equal(t, "Go", log[1].Label)
	assert.Equal(t, "Bye", log[2].Event.Content)
	assert.Empty(t, log[2].Event.Choices)
	assert.Equal(t, "b", a.Current().CurrentNodeID)
	assert.Equal(t, catalog.SourceInjected, a.CatalogSource())
}

func TestNew_TreeLoadFailure(t *testing.T) {
	_, err := aide.New(context.Background(),
		aide.WithTreeSource(filepath.Join(t.TempDir(), "missing.json")),
	)
	require.Error(t, err)

	var le *domain.LoadError
	require.True(t, errors.As(err, &le))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNew_MalformedTree(t *testing.T) {
	_, err := aide.New(context.Background(),
		aide.WithTreeSource(writeTree(t, `{"start": "not an object"}`)),
	)
	var le *domain.LoadError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, domain.ErrInvalidNode)
}

func TestNew_TrailingGarbageIsLoadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"start":{"content":"Hi"}} this is not json`))
	}))
	defer srv.Close()

	a, err := aide.New(context.Background(), aide.WithTreeSource(srv.URL+"/tree.json"))
	var le *domain.LoadError
	require.ErrorAs(t, err, &le)
	assert.Nil(t, a)
}

func TestNew_InjectedVideosSkipNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[{"video_id": "net"}]`))
	}))
	defer srv.Close()

	injected := domain.Catalog{{ID: "page"}}
	a, err := aide.New(context.Background(),
		aide.WithTree(testutils.HelpTree()),
		aide.WithVideos(injected),
		aide.WithVideoEndpoint(srv.URL),
	)
	require.NoError(t, err)
	assert.Equal(t, injected, a.Catalog())
	assert.Zero(t, calls.Load())
}

func TestNew_VideoEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"video_id": "a", "title": "A"}, {"video_id": "b"}, {"video_id": "c"}]`))
	}))
	defer srv.Close()

	var observed []catalog.Source
	a, err := aide.New(context.Background(),
		aide.WithTree(testutils.HelpTree()),
		aide.WithVideoEndpoint(srv.URL),
		aide.WithCatalogObserver(func(s catalog.Source, n int) { observed = append(observed, s) }),
	)
	require.NoError(t, err)
	require.Len(t, a.Catalog(), 3)
	assert.Equal(t, []catalog.Source{catalog.SourceNetwork}, observed)

	event, err := a.Resolve(context.Background(), "video_login")
	require.NoError(t, err)
	require.NotNil(t, event.Media)
	assert.Equal(t, "c", event.Media.ID)
}

func TestNew_DefaultVideosPathOnTreeOrigin(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/static/data/chatbot_tree.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"start": {"content": "Watch this", "type": "video", "video_index": 0, "options": []}}`))
	})
	mux.HandleFunc(remote.DefaultVideosPath, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`[{"video_id": "abc"}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	rec := sink.NewRecorder()
	a, err := aide.New(context.Background(),
		aide.WithTreeSource(srv.URL+"/static/data/chatbot_tree.json"),
		aide.WithSink(rec),
	)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, catalog.SourceNetwork, a.CatalogSource())

	require.NoError(t, a.Start(context.Background()))
	last, ok := rec.LastRender()
	require.True(t, ok)
	require.NotNil(t, last.Media)
	assert.Equal(t, "abc", last.Media.ID)
}

func TestNew_DefaultVideosPathOnBaseURL(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`[{"video_id": "a"}, {"video_id": "b"}, {"video_id": "c"}]`))
	}))
	defer srv.Close()

	a, err := aide.New(context.Background(),
		aide.WithTree(testutils.HelpTree()),
		aide.WithBaseURL(srv.URL+"/any/page"),
	)
	require.NoError(t, err)
	assert.Equal(t, remote.DefaultVideosPath, path)
	assert.Len(t, a.Catalog(), 3)
}

func TestNew_LocalTreeWithoutEndpointSkipsNetwork(t *testing.T) {
	a, err := aide.New(context.Background(), aide.WithTreeSource(writeTree(t, hiByeJSON)))
	require.NoError(t, err)
	assert.Equal(t, catalog.SourceNone, a.CatalogSource())
	assert.Empty(t, a.Catalog())
}

func TestNew_VideoEndpointFailureDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a, err := aide.New(context.Background(),
		aide.WithTree(testutils.HelpTree()),
		aide.WithVideoEndpoint(srv.URL),
	)
	require.NoError(t, err)
	assert.NotNil(t, a.Catalog())
	assert.Empty(t, a.Catalog())

	event, err := a.Resolve(context.Background(), "video_login")
	require.NoError(t, err)
	assert.Nil(t, event.Media)
}

func TestNew_StrictValidation(t *testing.T) {
	broken := domain.NewTree(
		domain.NewTextNode("start", "hi", domain.Choice{Label: "Lost", Next: "ghost"}),
	)

	// Lazy by default: the broken link only matters when chosen.
	a, err := aide.New(context.Background(), aide.WithTree(broken))
	require.NoError(t, err)
	assert.Error(t, a.Validate())

	_, err = aide.New(context.Background(), aide.WithTree(broken), aide.WithStrictValidation(true))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestAssistant_ResetAndEntryNode(t *testing.T) {
	ctx := context.Background()
	rec := sink.NewRecorder()
	var resets int
	a, err := aide.New(ctx,
		aide.WithTree(testutils.HelpTree()),
		aide.WithVideos(testutils.HelpCatalog()),
		aide.WithSink(rec),
		aide.WithEntryNode("account"),
		aide.WithLifecycleHooks(domain.LifecycleHooks{
			OnReset: func(context.Context, *domain.NodeEvent) { resets++ },
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, "account", a.EntryNodeID())

	require.NoError(t, a.Start(ctx))
	require.NoError(t, a.Choose(ctx, "Show me", "video_login"))
	require.NoError(t, a.Reset(ctx))

	assert.Equal(t, 1, resets)
	assert.Equal(t, 1, rec.Clears())
	last, ok := rec.LastRender()
	require.True(t, ok)
	assert.Equal(t, "account", last.NodeID)
	assert.Len(t, a.Inspect(), 4)
	assert.Equal(t, 4, a.Tree().Len())
}

func TestNew_DefaultSourceShipsValidTree(t *testing.T) {
	a, err := aide.New(context.Background(), aide.WithVideos(domain.Catalog{{ID: "x"}, {ID: "y"}}))
	require.NoError(t, err)
	assert.NoError(t, a.Validate())
}
