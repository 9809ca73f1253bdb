package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/aide/internal/runtime"
	"github.com/aretw0/aide/internal/testutils"
	"github.com/aretw0/aide/pkg/domain"
	"github.com/aretw0/aide/pkg/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hiByeTree() *domain.Tree {
	return domain.NewTree(
		domain.NewTextNode("start", "Hi", domain.Choice{Label: "Go", Next: "b"}),
		domain.NewTextNode("b", "Bye"),
	)
}

func TestEngine_HiBye(t *testing.T) {
	ctx := context.Background()
	rec := sink.NewRecorder()
	engine := runtime.NewEngine(hiByeTree(), domain.Catalog{}, rec)

	require.NoError(t, engine.Start(ctx))
	require.NoError(t, engine.Choose(ctx, "Go", "b"))

	log := rec.Log()
	require.Len(t, log, 3)

	assert.Equal(t, sink.EntryRender, log[0].Type)
	assert.Equal(t, "Hi", log[0].Event.Content)
	assert.Equal(t, []domain.Choice{{Label: "Go", Next: "b"}}, log[0].Event.Choices)
	assert.Nil(t, log[0].Event.Media)

	assert.Equal(t, sink.EntryEcho, log[1].Type)
	assert.Equal(t, "Go", log[1].Label)

	assert.Equal(t, sink.EntryRender, log[2].Type)
	assert.Equal(t, "Bye", log[2].Event.Content)
	assert.NotNil(t, log[2].Event.Choices)
	assert.Empty(t, log[2].Event.Choices)
	assert.True(t, log[2].Event.Terminal())

	assert.Equal(t, "b", engine.Current().CurrentNodeID)
}

func TestEngine_StartDoesNotEcho(t *testing.T) {
	ctx := context.Background()
	rec := sink.NewRecorder()
	engine := runtime.NewEngine(testutils.HelpTree(), testutils.HelpCatalog(), rec)

	require.NoError(t, engine.Start(ctx))

	log := rec.Log()
	require.Len(t, log, 1)
	assert.Equal(t, sink.EntryRender, log[0].Type)
	assert.Equal(t, "start", log[0].Event.NodeID)
	assert.Equal(t, domain.RootNodeID, engine.Current().CurrentNodeID)
}

func TestEngine_NoDrift(t *testing.T) {
	ctx := context.Background()
	rec := sink.NewRecorder()
	engine := runtime.NewEngine(testutils.HelpTree(), testutils.HelpCatalog(), rec)
	require.NoError(t, engine.Start(ctx))

	path := []domain.Choice{
		{Label: "Account", Next: "account"},
		{Label: "Show me", Next: "video_login"},
		{Label: "Thanks", Next: "end"},
	}
	for _, c := range path {
		require.NoError(t, engine.Choose(ctx, c.Label, c.Next))
		assert.Equal(t, c.Next, engine.Current().CurrentNodeID)

		last, ok := rec.LastRender()
		require.True(t, ok)
		assert.Equal(t, c.Next, last.NodeID)
	}

	assert.Equal(t, []string{"start", "account", "video_login", "end"}, engine.Current().History)
}

func TestEngine_ChooseMissingNode(t *testing.T) {
	ctx := context.Background()
	rec := sink.NewRecorder()
	engine := runtime.NewEngine(testutils.HelpTree(), testutils.HelpCatalog(), rec)
	require.NoError(t, engine.Start(ctx))
	before := engine.Current()
	rec.Drain()

	err := engine.Choose(ctx, "Broken", "nowhere")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)

	var nf *domain.NodeNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nowhere", nf.NodeID)
	assert.Equal(t, "start", nf.From)

	log := rec.Log()
	require.Len(t, log, 1)
	assert.Equal(t, sink.EntryEcho, log[0].Type)
	assert.Equal(t, "Broken", log[0].Label)
	assert.Equal(t, before, engine.Current())

	// The engine stays usable.
	require.NoError(t, engine.Choose(ctx, "Bye", "end"))
	assert.Equal(t, "end", engine.Current().CurrentNodeID)
}

func TestEngine_ResetIdempotent(t *testing.T) {
	ctx := context.Background()
	rec := sink.NewRecorder()
	engine := runtime.NewEngine(testutils.HelpTree(), testutils.HelpCatalog(), rec)
	require.NoError(t, engine.Start(ctx))
	require.NoError(t, engine.Choose(ctx, "Account", "account"))

	require.NoError(t, engine.Reset(ctx))
	first := rec.Transcript()
	require.NoError(t, engine.Reset(ctx))
	second := rec.Transcript()

	assert.Equal(t, 2, rec.Clears())
	require.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, "start", first[0].Event.NodeID)
	assert.Equal(t, domain.State{CurrentNodeID: "start", History: []string{"start"}}, engine.Current())

	log := rec.Log()
	tail := log[len(log)-4:]
	assert.Equal(t, sink.EntryClear, tail[0].Type)
	assert.Equal(t, sink.EntryRender, tail[1].Type)
	assert.Equal(t, sink.EntryClear, tail[2].Type)
	assert.Equal(t, sink.EntryRender, tail[3].Type)
}

func TestEngine_VideoResolution(t *testing.T) {
	ctx := context.Background()

	t.Run("index within catalog", func(t *testing.T) {
		engine := runtime.NewEngine(testutils.HelpTree(), testutils.HelpCatalog(), nil)
		event, err := engine.Resolve(ctx, "video_login")
		require.NoError(t, err)
		require.NotNil(t, event.Media)
		assert.Equal(t, testutils.HelpCatalog()[2], *event.Media)
	})

	t.Run("index beyond catalog", func(t *testing.T) {
		var missing []*domain.NodeEvent
		hooks := domain.LifecycleHooks{
			OnMediaMissing: func(_ context.Context, e *domain.NodeEvent) { missing = append(missing, e) },
		}
		catalog := domain.Catalog{{ID: "only"}}
		engine := runtime.NewEngine(testutils.HelpTree(), catalog, nil, runtime.WithLifecycleHooks(hooks))

		event, err := engine.Resolve(ctx, "video_login")
		require.NoError(t, err)
		assert.Nil(t, event.Media)
		assert.Equal(t, "This video shows how to sign in.", event.Content)
		assert.Len(t, event.Choices, 1)

		require.Len(t, missing, 1)
		assert.Equal(t, domain.EventMediaMissing, missing[0].Type)
		assert.Equal(t, 2, missing[0].VideoIndex)
	})

	t.Run("empty catalog", func(t *testing.T) {
		engine := runtime.NewEngine(testutils.HelpTree(), domain.Catalog{}, nil)
		event, err := engine.Resolve(ctx, "video_login")
		require.NoError(t, err)
		assert.Nil(t, event.Media)
	})
}

func TestEngine_MissingRoot(t *testing.T) {
	ctx := context.Background()
	rec := sink.NewRecorder()
	tree := domain.NewTree(domain.NewTextNode("other", "x"))
	engine := runtime.NewEngine(tree, nil, rec)

	err := engine.Start(ctx)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	assert.Empty(t, rec.Log())
}

func TestEngine_EntryNode(t *testing.T) {
	ctx := context.Background()
	rec := sink.NewRecorder()
	engine := runtime.NewEngine(testutils.HelpTree(), testutils.HelpCatalog(), rec, runtime.WithEntryNode("account"))

	require.NoError(t, engine.Start(ctx))
	assert.Equal(t, "account", engine.EntryNodeID())
	last, ok := rec.LastRender()
	require.True(t, ok)
	assert.Equal(t, "account", last.NodeID)
}

func TestEngine_Hooks(t *testing.T) {
	ctx := context.Background()
	var events []domain.EventType
	record := func(_ context.Context, e *domain.NodeEvent) {
		assert.False(t, e.Timestamp.IsZero())
		events = append(events, e.Type)
	}
	hooks := domain.LifecycleHooks{
		OnNodeEnter:    record,
		OnUserChoice:   record,
		OnNodeNotFound: record,
		OnReset:        record,
	}
	engine := runtime.NewEngine(testutils.HelpTree(), testutils.HelpCatalog(), nil, runtime.WithLifecycleHooks(hooks))

	require.NoError(t, engine.Start(ctx))
	require.NoError(t, engine.Choose(ctx, "Bye", "end"))
	require.Error(t, engine.Choose(ctx, "Lost", "ghost"))
	require.NoError(t, engine.Reset(ctx))

	assert.Equal(t, []domain.EventType{
		domain.EventNodeEnter,
		domain.EventUserChoice, domain.EventNodeEnter,
		domain.EventUserChoice, domain.EventNodeNotFound,
		domain.EventReset, domain.EventNodeEnter,
	}, events)
}

func TestEngine_ResolveDoesNotMove(t *testing.T) {
	ctx := context.Background()
	engine := runtime.NewEngine(testutils.HelpTree(), testutils.HelpCatalog(), nil)
	require.NoError(t, engine.Start(ctx))

	event, err := engine.Resolve(ctx, "end")
	require.NoError(t, err)
	assert.True(t, event.Terminal())
	assert.Equal(t, "start", engine.Current().CurrentNodeID)

	_, err = engine.Resolve(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)

	assert.Len(t, engine.Inspect(), 4)
	assert.Equal(t, 4, engine.Tree().Len())
	assert.Len(t, engine.Catalog(), 3)
}
