package aide

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/aide/internal/runtime"
	"github.com/aretw0/aide/internal/validator"
	"github.com/aretw0/aide/pkg/adapters/remote"
	"github.com/aretw0/aide/pkg/catalog"
	"github.com/aretw0/aide/pkg/domain"
	"github.com/aretw0/aide/pkg/ports"
	"github.com/aretw0/aide/pkg/treestore"
)

// Assistant is the high-level entry point of the library.
// It owns one conversation; see runtime.Engine for the concurrency contract.
type Assistant struct {
	runtime *runtime.Engine

	treeSource   string
	tree         *domain.Tree
	treeLoader   ports.TreeLoader
	videos       domain.Catalog
	videoSource  ports.VideoSource
	videoURL     string
	baseURL      string
	cache        ports.CatalogCache
	cacheTTL     time.Duration
	client       *http.Client
	sink         ports.RenderSink
	hooks        domain.LifecycleHooks
	observer     func(catalog.Source, int)
	logger       *slog.Logger
	entryNodeID  string
	strict       bool
	catalogState catalog.Source
}

// Option defines a functional option for configuring the Assistant.
type Option func(*Assistant)

// WithTreeSource sets where the tree is loaded from: an http(s) URL, a JSON or
// YAML file, or a directory of node documents. Default: treestore.DefaultSource.
func WithTreeSource(source string) Option {
	return func(a *Assistant) {
		a.treeSource = source
	}
}

// WithTree uses an already loaded tree, skipping the Tree Store.
func WithTree(tree *domain.Tree) Option {
	return func(a *Assistant) {
		a.tree = tree
	}
}

// WithTreeLoader injects a custom loader, bypassing source detection.
func WithTreeLoader(loader ports.TreeLoader) Option {
	return func(a *Assistant) {
		a.treeLoader = loader
	}
}

// WithVideos supplies the catalog embedded by the host page.
// A non-nil catalog, even empty, prevents any network call.
func WithVideos(videos domain.Catalog) Option {
	return func(a *Assistant) {
		a.videos = videos
	}
}

// WithVideoEndpoint fetches the catalog from url when nothing was injected.
func WithVideoEndpoint(url string) Option {
	return func(a *Assistant) {
		a.videoURL = url
	}
}

// WithBaseURL sets the site serving the video list at remote.DefaultVideosPath.
// Without it, an http(s) tree source supplies the origin.
func WithBaseURL(url string) Option {
	return func(a *Assistant) {
		a.baseURL = url
	}
}

// WithVideoSource injects a custom catalog source.
func WithVideoSource(src ports.VideoSource) Option {
	return func(a *Assistant) {
		a.videoSource = src
	}
}

// WithCatalogCache puts a cache in front of the video source.
func WithCatalogCache(cache ports.CatalogCache, ttl time.Duration) Option {
	return func(a *Assistant) {
		a.cache = cache
		a.cacheTTL = ttl
	}
}

// WithHTTPClient sets the client used for remote tree and catalog fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Assistant) {
		a.client = client
	}
}

// WithSink sets the sink receiving render, echo and clear events.
func WithSink(sink ports.RenderSink) Option {
	return func(a *Assistant) {
		a.sink = sink
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Assistant) {
		a.hooks = a.hooks.Merge(hooks)
	}
}

// WithCatalogObserver is called once with the source and size of the loaded catalog.
func WithCatalogObserver(fn func(catalog.Source, int)) Option {
	return func(a *Assistant) {
		a.observer = fn
	}
}

// WithEntryNode configures the root node ID (default: "start").
func WithEntryNode(nodeID string) Option {
	return func(a *Assistant) {
		a.entryNodeID = nodeID
	}
}

// WithStrictValidation makes New reject trees with broken references or
// unreachable nodes instead of discovering them during the conversation.
func WithStrictValidation(strict bool) Option {
	return func(a *Assistant) {
		a.strict = strict
	}
}

// New loads the tree and the video catalog concurrently and builds the engine.
// A tree failure is returned as a *domain.LoadError and no assistant is created.
// A catalog failure only logs a warning.
func New(ctx context.Context, opts ...Option) (*Assistant, error) {
	a := &Assistant{
		treeSource:  treestore.DefaultSource,
		entryNodeID: domain.RootNodeID,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if a.client == nil {
		a.client = remote.DefaultClient()
	}

	var (
		wg      sync.WaitGroup
		tree    *domain.Tree
		treeErr error
		videos  domain.Catalog
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		tree, treeErr = a.loadTree(ctx)
	}()
	go func() {
		defer wg.Done()
		videos = a.loadCatalog(ctx)
	}()
	wg.Wait()

	if treeErr != nil {
		a.logger.Error("failed to load tree", "source", a.treeSource, "err", treeErr)
		return nil, treeErr
	}
	a.logger.Info("tree loaded", "source", a.treeSource, "nodes", tree.Len())

	if a.strict {
		if err := validator.ValidateTree(tree, a.entryNodeID, videos); err != nil {
			return nil, fmt.Errorf("invalid tree: %w", err)
		}
	}

	a.tree = tree
	a.videos = videos
	a.runtime = runtime.NewEngine(tree, videos, a.sink,
		runtime.WithEntryNode(a.entryNodeID),
		runtime.WithLogger(a.logger),
		runtime.WithLifecycleHooks(a.hooks),
	)
	return a, nil
}

func (a *Assistant) loadTree(ctx context.Context) (*domain.Tree, error) {
	switch {
	case a.tree != nil:
		return a.tree, nil
	case a.treeLoader != nil:
		return treestore.LoadFrom(ctx, a.treeSource, a.treeLoader)
	}
	return treestore.Load(ctx, a.treeSource, a.client)
}

func (a *Assistant) loadCatalog(ctx context.Context) domain.Catalog {
	src := a.videoSource
	if src == nil {
		if endpoint := a.videoEndpoint(); endpoint != "" {
			src = remote.NewVideoSource(endpoint, a.client)
		}
	}

	opts := []catalog.Option{
		catalog.WithInjected(a.videos),
		catalog.WithLogger(a.logger),
		catalog.WithObserver(func(s catalog.Source, n int) {
			a.catalogState = s
			if a.observer != nil {
				a.observer(s, n)
			}
		}),
	}
	if src != nil {
		opts = append(opts, catalog.WithSource(src))
	}
	if a.cache != nil {
		opts = append(opts, catalog.WithCache(a.cache, catalog.DefaultCacheKey, a.cacheTTL))
	}
	return catalog.NewLoader(opts...).Load(ctx)
}

// videoEndpoint returns the configured endpoint, else the default path on the
// base URL or on the origin of a remote tree.
func (a *Assistant) videoEndpoint() string {
	if a.videoURL != "" {
		return a.videoURL
	}
	base := a.baseURL
	if base == "" && a.tree == nil {
		base = a.treeSource
	}
	endpoint, err := remote.DefaultVideosURL(base)
	if err != nil {
		if a.baseURL != "" {
			a.logger.Warn("ignoring base url", "base_url", a.baseURL, "err", err)
		}
		return ""
	}
	return endpoint
}

// Start renders the root node. It fails only when the root is missing from the tree.
func (a *Assistant) Start(ctx context.Context) error {
	return a.runtime.Start(ctx)
}

// Choose echoes label and moves to target. A missing target returns a
// *domain.NodeNotFoundError and leaves the conversation unchanged.
func (a *Assistant) Choose(ctx context.Context, label, target string) error {
	return a.runtime.Choose(ctx, label, target)
}

// Reset clears the transcript and renders the root node again.
func (a *Assistant) Reset(ctx context.Context) error {
	return a.runtime.Reset(ctx)
}

// Current returns a copy of the conversation state.
func (a *Assistant) Current() domain.State {
	return a.runtime.Current()
}

// Resolve builds the render event of any node without moving the conversation.
func (a *Assistant) Resolve(ctx context.Context, nodeID string) (domain.RenderEvent, error) {
	return a.runtime.Resolve(ctx, nodeID)
}

// Inspect returns the tree nodes in id order.
func (a *Assistant) Inspect() []domain.Node {
	return a.runtime.Inspect()
}

// Validate runs the eager tree checks against the loaded catalog.
func (a *Assistant) Validate() error {
	return validator.ValidateTree(a.tree, a.entryNodeID, a.videos)
}

// Tree returns the loaded tree.
func (a *Assistant) Tree() *domain.Tree {
	return a.tree
}

// Catalog returns the loaded video catalog.
func (a *Assistant) Catalog() domain.Catalog {
	return a.videos
}

// CatalogSource reports where the catalog came from.
func (a *Assistant) CatalogSource() catalog.Source {
	return a.catalogState
}

// EntryNodeID returns the root node id.
func (a *Assistant) EntryNodeID() string {
	return a.entryNodeID
}
