package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/aide/internal/presentation/graph"
	"github.com/aretw0/aide/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Assistant is the read side of the conversation core served over HTTP.
type Assistant interface {
	Resolve(ctx context.Context, nodeID string) (domain.RenderEvent, error)
	Inspect() []domain.Node
	Tree() *domain.Tree
	Catalog() domain.Catalog
	EntryNodeID() string
}

// Server exposes the tree and catalog to a widget front end.
// It keeps no conversation state: the widget owns the current node and asks
// for render events by id.
type Server struct {
	Assistant Assistant
	Metrics   http.Handler
	Logger    *slog.Logger
	Version   string
}

// Option configures the Server.
type Option func(*Server)

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// RenderRequest is the body of POST /render. An empty NodeID means the root.
type RenderRequest struct {
	NodeID string `json:"node_id"`
}

// VideosPath is where the widget historically fetches the catalog.
const VideosPath = "/utilisateur/aide/api/videos/"

// NewHandler creates the HTTP handler for the assistant.
func NewHandler(assistant Assistant, opts ...Option) http.Handler {
	s := &Server{
		Assistant: assistant,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Version:   "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/tree", s.GetTree)
	r.Get("/graph", s.GetGraph)
	r.Get("/videos", s.GetVideos)
	r.Get(VideosPath, s.GetVideos)
	r.Post("/render", s.Render)
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetTree handles GET /tree: the tree in its source document shape.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Assistant.Tree())
}

// GetGraph handles GET /graph: the tree as a Mermaid flowchart.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(s.Assistant.Inspect(), s.Assistant.EntryNodeID(), nil))
}

// GetVideos handles GET /videos: the catalog as an array of {video_id, title}.
func (s *Server) GetVideos(w http.ResponseWriter, r *http.Request) {
	videos := s.Assistant.Catalog()
	if videos == nil {
		videos = domain.Catalog{}
	}
	s.writeJSON(w, http.StatusOK, videos)
}

// Render handles POST /render.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	var body RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		s.Logger.Warn("render: invalid request body", "err", err)
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.NodeID == "" {
		body.NodeID = s.Assistant.EntryNodeID()
	}

	event, err := s.Assistant.Resolve(r.Context(), body.NodeID)
	if err != nil {
		if errors.Is(err, domain.ErrNodeNotFound) {
			s.Logger.Error("node not found", "node_id", body.NodeID)
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.Logger.Error("render failed", "node_id", body.NodeID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	s.writeJSON(w, http.StatusOK, event)
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":     "aide-http",
		"version": s.Version,
		"entry":   s.Assistant.EntryNodeID(),
		"nodes":   s.Assistant.Tree().Len(),
		"videos":  len(s.Assistant.Catalog()),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
