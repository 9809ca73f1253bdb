package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/aide/pkg/domain"
	"github.com/aretw0/aide/pkg/runner"
	"github.com/aretw0/aide/pkg/sink"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TreeURI is the resource exposing the tree document.
const TreeURI = "aide://tree"

// Assistant is the conversation core driven by the MCP tools.
type Assistant interface {
	Start(ctx context.Context) error
	Choose(ctx context.Context, label, target string) error
	Reset(ctx context.Context) error
	Current() domain.State
	Resolve(ctx context.Context, nodeID string) (domain.RenderEvent, error)
	Tree() *domain.Tree
}

// Response is returned by every tool: the events emitted during the call and
// the resulting state.
type Response struct {
	Events []sink.Entry `json:"events" jsonschema_description:"Render, echo and clear events emitted by the call"`
	State  domain.State `json:"state" jsonschema_description:"Conversation state after the call"`
	Error  string       `json:"error,omitempty" jsonschema_description:"Set when a choice pointed to a missing node"`
}

// Server exposes one conversation to an MCP client.
// The assistant must have been built with Recorder as its sink.
type Server struct {
	assistant Assistant
	recorder  *sink.Recorder
	logger    *slog.Logger
	mcpServer *server.MCPServer

	// Tool calls may arrive concurrently; the engine expects one caller.
	mu sync.Mutex
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(assistant Assistant, recorder *sink.Recorder, version string, opts ...Option) *Server {
	s := &Server{
		assistant: assistant,
		recorder:  recorder,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("aide-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("start",
		mcp.WithDescription("Start the conversation: renders the root node."),
		mcp.WithOutputSchema[Response](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("choose",
		mcp.WithDescription("Pick one of the choices of the last rendered node. Echoes the label, then renders the target node."),
		mcp.WithString("label", mcp.Required(), mcp.Description("Label of the chosen option")),
		mcp.WithString("next", mcp.Required(), mcp.Description("Target node id of the chosen option")),
		mcp.WithOutputSchema[Response](),
	), mcp.NewStructuredToolHandler(s.handleChoose))

	s.mcpServer.AddTool(mcp.NewTool("reset",
		mcp.WithDescription("Clear the transcript and start over from the root node."),
		mcp.WithOutputSchema[Response](),
	), mcp.NewStructuredToolHandler(s.handleReset))

	s.mcpServer.AddTool(mcp.NewTool("render_node",
		mcp.WithDescription("Render any node without moving the conversation."),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("The ID of the node to render")),
	), s.handleRenderNode)
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (Response, error) {
	return s.call(func() error { return s.assistant.Start(ctx) })
}

func (s *Server) handleChoose(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (Response, error) {
	label, _ := args["label"].(string)
	next, _ := args["next"].(string)

	clean, err := runner.CleanLine(label)
	if err != nil {
		s.logger.Warn("MCP choose: input rejected", "err", err, "size", len(label))
		return Response{}, fmt.Errorf("input rejected: %w", err)
	}
	return s.call(func() error { return s.assistant.Choose(ctx, clean, next) })
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (Response, error) {
	return s.call(func() error { return s.assistant.Reset(ctx) })
}

func (s *Server) handleRenderNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nodeID := request.GetString("node_id", "")
	event, err := s.assistant.Resolve(ctx, nodeID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode render event: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// call runs op under the lock and collects the events it emitted.
// A missing node is reported in the response, not as a tool failure.
func (s *Server) call(op func() error) (Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recorder.Drain()
	err := op()
	resp := Response{
		Events: s.recorder.Drain(),
		State:  s.assistant.Current(),
	}
	if resp.Events == nil {
		resp.Events = []sink.Entry{}
	}
	if err != nil {
		if !errors.Is(err, domain.ErrNodeNotFound) {
			return Response{}, err
		}
		resp.Error = err.Error()
	}
	return resp, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(TreeURI, "Help tree",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.assistant.Tree())
		if err != nil {
			return nil, fmt.Errorf("failed to encode tree: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      TreeURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
