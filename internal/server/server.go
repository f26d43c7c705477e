// Package server provides the MCP server wrapper with lifecycle management.
package server

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// instructions is sent to clients on initialize.
const instructions = `rendercheck recommends a rendering strategy for a web page.
Call classify or recommend with the page's profile (data_freshness, privacy,
seo_importance, interactivity, infra). recommend also derives a caching plan
from hints and validates a declared config. Use validate to check a config
against a strategy that is already chosen, and list_rules to see every rule.
Findings with severity "error" must be fixed before shipping the page.`

// Server wraps the MCP server with dependencies and lifecycle management.
type Server struct {
	mcp    *mcp.Server
	logger *slog.Logger
}

// New creates a new MCP server with the given version and logger.
func New(version string, logger *slog.Logger) *Server {
	impl := &mcp.Implementation{
		Name:    "rendercheck",
		Title:   "Rendering strategy advisor",
		Version: version,
	}

	mcpServer := mcp.NewServer(impl, &mcp.ServerOptions{
		Instructions: instructions,
	})

	return &Server{
		mcp:    mcpServer,
		logger: logger,
	}
}

// Run starts the server on stdio transport and blocks until disconnect or context cancellation.
func (s *Server) Run(ctx context.Context) error {
	return s.RunTransport(ctx, &mcp.StdioTransport{})
}

// RunTransport serves a single connection on t.
func (s *Server) RunTransport(ctx context.Context, t mcp.Transport) error {
	s.logger.Info("starting MCP server", "transport", transportName(t))
	return s.mcp.Run(ctx, t)
}

// MCPServer returns the underlying MCP server for tool registration.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Setup adds middleware to the server.
func (s *Server) Setup() {
	s.mcp.AddReceivingMiddleware(LoggingMiddleware(s.logger))
}

func transportName(t mcp.Transport) string {
	switch t.(type) {
	case *mcp.StdioTransport:
		return "stdio"
	case *mcp.InMemoryTransport:
		return "in-memory"
	default:
		return "custom"
	}
}
