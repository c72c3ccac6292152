// ABOUTME: MCP server initialization and configuration for partnerdesk.
// ABOUTME: Exposes the partner registry engine as tools for AI agent access.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/partnerdesk/internal/config"
	"github.com/2389-research/partnerdesk/internal/registry"
)

// Server wraps the MCP server with the registry engine.
type Server struct {
	mcp     *gomcp.Server
	engine  *registry.Engine
	cfg     *config.Config
	checker registry.FolderChecker
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithFolderChecker replaces the filesystem folder check.
func WithFolderChecker(fn registry.FolderChecker) ServerOption {
	return func(s *Server) {
		s.checker = fn
	}
}

// NewServer creates an MCP server with registry capabilities.
func NewServer(engine *registry.Engine, cfg *config.Config, opts ...ServerOption) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("registry engine is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "partnerdesk",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:     mcpServer,
		engine:  engine,
		cfg:     cfg,
		checker: registry.DirExists,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerRegistryTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
