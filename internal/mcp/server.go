// Package mcp wires the schemamap tools, prompts and resources into an MCP
// server.
package mcp

import (
	"context"
	"errors"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemamap/internal/mcp/prompts"
	"github.com/usestring/schemamap/internal/mcp/tools"
	"github.com/usestring/schemamap/internal/version"
)

const serverName = "schemamap-mcp"

const instructions = "Map the shape of JSON, NDJSON, YAML or XML samples into flat path-to-type schemas. " +
	"Use schemamap_infer for a one-off look, or schemamap_map_documents to build up a named collection " +
	"and schemamap_get_schema to see how often each path occurs."

// builtin selects which groups of builtin handlers are registered.
type builtin uint8

const (
	builtinTools builtin = 1 << iota // tools plus the collection resource template
	builtinPrompts
)

// Server is a schemamap MCP server over a shared collection store.
type Server struct {
	mcpServer *sdkmcp.Server
	deps      *tools.Deps
	builtins  builtin
	extra     []func(*sdkmcp.Server)
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithBuiltinTools registers the schemamap tools and the
// schemamap://collections/{name} resource template.
func WithBuiltinTools() ServerOption {
	return func(s *Server) { s.builtins |= builtinTools }
}

// WithBuiltinPrompts registers the guide and describe_collection prompts.
func WithBuiltinPrompts() ServerOption {
	return func(s *Server) { s.builtins |= builtinPrompts }
}

// WithCustomRegistration runs fn against the underlying server after the
// builtins are registered. Callbacks run in the order they were given.
func WithCustomRegistration(fn func(*sdkmcp.Server)) ServerOption {
	return func(s *Server) { s.extra = append(s.extra, fn) }
}

// NewServer builds a server over deps.Store. Nothing is registered unless an
// option asks for it.
func NewServer(deps *tools.Deps, opts ...ServerOption) (*Server, error) {
	switch {
	case deps == nil:
		return nil, errors.New("mcp: deps is required")
	case deps.Config == nil:
		return nil, errors.New("mcp: deps.Config is required")
	case deps.Store == nil:
		return nil, errors.New("mcp: deps.Store is required")
	}

	s := &Server{deps: deps}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: serverName, Version: version.Version},
		&sdkmcp.ServerOptions{Instructions: instructions},
	)
	s.mcpServer.AddReceivingMiddleware(LoggingMiddleware())

	if s.builtins&builtinTools != 0 {
		tools.Register(s.mcpServer, deps)
		s.registerResources()
	}
	if s.builtins&builtinPrompts != 0 {
		prompts.Register(s.mcpServer, &prompts.Config{
			Store:          deps.Store,
			MaxCollections: deps.Config.MaxCollections,
		})
	}
	for _, fn := range s.extra {
		fn(s.mcpServer)
	}

	slog.Debug("mcp server ready",
		slog.Bool("tools", s.builtins&builtinTools != 0),
		slog.Bool("prompts", s.builtins&builtinPrompts != 0),
		slog.Int("custom", len(s.extra)),
	)
	return s, nil
}

// Run serves over stdin/stdout until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("serving on stdio", slog.String("version", version.Version))
	return s.mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// MCPServer exposes the underlying server, mainly for in-memory transports in
// tests.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.mcpServer
}
