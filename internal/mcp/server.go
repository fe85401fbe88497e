// ABOUTME: MCP server setup for the forge program generator.
// ABOUTME: Wraps the MCP server with the generator and an optional template store.
package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mfulp2020/forgefitness/internal/generator"
	"github.com/mfulp2020/forgefitness/internal/models"
	"github.com/mfulp2020/forgefitness/internal/storage"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with generator and storage access.
type Server struct {
	mcpServer *mcp.Server
	gen       *generator.Generator
	repo      storage.Repository
	defaults  models.GenerationRequest
	log       *slog.Logger
}

// NewServer creates a new MCP server. repo may be nil; the template tools
// then report that storage is not configured.
func NewServer(gen *generator.Generator, repo storage.Repository, defaults models.GenerationRequest, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "forge",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		gen:       gen,
		repo:      repo,
		defaults:  defaults,
		log:       log,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.InfoContext(ctx, "mcp server starting", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
