// ABOUTME: MCP resource implementations for the knowledge base.
// ABOUTME: Provides forge://splits and forge://library/health resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	splitsURI        = "forge://splits"
	libraryHealthURI = "forge://library/health"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         splitsURI,
		Name:        "Weekly Splits",
		Description: "Every split with its best-for note and 1-7 day workout mapping",
		MIMEType:    "application/json",
	}, s.handleSplitsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         libraryHealthURI,
		Name:        "Knowledge Base Health",
		Description: "Library sizes plus the diagnostics from verify_library",
		MIMEType:    "application/json",
	}, s.handleLibraryHealthResource)
}

// Resource handlers

func (s *Server) handleSplitsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(splitsURI, s.gen.Library().Splits())
}

func (s *Server) handleLibraryHealthResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	lib := s.gen.Library()
	diags := s.gen.VerifyLibrary()

	result := map[string]any{
		"ok":          len(diags) == 0,
		"diagnostics": diags,
		"counts": map[string]int{
			"splits":            len(lib.Splits()),
			"workouts":          len(lib.WorkoutNames()),
			"catalog_exercises": len(lib.Catalog().Leaves()),
		},
	}
	return jsonResource(libraryHealthURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
