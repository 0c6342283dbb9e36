package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemamap/internal/mcp/tools"
)

// Resource URI scheme: schemamap://
// Supported URIs:
//   schemamap://collections/{name}

const collectionURIPrefix = "schemamap://collections/"

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: collectionURIPrefix + "{name}",
		Name:        "Collection Schema",
		Description: "Flat schema of a collection as a JSON object of path to type, in discovery order. The same shape is accepted as base_schema by schemamap_map_documents. Use schemamap_get_schema for coverage statistics.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceCollection)
}

func (s *Server) handleResourceCollection(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	name, err := parseCollectionURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	col, ok := s.deps.Store.Get(name)
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	return toResourceResult(req.Params.URI, col.Schema())
}

// parseCollectionURI extracts the collection name from a schemamap:// URI.
func parseCollectionURI(uri string) (string, error) {
	name, ok := strings.CutPrefix(uri, collectionURIPrefix)
	if !ok {
		return "", tools.ErrInvalidInput("invalid URI: expected " + collectionURIPrefix + "{name}")
	}
	if err := tools.ValidateCollection(name); err != nil {
		return "", err
	}
	return name, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(content); err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     buf.String(),
			},
		},
	}, nil
}
