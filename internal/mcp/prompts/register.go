package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Usage guide
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "schemamap_guide",
		Description: "RECOMMENDED: How flat schemas are built and read, and the tool workflow for accumulating a schema from many samples. Start here.",
	}, HandleGuide(cfg))

	// Prompt 2: Describe a collection
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "describe_collection",
		Description: "Document a collection built with schemamap_map_documents: embeds its schema and coverage and asks for docs, Go types or a JSON Schema.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "collection",
				Description: "Collection name",
				Required:    true,
			},
			{
				Name:        "min_frequency",
				Description: "Hide fields present in fewer than this share of documents (0.0-1.0)",
				Required:    false,
			},
			{
				Name:        "target",
				Description: "What to write: markdown (default), go or jsonschema",
				Required:    false,
			},
		},
	}, HandleDescribeCollection(cfg))
}
