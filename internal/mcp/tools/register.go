package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: schemamap_map_documents
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemamap_map_documents",
		Description: "Infer the flat field schema of JSON, NDJSON, YAML or XML documents and merge it into a named collection. Returns new_paths ({path, type} in discovery order) plus totals. Paths are dotted (user.address.city); arrays of objects are flattened under a literal 0 segment (items.0.id); scalar arrays are typed from their first element (array<string>), empty arrays as array?. A path keeps the first type seen. Call repeatedly with more samples, then use schemamap_get_schema for coverage.",
	}, ToolMapDocuments(d))

	// Tool 2: schemamap_get_schema
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemamap_get_schema",
		Description: "Get a collection's schema in discovery order. Each field has path, type, documents (how many documents contained it) and frequency (0.0-1.0). Set min_frequency to hide rare fields, e.g. 0.9 for fields present in nearly every document.",
	}, ToolGetSchema(d))

	// Tool 3: schemamap_list_collections
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemamap_list_collections",
		Description: "List stored collections with document and path counts. The least recently used collection is dropped once capacity is reached.",
	}, ToolListCollections(d))

	// Tool 4: schemamap_delete_collection
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemamap_delete_collection",
		Description: "Delete a collection and its schema",
	}, ToolDeleteCollection(d))

	// Tool 5: schemamap_infer
	AddTool(srv, &sdkmcp.Tool{
		Name:        "schemamap_infer",
		Description: "Infer the flat field schema of one or more documents without storing it. Same rules as schemamap_map_documents; use this for a quick look at a single payload.",
	}, ToolInfer(d))
}
