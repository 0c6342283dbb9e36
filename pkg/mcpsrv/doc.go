// Package mcpsrv provides an extensible MCP server for schema mapping.
//
// The server keeps named collections: each schemamap_map_documents call
// decodes JSON, NDJSON, YAML or XML documents and merges their flattened field
// paths into a collection, which schemamap_get_schema reports with per-path
// coverage. Custom tools, prompts and resource templates can be added with
// functional options.
//
// # Basic Usage
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Custom tools get the collection store through Deps:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(&mcp.Tool{Name: "collection_paths"}, buildPathsTool),
//	    mcpsrv.WithoutBuiltinPrompts(),
//	)
//
// # Configuration
//
// Settings come from the environment (LOG_*, SCHEMAMAP_*) and can be
// overridden with options:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/schemamap-mcp.log"),
//	    mcpsrv.WithMaxCollections(16),
//	)
package mcpsrv
