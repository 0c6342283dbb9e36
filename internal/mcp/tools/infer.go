package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemamap/pkg/schemamap"
)

// InferInput is the input for schemamap_infer.
type InferInput struct {
	Document    string `json:"document" jsonschema:"Raw document text: JSON, NDJSON (one document per line), YAML (--- separated) or XML. All documents are merged into one schema."`
	Format      string `json:"format,omitempty" jsonschema:"Input format: auto (default), json, ndjson, yaml or xml"`
	ContentType string `json:"content_type,omitempty" jsonschema:"Content-Type of the document, used when format is auto (e.g. application/x-ndjson)"`
	Select      string `json:"select,omitempty" jsonschema:"jq expression applied to each document before mapping, e.g. '.data.items[]'. Each output value is mapped as its own document."`
	ParseDates  bool   `json:"parse_dates,omitempty" jsonschema:"Map ISO-8601 date strings as date instead of string"`
	BigInts     bool   `json:"big_ints,omitempty" jsonschema:"Map integers beyond 64 bits as bigint instead of number"`
}

// InferOutput is the output for schemamap_infer.
type InferOutput struct {
	Fields     []schemamap.Entry `json:"fields,omitzero"`
	Documents  int               `json:"documents"`
	TotalPaths int               `json:"total_paths"`
	Hint       string            `json:"hint,omitempty"`
}

// ToolInfer maps a document without storing anything.
func ToolInfer(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferInput) (*sdkmcp.CallToolResult, InferOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferInput) (*sdkmcp.CallToolResult, InferOutput, error) {
		docs, err := d.decode(ctx, decodeParams{
			Format:      input.Format,
			ContentType: input.ContentType,
			Select:      input.Select,
			ParseDates:  input.ParseDates,
			BigInts:     input.BigInts,
		}, input.Document)
		if err != nil {
			return nil, InferOutput{}, err
		}

		schema := schemamap.NewSchema()
		for _, doc := range docs {
			schemamap.Map(doc, schema)
		}

		output := InferOutput{
			Fields:     schema.Entries(),
			Documents:  len(docs),
			TotalPaths: schema.Len(),
		}
		if schema.Len() == 0 {
			output.Hint = "No fields found. Top-level scalars and empty objects produce no paths; try select to reach nested objects."
		} else if len(docs) > 1 {
			output.Hint = "Paths keep the type of the first document that has them. Use schemamap_map_documents to keep adding samples to a named collection."
		}

		return nil, output, nil
	}
}
