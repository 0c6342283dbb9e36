package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemamap/internal/collection"
	"github.com/usestring/schemamap/pkg/schemamap"
)

// MapDocumentsInput is the input for schemamap_map_documents.
type MapDocumentsInput struct {
	Collection  string `json:"collection" jsonschema:"Collection name. Created on first use; later calls merge into the same schema."`
	Documents   string `json:"documents" jsonschema:"Raw document text: JSON, NDJSON (one document per line), YAML (--- separated) or XML"`
	Format      string `json:"format,omitempty" jsonschema:"Input format: auto (default), json, ndjson, yaml or xml"`
	ContentType string `json:"content_type,omitempty" jsonschema:"Content-Type of the documents, used when format is auto"`
	Select      string `json:"select,omitempty" jsonschema:"jq expression applied to each document before mapping, e.g. '.results[]'"`
	ParseDates  bool   `json:"parse_dates,omitempty" jsonschema:"Map ISO-8601 date strings as date instead of string"`
	BigInts     bool   `json:"big_ints,omitempty" jsonschema:"Map integers beyond 64 bits as bigint instead of number"`
	BaseSchema  string `json:"base_schema,omitempty" jsonschema:"Flat schema JSON object (path to type) from an earlier run. Seeds a newly created collection; its types win over inferred ones."`
}

// MapDocumentsOutput is the output for schemamap_map_documents.
type MapDocumentsOutput struct {
	Collection     string            `json:"collection"`
	Created        bool              `json:"created"`
	DocumentsAdded int               `json:"documents_added"`
	NewPaths       []schemamap.Entry `json:"new_paths,omitzero"`
	TotalPaths     int               `json:"total_paths"`
	TotalDocuments int               `json:"total_documents"`
}

// GetSchemaInput is the input for schemamap_get_schema.
type GetSchemaInput struct {
	Collection   string  `json:"collection" jsonschema:"Collection name"`
	MinFrequency float64 `json:"min_frequency,omitempty" jsonschema:"Only return paths present in at least this share of documents, 0.0-1.0 (default: 0, all paths)"`
}

// GetSchemaOutput is the output for schemamap_get_schema.
type GetSchemaOutput struct {
	Collection string                     `json:"collection"`
	Documents  int                        `json:"documents"`
	Fields     []collection.FieldCoverage `json:"fields,omitzero"`
	Created    string                     `json:"created"`
	Updated    string                     `json:"updated"`
}

// ListCollectionsInput is the input for schemamap_list_collections.
type ListCollectionsInput struct{}

// CollectionInfo summarizes one collection.
type CollectionInfo struct {
	Name      string `json:"name"`
	Documents int    `json:"documents"`
	Paths     int    `json:"paths"`
	Updated   string `json:"updated"`
}

// ListCollectionsOutput is the output for schemamap_list_collections.
type ListCollectionsOutput struct {
	Collections []CollectionInfo `json:"collections,omitzero"`
	Total       int              `json:"total"`
	Capacity    int              `json:"capacity"`
}

// DeleteCollectionInput is the input for schemamap_delete_collection.
type DeleteCollectionInput struct {
	Collection string `json:"collection" jsonschema:"Collection name"`
}

// DeleteCollectionOutput is the output for schemamap_delete_collection.
type DeleteCollectionOutput struct {
	Collection string `json:"collection"`
	Deleted    bool   `json:"deleted"`
}

// ToolMapDocuments decodes documents and merges them into a collection.
func ToolMapDocuments(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input MapDocumentsInput) (*sdkmcp.CallToolResult, MapDocumentsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input MapDocumentsInput) (*sdkmcp.CallToolResult, MapDocumentsOutput, error) {
		if err := ValidateCollection(input.Collection); err != nil {
			return nil, MapDocumentsOutput{}, err
		}

		var base *schemamap.Schema
		if input.BaseSchema != "" {
			base = schemamap.NewSchema()
			if err := json.Unmarshal([]byte(input.BaseSchema), base); err != nil {
				return nil, MapDocumentsOutput{}, ErrInvalidInput(fmt.Sprintf("base_schema: %v", err))
			}
		}

		// decode before touching the store so a bad call creates nothing
		docs, err := d.decode(ctx, decodeParams{
			Format:      input.Format,
			ContentType: input.ContentType,
			Select:      input.Select,
			ParseDates:  input.ParseDates,
			BigInts:     input.BigInts,
		}, input.Documents)
		if err != nil {
			return nil, MapDocumentsOutput{}, err
		}

		col, created := d.Store.GetOrCreate(input.Collection)
		if created && base != nil {
			seeded := col.Seed(base)
			slog.Debug("collection seeded",
				slog.String("collection", input.Collection),
				slog.Int("paths", seeded),
			)
		}

		res := col.Add(docs...)
		slog.Info("documents mapped",
			slog.String("collection", input.Collection),
			slog.Int("documents", res.DocumentsAdded),
			slog.Int("new_paths", len(res.NewPaths)),
		)

		return nil, MapDocumentsOutput{
			Collection:     input.Collection,
			Created:        created,
			DocumentsAdded: res.DocumentsAdded,
			NewPaths:       res.NewPaths,
			TotalPaths:     res.TotalPaths,
			TotalDocuments: res.TotalDocuments,
		}, nil
	}
}

// ToolGetSchema returns a collection's schema with per-path coverage.
func ToolGetSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetSchemaInput) (*sdkmcp.CallToolResult, GetSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GetSchemaInput) (*sdkmcp.CallToolResult, GetSchemaOutput, error) {
		if err := ValidateCollection(input.Collection); err != nil {
			return nil, GetSchemaOutput{}, err
		}
		if input.MinFrequency < 0 || input.MinFrequency > 1 {
			return nil, GetSchemaOutput{}, ErrInvalidInput("min_frequency must be between 0 and 1")
		}

		col, ok := d.Store.Get(input.Collection)
		if !ok {
			return nil, GetSchemaOutput{}, ErrNotFound("collection", input.Collection)
		}

		snap := col.Snapshot(input.MinFrequency)
		return nil, GetSchemaOutput{
			Collection: snap.Name,
			Documents:  snap.Documents,
			Fields:     snap.Fields,
			Created:    formatTime(snap.Created),
			Updated:    formatTime(snap.Updated),
		}, nil
	}
}

// ToolListCollections lists the stored collections.
func ToolListCollections(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListCollectionsInput) (*sdkmcp.CallToolResult, ListCollectionsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListCollectionsInput) (*sdkmcp.CallToolResult, ListCollectionsOutput, error) {
		infos := d.Store.List()

		output := ListCollectionsOutput{
			Collections: make([]CollectionInfo, len(infos)),
			Total:       len(infos),
			Capacity:    d.Config.MaxCollections,
		}
		for i, info := range infos {
			output.Collections[i] = CollectionInfo{
				Name:      info.Name,
				Documents: info.Documents,
				Paths:     info.Paths,
				Updated:   formatTime(info.Updated),
			}
		}

		return nil, output, nil
	}
}

// ToolDeleteCollection drops a collection.
func ToolDeleteCollection(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input DeleteCollectionInput) (*sdkmcp.CallToolResult, DeleteCollectionOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input DeleteCollectionInput) (*sdkmcp.CallToolResult, DeleteCollectionOutput, error) {
		if err := ValidateCollection(input.Collection); err != nil {
			return nil, DeleteCollectionOutput{}, err
		}
		if !d.Store.Delete(input.Collection) {
			return nil, DeleteCollectionOutput{}, ErrNotFound("collection", input.Collection)
		}
		return nil, DeleteCollectionOutput{Collection: input.Collection, Deleted: true}, nil
	}
}
