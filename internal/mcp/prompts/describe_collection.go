package prompts

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemamap/internal/collection"
	"github.com/usestring/schemamap/internal/report"
	"github.com/usestring/schemamap/pkg/schemamap"
)

// HandleDescribeCollection embeds a collection's schema and coverage in a
// request to document the data it describes.
func HandleDescribeCollection(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		name := args["collection"]
		if name == "" {
			return nil, fmt.Errorf("collection argument is required")
		}
		minFrequency := 0.0
		if v := args["min_frequency"]; v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f < 0 || f > 1 {
				return nil, fmt.Errorf("min_frequency must be a number between 0 and 1, got %q", v)
			}
			minFrequency = f
		}
		target := args["target"]
		if target == "" {
			target = "markdown"
		}

		col, ok := cfg.Store.Get(name)
		if !ok {
			return nil, fmt.Errorf("collection not found: %s", name)
		}
		snap := col.Snapshot(minFrequency)

		var sb strings.Builder

		sb.WriteString("# Describe a Data Collection\n\n")
		fmt.Fprintf(&sb, "The collection `%s` was inferred from %d sample documents. ", snap.Name, snap.Documents)
		sb.WriteString("Each row is a flattened field path with the type of its first occurrence and the share of documents that contained it.\n\n")

		sb.WriteString("| Path | Type | Present in |\n")
		sb.WriteString("|------|------|-----------|\n")
		for _, f := range snap.Fields {
			fmt.Fprintf(&sb, "| `%s` | %s | %d (%.0f%%) |\n", f.Path, f.Type, f.Documents, f.Frequency*100)
		}
		if len(snap.Fields) == 0 {
			sb.WriteString("| (no fields) | | |\n")
		}

		sb.WriteString("\n## Reading the Paths\n")
		sb.WriteString("- A `0` segment stands for \"every element\" of an array of objects (only the first element was sampled)\n")
		sb.WriteString("- `array?` means every sampled array was empty\n")
		sb.WriteString("- Fields below 100% are optional in the samples\n")

		sb.WriteString("\n## Task\n")
		switch target {
		case "go":
			sb.WriteString("Write Go struct types for these documents with json tags. Use pointers or omitempty for optional fields and time.Time for date fields.\n")
		case "jsonschema":
			draft, err := draftJSONSchema(snap)
			if err != nil {
				return nil, err
			}
			sb.WriteString("This JSON Schema (draft 2020-12) was generated from the paths above; fields present in every document are required:\n\n")
			sb.WriteString("```json\n")
			sb.WriteString(draft)
			sb.WriteString("```\n\n")
			sb.WriteString("Refine it: add a description to each property, tighten string formats you can recognize from the field names, and replace empty item schemas with concrete types where the names make them clear.\n")
		default:
			sb.WriteString("Write concise markdown documentation of this data: group fields by their top-level object, describe each group, and call out optional fields and unknown array types.\n")
		}

		return &sdkmcp.GetPromptResult{
			Description: fmt.Sprintf("Describe collection %s (%d documents, %d fields)", snap.Name, snap.Documents, len(snap.Fields)),
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}

// draftJSONSchema renders the snapshot as a JSON Schema, marking paths seen in
// every document as required.
func draftJSONSchema(snap collection.Snapshot) (string, error) {
	entries := make([]schemamap.Entry, len(snap.Fields))
	always := make(map[string]bool, len(snap.Fields))
	for i, f := range snap.Fields {
		entries[i] = schemamap.Entry{Path: f.Path, Type: f.Type}
		if snap.Documents > 0 && f.Documents == snap.Documents {
			always[f.Path] = true
		}
	}

	var buf strings.Builder
	schema := report.JSONSchema(entries, func(path string) bool { return always[path] })
	if err := report.EncodeJSONSchema(&buf, schema); err != nil {
		return "", err
	}
	return buf.String(), nil
}
