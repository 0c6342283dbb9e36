package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleGuide serves the tool usage guide.
func HandleGuide(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# Schema Mapping Guide\n\n")

		// --- Reading the output ---
		sb.WriteString("## Reading a Schema\n\n")
		sb.WriteString("| Path / type | Meaning |\n")
		sb.WriteString("|------|--------|\n")
		sb.WriteString("| `user.address.city: string` | nested object fields are joined with dots |\n")
		sb.WriteString("| `items.0.id: number` | array of objects; only the first element is sampled |\n")
		sb.WriteString("| `tags: array<string>` | array of scalars, typed from its first element |\n")
		sb.WriteString("| `matrix.0.0: number` | array of arrays; inner arrays are enumerated by index |\n")
		sb.WriteString("| `history: array?` | empty array; element type unknown |\n")
		sb.WriteString("| `created: date` | date value (YAML timestamps, or strings with parse_dates) |\n")
		sb.WriteString("\nNull values produce no path. The first type seen for a path wins; later documents never change it.\n")

		// --- Workflow ---
		sb.WriteString("\n## Workflow\n")
		sb.WriteString("1. **Quick look**: `schemamap_infer(document: ...)` for a single payload, nothing stored\n")
		sb.WriteString("2. **Accumulate**: `schemamap_map_documents(collection: \"orders\", documents: ...)` per batch of samples; watch `new_paths` shrink as the schema converges\n")
		sb.WriteString("3. **Review**: `schemamap_get_schema(collection: \"orders\", min_frequency: 0.5)` to separate common fields from rare ones\n")
		sb.WriteString("4. **Export**: read `schemamap://collections/orders` for the flat schema JSON; pass it back later as `base_schema` to continue\n")

		// --- Tips ---
		sb.WriteString("\n## Tips\n")
		sb.WriteString("- Use `select` (jq) to unwrap envelopes: `.data.items[]` maps each item as its own document\n")
		sb.WriteString("- NDJSON input maps one document per line; YAML input one document per `---` section\n")
		sb.WriteString("- Send mixed samples in the order you trust most: the earliest type for a path is kept\n")
		fmt.Fprintf(&sb, "- Up to %d collections are kept; the least recently used one is dropped first\n", cfg.MaxCollections)

		return &sdkmcp.GetPromptResult{
			Description: "Guide to reading and building flat schemas",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
