package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemamap/internal/mcp/tools"
)

// AddTool registers a tool with the server, panicking at startup if the zero
// value of Out would fail the output schema the SDK infers. A nil slice
// marshals as null but is inferred as "array", so such a tool would fail on
// its first empty result.
//
// Use this instead of [sdkmcp.AddTool] to get the additional check.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
