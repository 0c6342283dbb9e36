// Package prompts contains the schemamap MCP prompts.
package prompts

import (
	"github.com/usestring/schemamap/internal/collection"
)

// Config holds what prompts need to render.
type Config struct {
	Store          *collection.Store
	MaxCollections int
}
