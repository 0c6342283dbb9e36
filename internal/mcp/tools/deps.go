package tools

import (
	"github.com/usestring/schemamap/internal/collection"
	"github.com/usestring/schemamap/internal/config"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config *config.Config
	Store  *collection.Store
}
