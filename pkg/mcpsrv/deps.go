package mcpsrv

import (
	"github.com/usestring/schemamap/internal/collection"
	"github.com/usestring/schemamap/internal/config"
)

// Deps contains the dependencies available to custom tools.
// They are shared with the builtin tools.
type Deps struct {
	Config *config.Config
	Store  *collection.Store
}
