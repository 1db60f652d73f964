// Package classic is the built-in level pack. Importing it registers the
// pack as "classic".
package classic

import (
	"embed"
	"io/fs"

	"github.com/vovakirdan/gravity-sling/internal/level"
	"github.com/vovakirdan/gravity-sling/internal/registry"
)

// Name is the registry name of the pack.
const Name = "classic"

//go:embed levels
var levelFS embed.FS

func init() {
	registry.Register(Name, "Classic campaign", Open)
}

// Open returns a loader over the embedded level files.
func Open() (level.Source, error) {
	sub, err := fs.Sub(levelFS, "levels")
	if err != nil {
		return nil, err
	}
	return level.NewLoader(Name, sub), nil
}
