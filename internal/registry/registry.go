// Package registry provides a global registry for level packs.
// Packs register themselves in init() functions, allowing the platform
// to discover and open them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gravity-sling/internal/level"
)

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	Name  string
	Title string
}

// Factory opens a pack's level source.
type Factory func() (level.Source, error)

type entry struct {
	title   string
	factory Factory
}

var (
	packs = make(map[string]entry)
	mu    sync.RWMutex
)

// Register adds a pack to the registry.
// Typically called from a pack's init() function.
// Panics if a pack with the same name is already registered.
func Register(name, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := packs[name]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", name))
	}
	if f == nil {
		panic(fmt.Sprintf("registry: pack %q has no factory", name))
	}

	packs[name] = entry{title: title, factory: f}
}

// List returns information about all registered packs, sorted by name.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(packs))
	for name, e := range packs {
		result = append(result, PackInfo{Name: name, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Open returns the level source of a pack.
// Returns an error if the pack is not registered or fails to open.
func Open(name string) (level.Source, error) {
	mu.RLock()
	e, ok := packs[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", name)
	}

	src, err := e.factory()
	if err != nil {
		return nil, fmt.Errorf("registry: cannot open pack %q: %w", name, err)
	}
	return src, nil
}

// Exists checks if a pack with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := packs[name]
	return ok
}
