package level

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// Source provides level descriptors.
type Source interface {
	// Name identifies the source in errors and listings.
	Name() string

	// LoadAll returns every level, validated and sorted by ID.
	LoadAll() ([]Descriptor, error)
}

// Loader loads level files from a file system tree.
type Loader struct {
	name string
	fsys fs.FS
}

// NewLoader creates a loader over fsys. The name appears in errors.
func NewLoader(name string, fsys fs.FS) *Loader {
	return &Loader{name: name, fsys: fsys}
}

// NewDirLoader creates a loader over a directory on disk.
func NewDirLoader(root string) *Loader {
	return NewLoader(root, os.DirFS(root))
}

// Name returns the loader's source name.
func (l *Loader) Name() string {
	return l.name
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Descriptor, error) {
	var levels []Descriptor
	seen := make(map[int]string)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(path.Ext(p)) {
			return nil
		}

		descs, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		for _, desc := range descs {
			if prev, dup := seen[desc.ID]; dup {
				return malformed(p, desc.ID, "duplicate level id (also in %s)", prev)
			}
			seen[desc.ID] = p
			levels = append(levels, desc)
		}
		return nil
	})
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &LoadError{Source: l.name, Err: fmt.Errorf("%w: %v", ErrUnreachable, err)}
	}

	if len(levels) == 0 {
		return nil, &LoadError{Source: l.name, Err: fmt.Errorf("%w: no level files", ErrNotFound)}
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads and validates the levels in a single file.
func (l *Loader) LoadFile(p string) ([]Descriptor, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, &LoadError{Source: p, Err: fmt.Errorf("%w: %v", ErrUnreachable, err)}
	}

	descs, err := Parse(data, p)
	if err != nil {
		return nil, err
	}
	for i := range descs {
		if err := Validate(&descs[i]); err != nil {
			return nil, err
		}
	}
	return descs, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id int) (*Descriptor, error) {
	return Find(l, id)
}

// Find loads every level from src and returns the one with the given ID.
func Find(src Source, id int) (*Descriptor, error) {
	levels, err := src.LoadAll()
	if err != nil {
		return nil, err
	}
	for i := range levels {
		if levels[i].ID == id {
			return &levels[i], nil
		}
	}
	return nil, &LoadError{Source: src.Name(), LevelID: id, Err: ErrNotFound}
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
