package level

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func levelFile(id, name string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("id: " + id + "\nname: " + name + "\nplanets:\n  - {name: Goal, x: 0.7, y: 0.5, r: 18, mass: 1100}\n")}
}

func TestLoaderLoadAllSorted(t *testing.T) {
	fsys := fstest.MapFS{
		"b/003.yaml":  levelFile("3", "Three"),
		"001.yml":     levelFile("1", "One"),
		"pack.json":   {Data: []byte(`{"levels": [{"id": 2, "planets": [{"x": 0.5, "y": 0.5, "r": 10, "mass": 10}]}]}`)},
		"README.md":   {Data: []byte("not a level")},
		"notes/x.txt": {Data: []byte("ignored")},
	}

	levels, err := NewLoader("mem", fsys).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(levels) != 3 {
		t.Fatalf("LoadAll() returned %d levels, expected 3", len(levels))
	}
	for i, want := range []int{1, 2, 3} {
		if levels[i].ID != want {
			t.Errorf("levels[%d].ID = %d, expected %d", i, levels[i].ID, want)
		}
	}
	if levels[2].FilePath != "b/003.yaml" {
		t.Errorf("FilePath = %q, expected b/003.yaml", levels[2].FilePath)
	}
}

func TestLoaderDuplicateIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": levelFile("4", "A"),
		"b.yaml": levelFile("4", "B"),
	}

	_, err := NewLoader("mem", fsys).LoadAll()
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("LoadAll() error = %v, expected ErrMalformed for duplicate ids", err)
	}
}

func TestLoaderInvalidLevelFails(t *testing.T) {
	fsys := fstest.MapFS{
		"ok.yaml":  levelFile("1", "Fine"),
		"bad.yaml": {Data: []byte("id: 2\ntargetIndex: 5\nplanets:\n  - {x: 0.5, y: 0.5, r: 10, mass: 10}\n")},
	}

	_, err := NewLoader("mem", fsys).LoadAll()
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("LoadAll() error = %v, expected *LoadError", err)
	}
	if le.LevelID != 2 || le.Source != "bad.yaml" {
		t.Errorf("LoadError = %+v, expected level 2 in bad.yaml", le)
	}
}

func TestLoaderRejectsNonFiniteNumbers(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"nan fuel", "id: 1\nparams: {fuel: .nan}\nplanets:\n  - {x: 0.5, y: 0.5, r: 10, mass: 10}\n"},
		{"inf max speed", "id: 1\nparams: {maxSpeed: .inf}\nplanets:\n  - {x: 0.5, y: 0.5, r: 10, mass: 10}\n"},
		{"inf radius", "id: 1\nplanets:\n  - {x: 0.5, y: 0.5, r: .inf, mass: 10}\n"},
		{"nan mass", "id: 1\nplanets:\n  - {x: 0.5, y: 0.5, r: 10, mass: .nan}\n"},
		{"nan start", "id: 1\nstart: {x: .nan, y: 0.2}\nplanets:\n  - {x: 0.5, y: 0.5, r: 10, mass: 10}\n"},
		{"negative inf payload", "id: 1\nplanets:\n  - {x: 0.5, y: 0.5, r: 10, mass: 10}\ncollectibles:\n  - {type: time, x: 0.3, y: 0.3, seconds: -.inf}\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{"bad.yaml": {Data: []byte(tc.data)}}
			_, err := NewLoader("mem", fsys).LoadAll()
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("LoadAll() error = %v, expected *LoadError", err)
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("LoadAll() error = %v, expected ErrMalformed", err)
			}
		})
	}
}

func TestLoaderEmptyAndMissing(t *testing.T) {
	_, err := NewLoader("empty", fstest.MapFS{}).LoadAll()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadAll() on empty fs = %v, expected ErrNotFound", err)
	}

	_, err = NewDirLoader(filepath.Join(t.TempDir(), "missing")).LoadAll()
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("LoadAll() on missing dir = %v, expected ErrUnreachable", err)
	}
}

func TestLoaderFromDirectory(t *testing.T) {
	dir := t.TempDir()
	data := "id: 5\nplanets:\n  - {x: 0.5, y: 0.5, r: 10, mass: 10}\n"
	if err := os.WriteFile(filepath.Join(dir, "five.yaml"), []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	l := NewDirLoader(dir)
	d, err := l.LoadByID(5)
	if err != nil {
		t.Fatalf("LoadByID(5) failed: %v", err)
	}
	if d.ID != 5 {
		t.Errorf("LoadByID(5).ID = %d", d.ID)
	}

	_, err = l.LoadByID(6)
	var le *LoadError
	if !errors.As(err, &le) || !errors.Is(err, ErrNotFound) || le.LevelID != 6 {
		t.Errorf("LoadByID(6) error = %v, expected not-found LoadError for level 6", err)
	}
}

func TestCampaign(t *testing.T) {
	fsys := fstest.MapFS{
		"1.yaml": levelFile("1", "One"),
		"2.yaml": levelFile("2", "Two"),
		"5.yaml": levelFile("5", "Five"),
	}

	c, err := NewCampaign(NewLoader("mem", fsys))
	if err != nil {
		t.Fatalf("NewCampaign() failed: %v", err)
	}

	if c.Len() != 3 || c.Current().ID != 1 {
		t.Fatalf("new campaign = len %d current %d, expected 3 and 1", c.Len(), c.Current().ID)
	}
	if list := c.List(); list[2].Name != "Five" || list[2].Bodies != 1 {
		t.Errorf("List()[2] = %+v", list[2])
	}

	if !c.HasNext() || !c.Next() || c.Current().ID != 2 {
		t.Errorf("Next() should move to level 2, at %d", c.Current().ID)
	}

	if err := c.SetCurrentByID(5); err != nil {
		t.Fatalf("SetCurrentByID(5) failed: %v", err)
	}
	if c.Index() != 2 {
		t.Errorf("Index() = %d, expected 2", c.Index())
	}
	if c.HasNext() {
		t.Error("HasNext() at last level should be false")
	}
	if c.Next() {
		t.Error("Next() at last level should return false")
	}
	if c.Current().ID != 5 {
		t.Errorf("Next() at end moved to %d", c.Current().ID)
	}

	if err := c.SetCurrentByID(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetCurrentByID(42) = %v, expected ErrNotFound", err)
	}
	if c.Current().ID != 5 {
		t.Error("failed SetCurrentByID should not move the campaign")
	}
}
