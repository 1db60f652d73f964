package classic

import (
	"testing"

	"github.com/vovakirdan/gravity-sling/internal/level"
	"github.com/vovakirdan/gravity-sling/internal/registry"
	"github.com/vovakirdan/gravity-sling/internal/sling"
)

func TestPackRegistered(t *testing.T) {
	if !registry.Exists(Name) {
		t.Fatalf("pack %q not registered", Name)
	}
	if _, err := registry.Open(Name); err != nil {
		t.Fatalf("registry.Open(%q) failed: %v", Name, err)
	}
}

func TestLevelsLoad(t *testing.T) {
	src, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	levels, err := src.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(levels) < 10 {
		t.Errorf("pack has %d levels, expected at least 10", len(levels))
	}

	for i, d := range levels {
		if d.ID != i+1 {
			t.Errorf("level at %d has id %d, expected contiguous ids from 1", i, d.ID)
		}
		if d.Target().Name != "Goal" {
			t.Errorf("level %d target is %q, expected Goal", d.ID, d.Target().Name)
		}
	}
}

func TestLevelsStartClear(t *testing.T) {
	src, _ := Open()
	levels, err := src.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}

	vp := level.DefaultViewport()
	for i := range levels {
		d := &levels[i]
		s, err := sling.New(d, sling.Options{Viewport: vp})
		if err != nil {
			t.Errorf("level %d: sling.New() failed: %v", d.ID, err)
			continue
		}

		start := s.Ship().Pos
		for _, b := range s.Bodies() {
			reach := b.R + sling.ShipRadius
			if start.Dist2(b.Pos) <= reach*reach {
				t.Errorf("level %d starts inside %s", d.ID, b.Name)
			}
		}

		// Sitting on the pad never ends a level.
		for range 120 {
			s.Tick(sling.BaseStepMs, nil)
		}
		if s.Phase() != sling.PreFlight {
			t.Errorf("level %d: idle phase = %v, expected preflight", d.ID, s.Phase())
		}
	}
}
