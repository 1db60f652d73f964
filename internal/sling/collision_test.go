package sling

import (
	"testing"

	"github.com/vovakirdan/gravity-sling/internal/core"
)

func testBodies() []Attractor {
	return []Attractor{
		{Name: "Sun", Pos: core.V(100, 100), R: 30, Star: true},
		{Name: "Rock", Pos: core.V(300, 100), R: 20},
		{Name: "Home", Pos: core.V(500, 100), R: 18},
	}
}

func TestResolve(t *testing.T) {
	arena := Arena{W: 960, H: 600, Margin: BoundsMargin}
	bodies := testBodies()

	tests := []struct {
		name    string
		ship    Probe
		verdict Verdict
		body    int
		reason  string
	}{
		{"open space", Probe{Pos: core.V(200, 300)}, VerdictNone, -1, ""},
		{"inside star", Probe{Pos: core.V(110, 100)}, VerdictLose, 0, "Burned in the star"},
		{"inside planet", Probe{Pos: core.V(300, 110)}, VerdictLose, 1, "Crashed into Rock"},
		{"capture margin", Probe{Pos: core.V(529, 100)}, VerdictWin, 2, ""},
		{"just outside capture", Probe{Pos: core.V(531, 100)}, VerdictNone, -1, ""},
		{"shielded planet", Probe{Pos: core.V(300, 110), Shielded: true}, VerdictBounce, 1, ""},
		{"out of bounds", Probe{Pos: core.V(-201, 100)}, VerdictLose, -1, ReasonOutOfBounds},
		{"margin is inside", Probe{Pos: core.V(-199, 100)}, VerdictNone, -1, ""},
		{"bounds before bodies", Probe{Pos: core.V(1200, 100)}, VerdictLose, -1, ReasonOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.ship, bodies, 2, 12, arena)
			if res.Verdict != tt.verdict {
				t.Errorf("Verdict = %v, expected %v", res.Verdict, tt.verdict)
			}
			if res.Body != tt.body {
				t.Errorf("Body = %d, expected %d", res.Body, tt.body)
			}
			if res.Reason != tt.reason {
				t.Errorf("Reason = %q, expected %q", res.Reason, tt.reason)
			}
		})
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	arena := Arena{W: 960, H: 600, Margin: BoundsMargin}
	bodies := []Attractor{
		{Name: "First", Pos: core.V(300, 300), R: 20},
		{Name: "Second", Pos: core.V(305, 300), R: 20},
	}
	res := Resolve(Probe{Pos: core.V(302, 300)}, bodies, 1, 12, arena)
	if res.Verdict != VerdictLose || res.Body != 0 {
		t.Errorf("Resolve = %v on body %d, expected lose on body 0", res.Verdict, res.Body)
	}
}

func TestShieldBounce(t *testing.T) {
	arena := Arena{W: 960, H: 600, Margin: BoundsMargin}
	bodies := testBodies()

	res := Resolve(Probe{Pos: core.V(285, 100), Vel: core.V(4, 1), Shielded: true}, bodies, 2, 12, arena)
	if res.Verdict != VerdictBounce {
		t.Fatalf("Verdict = %v, expected bounce", res.Verdict)
	}
	if res.Pos != core.V(300-20-BounceOffset, 100) {
		t.Errorf("Pos = %v, expected just outside the surface", res.Pos)
	}

	// At the exact center the normal falls back to the reverse heading.
	res = Resolve(Probe{Pos: core.V(300, 100), Vel: core.V(0, 2), Shielded: true}, bodies, 2, 12, arena)
	if res.Pos != core.V(300, 100-20-BounceOffset) {
		t.Errorf("center bounce Pos = %v, expected above the body", res.Pos)
	}
}

func TestCrashReason(t *testing.T) {
	if got := CrashReason(Attractor{Name: "Vesta"}); got != "Crashed into Vesta" {
		t.Errorf("CrashReason = %q", got)
	}
	if got := CrashReason(Attractor{Name: "Sol", Star: true}); got != "Burned in the star" {
		t.Errorf("CrashReason = %q", got)
	}
}
