package sling

import (
	"fmt"
	"math"

	"github.com/vovakirdan/gravity-sling/internal/core"
)

// Verdict is the result of a collision pass.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictWin
	VerdictLose
	VerdictBounce
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictNone:
		return "none"
	case VerdictWin:
		return "win"
	case VerdictLose:
		return "lose"
	case VerdictBounce:
		return "bounce"
	default:
		return "unknown"
	}
}

// ReasonOutOfBounds is the failure reason for leaving the arena.
const ReasonOutOfBounds = "Out of bounds"

// Arena is the viewport plus the margin the ship may drift into.
type Arena struct {
	W, H   float64
	Margin float64
}

// Contains reports whether p is inside the arena including the margin.
func (a Arena) Contains(p core.Vec2) bool {
	return p.X >= -a.Margin && p.Y >= -a.Margin && p.X <= a.W+a.Margin && p.Y <= a.H+a.Margin
}

// Resolution describes what the ship hit this tick.
type Resolution struct {
	Verdict Verdict
	Body    int       // index of the body involved, -1 for none or bounds
	Reason  string    // failure reason for VerdictLose
	Pos     core.Vec2 // ship position after a bounce
}

// Probe is the ship state the resolver needs.
type Probe struct {
	Pos      core.Vec2
	Vel      core.Vec2
	Shielded bool
}

// Resolve runs the per-tick spatial checks. Bounds are checked first, then
// bodies in static order; the first qualifying condition wins and later
// bodies are not examined. A bounce is not re-checked within the same call.
func Resolve(ship Probe, bodies []Attractor, target int, captureExtra float64, arena Arena) Resolution {
	res := Resolution{Verdict: VerdictNone, Body: -1, Pos: ship.Pos}

	if !arena.Contains(ship.Pos) {
		res.Verdict = VerdictLose
		res.Reason = ReasonOutOfBounds
		return res
	}

	for i, b := range bodies {
		d2 := ship.Pos.Dist2(b.Pos)

		if i == target {
			capR := b.R + captureExtra
			if d2 <= capR*capR {
				res.Verdict = VerdictWin
				res.Body = i
				return res
			}
		}

		if d2 > b.R*b.R {
			continue
		}

		res.Body = i
		if ship.Shielded {
			res.Verdict = VerdictBounce
			res.Pos = bounce(ship, b, d2)
			return res
		}
		res.Verdict = VerdictLose
		res.Reason = CrashReason(b)
		return res
	}
	return res
}

// CrashReason is the failure text for hitting b without a shield.
func CrashReason(b Attractor) string {
	if b.Star {
		return "Burned in the star"
	}
	return fmt.Sprintf("Crashed into %s", b.Name)
}

// bounce places the ship just outside b along the collision normal. The
// velocity is left as it was.
func bounce(ship Probe, b Attractor, d2 float64) core.Vec2 {
	var n core.Vec2
	switch {
	case d2 > 0:
		n = ship.Pos.Sub(b.Pos).Scale(1 / math.Sqrt(d2))
	case !ship.Vel.IsZero():
		n = ship.Vel.Scale(-1).Normalize()
	default:
		n = core.V(0, -1)
	}

	return b.Pos.Add(n.Scale(b.R + BounceOffset))
}
