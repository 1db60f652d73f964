// Package sling is the per-level simulation of the gravity-slingshot game:
// force integration, launch and burn economy, collision and capture,
// collectible effects, scoring, and the session state machine that drives
// them. It is pure logic: input arrives as core events, output is state,
// snapshots and cues.
package sling

import (
	"math"

	"github.com/vovakirdan/gravity-sling/internal/core"
	"github.com/vovakirdan/gravity-sling/internal/level"
)

// Attractor is a body resolved into level space with derived constants.
type Attractor struct {
	Name     string
	Pos      core.Vec2
	R        float64
	GM       float64
	MinDist2 float64
	Star     bool
	Color    core.Color
}

// Field is the set of attractors acting on the ship. Bodies only pull the
// ship; they never attract each other.
type Field struct {
	bodies []Attractor
}

// NewField resolves the descriptor's bodies into level space.
func NewField(d *level.Descriptor, vp level.Viewport) *Field {
	p := d.Params
	bodies := make([]Attractor, len(d.Bodies))
	for i, b := range d.Bodies {
		bodies[i] = Attractor{
			Name:     b.Name,
			Pos:      b.Pos.Resolve(vp),
			R:        b.R,
			GM:       b.GM(p.GlobalG),
			MinDist2: b.MinDist2(p.NearClampAdd),
			Star:     b.Star,
			Color:    b.Color,
		}
	}
	return &Field{bodies: bodies}
}

// Bodies returns the attractors in their static order.
func (f *Field) Bodies() []Attractor {
	return f.bodies
}

// ForceMagnitude is the pull of a at squared distance d2. Distances inside
// the near-field floor are treated as the floor.
func ForceMagnitude(a Attractor, d2, shipMass, gravityMul float64) float64 {
	clamped := math.Max(d2, a.MinDist2)
	if clamped <= 0 {
		return 0
	}
	return a.GM * gravityMul * shipMass / clamped
}

// Force returns the net force on a ship of the given mass at pos.
func (f *Field) Force(pos core.Vec2, shipMass, gravityMul float64) core.Vec2 {
	var net core.Vec2
	for _, a := range f.bodies {
		delta := a.Pos.Sub(pos)
		d2 := delta.Len2()
		if d2 == 0 {
			// Direction is undefined at the exact center
			continue
		}
		mag := ForceMagnitude(a, d2, shipMass, gravityMul)
		net = net.Add(delta.Scale(mag / math.Sqrt(d2)))
	}
	return net
}

// ClampSpeed rescales v to maxSpeed when it is faster. It is a hard clamp,
// not drag: slower velocities are returned unchanged.
func ClampSpeed(v core.Vec2, maxSpeed float64) core.Vec2 {
	return v.ClampLen(maxSpeed)
}
