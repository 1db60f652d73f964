package sling

import (
	"math"

	"github.com/vovakirdan/gravity-sling/internal/core"
	"github.com/vovakirdan/gravity-sling/internal/level"
)

// Launch is the outcome of an accepted launch.
type Launch struct {
	Velocity core.Vec2
	Power    float64 // power actually used
	Cost     float64 // fuel spent
	Fuel     float64 // fuel left afterwards
}

// RawPower is the launch power a drag vector asks for, before fuel gating.
func RawPower(p level.LaunchParams, drag core.Vec2) float64 {
	return core.ClampF(drag.Len()*p.Scale, 0, p.Cap)
}

// AffordablePower is the most power the given fuel pays for.
func AffordablePower(p level.LaunchParams, fuel float64) float64 {
	return math.Max(0, (fuel-p.BaseCost)/p.PerPower)
}

// LaunchPower gates a drag vector (press point minus release point) by
// fuel. It returns false when no power can be used; the caller discards
// the input and the ship stays on the pad.
func LaunchPower(p level.LaunchParams, fuel float64, drag core.Vec2) (Launch, bool) {
	used := math.Min(RawPower(p, drag), AffordablePower(p, fuel))
	if used <= 0 {
		return Launch{}, false
	}
	cost := p.BaseCost + used*p.PerPower
	return Launch{
		Velocity: drag.Normalize().Scale(used),
		Power:    used,
		Cost:     cost,
		Fuel:     math.Max(0, fuel-cost),
	}, true
}

// Thruster meters discrete burn taps with a cooldown.
type Thruster struct {
	params     level.BurnParams
	cooldownMs float64
}

// NewThruster creates a thruster that is ready to fire.
func NewThruster(p level.BurnParams) Thruster {
	return Thruster{params: p}
}

// Cool counts the cooldown down by deltaMs.
func (t *Thruster) Cool(deltaMs float64) {
	if t.cooldownMs > 0 {
		t.cooldownMs = math.Max(0, t.cooldownMs-deltaMs)
	}
}

// Ready reports whether the cooldown has elapsed.
func (t *Thruster) Ready() bool {
	return t.cooldownMs <= 0
}

// CooldownMs returns the remaining cooldown.
func (t *Thruster) CooldownMs() float64 {
	return t.cooldownMs
}

// Tap tries to fire one burn. On success it deducts the tap cost from fuel,
// restarts the cooldown and returns the force to apply. A refused tap
// changes nothing.
func (t *Thruster) Tap(fuel *float64, dir core.BurnDir) (core.Vec2, bool) {
	if !t.Ready() || *fuel <= 0 || *fuel < t.params.TapCost {
		return core.Vec2{}, false
	}
	unit, scale := dir.Vector()
	if scale == 0 {
		return core.Vec2{}, false
	}
	*fuel = math.Max(0, *fuel-t.params.TapCost)
	t.cooldownMs = t.params.CooldownMs
	return unit.Scale(t.params.TapImpulse * scale), true
}
