package sling

import (
	"math"

	"github.com/vovakirdan/gravity-sling/internal/core"
	"github.com/vovakirdan/gravity-sling/internal/level"
)

// Effects holds the timed buffs. Times are on the session clock.
type Effects struct {
	ShieldUntil  float64
	GravityMul   float64
	GravityUntil float64
}

// NewEffects returns effects with no active buffs.
func NewEffects() Effects {
	return Effects{GravityMul: 1}
}

// Shielded reports whether the shield is up at now.
func (e *Effects) Shielded(now float64) bool {
	return now < e.ShieldUntil
}

// ShieldLeftMs returns the remaining shield time.
func (e *Effects) ShieldLeftMs(now float64) float64 {
	return math.Max(0, e.ShieldUntil-now)
}

// GravityLeftMs returns the remaining time of a non-default multiplier.
func (e *Effects) GravityLeftMs(now float64) float64 {
	if e.GravityMul == 1 {
		return 0
	}
	return math.Max(0, e.GravityUntil-now)
}

// ExtendShield raises the shield for durationMs from now. It never shortens
// a shield that already lasts longer.
func (e *Effects) ExtendShield(now, durationMs float64) {
	e.ShieldUntil = math.Max(now+durationMs, e.ShieldUntil)
}

// SetGravity replaces the gravity multiplier and its expiry.
func (e *Effects) SetGravity(now, mul, durationMs float64) {
	e.GravityMul = mul
	e.GravityUntil = now + durationMs
}

// Expire reverts the gravity multiplier once its time is up.
func (e *Effects) Expire(now float64) {
	if e.GravityMul != 1 && now >= e.GravityUntil {
		e.GravityMul = 1
	}
}

// Item is a collectible placed in level space.
type Item struct {
	Def    level.Collectible
	Pos    core.Vec2
	Active bool
}

// Take deactivates the item. It returns false if the item was already
// taken, in which case its effect must not be applied again.
func (it *Item) Take() bool {
	if !it.Active {
		return false
	}
	it.Active = false
	return true
}

// Economy is the mutable state a pickup may change.
type Economy struct {
	Fuel      float64
	Score     int
	ElapsedMs float64
	Effects   Effects
}

// Apply applies the collectible's effect at session time now.
func (e *Economy) Apply(c level.Collectible, now float64) {
	switch c.Type {
	case level.CollectFuel:
		e.Fuel += c.Amount
		if e.Fuel < 0 {
			e.Fuel = 0
		}
	case level.CollectScore:
		e.Score += int(math.Round(c.Amount))
	case level.CollectTime:
		e.ElapsedMs = math.Max(0, e.ElapsedMs+c.Seconds*1000)
	case level.CollectShield:
		e.Effects.ExtendShield(now, c.DurationMs)
	case level.CollectGravity:
		e.Effects.SetGravity(now, c.Mul, c.DurationMs)
	}
}

// placeItems resolves the descriptor's collectibles, all active.
func placeItems(d *level.Descriptor, vp level.Viewport) []Item {
	items := make([]Item, len(d.Collectibles))
	for i, c := range d.Collectibles {
		items[i] = Item{Def: c, Pos: c.Pos.Resolve(vp), Active: true}
	}
	return items
}
