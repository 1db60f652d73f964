// Package level describes gravity-sling levels: bodies, start point, target,
// tunable parameters and collectibles. Descriptors are static data, loaded
// once per level and never mutated by the simulation.
package level

import (
	"math"

	"github.com/vovakirdan/gravity-sling/internal/core"
)

// Viewport is the level-space canvas that fractional positions refer to.
type Viewport struct {
	W, H float64
}

// DefaultViewport matches the canvas the bundled levels were authored for.
func DefaultViewport() Viewport {
	return Viewport{W: 960, H: 600}
}

// Point is a position as written in a level file. Coordinates <= 1 are
// fractions of the viewport, larger values are absolute level units.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Resolve maps p into level space, flooring to whole units.
func (p Point) Resolve(vp Viewport) core.Vec2 {
	return core.V(resolveAxis(p.X, vp.W), resolveAxis(p.Y, vp.H))
}

func resolveAxis(v, size float64) float64 {
	if v <= 1 {
		return math.Floor(v * size)
	}
	return math.Floor(v)
}

// DefaultStart is the start point for any axis a level omits.
func DefaultStart() Point {
	return Point{X: 0.1, Y: 0.2}
}

// Body is a gravitating circular obstacle (planet or star).
type Body struct {
	Name  string
	Pos   Point
	R     float64
	Mass  float64
	Star  bool
	Color core.Color
}

// GM returns the body's gravitational parameter for the given constant.
func (b Body) GM(globalG float64) float64 {
	return globalG * b.Mass
}

// MinDist2 returns the near-field clamp floor on squared distance.
func (b Body) MinDist2(nearClampAdd float64) float64 {
	d := b.R + nearClampAdd
	return d * d
}

// CollectibleType identifies the effect of a pickup.
type CollectibleType string

const (
	CollectFuel    CollectibleType = "fuel"
	CollectScore   CollectibleType = "score"
	CollectShield  CollectibleType = "shield"
	CollectTime    CollectibleType = "time"
	CollectGravity CollectibleType = "gravity"
)

// Valid reports whether t is a known collectible type.
func (t CollectibleType) Valid() bool {
	switch t {
	case CollectFuel, CollectScore, CollectShield, CollectTime, CollectGravity:
		return true
	}
	return false
}

// Collectible is a one-shot pickup with a type-specific payload.
// Unused payload fields are zero.
type Collectible struct {
	Type       CollectibleType
	Pos        Point
	Amount     float64 // fuel, score
	Seconds    float64 // time; negative reduces elapsed time
	DurationMs float64 // shield, gravity
	Mul        float64 // gravity
}

// LaunchParams gate and scale the one-time launch.
type LaunchParams struct {
	BaseCost float64
	PerPower float64
	Scale    float64
	Cap      float64
}

// BurnParams gate and scale discrete burn taps.
type BurnParams struct {
	TapCost    float64
	TapImpulse float64
	CooldownMs float64
}

// Params are the tunables of a level.
type Params struct {
	GlobalG      float64
	MaxSpeed     float64
	FrictionAir  float64
	Fuel         float64
	NearClampAdd float64
	CaptureExtra float64
	TimeScale    float64
	Launch       LaunchParams
	Burn         BurnParams
}

// DefaultParams returns the parameters used for any key a level omits.
func DefaultParams() Params {
	return Params{
		GlobalG:      0.02,
		MaxSpeed:     20,
		FrictionAir:  0.002,
		Fuel:         12,
		NearClampAdd: 16,
		CaptureExtra: 12,
		TimeScale:    0.8,
		Launch: LaunchParams{
			BaseCost: 6,
			PerPower: 0.5,
			Scale:    0.012,
			Cap:      8,
		},
		Burn: BurnParams{
			TapCost:    0.6,
			TapImpulse: 0.006,
			CooldownMs: 150,
		},
	}
}

// Default collectible payloads.
const (
	DefaultFuelAmount       = 3
	DefaultScoreAmount      = 100
	DefaultTimeSeconds      = -3
	DefaultShieldDurationMs = 6000
	DefaultGravityMul       = 0.8
	DefaultGravityDuration  = 5000
)

// Descriptor is a complete, validated level.
type Descriptor struct {
	ID           int
	Name         string
	Start        Point
	TargetIndex  int
	Params       Params
	Bodies       []Body
	Collectibles []Collectible
	FilePath     string
}

// Target returns the designated target body.
func (d *Descriptor) Target() Body {
	return d.Bodies[d.TargetIndex]
}

// Summary is the listing view of a level.
type Summary struct {
	ID           int
	Name         string
	Bodies       int
	Collectibles int
	Stars        int // number of star bodies
}

// Summarize returns the listing view of d.
func (d *Descriptor) Summarize() Summary {
	s := Summary{
		ID:           d.ID,
		Name:         d.Name,
		Bodies:       len(d.Bodies),
		Collectibles: len(d.Collectibles),
	}
	for _, b := range d.Bodies {
		if b.Star {
			s.Stars++
		}
	}
	return s
}
