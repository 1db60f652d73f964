package level

import "math"

// Validate checks a descriptor for structural problems. It returns a
// *LoadError wrapping ErrMalformed describing the first problem found.
func Validate(d *Descriptor) error {
	src, id := d.FilePath, d.ID

	if len(d.Bodies) == 0 {
		return malformed(src, id, "no bodies")
	}
	if d.TargetIndex < 0 || d.TargetIndex >= len(d.Bodies) {
		return malformed(src, id, "targetIndex %d outside %d bodies", d.TargetIndex, len(d.Bodies))
	}
	if !finite(d.Start.X, d.Start.Y) {
		return malformed(src, id, "start point is not finite")
	}
	for i, b := range d.Bodies {
		if !finite(b.Pos.X, b.Pos.Y, b.R, b.Mass) {
			return malformed(src, id, "body %d (%s) has a non-finite value", i, b.Name)
		}
		if b.R <= 0 {
			return malformed(src, id, "body %d (%s) has radius %g", i, b.Name, b.R)
		}
		if b.Mass < 0 {
			return malformed(src, id, "body %d (%s) has negative mass", i, b.Name)
		}
	}

	p := d.Params
	if !finite(p.GlobalG, p.MaxSpeed, p.FrictionAir, p.Fuel, p.NearClampAdd, p.CaptureExtra, p.TimeScale,
		p.Launch.BaseCost, p.Launch.PerPower, p.Launch.Scale, p.Launch.Cap,
		p.Burn.TapCost, p.Burn.TapImpulse, p.Burn.CooldownMs) {
		return malformed(src, id, "params contain a non-finite value")
	}
	if p.MaxSpeed <= 0 {
		return malformed(src, id, "maxSpeed must be positive")
	}
	if p.TimeScale <= 0 {
		return malformed(src, id, "timeScale must be positive")
	}
	if p.Fuel < 0 {
		return malformed(src, id, "starting fuel is negative")
	}
	if p.FrictionAir < 0 || p.FrictionAir >= 1 {
		return malformed(src, id, "frictionAir %g outside [0, 1)", p.FrictionAir)
	}
	if p.NearClampAdd < 0 || p.CaptureExtra < 0 {
		return malformed(src, id, "nearClampAdd and captureExtra must not be negative")
	}
	if p.Launch.BaseCost < 0 || p.Launch.PerPower <= 0 || p.Launch.Scale <= 0 || p.Launch.Cap <= 0 {
		return malformed(src, id, "launch parameters out of range")
	}
	if p.Burn.TapCost < 0 || p.Burn.TapImpulse < 0 || p.Burn.CooldownMs < 0 {
		return malformed(src, id, "burn parameters out of range")
	}

	for i, c := range d.Collectibles {
		if !c.Type.Valid() {
			return malformed(src, id, "collectible %d has unknown type %q", i, c.Type)
		}
		if !finite(c.Pos.X, c.Pos.Y, c.Amount, c.Seconds, c.DurationMs, c.Mul) {
			return malformed(src, id, "collectible %d has a non-finite value", i)
		}
		if (c.Type == CollectShield || c.Type == CollectGravity) && c.DurationMs < 0 {
			return malformed(src, id, "collectible %d has negative duration", i)
		}
		if c.Type == CollectGravity && c.Mul < 0 {
			return malformed(src, id, "collectible %d has negative gravity multiplier", i)
		}
	}
	return nil
}

// finite reports whether every value is neither NaN nor infinite.
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
