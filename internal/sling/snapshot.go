package sling

import "math"

// Snapshot is a read-only view of the session for presentation and
// determinism checks. Floats are stored as their IEEE bits so two runs
// compare exactly.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Paused    bool
	PosX      uint64
	PosY      uint64
	VelX      uint64
	VelY      uint64
	Fuel      uint64
	Score     int
	ElapsedMs uint64
	NowMs     uint64

	ShieldUntil  uint64
	GravityMul   uint64
	GravityUntil uint64
	CooldownMs   uint64

	// Active flag per collectible, in descriptor order.
	Items []bool
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	items := make([]bool, len(s.items))
	for i, it := range s.items {
		items[i] = it.Active
	}
	fx := s.economy.Effects
	return Snapshot{
		Tick:         s.tick,
		Phase:        s.phase,
		Paused:       s.paused,
		PosX:         math.Float64bits(s.ship.Pos.X),
		PosY:         math.Float64bits(s.ship.Pos.Y),
		VelX:         math.Float64bits(s.ship.Vel.X),
		VelY:         math.Float64bits(s.ship.Vel.Y),
		Fuel:         math.Float64bits(s.economy.Fuel),
		Score:        s.economy.Score,
		ElapsedMs:    math.Float64bits(s.economy.ElapsedMs),
		NowMs:        math.Float64bits(s.nowMs),
		ShieldUntil:  math.Float64bits(fx.ShieldUntil),
		GravityMul:   math.Float64bits(fx.GravityMul),
		GravityUntil: math.Float64bits(fx.GravityUntil),
		CooldownMs:   math.Float64bits(s.thruster.CooldownMs()),
		Items:        items,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase) //#nosec G115 -- hash computation
	if snap.Paused {
		h = h*31 + 1
	} else {
		h = h * 31
	}
	h = h*31 + snap.PosX
	h = h*31 + snap.PosY
	h = h*31 + snap.VelX
	h = h*31 + snap.VelY
	h = h*31 + snap.Fuel
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + snap.ElapsedMs
	h = h*31 + snap.NowMs
	h = h*31 + snap.ShieldUntil
	h = h*31 + snap.GravityMul
	h = h*31 + snap.GravityUntil
	h = h*31 + snap.CooldownMs

	for _, active := range snap.Items {
		if active {
			h = h*31 + 1
		} else {
			h = h * 31
		}
	}

	return h
}
