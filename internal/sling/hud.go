package sling

import (
	"fmt"
	"math"
)

// HUD is the set of derived values shown while playing.
type HUD struct {
	Seconds       int
	Speed         float64
	Fuel          float64
	Score         int
	Target        string
	ShieldSeconds int
	GravityMul    float64
	GravitySecs   int
	BurnReady     bool
	AimPower      float64 // launch power the current drag would use
	Paused        bool
	Phase         Phase
}

// HUD derives the heads-up values from the current state.
func (s *Session) HUD() HUD {
	fx := s.economy.Effects
	h := HUD{
		Seconds:       int(math.Floor(s.economy.ElapsedMs / 1000)),
		Speed:         s.ship.Vel.Len(),
		Fuel:          s.economy.Fuel,
		Score:         s.economy.Score,
		ShieldSeconds: int(math.Ceil(fx.ShieldLeftMs(s.nowMs) / 1000)),
		GravityMul:    1,
		BurnReady:     s.phase == InFlight && s.thruster.Ready() && s.economy.Fuel >= s.desc.Params.Burn.TapCost,
		Paused:        s.paused,
		Phase:         s.phase,
		Target:        s.desc.Target().Name,
	}
	if from, to, ok := s.Aim(); ok {
		p := s.desc.Params.Launch
		h.AimPower = math.Min(RawPower(p, from.Sub(to)), AffordablePower(p, s.economy.Fuel))
	}
	if left := fx.GravityLeftMs(s.nowMs); left > 0 {
		h.GravityMul = fx.GravityMul
		h.GravitySecs = int(math.Ceil(left / 1000))
	}
	return h
}

// String renders the status line.
func (h HUD) String() string {
	if h.Paused {
		return fmt.Sprintf("paused  t:%ds  fuel:%.1f  score:%d", h.Seconds, h.Fuel, h.Score)
	}
	line := fmt.Sprintf("t:%ds  v:%.2f  fuel:%.1f  score:%d  target:%s", h.Seconds, h.Speed, h.Fuel, h.Score, h.Target)
	if h.ShieldSeconds > 0 {
		line += fmt.Sprintf(" shield:%ds", h.ShieldSeconds)
	}
	if h.GravitySecs > 0 {
		line += fmt.Sprintf(" g:x%.1f %ds", h.GravityMul, h.GravitySecs)
	}
	return line
}
