package level

import (
	"errors"
	"math"
	"testing"
)

func validDescriptor() Descriptor {
	return Descriptor{
		ID:     1,
		Name:   "test",
		Start:  Point{0.1, 0.5},
		Params: DefaultParams(),
		Bodies: []Body{
			{Name: "A", Pos: Point{0.4, 0.5}, R: 20, Mass: 1000},
			{Name: "Goal", Pos: Point{0.8, 0.5}, R: 18, Mass: 1100},
		},
		TargetIndex: 1,
		Collectibles: []Collectible{
			{Type: CollectShield, Pos: Point{0.6, 0.3}, DurationMs: 6000},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Descriptor)
		ok     bool
	}{
		{"valid", func(d *Descriptor) {}, true},
		{"no bodies", func(d *Descriptor) { d.Bodies = nil }, false},
		{"target too large", func(d *Descriptor) { d.TargetIndex = 2 }, false},
		{"target negative", func(d *Descriptor) { d.TargetIndex = -1 }, false},
		{"zero radius", func(d *Descriptor) { d.Bodies[0].R = 0 }, false},
		{"negative mass", func(d *Descriptor) { d.Bodies[0].Mass = -1 }, false},
		{"massless body allowed", func(d *Descriptor) { d.Bodies[0].Mass = 0 }, true},
		{"zero max speed", func(d *Descriptor) { d.Params.MaxSpeed = 0 }, false},
		{"negative fuel", func(d *Descriptor) { d.Params.Fuel = -1 }, false},
		{"zero fuel allowed", func(d *Descriptor) { d.Params.Fuel = 0 }, true},
		{"friction of one", func(d *Descriptor) { d.Params.FrictionAir = 1 }, false},
		{"zero per power", func(d *Descriptor) { d.Params.Launch.PerPower = 0 }, false},
		{"negative tap cost", func(d *Descriptor) { d.Params.Burn.TapCost = -0.1 }, false},
		{"unknown collectible", func(d *Descriptor) { d.Collectibles[0].Type = "warp" }, false},
		{"negative duration", func(d *Descriptor) { d.Collectibles[0].DurationMs = -5 }, false},
		{"NaN fuel", func(d *Descriptor) { d.Params.Fuel = math.NaN() }, false},
		{"infinite fuel", func(d *Descriptor) { d.Params.Fuel = math.Inf(1) }, false},
		{"NaN max speed", func(d *Descriptor) { d.Params.MaxSpeed = math.NaN() }, false},
		{"NaN global G", func(d *Descriptor) { d.Params.GlobalG = math.NaN() }, false},
		{"infinite launch cap", func(d *Descriptor) { d.Params.Launch.Cap = math.Inf(1) }, false},
		{"NaN tap impulse", func(d *Descriptor) { d.Params.Burn.TapImpulse = math.NaN() }, false},
		{"NaN start", func(d *Descriptor) { d.Start.X = math.NaN() }, false},
		{"infinite body position", func(d *Descriptor) { d.Bodies[0].Pos.Y = math.Inf(-1) }, false},
		{"NaN radius", func(d *Descriptor) { d.Bodies[1].R = math.NaN() }, false},
		{"infinite mass", func(d *Descriptor) { d.Bodies[0].Mass = math.Inf(1) }, false},
		{"NaN collectible position", func(d *Descriptor) { d.Collectibles[0].Pos.X = math.NaN() }, false},
		{"infinite shield duration", func(d *Descriptor) { d.Collectibles[0].DurationMs = math.Inf(1) }, false},
		{"NaN payload amount", func(d *Descriptor) { d.Collectibles[0].Amount = math.NaN() }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := validDescriptor()
			tc.mutate(&d)
			err := Validate(&d)
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("Validate() = nil, expected error")
				}
				if !errors.Is(err, ErrMalformed) {
					t.Errorf("Validate() error %v should wrap ErrMalformed", err)
				}
			}
		})
	}
}

func TestLoadErrorMessage(t *testing.T) {
	tests := []struct {
		err  *LoadError
		want string
	}{
		{&LoadError{Source: "a.yaml", LevelID: 3, Err: ErrMalformed}, "level 3 (a.yaml): malformed level data"},
		{&LoadError{Source: "dir", Err: ErrUnreachable}, "level source dir: level source unreachable"},
		{&LoadError{LevelID: 9, Err: ErrNotFound}, "level 9: level not found"},
		{&LoadError{Err: ErrNotFound}, "level: level not found"},
	}

	for _, tc := range tests {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, expected %q", got, tc.want)
		}
	}
}
