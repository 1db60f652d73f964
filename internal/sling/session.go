package sling

import (
	"errors"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gravity-sling/internal/core"
	"github.com/vovakirdan/gravity-sling/internal/level"
)

// Ship and arena constants.
const (
	ShipRadius        = 6.0
	ShipMass          = 1.0
	PickupRadius      = 12.0
	BoundsMargin      = 200.0
	BounceOffset      = 6.0
	DefaultGrabRadius = 14.0

	// BaseStepMs is the reference step velocities are measured against.
	BaseStepMs = 1000.0 / 60.0
)

// Phase is the primary state of a session. Pausing is orthogonal.
type Phase int

const (
	PreFlight Phase = iota
	InFlight
	Won
	Lost
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PreFlight:
		return "preflight"
	case InFlight:
		return "inflight"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the session.
func (p Phase) Terminal() bool {
	return p == Won || p == Lost
}

// Options are the collaborators and host settings injected into a session.
type Options struct {
	// Viewport is the level-space canvas. Zero means level.DefaultViewport.
	Viewport level.Viewport

	// GrabRadius is how close to the ship a pointer-down must land to
	// start aiming. Zero means DefaultGrabRadius.
	GrabRadius float64

	// Cues receives presentation notifications. Nil discards them.
	Cues CueSink

	// Logger receives debug logs. Nil discards them.
	Logger *log.Logger
}

// Ship is the point mass the player flies.
type Ship struct {
	Pos core.Vec2
	Vel core.Vec2
}

// Outcome is the terminal payload of a session.
type Outcome struct {
	Phase  Phase
	Reason string  // Lost only
	Result *Result // Won only
}

// Session is one play-through of one level. It is single-threaded: Tick
// runs to completion and nothing else mutates the session.
type Session struct {
	desc  *level.Descriptor
	opts  Options
	log   *log.Logger
	cues  CueSink
	field *Field
	arena Arena

	ship     Ship
	economy  Economy
	thruster Thruster
	items    []Item

	phase   Phase
	paused  bool
	nowMs   float64
	tick    uint64
	outcome Outcome

	aiming  bool
	aimFrom core.Vec2
	pointer core.Vec2
}

// ErrNoDescriptor is returned when a session is created without a level.
var ErrNoDescriptor = errors.New("sling: no level descriptor")

// New creates a session for a validated descriptor. The descriptor is
// re-validated so a session never starts from malformed data.
func New(d *level.Descriptor, opts Options) (*Session, error) {
	if d == nil {
		return nil, ErrNoDescriptor
	}
	if err := level.Validate(d); err != nil {
		return nil, err
	}

	if opts.Viewport.W <= 0 || opts.Viewport.H <= 0 {
		opts.Viewport = level.DefaultViewport()
	}
	if opts.GrabRadius <= 0 {
		opts.GrabRadius = DefaultGrabRadius
	}

	s := &Session{
		desc: d,
		opts: opts,
		log:  opts.Logger,
		cues: opts.Cues,
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	if s.cues == nil {
		s.cues = discardSink{}
	}
	s.reset()
	return s, nil
}

// reset builds a fresh instance from the descriptor. Nothing from the
// previous run survives.
func (s *Session) reset() {
	vp := s.opts.Viewport
	s.field = NewField(s.desc, vp)
	s.arena = Arena{W: vp.W, H: vp.H, Margin: BoundsMargin}
	s.ship = Ship{Pos: s.desc.Start.Resolve(vp)}
	s.economy = Economy{Fuel: s.desc.Params.Fuel, Effects: NewEffects()}
	s.thruster = NewThruster(s.desc.Params.Burn)
	s.items = placeItems(s.desc, vp)
	s.phase = PreFlight
	s.paused = false
	s.nowMs = 0
	s.tick = 0
	s.outcome = Outcome{Phase: PreFlight}
	s.aiming = false
	s.aimFrom = core.Vec2{}
	s.pointer = core.Vec2{}
}

// Restart re-initializes the session from its descriptor.
func (s *Session) Restart() {
	s.log.Debug("restart", "level", s.desc.ID)
	s.reset()
}

// Tick advances the session by deltaMs and consumes this tick's input
// events in order. A restart event resets the session and drops the rest
// of the batch. Terminal sessions only react to restart.
func (s *Session) Tick(deltaMs float64, events []core.Event) Phase {
	var burns []core.BurnDir

	for _, e := range events {
		switch e.Kind {
		case core.EventRestart:
			s.Restart()
			return s.phase
		case core.EventPauseToggle:
			s.SetPaused(!s.paused)
		case core.EventPointerDown, core.EventPointerMove, core.EventPointerUp:
			if !s.paused && s.phase == PreFlight {
				s.handlePointer(e)
			}
		case core.EventBurn:
			if !s.paused && s.phase == InFlight {
				burns = append(burns, e.Dir)
			}
		}
	}

	if s.paused || s.phase.Terminal() || deltaMs <= 0 {
		return s.phase
	}

	s.tick++
	s.nowMs += deltaMs
	s.thruster.Cool(deltaMs)

	if s.phase == InFlight {
		s.step(deltaMs, burns)
	}
	return s.phase
}

// SetPaused sets the pause flag. Terminal sessions cannot be paused.
func (s *Session) SetPaused(paused bool) {
	if s.phase.Terminal() || s.paused == paused {
		return
	}
	s.paused = paused
	s.log.Debug("pause", "paused", paused, "level", s.desc.ID)
}

// SetGrabRadius changes how close a pointer-down must land to the ship.
// Front-ends with coarse pointers raise it; values below the default are
// ignored.
func (s *Session) SetGrabRadius(r float64) {
	s.opts.GrabRadius = math.Max(r, DefaultGrabRadius)
}

// handlePointer turns pointer events into aiming and the launch.
func (s *Session) handlePointer(e core.Event) {
	switch e.Kind {
	case core.EventPointerDown:
		if e.Pos.Dist2(s.ship.Pos) <= s.opts.GrabRadius*s.opts.GrabRadius {
			s.aiming = true
			s.aimFrom = e.Pos
			s.pointer = e.Pos
		}
	case core.EventPointerMove:
		if s.aiming {
			s.pointer = e.Pos
		}
	case core.EventPointerUp:
		if !s.aiming {
			return
		}
		s.aiming = false
		s.launch(s.aimFrom.Sub(e.Pos))
	}
}

// launch applies a drag vector. Rejected launches leave the ship waiting.
func (s *Session) launch(drag core.Vec2) {
	l, ok := LaunchPower(s.desc.Params.Launch, s.economy.Fuel, drag)
	if !ok {
		s.log.Debug("launch rejected", "fuel", s.economy.Fuel, "drag", drag.Len())
		return
	}
	s.ship.Vel = l.Velocity
	s.economy.Fuel = l.Fuel
	s.phase = InFlight
	s.log.Debug("launch", "power", l.Power, "cost", l.Cost, "fuel", l.Fuel)
	s.emit(Cue{Kind: CueLaunch})
}

// step runs one in-flight tick: gravity, burns, friction, speed clamp,
// position, elapsed time, collectibles, then collisions.
func (s *Session) step(deltaMs float64, burns []core.BurnDir) {
	p := s.desc.Params
	k := deltaMs / BaseStepMs
	accel := math.Pow(BaseStepMs*p.TimeScale, 2) / ShipMass

	s.economy.Effects.Expire(s.nowMs)

	force := s.field.Force(s.ship.Pos, ShipMass, s.economy.Effects.GravityMul)
	s.ship.Vel = s.ship.Vel.Add(force.Scale(accel * k))

	for _, dir := range burns {
		impulse, ok := s.thruster.Tap(&s.economy.Fuel, dir)
		if !ok {
			continue
		}
		s.ship.Vel = s.ship.Vel.Add(impulse.Scale(accel))
		s.log.Debug("burn", "dir", dir, "fuel", s.economy.Fuel)
		s.emit(Cue{Kind: CueBurn})
	}

	s.ship.Vel = s.ship.Vel.Scale(math.Max(0, 1-p.FrictionAir*k))
	s.ship.Vel = ClampSpeed(s.ship.Vel, p.MaxSpeed)
	s.ship.Pos = s.ship.Pos.Add(s.ship.Vel.Scale(k))

	s.economy.ElapsedMs += deltaMs

	s.collect()
	s.resolve()
}

// collect picks up every active item within reach.
func (s *Session) collect() {
	r2 := PickupRadius * PickupRadius
	for i := range s.items {
		it := &s.items[i]
		if !it.Active || it.Pos.Dist2(s.ship.Pos) > r2 {
			continue
		}
		if !it.Take() {
			continue
		}
		s.economy.Apply(it.Def, s.nowMs)
		s.log.Debug("pickup", "type", it.Def.Type, "fuel", s.economy.Fuel, "score", s.economy.Score)
		s.emit(Cue{Kind: CuePickup, Pos: it.Pos, Collectible: it.Def.Type})
	}
}

// resolve applies the collision verdict for this tick.
func (s *Session) resolve() {
	res := Resolve(
		Probe{Pos: s.ship.Pos, Vel: s.ship.Vel, Shielded: s.economy.Effects.Shielded(s.nowMs)},
		s.field.Bodies(),
		s.desc.TargetIndex,
		s.desc.Params.CaptureExtra,
		s.arena,
	)

	switch res.Verdict {
	case VerdictWin:
		s.win()
	case VerdictLose:
		s.lose(res.Reason)
	case VerdictBounce:
		s.ship.Pos = res.Pos
		s.log.Debug("shield bounce", "body", s.field.Bodies()[res.Body].Name)
		s.emit(Cue{Kind: CueHit})
	}
}

func (s *Session) win() {
	score := FinalScore(s.economy.Fuel, s.economy.Score, s.economy.ElapsedMs)
	result := &Result{
		LevelID:        s.desc.ID,
		Score:          score,
		Stars:          Stars(score),
		ElapsedSeconds: int(math.Floor(s.economy.ElapsedMs / 1000)),
		ElapsedMs:      s.economy.ElapsedMs,
		Fuel:           s.economy.Fuel,
	}
	s.phase = Won
	s.outcome = Outcome{Phase: Won, Result: result}
	s.log.Debug("won", "level", s.desc.ID, "score", score, "stars", result.Stars)
	s.emit(Cue{Kind: CueWin})
}

func (s *Session) lose(reason string) {
	s.phase = Lost
	s.outcome = Outcome{Phase: Lost, Reason: reason}
	s.log.Debug("lost", "level", s.desc.ID, "reason", reason)
	s.emit(Cue{Kind: CueFail, Reason: reason})
}

// emit stamps and forwards a cue.
func (s *Session) emit(c Cue) {
	c.Tick = s.tick
	c.LevelID = s.desc.ID
	if c.Pos.IsZero() {
		c.Pos = s.ship.Pos
	}
	s.cues.Cue(c)
}

// Descriptor returns the level being played.
func (s *Session) Descriptor() *level.Descriptor {
	return s.desc
}

// Phase returns the primary state.
func (s *Session) Phase() Phase {
	return s.phase
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// Launched reports whether the ship has been launched.
func (s *Session) Launched() bool {
	return s.phase != PreFlight
}

// Outcome returns the terminal payload, or a zero-payload outcome while
// the session is still running.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Ship returns the ship's position and velocity.
func (s *Session) Ship() Ship {
	return s.ship
}

// Fuel returns the remaining fuel.
func (s *Session) Fuel() float64 {
	return s.economy.Fuel
}

// Bodies returns the resolved bodies in static order.
func (s *Session) Bodies() []Attractor {
	return s.field.Bodies()
}

// Items returns the collectibles, including taken ones.
func (s *Session) Items() []Item {
	return s.items
}

// Viewport returns the level-space canvas.
func (s *Session) Viewport() level.Viewport {
	return s.opts.Viewport
}

// Aim returns the drag in progress, if any, as the press point and the
// current pointer position.
func (s *Session) Aim() (from, to core.Vec2, ok bool) {
	return s.aimFrom, s.pointer, s.aiming
}
