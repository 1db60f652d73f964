package core

// Action represents a semantic action, abstracted from physical key presses.
// The front-end maps keys to actions and actions to input events.
type Action int

const (
	ActionNone      Action = iota
	ActionBurnUp           // W, Up arrow
	ActionBurnDown         // S, Down arrow
	ActionBurnLeft         // A, Left arrow
	ActionBurnRight        // D, Right arrow
	ActionBurnSoft         // Space - reduced upward burn
	ActionPause            // P, Escape
	ActionRestart          // R
	ActionNext             // N - next level after a win
	ActionQuit             // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionBurnUp:
		return "BurnUp"
	case ActionBurnDown:
		return "BurnDown"
	case ActionBurnLeft:
		return "BurnLeft"
	case ActionBurnRight:
		return "BurnRight"
	case ActionBurnSoft:
		return "BurnSoft"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionNext:
		return "Next"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// BurnDir is the direction of a discrete burn tap.
type BurnDir int

const (
	BurnUp BurnDir = iota
	BurnDown
	BurnLeft
	BurnRight
	BurnSoft // upward at reduced scale
)

// String returns the direction name.
func (d BurnDir) String() string {
	switch d {
	case BurnUp:
		return "up"
	case BurnDown:
		return "down"
	case BurnLeft:
		return "left"
	case BurnRight:
		return "right"
	case BurnSoft:
		return "soft"
	default:
		return "unknown"
	}
}

// Vector returns the unit direction and the impulse scale of the burn.
// Up is negative y.
func (d BurnDir) Vector() (Vec2, float64) {
	switch d {
	case BurnUp:
		return V(0, -1), 1.0
	case BurnDown:
		return V(0, 1), 1.0
	case BurnLeft:
		return V(-1, 0), 1.0
	case BurnRight:
		return V(1, 0), 1.0
	case BurnSoft:
		return V(0, -1), 0.7
	default:
		return Vec2{}, 0
	}
}

// BurnForAction maps a burn action to its direction.
func BurnForAction(a Action) (BurnDir, bool) {
	switch a {
	case ActionBurnUp:
		return BurnUp, true
	case ActionBurnDown:
		return BurnDown, true
	case ActionBurnLeft:
		return BurnLeft, true
	case ActionBurnRight:
		return BurnRight, true
	case ActionBurnSoft:
		return BurnSoft, true
	}
	return 0, false
}

// EventKind identifies an input event.
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventBurn
	EventPauseToggle
	EventRestart
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventPointerDown:
		return "pointer-down"
	case EventPointerMove:
		return "pointer-move"
	case EventPointerUp:
		return "pointer-up"
	case EventBurn:
		return "burn"
	case EventPauseToggle:
		return "pause"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event is a single edge-triggered input. Pointer positions are in level space.
type Event struct {
	Kind EventKind
	Pos  Vec2
	Dir  BurnDir
}

// PointerDown creates a pointer-down event at p.
func PointerDown(p Vec2) Event { return Event{Kind: EventPointerDown, Pos: p} }

// PointerMove creates a pointer-move event at p.
func PointerMove(p Vec2) Event { return Event{Kind: EventPointerMove, Pos: p} }

// PointerUp creates a pointer-up event at p.
func PointerUp(p Vec2) Event { return Event{Kind: EventPointerUp, Pos: p} }

// Burn creates a burn tap event.
func Burn(d BurnDir) Event { return Event{Kind: EventBurn, Dir: d} }

// PauseToggle creates a pause toggle event.
func PauseToggle() Event { return Event{Kind: EventPauseToggle} }

// Restart creates a restart event.
func Restart() Event { return Event{Kind: EventRestart} }

// InputQueue buffers events between ticks. The front-end pushes as input
// arrives and the tick loop drains the queue exactly once per tick.
type InputQueue struct {
	events []Event
}

// Push appends an event.
func (q *InputQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of pending events.
func (q *InputQueue) Len() int {
	return len(q.events)
}

// Drain returns pending events in arrival order and empties the queue.
func (q *InputQueue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}
