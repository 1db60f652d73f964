package sling

import (
	"github.com/vovakirdan/gravity-sling/internal/core"
	"github.com/vovakirdan/gravity-sling/internal/level"
)

// CueKind is a one-way notification for presentation and audio layers.
type CueKind int

const (
	CueLaunch CueKind = iota
	CueBurn
	CueWin
	CueFail
	CueHit
	CuePickup
)

// String returns the cue name.
func (k CueKind) String() string {
	switch k {
	case CueLaunch:
		return "launch"
	case CueBurn:
		return "burn"
	case CueWin:
		return "win"
	case CueFail:
		return "fail"
	case CueHit:
		return "hit"
	case CuePickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// Cue is emitted by the session as things happen. Cues are observational:
// nothing a sink does can change the simulation.
type Cue struct {
	Kind        CueKind
	Tick        uint64
	LevelID     int
	Pos         core.Vec2
	Collectible level.CollectibleType // CuePickup only
	Reason      string                // CueFail only
}

// CueSink receives cues.
type CueSink interface {
	Cue(c Cue)
}

// CueFunc adapts a function to CueSink.
type CueFunc func(Cue)

// Cue calls f(c).
func (f CueFunc) Cue(c Cue) {
	f(c)
}

// MultiSink fans a cue out to every sink in order.
type MultiSink []CueSink

// Cue forwards c to each non-nil sink.
func (m MultiSink) Cue(c Cue) {
	for _, s := range m {
		if s != nil {
			s.Cue(c)
		}
	}
}

// CueRecorder keeps every cue it receives.
type CueRecorder struct {
	Cues []Cue
}

// Cue records c.
func (r *CueRecorder) Cue(c Cue) {
	r.Cues = append(r.Cues, c)
}

// Kinds returns the recorded cue kinds in order.
func (r *CueRecorder) Kinds() []CueKind {
	out := make([]CueKind, len(r.Cues))
	for i, c := range r.Cues {
		out[i] = c.Kind
	}
	return out
}

// Count returns how many cues of kind k were recorded.
func (r *CueRecorder) Count(k CueKind) int {
	n := 0
	for _, c := range r.Cues {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// Reset forgets recorded cues.
func (r *CueRecorder) Reset() {
	r.Cues = nil
}

type discardSink struct{}

func (discardSink) Cue(Cue) {}
