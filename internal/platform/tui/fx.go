package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gravity-sling/internal/core"
	"github.com/vovakirdan/gravity-sling/internal/sling"
)

// flashTicks is how long a cue flash stays on screen.
const flashTicks = 8

// cueFX turns cues into terminal effects: a colored border flash and the
// terminal bell. It is shared by pointer between copies of the model.
type cueFX struct {
	reduceMotion bool
	bellEnabled  bool

	flash      int
	flashColor core.Color
	bell       bool
	last       sling.CueKind
	count      int
}

func newCueFX(reduceMotion bool, volume float64) *cueFX {
	return &cueFX{reduceMotion: reduceMotion, bellEnabled: volume > 0}
}

// Cue implements sling.CueSink.
func (fx *cueFX) Cue(c sling.Cue) {
	fx.last = c.Kind
	fx.count++

	switch c.Kind {
	case sling.CueWin, sling.CueFail:
		if fx.bellEnabled {
			fx.bell = true
		}
	}

	if fx.reduceMotion {
		return
	}
	switch c.Kind {
	case sling.CueHit:
		fx.flash, fx.flashColor = flashTicks, core.ColorBrightCyan
	case sling.CuePickup:
		fx.flash, fx.flashColor = flashTicks/2, core.ColorBrightGreen
	case sling.CueFail:
		fx.flash, fx.flashColor = flashTicks, core.ColorBrightRed
	case sling.CueWin:
		fx.flash, fx.flashColor = flashTicks, core.ColorBrightYellow
	}
}

// advance counts down the flash by one tick.
func (fx *cueFX) advance() {
	if fx.flash > 0 {
		fx.flash--
	}
}

// clear drops any pending effect.
func (fx *cueFX) clear() {
	fx.flash = 0
	fx.bell = false
}

// takeBell returns a command ringing the bell on w if one is pending.
func (fx *cueFX) takeBell(w io.Writer) tea.Cmd {
	if !fx.bell || w == nil {
		return nil
	}
	fx.bell = false
	return func() tea.Msg {
		//nolint:errcheck // Best-effort bell
		io.WriteString(w, "\a")
		return nil
	}
}
