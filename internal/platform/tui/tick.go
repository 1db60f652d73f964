// Package tui provides the Bubble Tea front-end for gravity-sling.
// It runs the tick loop, maps keys and mouse drags to input events, and
// renders sessions into the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameMs caps the delta handed to the simulation after a stall.
const maxFrameMs = 50.0

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock turns tick timestamps into wall-clock deltas in milliseconds.
type frameClock struct {
	last    time.Time
	nominal float64
}

func newFrameClock(tickRate int) frameClock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return frameClock{nominal: 1000.0 / float64(tickRate)}
}

// delta returns the time since the previous tick. The first tick, and any
// tick whose clock went backwards, gets the nominal interval.
func (c *frameClock) delta(now time.Time) float64 {
	if c.last.IsZero() || now.Before(c.last) {
		c.last = now
		return c.nominal
	}
	d := float64(now.Sub(c.last)) / float64(time.Millisecond)
	c.last = now
	if d > maxFrameMs {
		return maxFrameMs
	}
	return d
}

// reset forgets the previous tick, so the next delta is nominal.
func (c *frameClock) reset() {
	c.last = time.Time{}
}
