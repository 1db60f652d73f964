package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gravity-sling/internal/core"
)

// PlayKeyMap defines the key bindings used while playing.
type PlayKeyMap struct {
	BurnUp     key.Binding
	BurnDown   key.Binding
	BurnLeft   key.Binding
	BurnRight  key.Binding
	BurnSoft   key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Next       key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.BurnUp, k.BurnSoft, k.Pause, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.BurnUp, k.BurnDown, k.BurnLeft, k.BurnRight, k.BurnSoft},
		{k.Pause, k.Restart, k.Next},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultPlayKeyMap returns default key bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		BurnUp: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/↑", "burn up"),
		),
		BurnDown: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/↓", "burn down"),
		),
		BurnLeft: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "burn left"),
		),
		BurnRight: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "burn right"),
		),
		BurnSoft: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "soft burn"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next level"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a game action.
// Keys that only affect the front-end (help, screenshot) map to ActionNone.
func (k PlayKeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.BurnUp):
		return core.ActionBurnUp
	case key.Matches(msg, k.BurnDown):
		return core.ActionBurnDown
	case key.Matches(msg, k.BurnLeft):
		return core.ActionBurnLeft
	case key.Matches(msg, k.BurnRight):
		return core.ActionBurnRight
	case key.Matches(msg, k.BurnSoft):
		return core.ActionBurnSoft
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Next):
		return core.ActionNext
	}
	return core.ActionNone
}
