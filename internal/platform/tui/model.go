package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gravity-sling/internal/config"
	"github.com/vovakirdan/gravity-sling/internal/core"
	"github.com/vovakirdan/gravity-sling/internal/level"
	"github.com/vovakirdan/gravity-sling/internal/sling"
	"github.com/vovakirdan/gravity-sling/internal/storage"
)

// Minimum terminal size the play screen is drawn at.
const (
	minScreenW = 40
	minScreenH = 12
)

// Options configures a play model.
type Options struct {
	// Open loads the campaign. It is called again when the player retries
	// after a load failure.
	Open func() (*level.Campaign, error)

	// Pack and Player key the progress records.
	Pack   string
	Player string

	// StartID is the level to start at. Zero picks the first level the
	// player has not finished with three stars.
	StartID int

	Store    *storage.Store // may be nil
	Settings config.Settings
	Screen   core.RuntimeConfig

	// Cues receives every session cue in addition to the screen effects.
	Cues sling.CueSink

	Logger *log.Logger

	// Output is where the terminal bell is written.
	Output io.Writer
}

// Model is the Bubble Tea model for playing a campaign.
type Model struct {
	opts     Options
	campaign *level.Campaign
	session  *sling.Session
	loadErr  error

	screen *core.Screen
	proj   Projection
	config core.RuntimeConfig
	keys   PlayKeyMap
	help   help.Model
	queue  core.InputQueue
	clock  frameClock
	fx     *cueFX
	log    *log.Logger

	trail    []core.Vec2
	trailMax int
	dragging bool

	best     *storage.Best // record for the current level before this run
	saved    bool          // whether the current win has been recorded
	newBest  bool
	quitting bool
}

// NewModel creates a play model and loads the campaign.
func NewModel(opts Options) Model {
	if opts.Player == "" {
		opts.Player = storage.LocalPlayer
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Screen.TickRate <= 0 {
		opts.Screen.TickRate = opts.Settings.TickRate
	}
	cfg := opts.Screen
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	m := Model{
		opts:     opts,
		config:   cfg,
		keys:     DefaultPlayKeyMap(),
		help:     h,
		clock:    newFrameClock(cfg.TickRate),
		fx:       newCueFX(opts.Settings.ReduceMotion, opts.Settings.Volume),
		log:      opts.Logger,
		trailMax: opts.Settings.TrailLength(),
	}
	m.screen = core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1))
	m.updateProjection()
	m.load()
	return m
}

// load opens the campaign and starts the first session. Failures are kept
// in loadErr and shown until the player retries or quits.
func (m *Model) load() {
	m.loadErr = nil
	m.session = nil

	if m.opts.Open == nil {
		m.loadErr = &level.LoadError{Err: level.ErrUnreachable}
		return
	}
	campaign, err := m.opts.Open()
	if err != nil {
		m.log.Error("cannot load levels", "pack", m.opts.Pack, "error", err)
		m.loadErr = err
		return
	}
	m.campaign = campaign

	if err := m.pickStart(); err != nil {
		m.log.Error("cannot select level", "id", m.opts.StartID, "error", err)
		m.loadErr = err
		return
	}
	m.startSession()
}

// pickStart positions the campaign at the requested level, or at the first
// level without three stars.
func (m *Model) pickStart() error {
	if m.opts.StartID > 0 {
		return m.campaign.SetCurrentByID(m.opts.StartID)
	}
	if m.opts.Store == nil {
		return nil
	}
	best, err := m.opts.Store.AllBest(m.opts.Player, m.opts.Pack)
	if err != nil {
		m.log.Warn("cannot read progress", "error", err)
		return nil
	}
	for _, s := range m.campaign.List() {
		if best[s.ID].Stars < 3 {
			return m.campaign.SetCurrentByID(s.ID)
		}
	}
	return nil
}

// startSession creates a fresh session for the campaign's current level.
func (m *Model) startSession() {
	d := m.campaign.Current()
	vp := level.Viewport{W: m.opts.Settings.Viewport.Width, H: m.opts.Settings.Viewport.Height}

	s, err := sling.New(d, sling.Options{
		Viewport: vp,
		Cues:     sling.MultiSink{m.fx, m.opts.Cues},
		Logger:   m.log,
	})
	if err != nil {
		m.log.Error("cannot start level", "level", d.ID, "error", err)
		m.loadErr = err
		m.session = nil
		return
	}
	m.session = s
	m.updateProjection()
	m.resetRun()

	m.best = nil
	if m.opts.Store != nil {
		best, err := m.opts.Store.Best(m.opts.Player, m.opts.Pack, d.ID)
		if err != nil {
			m.log.Warn("cannot read best", "level", d.ID, "error", err)
		}
		m.best = best
	}
	m.log.Info("level started", "level", d.ID, "name", d.Name, "player", m.opts.Player)
}

// resetRun clears per-run presentation state.
func (m *Model) resetRun() {
	m.trail = m.trail[:0]
	m.dragging = false
	m.saved = false
	m.newBest = false
	m.fx.clear()
	m.clock.reset()
}

// updateProjection fits the viewport into the play area: the screen minus
// the HUD row.
func (m *Model) updateProjection() {
	vp := level.Viewport{W: m.opts.Settings.Viewport.Width, H: m.opts.Settings.Viewport.Height}
	if m.session != nil {
		vp = m.session.Viewport()
	}
	if vp.W <= 0 || vp.H <= 0 {
		vp = level.DefaultViewport()
	}
	m.proj = Projection{
		VP:   vp,
		Area: core.NewRect(0, 1, m.screen.Width(), max(0, m.screen.Height()-1)),
	}
	if m.session != nil {
		m.session.SetGrabRadius(m.proj.GrabRadius())
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Only restart (retry loading) is meaningful without a session
	if m.session == nil {
		if action == core.ActionRestart {
			m.load()
		}
		return m, nil
	}

	if dir, ok := core.BurnForAction(action); ok {
		m.queue.Push(core.Burn(dir))
		return m, nil
	}

	switch action {
	case core.ActionPause:
		m.queue.Push(core.PauseToggle())
	case core.ActionRestart:
		m.queue.Push(core.Restart())
	case core.ActionNext:
		if m.session.Phase() == sling.Won && m.campaign.Next() {
			m.startSession()
		}
	}

	return m, nil
}

// handleMouse turns left-button drags inside the play area into pointer
// events in level space.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	pos := m.proj.ToLevel(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.proj.Area.Contains(msg.X, msg.Y) {
			return m, nil
		}
		m.dragging = true
		m.queue.Push(core.PointerDown(pos))
	case tea.MouseActionMotion:
		if m.dragging {
			m.queue.Push(core.PointerMove(pos))
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.queue.Push(core.PointerUp(pos))
		}
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-1))
	m.help.Width = msg.Width
	m.updateProjection()
	return m, nil
}

// handleTick drains queued input into the session and advances it by the
// wall-clock time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	next := tickCmd(m.config.TickRate)
	if m.session == nil {
		m.queue.Drain()
		return m, next
	}

	delta := m.clock.delta(now)
	events := m.queue.Drain()
	phase := m.session.Tick(delta, events)

	for _, e := range events {
		if e.Kind == core.EventRestart {
			m.resetRun()
			break
		}
	}

	if phase == sling.InFlight && !m.session.Paused() {
		m.pushTrail(m.session.Ship().Pos)
	}
	if phase == sling.Won && !m.saved {
		m.recordWin()
	}
	m.fx.advance()

	return m, tea.Batch(next, m.fx.takeBell(m.opts.Output))
}

// pushTrail appends a ship position, dropping the oldest past the limit.
func (m *Model) pushTrail(p core.Vec2) {
	if m.trailMax <= 0 {
		return
	}
	if len(m.trail) >= m.trailMax {
		copy(m.trail, m.trail[1:])
		m.trail = m.trail[:len(m.trail)-1]
	}
	m.trail = append(m.trail, p)
}

// recordWin saves the won run once. Storage failures are logged and never
// interrupt play.
func (m *Model) recordWin() {
	m.saved = true
	res := m.session.Outcome().Result
	if res == nil {
		return
	}
	m.log.Info("level won", "level", res.LevelID, "score", res.Score, "stars", res.Stars)

	m.newBest = m.best == nil || res.Score > m.best.Score
	if m.opts.Store == nil {
		return
	}
	best, err := m.opts.Store.RecordWin(m.opts.Player, m.opts.Pack, *res)
	if err != nil {
		m.log.Error("cannot save progress", "level", res.LevelID, "error", err)
		return
	}
	m.best = &best
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := config.ExpandPath(filepath.Join("~", ".sling", "screenshots"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("cannot create screenshot directory", "error", err)
		return
	}

	name := "error"
	if m.session != nil {
		name = fmt.Sprintf("level%02d", m.session.Descriptor().ID)
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", name, timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("cannot save screenshot", "error", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Session returns the running session, or nil while a load error is shown.
func (m Model) Session() *sling.Session {
	return m.session
}

// LoadErr returns the error that stopped the campaign from loading.
func (m Model) LoadErr() error {
	return m.loadErr
}

// Run starts the Bubble Tea program with a play model.
func Run(opts Options) error {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
