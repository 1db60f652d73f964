package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gravity-sling/internal/core"
	"github.com/vovakirdan/gravity-sling/internal/level"
	"github.com/vovakirdan/gravity-sling/internal/sling"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// itemGlyphs are the on-screen symbols and colors of collectibles.
var itemGlyphs = map[level.CollectibleType]struct {
	r rune
	c core.Color
}{
	level.CollectFuel:    {'F', core.ColorBrightGreen},
	level.CollectScore:   {'$', core.ColorBrightYellow},
	level.CollectShield:  {'S', core.ColorBrightCyan},
	level.CollectTime:    {'T', core.ColorBrightMagenta},
	level.CollectGravity: {'G', core.ColorBrightBlue},
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// draw renders the model into its screen buffer.
func (m *Model) draw() {
	scr := m.screen
	scr.Clear()

	switch {
	case scr.Width() < minScreenW || scr.Height() < minScreenH-1:
		drawTooSmall(scr)
		return
	case m.session == nil:
		drawLoadError(scr, m.loadErr)
		return
	}

	s := m.session
	hud := s.HUD()

	m.drawBodies(s)
	m.drawItems(s)
	m.drawTrail()
	m.drawAim(s, hud)
	m.drawShip(s, hud)
	if m.fx.flash > 0 {
		drawFrame(scr, m.proj.Area, m.fx.flashColor)
	}
	m.drawHUD(s, hud)

	switch {
	case s.Phase() == sling.Won:
		m.drawWon(s)
	case s.Phase() == sling.Lost:
		drawOverlay(scr, core.ColorBrightRed, "MISSION FAILED", s.Outcome().Reason, "", "r retry  q quit")
	case s.Paused():
		drawOverlay(scr, core.ColorBrightWhite, "PAUSED", "", "p resume  r restart")
	case s.Phase() == sling.PreFlight:
		if _, _, aiming := s.Aim(); !aiming {
			scr.DrawTextCentered(m.proj.Area.Bottom()-1, "drag from the ship and release to launch", core.ColorGray)
		}
	}
}

// plot sets a cell only when it falls inside the play area.
func (m *Model) plot(p core.Vec2, r rune, c core.Color) {
	x, y := m.proj.ToCell(p)
	if m.proj.Area.Contains(x, y) {
		m.screen.SetColor(x, y, r, c)
	}
}

// drawBodies fills every cell whose center lies inside a body. The target
// also gets its capture ring. Bodies smaller than a cell still show their
// center cell.
func (m *Model) drawBodies(s *sling.Session) {
	d := s.Descriptor()
	captureExtra := d.Params.CaptureExtra
	cw, ch := m.proj.CellSize()

	for i, b := range s.Bodies() {
		glyph, color := '█', b.Color
		if b.Star {
			glyph = '*'
			if color == core.ColorDefault {
				color = core.ColorBrightYellow
			}
		}

		outer := b.R
		if i == d.TargetIndex {
			outer = b.R + captureExtra
		}
		x0, y0 := m.proj.ToCell(core.V(b.Pos.X-outer, b.Pos.Y-outer))
		x1, y1 := m.proj.ToCell(core.V(b.Pos.X+outer, b.Pos.Y+outer))

		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if !m.proj.Area.Contains(x, y) {
					continue
				}
				d2 := m.proj.ToLevel(x, y).Dist2(b.Pos)
				switch {
				case d2 <= b.R*b.R:
					m.screen.SetColor(x, y, glyph, color)
				case i == d.TargetIndex && d2 <= outer*outer && onRing(d2, outer, cw, ch):
					m.screen.SetColor(x, y, '·', core.ColorBrightGreen)
				}
			}
		}
		m.plot(b.Pos, glyph, color)
	}
}

// onRing reports whether squared distance d2 lies within one cell of the
// circle of radius r.
func onRing(d2, r, cw, ch float64) bool {
	return math.Sqrt(d2) >= r-math.Max(cw, ch)
}

func (m *Model) drawItems(s *sling.Session) {
	for _, it := range s.Items() {
		if !it.Active {
			continue
		}
		g, ok := itemGlyphs[it.Def.Type]
		if !ok {
			continue
		}
		m.plot(it.Pos, g.r, g.c)
	}
}

func (m *Model) drawTrail() {
	for _, p := range m.trail {
		m.plot(p, '·', core.ColorGray)
	}
}

// drawAim shows the launch direction while dragging: a dotted line from the
// ship, its length scaled by the power the launch would use.
func (m *Model) drawAim(s *sling.Session, hud sling.HUD) {
	from, to, ok := s.Aim()
	if !ok {
		return
	}
	m.plot(to, '+', core.ColorWhite)

	drag := from.Sub(to)
	if drag.IsZero() {
		return
	}
	color := core.ColorBrightGreen
	if hud.AimPower <= 0 {
		color = core.ColorRed
	}

	ship := s.Ship().Pos
	dir := drag.Normalize()
	length := math.Max(drag.Len(), 1)
	cw, ch := m.proj.CellSize()
	step := math.Max(math.Min(cw, ch), 1)
	for d := step; d <= length; d += step {
		m.plot(ship.Add(dir.Scale(d)), '∙', color)
	}
}

func (m *Model) drawShip(s *sling.Session, hud sling.HUD) {
	color := core.ColorBrightWhite
	if hud.ShieldSeconds > 0 {
		color = core.ColorBrightCyan
	}
	if s.Phase() == sling.Lost {
		color = core.ColorBrightRed
	}
	m.plot(s.Ship().Pos, '◆', color)
}

// drawHUD writes the level name and status line on the top row.
func (m *Model) drawHUD(s *sling.Session, hud sling.HUD) {
	d := s.Descriptor()
	title := fmt.Sprintf("#%d %s", d.ID, d.Name)
	m.screen.DrawTextColor(0, 0, title, core.ColorBrightWhite)

	color := core.ColorWhite
	if hud.Fuel < d.Params.Burn.TapCost {
		color = core.ColorOrange
	}
	m.screen.DrawTextColor(len([]rune(title))+2, 0, hud.String(), color)
}

func (m *Model) drawWon(s *sling.Session) {
	res := s.Outcome().Result
	if res == nil {
		return
	}
	lines := []string{
		"LEVEL COMPLETE",
		fmt.Sprintf("score %d  %s", res.Score, starText(res.Stars)),
		fmt.Sprintf("time %ds  fuel %.1f", res.ElapsedSeconds, res.Fuel),
	}
	switch {
	case m.newBest:
		lines = append(lines, "new best!")
	case m.best != nil:
		lines = append(lines, fmt.Sprintf("best %d", m.best.Score))
	}

	hint := "r retry  q quit"
	if m.campaign.HasNext() {
		hint = "n next  r retry  q quit"
	} else {
		lines = append(lines, "campaign complete")
	}
	lines = append(lines, "", hint)
	drawOverlay(m.screen, core.ColorBrightYellow, lines...)
}

// starText renders a 1-3 star rating.
func starText(n int) string {
	n = core.Clamp(n, 0, 3)
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

// drawOverlay draws a centered box with one line of text per row. The
// first line is the title.
func drawOverlay(scr *core.Screen, c core.Color, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := scr.Bounds().Centered(w+6, len(lines)+2)
	scr.DrawBox(box, c)
	for i, l := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = c
		}
		x := box.X + (box.W-len([]rune(l)))/2
		scr.DrawTextColor(x, box.Y+1+i, l, color)
	}
}

// drawFrame outlines r without clearing it.
func drawFrame(scr *core.Screen, r core.Rect, c core.Color) {
	for x := r.X; x < r.Right(); x++ {
		scr.SetColor(x, r.Y, '─', c)
		scr.SetColor(x, r.Bottom()-1, '─', c)
	}
	for y := r.Y; y < r.Bottom(); y++ {
		scr.SetColor(r.X, y, '│', c)
		scr.SetColor(r.Right()-1, y, '│', c)
	}
}

func drawLoadError(scr *core.Screen, err error) {
	msg := "no levels"
	if err != nil {
		msg = err.Error()
	}
	if limit := scr.Width() - 8; limit > 3 && len([]rune(msg)) > limit {
		msg = string([]rune(msg)[:limit-3]) + "..."
	}
	drawOverlay(scr, core.ColorBrightRed, "CANNOT LOAD LEVELS", msg, "", "r retry  q quit")
}

func drawTooSmall(scr *core.Screen) {
	y := scr.Height() / 2
	scr.DrawTextCentered(y, "terminal too small", core.ColorBrightRed)
	scr.DrawTextCentered(y+1, fmt.Sprintf("need %dx%d", minScreenW, minScreenH), core.ColorGray)
}
