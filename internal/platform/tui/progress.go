package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gravity-sling/internal/level"
	"github.com/vovakirdan/gravity-sling/internal/storage"
)

// Progress screen layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the stats sidebar
	sidebarWidth       = 24 // Width of the stats sidebar
)

// ProgressKeyMap defines the key bindings for the progress screen.
type ProgressKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProgressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ProgressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Select, k.Quit}}
}

// DefaultProgressKeyMap returns default key bindings.
func DefaultProgressKeyMap() ProgressKeyMap {
	return ProgressKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play level"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ProgressModel is the Bubble Tea model for the progress screen: one table
// row per level with the player's best result.
type ProgressModel struct {
	title       string
	levels      []level.Summary
	best        map[int]storage.Best
	stats       *storage.Stats
	table       table.Model
	help        help.Model
	keys        ProgressKeyMap
	width       int
	height      int
	selected    int // level chosen with enter, 0 if none
	quitting    bool
	showSidebar bool
}

// NewProgressModel creates a progress screen for the given levels. Store
// may be nil, in which case every level shows as unplayed.
func NewProgressModel(title string, levels []level.Summary, store *storage.Store, player, pack string, width, height int) (ProgressModel, error) {
	m := ProgressModel{
		title:       title,
		levels:      levels,
		best:        map[int]storage.Best{},
		keys:        DefaultProgressKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if store != nil {
		best, err := store.AllBest(player, pack)
		if err != nil {
			return m, err
		}
		m.best = best
		stats, err := store.GetStats(player, pack)
		if err != nil {
			return m, err
		}
		m.stats = stats
	}

	m.table = m.createTable()
	m.updateTableRows()
	return m, nil
}

// createTable creates a new table sized to the window.
func (m *ProgressModel) createTable() table.Model {
	tableWidth := m.width - 6 // Borders and padding
	if m.showSidebar {
		tableWidth -= sidebarWidth + 4
	}

	nameWidth := max(12, tableWidth-4-8-7-7-7)
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: min(nameWidth, 28)},
		{Title: "Best", Width: 8},
		{Title: "Stars", Width: 7},
		{Title: "Time", Width: 7},
		{Title: "Fuel", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the level list and best records.
func (m *ProgressModel) updateTableRows() {
	rows := make([]table.Row, len(m.levels))
	for i, l := range m.levels {
		row := table.Row{fmt.Sprintf("%d", l.ID), l.Name, "-", "", "-", "-"}
		if b, ok := m.best[l.ID]; ok && b.Completed {
			row[2] = fmt.Sprintf("%d", b.Score)
			row[3] = starText(b.Stars)
			row[4] = fmt.Sprintf("%ds", b.TimeSec)
			row[5] = fmt.Sprintf("%.1f", b.Fuel)
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the progress model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the progress screen.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if c := m.table.Cursor(); c >= 0 && c < len(m.levels) {
				m.selected = m.levels[c].ID
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the progress screen.
func (m ProgressModel) View() string {
	if m.quitting || m.selected != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("PROGRESS - "+m.title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderSidebar renders the pack totals.
func (m ProgressModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Totals\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	if m.stats == nil {
		sb.WriteString("no progress store")
		return sidebarStyle.Render(sb.String())
	}

	fmt.Fprintf(&sb, "Cleared  %d/%d\n", m.stats.Completed, len(m.levels))
	fmt.Fprintf(&sb, "Stars    %d/%d\n", m.stats.TotalStars, 3*len(m.levels))
	fmt.Fprintf(&sb, "Score    %d\n", m.stats.TotalScore)
	fmt.Fprintf(&sb, "Wins     %d\n", m.stats.Runs)
	if !m.stats.LastPlayed.IsZero() {
		fmt.Fprintf(&sb, "Last     %s", m.stats.LastPlayed.Local().Format("Jan 02 15:04"))
	}
	return sidebarStyle.Render(sb.String())
}

// renderTableContent renders the table or empty message.
func (m ProgressModel) renderTableContent() string {
	if len(m.levels) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No levels in this pack.")
	}
	return m.table.View()
}

// Selected returns the level chosen with enter, or 0.
func (m ProgressModel) Selected() int {
	return m.selected
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}

// RunProgress runs the progress screen. It returns the level the player
// chose to play, or 0 if they quit.
func RunProgress(m ProgressModel) (int, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return 0, err
	}
	final, ok := finalModel.(ProgressModel)
	if !ok {
		return 0, nil
	}
	return final.Selected(), nil
}
