package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dinojump/internal/core"
	"github.com/vovakirdan/dinojump/internal/storage"
)

// Scoreboard layout constants
const (
	tableMinWidth = 50  // Below this the date column is dropped
	maxRuns       = 100 // Max runs to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Top  key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/tab", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the run history screen.
type ScoreboardModel struct {
	store     *storage.Store
	runs      []storage.RunRecord
	stats     *storage.RunStats
	best      int
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a new scoreboard model and loads the history.
func NewScoreboardModel(store *storage.Store, bestKey string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load(bestKey)
	return m
}

// createTable creates a new table with columns fitted to the width.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Ticks", Width: 8},
		{Title: "Mode", Width: 6},
	}

	tableWidth := m.width - 4 // Margins
	if tableWidth >= tableMinWidth {
		dateWidth := core.Min(tableWidth-36, 20)
		columns = append(columns, table.Column{Title: "Date", Width: dateWidth})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-9, 3)), // Leave room for header, stats and help
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

// load reads the top runs, statistics and the best score.
func (m *ScoreboardModel) load(bestKey string) {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		if m.runs, m.loadErr = m.store.TopRuns(maxRuns); m.loadErr == nil {
			m.stats, m.loadErr = m.store.Stats()
		}
		if m.loadErr == nil {
			m.best, m.loadErr = m.store.LoadBest(bestKey)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *ScoreboardModel) updateTableRows() {
	withDate := len(m.table.Columns()) > 4
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		mode := "manual"
		if r.Autopilot {
			mode = "auto"
		}
		row := table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Ticks),
			mode,
		}
		if withDate {
			row = append(row, r.CreatedAt.Format("Jan 02 15:04"))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("DINO JUMP - HIGH SCORES", m.width)))
	b.WriteString("\n\n")

	statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(statsStyle.Render(centerText(m.statsLine(), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the history in one line.
func (m ScoreboardModel) statsLine() string {
	switch {
	case m.store == nil:
		return "No database available."
	case m.loadErr != nil:
		return "Cannot read scores: " + m.loadErr.Error()
	case m.stats == nil || m.stats.Runs == 0:
		return fmt.Sprintf("Best: %d", m.best)
	}
	return fmt.Sprintf("Best: %d  |  Runs: %d  |  Avg: %.1f  |  Last: %s",
		m.best, m.stats.Runs, m.stats.AvgScore, m.stats.LastPlayed.Format("Jan 02 15:04"))
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the game.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to the game, false if quitting.
func RunScoreboard(store *storage.Store, bestKey string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, bestKey, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
