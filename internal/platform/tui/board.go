package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cybercop-labs/cybercop/internal/catalog"
	"github.com/cybercop-labs/cybercop/internal/progress"
	"github.com/cybercop-labs/cybercop/internal/storage"
)

const maxLedgerEntries = 100

// BoardKeyMap defines the key bindings for the progress board.
type BoardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Back, k.Quit},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "missions/activity"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BoardModel is the Bubble Tea model for the progress board. It has two
// views: per-mission progress and the raw completion ledger.
type BoardModel struct {
	catalog      *catalog.Catalog
	progress     *progress.Store
	db           *storage.Store
	table        table.Model
	help         help.Model
	keys         BoardKeyMap
	width        int
	height       int
	showActivity bool
	quitting     bool
	goingBack    bool
}

// NewBoardModel creates a new progress board model.
func NewBoardModel(cat *catalog.Catalog, prog *progress.Store, db *storage.Store, width, height int) BoardModel {
	h := help.New()
	h.ShowAll = false

	m := BoardModel{
		catalog:  cat,
		progress: prog,
		db:       db,
		keys:     DefaultBoardKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.loadRows()
	return m
}

// createTable creates the table with columns for the active view.
func (m *BoardModel) createTable() table.Model {
	var columns []table.Column
	if m.showActivity {
		columns = []table.Column{
			{Title: "Mission", Width: 26},
			{Title: "Step", Width: 6},
			{Title: "Points", Width: 8},
			{Title: "Shards", Width: 8},
			{Title: "Date", Width: 14},
		}
	} else {
		columns = []table.Column{
			{Title: "Mission", Width: 30},
			{Title: "Steps", Width: 8},
			{Title: "Score", Width: 8},
			{Title: "Completed", Width: 14},
		}
	}

	height := m.height - 10
	if height < 4 {
		height = 4
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// loadRows fills the table for the active view.
func (m *BoardModel) loadRows() {
	if m.showActivity {
		m.loadActivityRows()
	} else {
		m.loadMissionRows()
	}
	m.table.GotoTop()
}

func (m *BoardModel) loadMissionRows() {
	missions := m.catalog.Missions()
	rows := make([]table.Row, 0, len(missions))
	for _, mission := range missions {
		done := 0
		score := 0
		completed := "-"
		if rec := m.progress.Get(mission.ID); rec != nil {
			done = len(rec.CompletedChallenges)
			score = rec.TotalScore
			if rec.CompletedAt != nil {
				completed = rec.CompletedAt.Format("Jan 02 15:04")
			}
		}
		rows = append(rows, table.Row{
			mission.Title,
			fmt.Sprintf("%d/%d", done, len(mission.Steps)),
			fmt.Sprintf("%d", score),
			completed,
		})
	}
	m.table.SetRows(rows)
}

func (m *BoardModel) loadActivityRows() {
	if m.db == nil {
		m.table.SetRows(nil)
		return
	}
	entries, err := m.db.RecentCompletions(maxLedgerEntries)
	if err != nil {
		m.table.SetRows(nil)
		return
	}

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		title := fmt.Sprintf("#%d", e.MissionID)
		if mission, ok := m.catalog.Mission(e.MissionID); ok {
			title = mission.Title
		}
		rows[i] = table.Row{
			title,
			fmt.Sprintf("%d", e.StepID),
			fmt.Sprintf("%d", e.Points),
			fmt.Sprintf("%d", e.Shards),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the board model.
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.Toggle):
			m.showActivity = !m.showActivity
			m.table = m.createTable()
			m.loadRows()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.loadRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m BoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "MISSION PROGRESS"
	if m.showActivity {
		title = "RECENT ACTIVITY"
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")

	if m.db != nil {
		if totals, err := m.db.GetTotals(); err == nil && totals.Completions > 0 {
			line := fmt.Sprintf("%d steps completed | %d points | %d shards earned",
				totals.Completions, totals.TotalPoints, totals.TotalShards)
			b.WriteString(subtitleStyle.Render(centerText(line, m.width)))
		}
	}
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.table.Rows()) == 0 {
		empty := dimStyle.Padding(2, 4).
			Render("Nothing recorded yet.\nComplete a mission step to get started!")
		b.WriteString(centerText(tableStyle.Render(empty), m.width))
	} else {
		b.WriteString(centerText(tableStyle.Render(m.table.View()), m.width))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if the user wants to go back to the menu.
func (m BoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m BoardModel) IsQuitting() bool {
	return m.quitting
}
