package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cybercop-labs/cybercop/internal/catalog"
	"github.com/cybercop-labs/cybercop/internal/profile"
	"github.com/cybercop-labs/cybercop/internal/progress"
)

// MenuChoice is what the user picked from the main menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoiceMission
	MenuChoiceStore
	MenuChoiceBoard
)

// MenuModel is the Bubble Tea model for the mission picker.
type MenuModel struct {
	catalog   *catalog.Catalog
	profiles  *profile.Store
	progress  *progress.Store
	missions  []catalog.Mission
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	quitting  bool
	choice    MenuChoice
	selected  int // mission id when choice == MenuChoiceMission
}

// NewMenuModel creates a new mission picker model.
func NewMenuModel(cat *catalog.Catalog, profiles *profile.Store, prog *progress.Store, width, height int) MenuModel {
	return MenuModel{
		catalog:   cat,
		profiles:  profiles,
		progress:  prog,
		missions:  cat.Missions(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Screen shortcuts sit outside the arrow navigation.
	switch msg.String() {
	case "e":
		m.choice = MenuChoiceStore
		return m, tea.Quit
	case "tab":
		m.choice = MenuChoiceBoard
		return m, tea.Quit
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.missions)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.missions) > 0 {
			m.choice = MenuChoiceMission
			m.selected = m.missions[m.cursor].ID
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the mission list.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	p := m.profiles.Profile()
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  C Y B E R C O P  "), m.width))
	b.WriteString("\n\n")

	status := fmt.Sprintf("Agent %s  |  Level %d  |  %s", p.Username, p.Level(),
		shardStyle.Render(fmt.Sprintf("%d shards", p.Shards)))
	b.WriteString(centerText(status, m.width))
	b.WriteString("\n\n")

	for i, mission := range m.missions {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}

		badge := ""
		if m.profiles.Profile().HasCompletedMission(mission.ID) {
			badge = " [done]"
		} else if rec := m.progress.Get(mission.ID); rec != nil {
			badge = fmt.Sprintf(" [%d/%d]", len(rec.CompletedChallenges), len(mission.Steps))
		}

		diff := lipgloss.NewStyle().
			Foreground(difficultyColor(string(mission.Difficulty))).
			Render(string(mission.Difficulty))

		line := fmt.Sprintf("%s%s  %s | %s | %d pts%s",
			cursor, style.Render(mission.Title), diff, mission.TeamType, mission.Points, badge)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate | Enter: Start | E: Equipment | Tab: Progress | Q: Quit"
	b.WriteString(centerText(helpStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the user picked.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// SelectedMission returns the chosen mission id. Valid only when Choice is
// MenuChoiceMission.
func (m MenuModel) SelectedMission() int {
	return m.selected
}

// IsQuitting returns true if the user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}
