package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/cybercop-labs/cybercop/internal/catalog"
	"github.com/cybercop-labs/cybercop/internal/mission"
	"github.com/cybercop-labs/cybercop/internal/profile"
	"github.com/cybercop-labs/cybercop/internal/progress"
	"github.com/cybercop-labs/cybercop/internal/storage"
)

// standaloneMission wraps MissionModel so that leaving the mission quits
// the program instead of returning to a parent menu.
type standaloneMission struct {
	inner MissionModel
}

func (m standaloneMission) Init() tea.Cmd {
	return m.inner.Init()
}

func (m standaloneMission) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.inner.Update(msg)
	if mm, ok := newModel.(MissionModel); ok {
		m.inner = mm
	}
	if m.inner.BackToMenu() {
		return m, tea.Quit
	}
	return m, cmd
}

func (m standaloneMission) View() string {
	if m.inner.BackToMenu() {
		return ""
	}
	return m.inner.View()
}

// RunMission runs a single mission full-screen and returns when the user
// leaves it.
func RunMission(cat *catalog.Catalog, db *storage.Store, logger *log.Logger, missionID int) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	profiles := profile.NewStore(db, logger)
	prog := progress.NewStore(db, logger)

	status := &StatusSink{}
	rt := mission.New(mission.Config{
		Catalog:         cat,
		Progress:        prog,
		Reward:          profiles.AddShards,
		CompleteMission: profiles.CompleteMission,
		Notify:          status,
	})
	if err := rt.Load(missionID); err != nil {
		return err
	}

	model := standaloneMission{inner: NewMissionModel(rt, status, 80, 24)}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// standaloneStore wraps StoreModel the same way.
type standaloneStore struct {
	inner StoreModel
}

func (m standaloneStore) Init() tea.Cmd {
	return m.inner.Init()
}

func (m standaloneStore) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.inner.Update(msg)
	if sm, ok := newModel.(StoreModel); ok {
		m.inner = sm
	}
	if m.inner.BackToMenu() {
		return m, tea.Quit
	}
	return m, cmd
}

func (m standaloneStore) View() string {
	if m.inner.BackToMenu() {
		return ""
	}
	return m.inner.View()
}

// RunStore runs the equipment store full-screen.
func RunStore(cat *catalog.Catalog, db *storage.Store, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	profiles := profile.NewStore(db, logger)

	model := standaloneStore{inner: NewStoreModel(cat, profiles, 80, 24)}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunBoard runs the progress board full-screen.
func RunBoard(cat *catalog.Catalog, db *storage.Store, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	prog := progress.NewStore(db, logger)

	model := NewBoardModel(cat, prog, db, 80, 24)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
