package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cybercop-labs/cybercop/internal/catalog"
	"github.com/cybercop-labs/cybercop/internal/profile"
)

// StoreModel is the Bubble Tea model for the equipment store.
type StoreModel struct {
	catalog    *catalog.Catalog
	profiles   *profile.Store
	categories []catalog.Category
	tab        int
	cursor     int
	width      int
	height     int
	keyMapper  *KeyMapper
	status     string
	statusOK   bool
	quitting   bool
	back       bool
}

// NewStoreModel creates a new equipment store model.
func NewStoreModel(cat *catalog.Catalog, profiles *profile.Store, width, height int) StoreModel {
	return StoreModel{
		catalog:    cat,
		profiles:   profiles,
		categories: catalog.Categories(),
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the store model.
func (m StoreModel) Init() tea.Cmd {
	return nil
}

// items returns the inventory of the active tab.
func (m StoreModel) items() []catalog.Item {
	return m.catalog.Items(m.categories[m.tab])
}

// Update handles messages for the store.
func (m StoreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m StoreModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.tab = (m.tab + 1) % len(m.categories)
		m.cursor = 0
		m.status = ""
		return m, nil
	case "shift+tab":
		m.tab--
		if m.tab < 0 {
			m.tab = len(m.categories) - 1
		}
		m.cursor = 0
		m.status = ""
		return m, nil
	case "e":
		return m.equip()
	case "u":
		return m.unequip()
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionBack:
		m.back = true
		return m, nil

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items())-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.tab--
		if m.tab < 0 {
			m.tab = len(m.categories) - 1
		}
		m.cursor = 0
		m.status = ""

	case MenuActionRight:
		m.tab = (m.tab + 1) % len(m.categories)
		m.cursor = 0
		m.status = ""

	case MenuActionSelect:
		return m.buy()
	}

	return m, nil
}

// buy purchases the item under the cursor.
func (m StoreModel) buy() (tea.Model, tea.Cmd) {
	items := m.items()
	if m.cursor >= len(items) {
		return m, nil
	}
	item := items[m.cursor]

	err := m.profiles.Purchase(item)
	switch {
	case err == nil:
		m.status = fmt.Sprintf("Purchased %s for %d shards!", item.Name, item.Price)
		m.statusOK = true
	case errors.Is(err, profile.ErrAlreadyOwned):
		m.status = "Already owned. Press E to equip."
		m.statusOK = false
	case errors.Is(err, profile.ErrInsufficientShards):
		m.status = fmt.Sprintf("Not enough shards: %s costs %d.", item.Name, item.Price)
		m.statusOK = false
	default:
		m.status = err.Error()
		m.statusOK = false
	}
	return m, nil
}

// equip puts the item under the cursor into its slot.
func (m StoreModel) equip() (tea.Model, tea.Cmd) {
	items := m.items()
	if m.cursor >= len(items) {
		return m, nil
	}
	item := items[m.cursor]
	slot, ok := catalog.SlotFor(item.Category)
	if !ok {
		return m, nil
	}

	err := m.profiles.EquipItem(slot, item.ID)
	switch {
	case err == nil:
		m.status = fmt.Sprintf("Equipped %s.", item.Name)
		m.statusOK = true
	case errors.Is(err, profile.ErrItemLocked):
		m.status = "Locked. Buy it first."
		m.statusOK = false
	default:
		m.status = err.Error()
		m.statusOK = false
	}
	return m, nil
}

// unequip clears the slot of the active tab's category.
func (m StoreModel) unequip() (tea.Model, tea.Cmd) {
	slot, ok := catalog.SlotFor(m.categories[m.tab])
	if !ok {
		return m, nil
	}
	if err := m.profiles.EquipItem(slot, ""); err == nil {
		m.status = fmt.Sprintf("Cleared %s slot.", slot)
		m.statusOK = true
	}
	return m, nil
}

// View renders the store.
func (m StoreModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	p := m.profiles.Profile()

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("EQUIPMENT STORE"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(shardStyle.Render(fmt.Sprintf("%d shards", p.Shards)), m.width))
	b.WriteString("\n\n")

	// Category tabs
	tabs := make([]string, len(m.categories))
	for i, c := range m.categories {
		label := string(c)
		if i == m.tab {
			tabs[i] = selectedStyle.Render("[" + label + "]")
		} else {
			tabs[i] = helpStyle.Render(" " + label + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	slot, _ := catalog.SlotFor(m.categories[m.tab])
	equipped := p.Character.Equipped[slot]

	for i, item := range m.items() {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}

		stars := strings.Repeat("*", catalog.RarityStars(item.Rarity))
		tag := fmt.Sprintf("%d shards", item.Price)
		switch {
		case item.ID == equipped:
			tag = "equipped"
		case p.HasUnlocked(item.ID):
			tag = "owned"
		}

		line := fmt.Sprintf("%s%s %s %s (%s)", cursor, item.Emoji, style.Render(item.Name), stars, tag)
		b.WriteString("  " + line)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusOK {
			b.WriteString("  " + successStyle.Render(m.status))
		} else {
			b.WriteString("  " + errorStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Tab/Arrows: Category | Enter: Buy | E: Equip | U: Unequip | Esc: Back | Q: Quit"
	b.WriteString(centerText(helpStyle.Render(controls), m.width))
	return b.String()
}

// BackToMenu returns true if the user asked to leave the store.
func (m StoreModel) BackToMenu() bool {
	return m.back
}

// IsQuitting returns true if the user requested to quit entirely.
func (m StoreModel) IsQuitting() bool {
	return m.quitting
}
