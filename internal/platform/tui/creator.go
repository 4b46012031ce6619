package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cybercop-labs/cybercop/internal/profile"
)

// Character creator option palettes.
var (
	skinColors = []string{"#FDBCB4", "#F5DEB3", "#DEB887", "#D2691E", "#8D5524", "#654321"}
	hairStyles = []string{"short", "long", "curly", "mohawk", "bald", "ponytail"}
	hairColors = []string{"#8B4513", "#000000", "#FFD700", "#FF4500", "#9400D3", "#C0C0C0"}
	eyeColors  = []string{"#8B4513", "#0000FF", "#008000", "#808080", "#00CED1", "#9400D3"}
)

// creatorStage is one page of the character creator.
type creatorStage int

const (
	stageName creatorStage = iota
	stageSkin
	stageHairStyle
	stageHairColor
	stageEyes
	stageConfirm
)

// CreatorModel is the Bubble Tea model for first-run character creation.
type CreatorModel struct {
	profiles *profile.Store
	name     textinput.Model
	stage    creatorStage
	picks    [4]int // skin, hair style, hair color, eyes
	width    int
	height   int
	done     bool
	quitting bool
}

// NewCreatorModel creates a new onboarding model.
func NewCreatorModel(profiles *profile.Store, width, height int) CreatorModel {
	name := textinput.New()
	name.Placeholder = "Cyber Agent"
	name.CharLimit = 32
	name.Width = 32
	name.Focus()

	return CreatorModel{
		profiles: profiles,
		name:     name,
		width:    width,
		height:   height,
	}
}

// Init initializes the creator model.
func (m CreatorModel) Init() tea.Cmd {
	return textinput.Blink
}

// palette returns the option list of the current pick stage.
func (m CreatorModel) palette() []string {
	switch m.stage {
	case stageSkin:
		return skinColors
	case stageHairStyle:
		return hairStyles
	case stageHairColor:
		return hairColors
	case stageEyes:
		return eyeColors
	}
	return nil
}

// pickIndex returns a pointer to the selection of the current pick stage.
func (m *CreatorModel) pickIndex() *int {
	switch m.stage {
	case stageSkin:
		return &m.picks[0]
	case stageHairStyle:
		return &m.picks[1]
	case stageHairColor:
		return &m.picks[2]
	case stageEyes:
		return &m.picks[3]
	}
	return nil
}

// Update handles messages for the creator.
func (m CreatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	if m.stage == stageName {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m CreatorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		if m.stage == stageConfirm {
			return m.finish()
		}
		m.stage++
		return m, nil

	case "esc":
		if m.stage > stageName {
			m.stage--
		}
		return m, nil
	}

	if m.stage == stageName {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}

	if idx := m.pickIndex(); idx != nil {
		options := m.palette()
		switch msg.String() {
		case "left", "h", "up", "k":
			*idx--
			if *idx < 0 {
				*idx = len(options) - 1
			}
		case "right", "l", "down", "j":
			*idx = (*idx + 1) % len(options)
		}
	}
	return m, nil
}

// finish persists the new agent and ends onboarding.
func (m CreatorModel) finish() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.name.Value())
	if username == "" {
		username = "Cyber Agent"
	}

	character := profile.Customization{
		SkinColor: skinColors[m.picks[0]],
		HairStyle: hairStyles[m.picks[1]],
		HairColor: hairColors[m.picks[2]],
		EyeColor:  eyeColors[m.picks[3]],
	}

	//nolint:errcheck // a failed save still lets the session continue with defaults
	m.profiles.CompleteOnboarding(username, character)
	m.done = true
	return m, tea.Quit
}

// View renders the creator.
func (m CreatorModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("CREATE YOUR AGENT"), m.width))
	b.WriteString("\n\n")

	switch m.stage {
	case stageName:
		b.WriteString(centerText("What should we call you?", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(m.name.View(), m.width))

	case stageConfirm:
		b.WriteString(centerText("Ready to deploy?", m.width))
		b.WriteString("\n\n")
		name := strings.TrimSpace(m.name.Value())
		if name == "" {
			name = "Cyber Agent"
		}
		summary := fmt.Sprintf("%s | skin %s | %s hair (%s) | eyes %s",
			name, skinColors[m.picks[0]], hairStyles[m.picks[1]],
			hairColors[m.picks[2]], eyeColors[m.picks[3]])
		b.WriteString(centerText(subtitleStyle.Render(summary), m.width))

	default:
		labels := map[creatorStage]string{
			stageSkin:      "Pick a skin tone",
			stageHairStyle: "Pick a hair style",
			stageHairColor: "Pick a hair color",
			stageEyes:      "Pick an eye color",
		}
		b.WriteString(centerText(labels[m.stage], m.width))
		b.WriteString("\n\n")

		options := m.palette()
		idx := 0
		if p := (&m).pickIndex(); p != nil {
			idx = *p
		}
		row := make([]string, len(options))
		for i, opt := range options {
			if i == idx {
				row[i] = selectedStyle.Render("[" + opt + "]")
			} else {
				row[i] = helpStyle.Render(" " + opt + " ")
			}
		}
		b.WriteString(centerText(strings.Join(row, " "), m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(centerText(helpStyle.Render("Enter: Next | Esc: Back | Left/Right: Choose"), m.width))
	return b.String()
}

// Done returns true when onboarding finished successfully.
func (m CreatorModel) Done() bool {
	return m.done
}

// IsQuitting returns true if the user bailed out.
func (m CreatorModel) IsQuitting() bool {
	return m.quitting
}
