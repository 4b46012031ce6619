package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cybercop-labs/cybercop/internal/catalog"
	"github.com/cybercop-labs/cybercop/internal/mission"
	"github.com/cybercop-labs/cybercop/internal/steps"
)

// StatusSink collects runtime notifications for display in the status line.
// It is shared by pointer so the value-copied Bubble Tea model always sees
// the latest message.
type StatusSink struct {
	Title   string
	Message string
}

// Notify implements mission.Notifier.
func (s *StatusSink) Notify(title, message string) {
	s.Title = title
	s.Message = message
}

// MissionModel is the Bubble Tea model for playing a loaded mission.
type MissionModel struct {
	runtime  *mission.Runtime
	status   *StatusSink
	width    int
	height   int
	quitting bool
	back     bool

	// Step input widgets. Which ones are live depends on the active step
	// type.
	input     textinput.Model
	username  textinput.Model
	password  textinput.Model
	tickGen   int64
	focusPass bool
	option    int
	attempts  int
	verdict   string // transient feedback for the last submit
	verdictOK bool
}

// NewMissionModel creates a model for an already-loaded runtime.
func NewMissionModel(rt *mission.Runtime, status *StatusSink, width, height int) MissionModel {
	in := textinput.New()
	in.CharLimit = 512
	in.Width = 60

	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 256
	user.Width = 40

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 256
	pass.Width = 40

	m := MissionModel{
		runtime:  rt,
		status:   status,
		width:    width,
		height:   height,
		input:    in,
		username: user,
		password: pass,
		tickGen:  newTickGen(),
	}
	m.focusActive()
	return m
}

// Init starts the countdown.
func (m MissionModel) Init() tea.Cmd {
	if !m.runtime.Started() {
		//nolint:errcheck // Load already succeeded, Start cannot fail here
		m.runtime.Start()
	}
	return tea.Batch(tickCmd(m.tickGen), textinput.Blink)
}

// Update handles messages.
func (m MissionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		m.runtime.Tick()
		return m, tickCmd(m.tickGen)
	}

	return m.updateInputs(msg)
}

func (m MissionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Control keys work regardless of focused text fields.
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.back = true
		return m, nil
	case "ctrl+r":
		if err := m.runtime.Reset(); err == nil {
			m.attempts = 0
			m.option = 0
			m.verdict = ""
			m.resetInputs()
			m.focusActive()
			//nolint:errcheck // fresh runtime after reset
			m.runtime.Start()
		}
		return m, nil
	case "enter":
		return m.submit()
	}

	if m.runtime.Completed() {
		return m, nil
	}

	step := m.runtime.ActiveStep()
	switch step.Type {
	case catalog.StepWebLogin:
		if msg.String() == "tab" || msg.String() == "shift+tab" {
			m.focusPass = !m.focusPass
			m.focusActive()
			return m, nil
		}

	case catalog.StepMultipleChoice:
		switch msg.String() {
		case "up", "k":
			if m.option > 0 {
				m.option--
			}
			return m, nil
		case "down", "j":
			if m.option < len(step.Data.Options)-1 {
				m.option++
			}
			return m, nil
		}
	}

	return m.updateInputs(msg)
}

// updateInputs forwards a message to whichever text field is focused.
func (m MissionModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.runtime.Completed() {
		return m, nil
	}
	switch m.runtime.ActiveStep().Type {
	case catalog.StepWebLogin:
		if m.focusPass {
			m.password, cmd = m.password.Update(msg)
		} else {
			m.username, cmd = m.username.Update(msg)
		}
	case catalog.StepTerminal, catalog.StepCodeInjection, catalog.StepFreeInput:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// submit evaluates the active step with the current widget state.
func (m MissionModel) submit() (tea.Model, tea.Cmd) {
	if m.runtime.Completed() {
		m.back = true
		return m, nil
	}

	step := m.runtime.ActiveStep()
	in := steps.Input{
		Text:     m.input.Value(),
		Username: m.username.Value(),
		Password: m.password.Value(),
		Option:   m.option,
	}
	if step.Type == catalog.StepWebLogin {
		// The evaluator wants the number of submits made before this one.
		in.Attempts = m.attempts
		m.attempts++
	}

	ok, err := m.runtime.Submit(in)
	if err != nil {
		m.verdict = err.Error()
		m.verdictOK = false
		return m, nil
	}

	if ok {
		m.verdict = successText(step)
		m.verdictOK = true
		m.attempts = 0
		m.option = 0
		m.resetInputs()
		m.focusActive()
	} else {
		m.verdict = "Not quite. Try again."
		m.verdictOK = false
	}
	return m, nil
}

// successText returns the per-step success feedback.
func successText(step *catalog.Step) string {
	if step.Data.SuccessResponse != "" {
		return step.Data.SuccessResponse
	}
	return "Access granted!"
}

func (m *MissionModel) resetInputs() {
	m.input.Reset()
	m.username.Reset()
	m.password.Reset()
	m.focusPass = false
}

// focusActive gives focus to the text field the active step needs.
func (m *MissionModel) focusActive() {
	m.input.Blur()
	m.username.Blur()
	m.password.Blur()

	if m.runtime.Mission() == nil || m.runtime.Completed() {
		return
	}

	switch m.runtime.ActiveStep().Type {
	case catalog.StepWebLogin:
		if m.focusPass {
			m.password.Focus()
		} else {
			m.username.Focus()
		}
	case catalog.StepTerminal, catalog.StepCodeInjection, catalog.StepFreeInput:
		m.input.Focus()
	}
}

// View renders the mission screen.
func (m MissionModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	mi := m.runtime.Mission()

	header := fmt.Sprintf("%s  %s  %s",
		titleStyle.Render(mi.Title),
		lipgloss.NewStyle().Foreground(difficultyColor(string(mi.Difficulty))).Render(string(mi.Difficulty)),
		subtitleStyle.Render(formatClock(m.runtime.Remaining())))
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.renderProgress())
	b.WriteString("\n\n")

	if m.runtime.Completed() {
		b.WriteString(successStyle.Render("MISSION COMPLETE"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("You earned %d points.\n", mi.Points))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("Enter/Esc: back to missions | Ctrl+R: replay"))
		return b.String()
	}

	step := m.runtime.ActiveStep()
	b.WriteString(m.renderStep(step))

	if m.verdict != "" {
		b.WriteString("\n")
		if m.verdictOK {
			b.WriteString(successStyle.Render(m.verdict))
		} else {
			b.WriteString(errorStyle.Render(m.verdict))
		}
		b.WriteString("\n")
	}

	if m.status.Title != "" {
		b.WriteString("\n")
		b.WriteString(shardStyle.Render(m.status.Title) + " " + subtitleStyle.Render(m.status.Message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Enter: Submit | Esc: Back | Ctrl+R: Restart mission | Ctrl+C: Quit"))
	return b.String()
}

// renderProgress draws the step checklist line.
func (m MissionModel) renderProgress() string {
	mi := m.runtime.Mission()
	marks := make([]string, len(mi.Steps))
	for i := range mi.Steps {
		switch {
		case m.runtime.StepCompleted(i):
			marks[i] = successStyle.Render("[x]")
		case i == m.runtime.ActiveIndex():
			marks[i] = selectedStyle.Render("[>]")
		default:
			marks[i] = helpStyle.Render("[ ]")
		}
	}
	pct := int(m.runtime.Progress() * 100)
	return fmt.Sprintf("%s  %d%%", strings.Join(marks, " "), pct)
}

// renderStep draws the interactive card for the active step.
func (m MissionModel) renderStep(step *catalog.Step) string {
	var b strings.Builder

	b.WriteString(selectedStyle.Render(fmt.Sprintf("Step %d/%d: %s",
		m.runtime.ActiveIndex()+1, len(m.runtime.Mission().Steps), step.Title)))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(step.Description))
	b.WriteString("\n\n")

	switch step.Type {
	case catalog.StepTerminal:
		if step.Data.Prompt != "" {
			b.WriteString(dimStyle.Render(step.Data.Prompt))
			b.WriteString("\n")
		}
		b.WriteString("$ " + m.input.View())

	case catalog.StepWebLogin:
		b.WriteString("Username: " + m.username.View())
		b.WriteString("\n")
		b.WriteString("Password: " + m.password.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("Tab: switch field | attempts: %d", m.attempts)))

	case catalog.StepCodeInjection:
		if step.Data.TargetCode != "" {
			b.WriteString(cardStyle.Render(strings.TrimRight(step.Data.TargetCode, "\n")))
			b.WriteString("\n")
		}
		b.WriteString("Payload: " + m.input.View())

	case catalog.StepMultipleChoice:
		b.WriteString(step.Data.Question)
		b.WriteString("\n\n")
		for i, opt := range step.Data.Options {
			cursor := "  "
			style := lipgloss.NewStyle()
			if i == m.option {
				cursor = "> "
				style = selectedStyle
			}
			b.WriteString(style.Render(cursor + opt))
			b.WriteString("\n")
		}

	case catalog.StepFreeInput:
		if step.Data.Placeholder != "" {
			m.input.Placeholder = step.Data.Placeholder
		}
		b.WriteString("> " + m.input.View())
		if step.Data.MinLength > 0 {
			b.WriteString("\n")
			b.WriteString(helpStyle.Render(fmt.Sprintf("write at least %d characters (%d so far)",
				step.Data.MinLength, len(strings.TrimSpace(m.input.Value())))))
		}
	}

	return cardStyle.Render(b.String())
}

// formatClock renders seconds as mm:ss.
func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// BackToMenu returns true if the user asked to leave the mission.
func (m MissionModel) BackToMenu() bool {
	return m.back
}

// IsQuitting returns true if the user requested to quit entirely.
func (m MissionModel) IsQuitting() bool {
	return m.quitting
}
