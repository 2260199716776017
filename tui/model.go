package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1-abhinav/PromptDJ-DeepMind/prompt"
	"github.com/1-abhinav/PromptDJ-DeepMind/surface"
	"github.com/1-abhinav/PromptDJ-DeepMind/theme"
)

type Model struct {
	Surface *surface.Surface
	Theme   *theme.Theme

	cursor   int
	input    textinput.Model
	editing  bool
	adding   bool
	errMsg   string
	quitting bool
}

type UpdateMsg struct{}

type ErrorMsg string

func NewModel(s *surface.Surface, th *theme.Theme) Model {
	ti := textinput.New()
	ti.CharLimit = 80
	return Model{
		Surface: s,
		Theme:   th,
		input:   ti,
	}
}

// ListenForUpdates waits for the surface to report changed state.
func ListenForUpdates(s *surface.Surface) tea.Cmd {
	return func() tea.Msg {
		<-s.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Surface)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Surface.ObserveWidth(msg.Width)

	case ErrorMsg:
		m.errMsg = string(msg)

	case UpdateMsg:
		return m, ListenForUpdates(m.Surface)

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prompts := m.Surface.Prompts()
	cols := m.Surface.Columns()

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.Surface.Close()
		return m, tea.Quit

	case " ", "space", "p":
		m.Surface.TogglePlayPause()

	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}

	case "right", "l":
		if m.cursor < len(prompts)-1 {
			m.cursor++
		}

	case "up", "k":
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}

	case "down", "j":
		if m.cursor+cols < len(prompts) {
			m.cursor += cols
		}

	case "+", "=":
		m.adjustWeight(prompts, 0.1)

	case "-", "_":
		m.adjustWeight(prompts, -0.1)

	case "m":
		if m.cursor < len(prompts) {
			text := prompts[m.cursor].Text
			if m.Surface.Filtered(text) {
				m.Surface.RemoveFilteredPrompt(text)
			} else {
				m.Surface.AddFilteredPrompt(text)
			}
		}

	case "enter":
		if m.cursor < len(prompts) {
			m.editing = true
			m.input.SetValue(prompts[m.cursor].Text)
			m.input.Focus()
		}

	case "a":
		m.editing = true
		m.adding = true
		m.input.SetValue("")
		m.input.Focus()

	case "x":
		if m.cursor < len(prompts) {
			m.Surface.RemovePrompt(prompts[m.cursor].ID)
			if m.cursor >= len(prompts)-1 && m.cursor > 0 {
				m.cursor--
			}
		}

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		devices := m.Surface.Devices()
		idx := int(msg.String()[0] - '1')
		if idx < len(devices) {
			m.Surface.SetActiveDevice(devices[idx])
		}
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text != "" {
			if m.adding {
				m.Surface.AddPrompt(text)
			} else if prompts := m.Surface.Prompts(); m.cursor < len(prompts) {
				p := prompts[m.cursor]
				p.Text = text
				m.Surface.ApplyEdit(p)
			}
		}
		m.editing = false
		m.adding = false
		m.input.Blur()
		return m, nil

	case "esc":
		m.editing = false
		m.adding = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) adjustWeight(prompts []prompt.Prompt, delta float64) {
	if m.cursor >= len(prompts) {
		return
	}
	p := prompts[m.cursor]
	p.Weight += delta
	m.Surface.ApplyEdit(p)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	midiStatus := "midi:off"
	if m.Surface.MIDIAvailable() {
		if active := m.Surface.ActiveDevice(); active != "" {
			midiStatus = "midi:" + m.Surface.DeviceName(active)
		} else {
			midiStatus = "midi:on"
		}
	}

	header := headerStyle.Render(fmt.Sprintf("promptdj  %s  %s", m.Surface.PlaybackState(), midiStatus))

	grid := m.viewGrid()

	help := dimStyle.Render("hjkl:nav  +/-:weight  m:mute  enter:edit  a:add  x:remove  1-9:device  space:play  q:quit")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(grid)
	out.WriteString("\n")
	if m.editing {
		out.WriteString("\n")
		out.WriteString(m.input.View())
		out.WriteString("\n")
	}
	out.WriteString("\n")
	out.WriteString(help)
	if m.errMsg != "" {
		out.WriteString("\n")
		out.WriteString(warnStyle.Render(m.errMsg))
	}

	return out.String()
}

// viewGrid lays the prompts out in the layout manager's column count,
// one cell per prompt in collection order.
func (m Model) viewGrid() string {
	prompts := m.Surface.Prompts()
	cols := m.Surface.Columns()
	if cols < 1 {
		cols = 1
	}

	var rows []string
	for start := 0; start < len(prompts); start += cols {
		end := start + cols
		if end > len(prompts) {
			end = len(prompts)
		}
		cells := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cells = append(cells, m.viewCell(prompts[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewCell(p prompt.Prompt, selected bool) string {
	style := lipgloss.NewStyle().
		Width(18).
		Padding(0, 1).
		Foreground(lipgloss.Color(p.Color))
	if selected {
		style = style.Bold(true).Underline(true)
	}

	label := p.Text
	if m.Surface.Filtered(p.Text) {
		label = "[muted] " + label
	}

	return style.Render(fmt.Sprintf("%s\n%s cc%d", label, weightBar(p.Weight), p.CC))
}

// weightBar draws a 10-step bar for the 0-2 weight range
func weightBar(w float64) string {
	filled := int(w / prompt.MaxWeight * 10)
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
