// Package tui shows the renderer in a terminal. The four range inputs sit above a half-block preview of the raster
// on display.
package tui

import (
	"BurningShip/burningship"
	"BurningShip/form"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const help = "tab/shift+tab move • enter apply • ctrl+r reset • esc quit"

// renderedMsg reports the end of an apply started from the form
type renderedMsg struct {
	stats burningship.Stats
	err   error
}

type Model struct {
	focus    int
	form     form.Form
	inputs   [4]textinput.Model
	mapper   burningship.ColorMapper
	renderer *burningship.Renderer
	styles   Styles

	err       error
	rendering bool
	status    string

	height int
	width  int
}

func New(renderer *burningship.Renderer, mapper burningship.ColorMapper) Model {
	m := Model{
		form:     form.FromViewport(renderer.Viewport()),
		mapper:   mapper,
		renderer: renderer,
		styles:   DefaultStyles(),
		status:   "ready",
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 14
		ti.SetValue(m.form.Get(form.Field(i)))
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case renderedMsg:
		m.rendering = false
		m.err = msg.err
		if msg.err == nil {
			m.status = fmt.Sprintf("%s in %s", m.renderer.Viewport(), msg.stats.Elapsed)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyTab, tea.KeyDown:
		return m, m.moveFocus(1)

	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.moveFocus(-1)

	case tea.KeyCtrlR:
		m.form.Reset()
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		m.err = nil
		return m, nil

	case tea.KeyEnter:
		if m.rendering {
			return m, nil
		}
		m.rendering = true
		m.status = "rendering"
		return m, m.apply()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.form.Set(form.Field(m.focus), m.inputs[m.focus].Value())
	return m, cmd
}

func (m *Model) moveFocus(step int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + step + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// apply renders the form as it is now, off the event loop
func (m Model) apply() tea.Cmd {
	f := m.form
	renderer := m.renderer
	mapper := m.mapper
	return func() tea.Msg {
		stats, err := f.Apply(renderer, mapper)
		return renderedMsg{stats: stats, err: err}
	}
}

func (m Model) View() string {
	var builder strings.Builder

	for i := range m.inputs {
		label := m.styles.Label
		if i == m.focus {
			label = m.styles.FocusedLabel
		}
		builder.WriteString(label.Render(fmt.Sprintf("%-12s", form.Field(i))))
		builder.WriteString(m.inputs[i].View())
		builder.WriteString("\n")
	}

	if m.err != nil {
		builder.WriteString(m.styles.Error.Render(m.err.Error()))
	} else {
		builder.WriteString(m.styles.Status.Render(m.status))
	}
	builder.WriteString("\n")
	builder.WriteString(m.styles.Help.Render(help))
	builder.WriteString("\n")

	if columns, rows := m.previewSize(); columns > 0 && rows > 0 {
		img, _ := m.renderer.Target().Snapshot()
		builder.WriteString(m.styles.Preview.Render(preview(img, columns, rows)))
	}
	return builder.String()
}

// previewSize leaves room for the form, status, help and the preview border
func (m Model) previewSize() (int, int) {
	return m.width - 2, m.height - len(m.inputs) - 4
}

// Run shows the terminal viewer until the user quits
func Run(renderer *burningship.Renderer, mapper burningship.ColorMapper) error {
	program := tea.NewProgram(New(renderer, mapper), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
