// Package term renders the timer engine in a terminal with bubbletea.
package term

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusboard/internal/core/timer"
)

type eventMsg timer.Event

type closedMsg struct{}

// Model is the bubbletea model driving an Engine.
type Model struct {
	engine   *timer.Engine
	events   <-chan timer.Event
	state    timer.State
	message  string
	progress progress.Model
	width    int
	height   int
}

// New subscribes to engine and returns the initial model.
func New(engine *timer.Engine) Model {
	prog := progress.New(progress.WithScaledGradient("#FF7CCB", "#FDFF8C"))
	prog.Width = 60

	return Model{
		engine:   engine,
		events:   engine.Subscribe(16),
		state:    engine.State(),
		progress: prog,
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(events <-chan timer.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(event)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 80)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Toggle):
			m.engine.Start()
		case key.Matches(msg, keys.Reset):
			m.engine.Reset()
			m.message = ""
		case key.Matches(msg, keys.Skip):
			m.engine.Skip()
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		default:
			return m, nil
		}
		m.state = m.engine.State()
		return m, nil

	case eventMsg:
		m.state = msg.State
		if msg.Message != "" {
			m.message = msg.Message
		}
		return m, waitForEvent(m.events)

	case closedMsg:
		return m, tea.Quit

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	minutes := m.state.TimeLeft / 60
	seconds := m.state.TimeLeft % 60

	timerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(modeColor(m.state.Mode)).
		Padding(1, 4).
		MarginBottom(1)

	labelStyle := lipgloss.NewStyle().Bold(true).MarginBottom(1)
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		MarginTop(1)

	status := "Paused"
	if m.state.IsRunning {
		status = "Running"
	}
	if m.message != "" {
		status += " | " + m.message
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		labelStyle.Render(m.state.Mode.Label()),
		timerStyle.Render(fmt.Sprintf("%02d:%02d", minutes, seconds)),
		m.progress.ViewAs(m.state.Progress()),
		fmt.Sprintf("Round %d of %d", m.state.CurrentRound, m.state.TotalRounds),
		statusStyle.Render(status),
		helpView(m.state.IsRunning),
	)

	if m.width == 0 {
		return content
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func modeColor(mode timer.Mode) lipgloss.Color {
	switch mode {
	case timer.ModeShortBreak:
		return lipgloss.Color("#2E9E6B")
	case timer.ModeLongBreak:
		return lipgloss.Color("#3B6FD4")
	default:
		return lipgloss.Color("#D9534F")
	}
}

func helpView(running bool) string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(1)

	toggle := "start"
	if running {
		toggle = "pause"
	}
	return helpStyle.Render(fmt.Sprintf("space: %s • r: reset • s: skip • q: quit", toggle))
}

type keyMap struct {
	Toggle key.Binding
	Reset  key.Binding
	Skip   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "start/pause"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Skip: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "skip"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
