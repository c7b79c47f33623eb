package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/gesturelab/gesture-arcade/internal/core"
	"github.com/gesturelab/gesture-arcade/internal/gestures"
)

var (
	gestureTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(1, 2)

	gestureTableStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				Padding(0, 1)
)

// GestureKeyMap defines the key bindings for the gesture picker.
type GestureKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GestureKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k GestureKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Back, k.Quit},
	}
}

// DefaultGestureKeyMap returns default key bindings.
func DefaultGestureKeyMap() GestureKeyMap {
	return GestureKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
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

// GestureModel is the Bubble Tea model for the gesture picker screen.
// It lists the control gestures the platform understands and lets the
// player choose which one drives their sessions.
type GestureModel struct {
	table    table.Model
	help     help.Model
	keys     GestureKeyMap
	codes    []string
	selected string // Chosen code, empty until selection
	width    int
	height   int
	quitting bool
	done     bool
}

// NewGestureModel creates a new gesture picker model.
// The cursor starts on the currently active code when one is set.
func NewGestureModel(width, height int, current string) GestureModel {
	codes := gestures.Codes()

	columns := []table.Column{
		{Title: "Code", Width: 6},
		{Title: "Gesture", Width: 32},
	}

	rows := make([]table.Row, 0, len(codes))
	cursor := 0
	for i, code := range codes {
		rows = append(rows, table.Row{code, gestures.Name(code)})
		if code == current {
			cursor = i
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+1),
	)
	t.SetCursor(cursor)

	return GestureModel{
		table:  t,
		help:   help.New(),
		keys:   DefaultGestureKeyMap(),
		codes:  codes,
		width:  width,
		height: height,
	}
}

// Init initializes the gesture picker.
func (m GestureModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the gesture picker.
func (m GestureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.done = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			m.selected = m.codes[m.table.Cursor()]
			m.done = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the gesture picker.
func (m GestureModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	title := gestureTitleStyle.Render("Control Gesture")
	body := gestureTableStyle.Render(m.table.View())
	helpView := m.help.View(m.keys)

	return lipgloss.JoinVertical(lipgloss.Left, title, body, "", helpView)
}

// Selected returns the chosen gesture code, or empty when cancelled.
func (m GestureModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user requested to quit entirely.
func (m GestureModel) IsQuitting() bool {
	return m.quitting
}

// GestureResult holds the result of running the gesture picker.
type GestureResult struct {
	Code string // Empty when cancelled
	Quit bool
}

// RunGesturePicker runs the gesture picker and returns the chosen code.
func RunGesturePicker(cfg core.RuntimeConfig, current string) (GestureResult, error) {
	model := NewGestureModel(cfg.ScreenW, cfg.ScreenH, current)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return GestureResult{}, err
	}

	m, ok := finalModel.(GestureModel)
	if !ok {
		return GestureResult{Quit: true}, nil
	}

	return GestureResult{
		Code: m.Selected(),
		Quit: m.IsQuitting(),
	}, nil
}
