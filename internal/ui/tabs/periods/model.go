// Package periods provides the consumption period browser tab.
package periods

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"beanwatch/internal/app"
	"beanwatch/internal/models"
)

// keyMap defines the key bindings specific to the periods tab.
type keyMap struct {
	NextPeriod  key.Binding
	PrevPeriod  key.Binding
	FirstPeriod key.Binding
	LastPeriod  key.Binding
}

// defaultKeyMap returns the default key bindings for the periods tab.
func defaultKeyMap() keyMap {
	return keyMap{
		NextPeriod: key.NewBinding(
			key.WithKeys("n", "j", "down"),
			key.WithHelp("j/n", "next period"),
		),
		PrevPeriod: key.NewBinding(
			key.WithKeys("p", "k", "up"),
			key.WithHelp("k/p", "prev period"),
		),
		FirstPeriod: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first period"),
		),
		LastPeriod: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last period"),
		),
	}
}

// Model represents the periods tab state.
type Model struct {
	state         *app.State
	keys          keyMap
	viewport      viewport.Model
	width         int
	height        int
	selectedIndex int
}

// New creates a new periods model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the periods tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// periods returns the report's periods newest first. The selection index
// addresses this reversed view.
func (m *Model) periods() []models.ConsumptionPeriod {
	report := m.state.GetReport()
	if report == nil {
		return nil
	}

	out := make([]models.ConsumptionPeriod, len(report.Periods))
	for i, p := range report.Periods {
		out[len(report.Periods)-1-i] = p
	}
	return out
}

// Update handles messages for the periods tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case app.ReportLoadedMsg:
		m.clampSelection()

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	count := len(m.periods())

	switch {
	case key.Matches(msg, m.keys.NextPeriod):
		if count > 0 {
			m.selectedIndex = (m.selectedIndex + 1) % count
		}
	case key.Matches(msg, m.keys.PrevPeriod):
		if count > 0 {
			m.selectedIndex = (m.selectedIndex - 1 + count) % count
		}
	case key.Matches(msg, m.keys.FirstPeriod):
		if count > 0 {
			m.selectedIndex = 0
		}
	case key.Matches(msg, m.keys.LastPeriod):
		if count > 0 {
			m.selectedIndex = count - 1
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}

	m.state.SetSelectedPeriodIndex(m.selectedIndex)
	return func() tea.Msg {
		return app.SelectedPeriodChangedMsg{Index: m.selectedIndex}
	}
}

func (m *Model) clampSelection() {
	count := len(m.periods())
	if count == 0 {
		m.selectedIndex = 0
		return
	}
	if m.selectedIndex >= count {
		m.selectedIndex = count - 1
	}
}

// SetSize sets the available size for the periods tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.NextPeriod,
		m.keys.PrevPeriod,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NextPeriod, m.keys.PrevPeriod},
		{m.keys.FirstPeriod, m.keys.LastPeriod},
	}
}
