package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"beanwatch/internal/ui/styles"
)

// StockBar renders the remaining share of the current bag as a progress bar.
type StockBar struct {
	progress progress.Model
	label    string
}

// NewStockBar creates a stock bar with gradient colors.
func NewStockBar() StockBar {
	p := progress.New(
		progress.WithScaledGradient("#ff6b6b", "#51cf66"),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return StockBar{progress: p}
}

// Init initializes the progress bar model.
func (s StockBar) Init() tea.Cmd {
	return nil
}

// Update handles progress bar animation frames.
func (s StockBar) Update(msg tea.Msg) (StockBar, tea.Cmd) {
	model, cmd := s.progress.Update(msg)
	s.progress = model.(progress.Model)
	return s, cmd
}

// SetPercent animates the bar toward the given percentage (0-100).
func (s *StockBar) SetPercent(percent float64) tea.Cmd {
	return s.progress.SetPercent(percent / 100)
}

// SetLabel sets the bar label.
func (s *StockBar) SetLabel(label string) {
	s.label = label
}

// SetWidth sets the progress bar width.
func (s *StockBar) SetWidth(width int) {
	s.progress.Width = width
}

// View renders the stock bar with percentage and label.
func (s StockBar) View(percent float64, label string, width int) string {
	barWidth := width - 30 // Reserve space for label and percentage
	if barWidth < 10 {
		barWidth = 10
	}
	s.progress.Width = barWidth

	bar := s.progress.ViewAs(percent / 100)

	percentStr := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Width(6).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%.0f%%", percent))

	labelStr := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(15).
		Render(label)

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		labelStr,
		bar,
		" ",
		percentStr,
	)
}

// ViewCompact renders a compact version without label.
func (s StockBar) ViewCompact(percent float64, width int) string {
	barWidth := width - 8
	if barWidth < 5 {
		barWidth = 5
	}
	s.progress.Width = barWidth

	bar := s.progress.ViewAs(percent / 100)
	percentStr := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Render(fmt.Sprintf("%.0f%%", percent))

	return lipgloss.JoinHorizontal(lipgloss.Center, bar, " ", percentStr)
}
