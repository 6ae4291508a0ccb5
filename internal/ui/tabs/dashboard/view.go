package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"beanwatch/internal/models"
	"beanwatch/internal/ui/components"
	"beanwatch/internal/ui/styles"
)

const dateFormat = "Jan 2, 2006"

// View renders the dashboard tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderCurrentPeriodCard())
	sections = append(sections, m.renderSummaryCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Beanwatch")
	subtitle := styles.HelpStyle.Render("Coffee purchase log and consumption tracker")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderCurrentPeriodCard renders the open consumption period with its
// members and the projected stock bar.
func (m *Model) renderCurrentPeriodCard() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Current Beans")))
	rows = append(rows, "")

	report := m.state.GetReport()
	if report == nil || report.CurrentPeriod() == nil {
		emptyIcon := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○")
		rows = append(rows, fmt.Sprintf("  %s %s", emptyIcon, styles.HelpStyle.Render("No purchases logged yet")))
		rows = append(rows, "")
		rows = append(rows, styles.InfoTextStyle.Render("  ╰─▶ Add purchases by appending lines to the coffee log"))

		return styles.CardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	period := report.CurrentPeriod()

	for _, member := range period.Members {
		bullet := lipgloss.NewStyle().Foreground(styles.Secondary).Render("●")
		label := lipgloss.NewStyle().Bold(true).Render(member.Label())
		size := styles.HelpStyle.Render(fmt.Sprintf("%.0f oz", member.Ounces))
		rows = append(rows, fmt.Sprintf("  %s %s  %s", bullet, label, size))
	}
	if period.Simultaneous() {
		rows = append(rows, styles.PeriodOpenStyle.Render(
			fmt.Sprintf("  %d bags open at once", period.MemberCount()),
		))
	}
	rows = append(rows, "")

	rows = append(rows, fmt.Sprintf("  Opened %s · %d day(s) · %.1f oz/day",
		period.Start.Format(dateFormat),
		period.Days(),
		period.OuncesPerDay(),
	))
	rows = append(rows, "")

	rows = append(rows, m.renderStockLine(period, cardWidth-8)...)

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderStockLine renders the projected-stock bar, or the no-projection hint
// when the open period could not be projected.
func (m *Model) renderStockLine(period *models.ConsumptionPeriod, width int) []string {
	var lines []string

	stats := m.state.GetStats()
	if stats == nil || !stats.HasProjection || !period.Projected {
		lines = append(lines, "  "+styles.StockUnknownStyle.Render(
			"Projection unavailable (not enough recent purchase history)"))
		return lines
	}

	daysLeft := stats.DaysRemaining
	percent := float64(daysLeft) / float64(period.Days()) * 100
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}

	lines = append(lines, "  "+m.stockBar.View(percent, "Stock left", width))

	daysStyle := styles.GetStockStyle(daysLeft, true)
	lines = append(lines, fmt.Sprintf("  Runs out around %s (%s)",
		period.End.Format(dateFormat),
		daysStyle.Render(fmt.Sprintf("%d day(s) left", daysLeft)),
	))

	return lines
}

// renderSummaryCard renders the lifetime totals.
func (m *Model) renderSummaryCard() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("∑")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("All Time")))
	rows = append(rows, "")

	report := m.state.GetReport()
	if report == nil || report.Summary.Purchases == 0 {
		rows = append(rows, styles.HelpStyle.Render("  Nothing to summarize yet"))
		return styles.CardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, rows...),
		)
	}

	s := report.Summary

	rows = append(rows, m.renderStatRow("Purchases", fmt.Sprintf("%d", s.Purchases)))
	rows = append(rows, m.renderStatRow("Total beans", fmt.Sprintf("%.0f oz", s.TotalOunces)))
	rows = append(rows, m.renderStatRow("Total spend", fmt.Sprintf("$%.2f", s.TotalCost)))
	rows = append(rows, m.renderStatRow("Consumption", fmt.Sprintf("%.2f oz/day", s.OuncesPerDay)))
	rows = append(rows, m.renderStatRow("Spend rate", fmt.Sprintf("$%.2f/day", s.CostPerDay)))
	rows = append(rows, m.renderStatRow("First purchase", s.FirstPurchase.Format(dateFormat)))
	rows = append(rows, m.renderStatRow("Last purchase", s.LastPurchase.Format(dateFormat)))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderStatRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(16).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return "  " + labelStyle.Render(label) + " " + valueStyle.Render(value)
}
