package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"beanwatch/internal/ui/components"
	"beanwatch/internal/ui/styles"
)

// View renders the history tab.
func (m *Model) View() string {
	if m.loading {
		return m.renderLoading()
	}
	if len(m.months) == 0 {
		return m.renderEmpty()
	}

	var sections []string

	sections = append(sections,
		m.renderHeader(),
		m.renderConsumptionChart(),
		m.renderMonthlyBars(),
		m.renderYearlyTable(),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderLoading() string {
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(styles.HelpStyle.Render("Loading history..."))
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("History"),
		"",
		styles.HelpStyle.Render("No consumption history in the selected range."),
		styles.HelpStyle.Render("Press 't' to widen the time range."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("History")

	rangeStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)

	rangeIndicator := rangeStyle.Render(fmt.Sprintf("[t] %s", m.timeRange.String()))

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", rangeIndicator)

	var subtitle string
	if len(m.months) > 0 {
		first := m.months[0]
		last := m.months[len(m.months)-1]
		subtitle = styles.HelpStyle.Render(fmt.Sprintf("%s → %s (%d months)",
			first.Key(), last.Key(), len(m.months)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

// renderConsumptionChart renders ounces vs cost per month as a dual line chart.
func (m *Model) renderConsumptionChart() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Monthly Trend")), "")

	ounces := make([]float64, len(m.months))
	cost := make([]float64, len(m.months))
	for i, mt := range m.months {
		ounces[i] = mt.Ounces
		cost[i] = mt.Cost
	}

	chartWidth := max(cardWidth-12, 30)
	chartHeight := 8

	chart := components.RenderDualLineChart(ounces, cost, chartWidth, chartHeight,
		fmt.Sprintf("%d months - ounces vs cost", len(m.months)))

	for _, line := range strings.Split(chart, "\n") {
		rows = append(rows, "  "+line)
	}

	rows = append(rows, "")
	legend := components.RenderLegend([]components.LegendItem{
		{Label: "Ounces", Color: lipgloss.Color("178")},
		{Label: "Cost", Color: lipgloss.Color("40")},
	})
	rows = append(rows, "  "+legend)
	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderMonthlyBars renders the month buckets as a horizontal bar chart.
func (m *Model) renderMonthlyBars() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("▤")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Ounces per Month")), "")

	values := make([]float64, len(m.months))
	labels := make([]string, len(m.months))
	for i, mt := range m.months {
		values[i] = mt.Ounces
		labels[i] = mt.Key()
	}

	barChart := components.RenderBarChart(values, labels, max(cardWidth-8, 30))
	for _, line := range strings.Split(barChart, "\n") {
		rows = append(rows, "  "+line)
	}

	// Peak month
	peakIdx := 0
	for i, v := range values {
		if v > values[peakIdx] {
			peakIdx = i
		}
	}
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  Peak: %s (%.0f oz, %.1f oz/day)",
		lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Render(labels[peakIdx]),
		values[peakIdx],
		m.months[peakIdx].OuncesPerDay(),
	))
	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderYearlyTable renders the yearly roll-up.
func (m *Model) renderYearlyTable() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("∑")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("By Year")), "")

	if len(m.years) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No yearly data"))
	} else {
		header := fmt.Sprintf("  %-6s %8s %10s %9s %10s",
			"Year", "Oz", "Cost", "Oz/day", "Cost/day")
		rows = append(rows, styles.TableHeaderStyle.Render(header))

		for _, y := range m.years {
			rows = append(rows, styles.TableCellStyle.Render(fmt.Sprintf(
				" %-6s %8.0f %10.2f %9.2f %10.2f",
				y.Key(), y.Ounces, y.Cost, y.OuncesPerDay(), y.CostPerDay(),
			)))
		}
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
