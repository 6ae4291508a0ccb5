package periods

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"beanwatch/internal/models"
	"beanwatch/internal/ui/styles"
)

const dateFormat = "Jan 2, 2006"

// View renders the periods tab.
func (m *Model) View() string {
	periods := m.periods()

	var sections []string

	sections = append(sections, m.renderTitle(len(periods)))

	if len(periods) == 0 {
		sections = append(sections, styles.HelpStyle.Render("No consumption periods yet."))
	} else {
		sections = append(sections, m.renderPeriodList(periods))
		sections = append(sections, m.renderDetailCard(periods[m.clampedIndex(len(periods))]))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) clampedIndex(count int) int {
	if m.selectedIndex >= count {
		return count - 1
	}
	if m.selectedIndex < 0 {
		return 0
	}
	return m.selectedIndex
}

func (m *Model) renderTitle(count int) string {
	title := styles.TitleStyle.Render("Consumption Periods")
	subtitle := styles.HelpStyle.Render(
		fmt.Sprintf("%d period(s), newest first", count),
	)
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderPeriodList renders the scrollable period list with the selection
// cursor. The open (projected or running) period is always first.
func (m *Model) renderPeriodList(periods []models.ConsumptionPeriod) string {
	cardWidth := max(m.width-6, 40)
	selected := m.clampedIndex(len(periods))

	var rows []string

	header := fmt.Sprintf("  %-28s %6s %8s %9s %9s",
		"Range", "Days", "Oz", "Cost", "Oz/day")
	rows = append(rows, styles.TableHeaderStyle.Render(header))

	for i, p := range periods {
		line := fmt.Sprintf("%-28s %6d %8.0f %9.2f %9.2f",
			m.formatRange(p),
			p.Days(),
			p.TotalOunces(),
			p.TotalCost(),
			p.OuncesPerDay(),
		)

		if i == selected {
			rows = append(rows, styles.TableSelectedStyle.Render("▸ "+line))
		} else {
			rows = append(rows, styles.TableCellStyle.Render("  "+line))
		}
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) formatRange(p models.ConsumptionPeriod) string {
	r := fmt.Sprintf("%s → %s",
		p.Start.Format("2006-01-02"),
		p.End.Format("2006-01-02"),
	)
	if p.Projected {
		r += " *"
	}
	return r
}

// renderDetailCard renders the selected period's member purchases.
func (m *Model) renderDetailCard(p models.ConsumptionPeriod) string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Period Detail")))
	rows = append(rows, "")

	rows = append(rows, fmt.Sprintf("  %s → %s (%d days)",
		p.Start.Format(dateFormat),
		p.End.Format(dateFormat),
		p.Days(),
	))
	if p.Projected {
		rows = append(rows, "  "+styles.ProjectedStyle.Render("End date is a projection, not an observation"))
	}
	if p.Simultaneous() {
		rows = append(rows, "  "+styles.PeriodOpenStyle.Render(
			fmt.Sprintf("%d bags consumed concurrently", p.MemberCount()),
		))
	}
	rows = append(rows, "")

	for _, member := range p.Members {
		bullet := lipgloss.NewStyle().Foreground(styles.Secondary).Render("●")
		label := lipgloss.NewStyle().Bold(true).Render(member.Label())
		detail := styles.HelpStyle.Render(fmt.Sprintf("%s · %.0f oz · $%.2f",
			member.Date.Format(dateFormat), member.Ounces, member.Cost))
		rows = append(rows, fmt.Sprintf("  %s %s  %s", bullet, label, detail))
	}
	rows = append(rows, "")

	divider := lipgloss.NewStyle().Foreground(styles.Subtle).Render(
		"  " + strings.Repeat("─", max(cardWidth-8, 20)),
	)
	rows = append(rows, divider)
	rows = append(rows, fmt.Sprintf("  %.1f oz/day · $%.2f/day",
		p.OuncesPerDay(), p.CostPerDay()))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
