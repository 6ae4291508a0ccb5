package info

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"beanwatch/internal/ui/styles"
	"beanwatch/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderConfigCard())
	sections = append(sections, m.renderLogFormatCard())
	sections = append(sections, m.renderAboutCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	w := m.width - 6
	if w < 50 {
		w = 50
	}
	if w > 80 {
		w = 80
	}
	return w
}

// renderConfigCard renders the configuration paths and tuning knobs.
func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"))
	rows = append(rows, "")

	if m.config != nil {
		rows = append(rows, m.renderRow("Purchase Log", m.config.PurchasesPath))
		rows = append(rows, m.renderRow("Database", m.config.DatabasePath))
		rows = append(rows, m.renderRow("Rate Threshold", fmt.Sprintf("%.1f oz/day", m.config.OverlapThreshold)))
		rows = append(rows, m.renderRow("Lookback", fmt.Sprintf("%d days", m.config.LookbackDays)))
		rows = append(rows, m.renderRow("Low Stock Alert", fmt.Sprintf("%d days", m.config.LowStockDays)))
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderLogFormatCard documents the purchase log line format.
func (m *Model) renderLogFormatCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Log Format"))
	rows = append(rows, "")

	rows = append(rows, styles.HelpStyle.Render("One purchase per line, CSV:"))
	rows = append(rows, "")
	rows = append(rows, "  "+lipgloss.NewStyle().Foreground(styles.Secondary).
		Render("date,roaster,name,ounces,cost"))
	rows = append(rows, "  "+styles.HelpStyle.Render("2024-01-05,Heart,Colombia,12,18.50"))
	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("Edits to the file are picked up automatically."))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderAboutCard renders version information.
func (m *Model) renderAboutCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About Beanwatch"))
	rows = append(rows, "")

	rows = append(rows, m.renderRow("Version", version.Info()))
	rows = append(rows, m.renderRow("Go Version", runtime.Version()))
	rows = append(rows, m.renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))
	rows = append(rows, "")

	count := m.state.GetPurchaseCount()
	rows = append(rows, fmt.Sprintf("Purchases logged: %s",
		styles.InfoTextStyle.Render(fmt.Sprintf("%d", count))))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}
