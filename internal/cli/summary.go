package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wellcrafted/reawaken/internal/model"
)

// RenderRunSummary renders a run result as styled terminal output: headline
// metrics, the per-representative table, and the derived insights.
func RenderRunSummary(result *model.RunResult) string {
	var sections []string

	metrics := strings.Join([]string{
		fmt.Sprintf("Dormant customers   %d", result.Summary.TotalDormantCustomers),
		fmt.Sprintf("Value at risk       %s", model.FormatDollars(result.Summary.TotalValueAtRisk)),
		fmt.Sprintf("Average churn risk  %.1f%%", result.Summary.AverageChurnRisk*100),
		fmt.Sprintf("Data accuracy       %.1f%%", result.DataAccuracyScore*100),
		fmt.Sprintf("Customers analyzed  %d", result.TotalCustomersAnalyzed),
	}, "\n")
	sections = append(sections, RenderBox("Dormant Customer Analysis", metrics))

	if len(result.SalespersonSummaries) > 0 {
		sections = append(sections, renderRepTable(result.SalespersonSummaries))
	}

	if insights := renderInsights(result.Insights); insights != "" {
		sections = append(sections, RenderBox("Insights", insights))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderRepTable(summaries []model.RepSummary) string {
	header := TableHeaderStyle.Render(fmt.Sprintf("%-24s %10s %14s %6s %6s %8s",
		"Salesperson", "Customers", "Value at Risk", "High", "Quick", "Risk"))

	rows := make([]string, 0, len(summaries)+1)
	rows = append(rows, header)
	for _, s := range summaries {
		rows = append(rows, fmt.Sprintf("%-24s %10d %14s %6d %6d %7.1f%%",
			truncate(s.Salesperson, 24),
			s.DormantCustomerCount,
			model.FormatDollars(s.TotalValueAtRisk),
			s.HighValueCount,
			s.QuickWinCount,
			s.AverageChurnRisk*100))
	}
	return strings.Join(rows, "\n")
}

func renderInsights(insights model.InsightSet) string {
	if insights.Error != "" {
		return WarningStyle.Render(insights.Error)
	}

	var lines []string
	for _, s := range []string{insights.TopPriorityRep, insights.TopPriorityCustomer, insights.QuickWins, insights.Seasonal} {
		if s != "" {
			lines = append(lines, "• "+s)
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
