package sheets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wellcrafted/reawaken/internal/model"
)

// SheetData is the prepared contents of one tab. Building is pure; only the
// writer touches the Sheets API.
type SheetData struct {
	Title  string
	Values [][]any
}

// Fixed tab titles. Representative tabs use the rep's name.
const (
	summarySheetTitle      = "Executive Summary"
	consolidatedSheetTitle = "All Dormant Customers"
	dashboardSheetTitle    = "Dashboard"
)

// maxSheetTitleLen keeps rep names inside the Sheets tab-title limit.
const maxSheetTitleLen = 80

// BuildReport prepares every tab of the report: executive summary, one tab
// per representative, the consolidated customer list, and the risk/value
// dashboard.
func BuildReport(result *model.RunResult) []SheetData {
	tabs := []SheetData{
		{Title: summarySheetTitle, Values: summaryValues(result)},
	}

	for _, rep := range result.SalespersonSummaries {
		tabs = append(tabs, SheetData{
			Title:  sheetTitle(rep.Salesperson),
			Values: repValues(rep, customersForRep(result.DormantCustomers, rep.Salesperson)),
		})
	}

	tabs = append(tabs,
		SheetData{Title: consolidatedSheetTitle, Values: consolidatedValues(result.DormantCustomers)},
		SheetData{Title: dashboardSheetTitle, Values: dashboardValues(result.DormantCustomers)},
	)

	return tabs
}

func summaryValues(result *model.RunResult) [][]any {
	values := [][]any{
		{"Dormant Customer Analysis Report"},
		{fmt.Sprintf("Generated: %s", result.ProcessingTimestamp.Format("January 2, 2006 at 3:04 PM"))},
		{},
		{"KEY METRICS"},
		{"Total Dormant Customers", result.Summary.TotalDormantCustomers},
		{"Total Value at Risk", model.FormatDollars(result.Summary.TotalValueAtRisk)},
		{"Average Churn Risk", fmt.Sprintf("%.1f%%", result.Summary.AverageChurnRisk*100)},
		{"Data Accuracy Score", fmt.Sprintf("%.1f%%", result.DataAccuracyScore*100)},
		{"Customers Analyzed", result.TotalCustomersAnalyzed},
		{},
		{"STRATEGIC INSIGHTS"},
	}

	for _, insight := range insightLines(result.Insights) {
		values = append(values, []any{"• " + insight})
	}

	values = append(values,
		[]any{},
		[]any{"SALESPERSON PERFORMANCE SUMMARY"},
		[]any{"Salesperson", "Dormant Customers", "Value at Risk", "High Value", "Quick Wins", "Avg Churn Risk"},
	)
	for _, s := range result.SalespersonSummaries {
		values = append(values, []any{
			s.Salesperson,
			s.DormantCustomerCount,
			model.FormatDollars(s.TotalValueAtRisk),
			s.HighValueCount,
			s.QuickWinCount,
			fmt.Sprintf("%.1f%%", s.AverageChurnRisk*100),
		})
	}

	return values
}

func insightLines(insights model.InsightSet) []string {
	if insights.Error != "" {
		return []string{insights.Error}
	}
	var lines []string
	for _, s := range []string{insights.TopPriorityRep, insights.TopPriorityCustomer, insights.QuickWins, insights.Seasonal} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

var customerHeader = []any{
	"Customer", "Salesperson", "Last Order", "Days Since Order", "Window Value",
	"Orders", "Avg Order Value", "Churn Risk", "Lifetime Value", "Preferred Products", "Seasonal Pattern",
}

func customerRow(c model.DormantCustomer) []any {
	return []any{
		c.Customer,
		c.Salesperson,
		c.LastOrderDate.Format("2006-01-02"),
		c.DaysSinceOrder,
		model.FormatDollars(c.TotalValue),
		c.OrderCount,
		model.FormatDollars(c.AverageOrderValue),
		fmt.Sprintf("%.1f%%", c.ChurnRiskScore*100),
		model.FormatDollars(c.LifetimeValue),
		strings.Join(c.PreferredProducts, ", "),
		c.SeasonalPattern,
	}
}

func repValues(rep model.RepSummary, customers []model.DormantCustomer) [][]any {
	values := [][]any{
		{fmt.Sprintf("Dormant Customers — %s", rep.Salesperson)},
		{"Value at Risk", model.FormatDollars(rep.TotalValueAtRisk)},
		{"Average Churn Risk", fmt.Sprintf("%.1f%%", rep.AverageChurnRisk*100)},
		{},
		customerHeader,
	}
	for _, c := range customers {
		values = append(values, customerRow(c))
	}
	return values
}

func consolidatedValues(customers []model.DormantCustomer) [][]any {
	sorted := make([]model.DormantCustomer, len(customers))
	copy(sorted, customers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalValue.GreaterThan(sorted[j].TotalValue)
	})

	values := [][]any{customerHeader}
	for _, c := range sorted {
		values = append(values, customerRow(c))
	}
	return values
}

// riskBands partition churn risk for the dashboard.
var riskBands = []struct {
	label string
	lo    float64
	hi    float64
}{
	{"Low (< 40%)", 0, 0.4},
	{"Medium (40-70%)", 0.4, 0.7},
	{"High (> 70%)", 0.7, 1.01},
}

func dashboardValues(customers []model.DormantCustomer) [][]any {
	values := [][]any{
		{"Risk / Value Dashboard"},
		{},
		{"Churn Risk Band", "Customers", "Value at Risk"},
	}

	for _, band := range riskBands {
		count := 0
		total := decimal.Zero
		for _, c := range customers {
			if c.ChurnRiskScore >= band.lo && c.ChurnRiskScore < band.hi {
				count++
				total = total.Add(c.TotalValue)
			}
		}
		values = append(values, []any{band.label, count, model.FormatDollars(total)})
	}

	return values
}

// customersForRep filters the run's customers to one rep, sorted by window
// value descending.
func customersForRep(customers []model.DormantCustomer, rep string) []model.DormantCustomer {
	var out []model.DormantCustomer
	for _, c := range customers {
		if c.Salesperson == rep {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalValue.GreaterThan(out[j].TotalValue)
	})
	return out
}

// sheetTitle sanitizes a rep name into a legal tab title.
func sheetTitle(rep string) string {
	cleaned := strings.NewReplacer("[", "(", "]", ")", "*", "", "?", "", ":", "-", "\\", "/", "/", "-").Replace(rep)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		cleaned = "Unassigned"
	}
	if len(cleaned) > maxSheetTitleLen {
		cleaned = cleaned[:maxSheetTitleLen]
	}
	return cleaned
}
