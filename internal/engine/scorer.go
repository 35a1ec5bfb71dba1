package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wellcrafted/reawaken/internal/model"
)

// Churn-risk blend weights. These are tunable heuristics, not learned
// parameters; tests probe boundary sensitivity against these names.
const (
	RecencyWeight   = 0.4
	FrequencyWeight = 0.3
	ValueWeight     = 0.2
	TrendWeight     = 0.1

	// RecencyHorizonDays caps the recency sub-score: anything 90+ days out
	// is maximally stale.
	RecencyHorizonDays = 90

	// ValueBaseline is the average order value at which the value sub-score
	// reaches zero risk.
	ValueBaseline = 1000

	// LTV projection: avg order value times max(orders*2, floor).
	LTVOrderMultiplier = 2
	LTVOrderFloor      = 6
)

// seasons maps calendar months to their season label.
var seasons = []struct {
	name   string
	months [3]int
}{
	{"Winter", [3]int{12, 1, 2}},
	{"Spring", [3]int{3, 4, 5}},
	{"Summer", [3]int{6, 7, 8}},
	{"Fall", [3]int{9, 10, 11}},
}

// ScoreCustomer computes the full scored view of one dormant customer from
// their windowed transactions.
func ScoreCustomer(win CustomerWindow, cfg model.AnalysisConfig) model.DormantCustomer {
	txns := win.Transactions
	orderCount := len(txns)

	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.NetPrice)
	}
	avg := decimal.Zero
	if orderCount > 0 {
		avg = total.DivRound(decimal.NewFromInt(int64(orderCount)), 8)
	}

	daysSince := int(cfg.AsOfDate.Sub(win.LastOrder).Hours() / 24)
	if daysSince < 0 {
		daysSince = 0
	}

	estOrders := orderCount * LTVOrderMultiplier
	if estOrders < LTVOrderFloor {
		estOrders = LTVOrderFloor
	}

	return model.DormantCustomer{
		Customer:          win.Customer,
		Salesperson:       txns[0].Salesperson,
		LastOrderDate:     win.LastOrder,
		DaysSinceOrder:    daysSince,
		TotalValue:        total,
		OrderCount:        orderCount,
		AverageOrderValue: avg.Round(2),
		ChurnRiskScore:    churnRisk(daysSince, orderCount, avg, txns, cfg),
		LifetimeValue:     avg.Mul(decimal.NewFromInt(int64(estOrders))).Round(2),
		PreferredProducts: preferredProducts(txns),
		SeasonalPattern:   seasonalPattern(txns, cfg.MinOrdersForPattern),
	}
}

// churnRisk blends four normalized sub-scores. Each sub-score lands in
// [0,1] with 1 meaning higher risk; the weighted sum is clamped again to
// guard against float drift.
func churnRisk(daysSince, orderCount int, avg decimal.Decimal, txns []model.SalesTransaction, cfg model.AnalysisConfig) float64 {
	recency := clamp01(float64(daysSince) / RecencyHorizonDays)

	// Orders per day of window; a coarse density proxy, not a true rate.
	frequency := float64(orderCount) / float64(cfg.AnalysisPeriodMonths*30)
	frequencyScore := clamp01(1 - frequency)

	valueScore := clamp01(1 - avg.InexactFloat64()/ValueBaseline)

	trendScore := 1 - valueTrend(txns)

	risk := recency*RecencyWeight +
		frequencyScore*FrequencyWeight +
		valueScore*ValueWeight +
		trendScore*TrendWeight

	return clamp01(risk)
}

// valueTrend fits a least-squares line through monthly-aggregated spend and
// maps the slope into [0,1] via 0.5 + slope/mean. 0.5 is neutral; below 0.5
// means spend is declining. Fewer than two distinct months of data, or a
// zero mean, yields the neutral value.
func valueTrend(txns []model.SalesTransaction) float64 {
	monthly := make(map[int]float64)
	for _, t := range txns {
		key := t.PostedDate.Year()*12 + int(t.PostedDate.Month()) - 1
		monthly[key] += t.NetPrice.InexactFloat64()
	}
	if len(monthly) < 2 {
		return 0.5
	}

	keys := make([]int, 0, len(monthly))
	for k := range monthly {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	n := float64(len(keys))
	var sumX, sumY, sumXY, sumXX float64
	for i, k := range keys {
		x := float64(i)
		y := monthly[k]
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	mean := sumY / n
	if mean == 0 {
		return 0.5
	}

	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	return clamp01(0.5 + slope/mean)
}

// seasonalPattern buckets orders by calendar month and labels the customer
// by the season of their busiest month. Ties resolve to the lowest month
// number so the result never depends on iteration order.
func seasonalPattern(txns []model.SalesTransaction, minOrders int) string {
	if len(txns) < minOrders {
		return ""
	}

	var counts [13]int
	for _, t := range txns {
		counts[int(t.PostedDate.Month())]++
	}

	peak, peakCount := 0, 0
	for m := 1; m <= 12; m++ {
		if counts[m] > peakCount {
			peak, peakCount = m, counts[m]
		}
	}
	if peak == 0 {
		return ""
	}

	for _, s := range seasons {
		for _, m := range s.months {
			if m == peak {
				return s.name + " buyer"
			}
		}
	}
	return ""
}

// preferredProducts returns up to three items by summed quantity,
// descending, ties broken by item name.
func preferredProducts(txns []model.SalesTransaction) []string {
	quantities := make(map[string]int)
	for _, t := range txns {
		if t.Item == "" {
			continue
		}
		quantities[t.Item] += t.Quantity
	}

	items := make([]string, 0, len(quantities))
	for item := range quantities {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if quantities[items[i]] != quantities[items[j]] {
			return quantities[items[i]] > quantities[items[j]]
		}
		return items[i] < items[j]
	})

	if len(items) > 3 {
		items = items[:3]
	}
	return items
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
