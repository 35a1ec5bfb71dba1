package engine

import (
	"sort"
	"time"

	"github.com/wellcrafted/reawaken/internal/model"
)

// CustomerWindow is one customer's transactions restricted to the analysis
// window, in posted-date order.
type CustomerWindow struct {
	Customer     string
	LastOrder    time.Time
	Transactions []model.SalesTransaction
}

// SelectDormant finds the customers whose last order falls inside the quiet
// sub-window: on or after the window start, strictly before the dormancy
// cutoff. A last order exactly on the cutoff counts as still active, and a
// customer with no orders in the window at all is never dormant (they were
// never active in the period to begin with).
//
// Results are ordered by customer identifier so a run is reproducible
// regardless of input ordering.
func SelectDormant(records []model.SalesTransaction, cfg model.AnalysisConfig) []CustomerWindow {
	start := cfg.AnalysisStart()
	cutoff := cfg.DormancyCutoff()

	byCustomer := make(map[string][]model.SalesTransaction)
	for _, rec := range records {
		if rec.PostedDate.Before(start) {
			continue
		}
		byCustomer[rec.Customer] = append(byCustomer[rec.Customer], rec)
	}

	customers := make([]string, 0, len(byCustomer))
	for c := range byCustomer {
		customers = append(customers, c)
	}
	sort.Strings(customers)

	var dormant []CustomerWindow
	for _, customer := range customers {
		txns := byCustomer[customer]
		sort.SliceStable(txns, func(i, j int) bool {
			return txns[i].PostedDate.Before(txns[j].PostedDate)
		})

		last := txns[len(txns)-1].PostedDate
		if last.Before(start) || !last.Before(cutoff) {
			continue
		}

		dormant = append(dormant, CustomerWindow{
			Customer:     customer,
			LastOrder:    last,
			Transactions: txns,
		})
	}

	return dormant
}
