// Package engine implements the dormancy detection and scoring pipeline.
package engine

import "strings"

// ColumnRule is a single candidate predicate for locating a column by its
// header name. Rules are tried in order against every header; the first
// header any rule matches wins.
type ColumnRule struct {
	Name  string
	Match func(header string) bool
}

// contains builds a case-insensitive substring rule.
func contains(substr string) ColumnRule {
	return ColumnRule{
		Name: substr,
		Match: func(header string) bool {
			return strings.Contains(strings.ToLower(header), substr)
		},
	}
}

// Column-resolution strategies for the two input tables. Ordered: earlier
// rules take precedence when headers are ambiguous.
var (
	customerColumnRules = []ColumnRule{contains("customer")}

	repColumnRules = []ColumnRule{
		contains("salesperson"),
		contains("assigned"),
		contains("rep"),
	}

	postedDateColumnRules  = []ColumnRule{contains("posted")}
	invoiceDateColumnRules = []ColumnRule{contains("invoice date"), contains("invoice")}
	itemColumnRules        = []ColumnRule{contains("item"), contains("product")}
	quantityColumnRules    = []ColumnRule{contains("qty"), contains("quantity")}
	priceColumnRules       = []ColumnRule{contains("net price"), contains("price")}
)

// ResolveColumn returns the index of the first header matched by any rule,
// or -1 when no header matches.
func ResolveColumn(headers []string, rules []ColumnRule) int {
	for _, rule := range rules {
		for i, h := range headers {
			if rule.Match(h) {
				return i
			}
		}
	}
	return -1
}
