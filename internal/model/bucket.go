package model

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// CategorySpend accumulates outflows attributed to one category.
type CategorySpend struct {
	Category     string
	Total        decimal.Decimal // positive magnitude
	Transactions []string        // "£1.00: description"
}

// Bucket holds the spending breakdown of a single period.
// Breakdown is ordered by first appearance of each category in the period.
type Bucket struct {
	Start     civil.Date
	Breakdown []CategorySpend
}

// Get returns the spend recorded for category.
func (b Bucket) Get(category string) (CategorySpend, bool) {
	for _, cs := range b.Breakdown {
		if cs.Category == category {
			return cs, true
		}
	}
	return CategorySpend{}, false
}

// Total sums every category in the bucket.
func (b Bucket) Total() decimal.Decimal {
	total := decimal.Zero
	for _, cs := range b.Breakdown {
		total = total.Add(cs.Total)
	}
	return total
}
