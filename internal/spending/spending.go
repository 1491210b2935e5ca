// Package spending buckets outflows from balance timelines into periods and
// categories.
package spending

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/calendar"
	"github.com/tally-dev/tally/internal/category"
	"github.com/tally-dev/tally/internal/model"
)

// maxBacktrack bounds the search for the period containing the range start.
const maxBacktrack = 366

// ErrInvalidPeriod is returned for an inverted range or a period predicate
// that never fires.
var ErrInvalidPeriod = errors.New("invalid spending period")

// Categorizer attributes a description to a category label.
type Categorizer interface {
	Categorize(description string) string
}

// Aggregate walks every day from the start of the period containing start
// through end and returns one bucket per period, empty periods included.
// Only outflows count; entries categorized as ignored are skipped.
// currency prefixes each rendered transaction.
func Aggregate(timelines []*model.Timeline, isStart calendar.Predicate, start, end civil.Date, mapper Categorizer, currency string) ([]model.Bucket, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s before start %s", ErrInvalidPeriod, end, start)
	}

	first, err := periodStart(isStart, start)
	if err != nil {
		return nil, err
	}

	var buckets []model.Bucket
	var open *accumulator
	for d := first; !d.After(end); d = d.AddDays(1) {
		if isStart(d) {
			if open != nil {
				buckets = append(buckets, open.bucket())
			}
			open = newAccumulator(d)
		}
		for _, tl := range timelines {
			day, ok := tl.At(d)
			if !ok {
				continue
			}
			for _, e := range day.Entries {
				if !e.Outflow() {
					continue
				}
				label := mapper.Categorize(e.Description)
				if label == category.Ignored {
					continue
				}
				open.add(label, e.Amount.Neg(), fmt.Sprintf("%s%s: %s", currency, e.Amount.Neg().StringFixed(2), e.Description))
			}
		}
	}
	if open != nil {
		buckets = append(buckets, open.bucket())
	}
	return buckets, nil
}

func periodStart(isStart calendar.Predicate, from civil.Date) (civil.Date, error) {
	d := from
	for i := 0; i <= maxBacktrack; i++ {
		if isStart(d) {
			return d, nil
		}
		d = d.AddDays(-1)
	}
	return civil.Date{}, fmt.Errorf("%w: no period starts within %d days of %s", ErrInvalidPeriod, maxBacktrack, from)
}

type accumulator struct {
	start  civil.Date
	order  []string
	spends map[string]*model.CategorySpend
}

func newAccumulator(start civil.Date) *accumulator {
	return &accumulator{start: start, spends: make(map[string]*model.CategorySpend)}
}

func (a *accumulator) add(label string, amount decimal.Decimal, tx string) {
	cs, ok := a.spends[label]
	if !ok {
		cs = &model.CategorySpend{Category: label, Total: decimal.Zero}
		a.spends[label] = cs
		a.order = append(a.order, label)
	}
	cs.Total = cs.Total.Add(amount)
	cs.Transactions = append(cs.Transactions, tx)
}

func (a *accumulator) bucket() model.Bucket {
	b := model.Bucket{Start: a.start}
	for _, label := range a.order {
		b.Breakdown = append(b.Breakdown, *a.spends[label])
	}
	return b
}
