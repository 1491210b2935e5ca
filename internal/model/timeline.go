package model

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Day is one calendar day of an account's timeline.
type Day struct {
	Date    civil.Date
	Balance decimal.Decimal
	Entries []Entry // arrival order after sort resolution
}

// Timeline is the gap-free daily balance history of a single account.
// Days holds one element per calendar day from Start to End, in order.
type Timeline struct {
	Account string
	Days    []Day
}

// Empty reports whether the timeline has no days.
func (t *Timeline) Empty() bool { return t == nil || len(t.Days) == 0 }

// Len returns the number of days covered.
func (t *Timeline) Len() int { return len(t.Days) }

// Start returns the first day. The zero Date is returned for an empty timeline.
func (t *Timeline) Start() civil.Date {
	if t.Empty() {
		return civil.Date{}
	}
	return t.Days[0].Date
}

// End returns the last day. The zero Date is returned for an empty timeline.
func (t *Timeline) End() civil.Date {
	if t.Empty() {
		return civil.Date{}
	}
	return t.Days[len(t.Days)-1].Date
}

// At returns the record for d, if d lies within the timeline.
func (t *Timeline) At(d civil.Date) (Day, bool) {
	if t.Empty() {
		return Day{}, false
	}
	i := d.DaysSince(t.Days[0].Date)
	if i < 0 || i >= len(t.Days) || t.Days[i].Date != d {
		return Day{}, false
	}
	return t.Days[i], true
}

// Balance returns the balance of record for d.
func (t *Timeline) Balance(d civil.Date) (decimal.Decimal, bool) {
	day, ok := t.At(d)
	return day.Balance, ok
}
