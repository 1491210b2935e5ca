// Package statement turns streams of statement entries into gap-free
// per-account balance timelines.
package statement

import (
	"fmt"
	"slices"
	"sort"

	"cloud.google.com/go/civil"

	"github.com/tally-dev/tally/internal/model"
)

// Normalize returns entries in oldest-first walk order. A descending source is
// reversed as a whole; this is a global reversal, not a per-account sort, so
// readers must guarantee each account appears in one consistent order.
// The input slice is never modified.
func Normalize(entries []model.Entry, order model.SortOrder) []model.Entry {
	out := slices.Clone(entries)
	if order == model.Descending {
		slices.Reverse(out)
	}
	return out
}

// CheckOrder verifies that every account's dates are non-decreasing in a
// normalized stream.
func CheckOrder(entries []model.Entry) error {
	last := make(map[string]civil.Date)
	for i, e := range entries {
		prev, seen := last[e.Account]
		if seen && e.Date.Before(prev) {
			return &OrderError{Account: e.Account, Index: i, Prev: prev, Got: e.Date}
		}
		last[e.Account] = e.Date
	}
	return nil
}

// Build groups entries by account and produces one timeline per account.
//
// When several entries share a day the balance of record is that of the entry
// walked last. For descending sources that is the first of them in file order,
// which assumes exports list intra-day entries most-recent-first too.
func Build(entries []model.Entry, order model.SortOrder) (map[string]*model.Timeline, error) {
	walk := Normalize(entries, order)
	if err := CheckOrder(walk); err != nil {
		return nil, fmt.Errorf("building timelines: %w", err)
	}
	return build(walk), nil
}

// BuildAll merges several streams into one timeline per account. Each stream
// is normalized and checked on its own; entries of an account that span
// several streams are then ordered by date, keeping each day's arrival order.
func BuildAll(streams []model.Stream) (map[string]*model.Timeline, error) {
	var seen []string
	byAccount := make(map[string][]model.Entry)
	for _, s := range streams {
		walk := Normalize(s.Entries, s.Order)
		if err := CheckOrder(walk); err != nil {
			return nil, fmt.Errorf("building timelines from %s: %w", s.Source, err)
		}
		for _, e := range walk {
			if _, ok := byAccount[e.Account]; !ok {
				seen = append(seen, e.Account)
			}
			byAccount[e.Account] = append(byAccount[e.Account], e)
		}
	}

	var merged []model.Entry
	for _, acct := range seen {
		es := byAccount[acct]
		sort.SliceStable(es, func(i, j int) bool { return es[i].Date.Before(es[j].Date) })
		merged = append(merged, es...)
	}
	return build(merged), nil
}

type pending struct {
	days       map[civil.Date]*model.Day
	start, end civil.Date
}

// build assumes walk is ascending per account.
func build(walk []model.Entry) map[string]*model.Timeline {
	accounts := make(map[string]*pending)
	for _, e := range walk {
		p, ok := accounts[e.Account]
		if !ok {
			p = &pending{days: make(map[civil.Date]*model.Day), start: e.Date}
			accounts[e.Account] = p
		}
		d, ok := p.days[e.Date]
		if !ok {
			d = &model.Day{Date: e.Date}
			p.days[e.Date] = d
		}
		d.Balance = e.Balance
		d.Entries = append(d.Entries, e)
		p.end = e.Date
	}

	timelines := make(map[string]*model.Timeline, len(accounts))
	for name, p := range accounts {
		timelines[name] = fill(name, p)
	}
	return timelines
}

// fill walks every day from start to end, carrying the last balance forward
// over days without entries.
func fill(name string, p *pending) *model.Timeline {
	tl := &model.Timeline{
		Account: name,
		Days:    make([]model.Day, 0, p.end.DaysSince(p.start)+1),
	}
	var carry model.Day
	for d := p.start; !d.After(p.end); d = d.AddDays(1) {
		if rec, ok := p.days[d]; ok {
			carry = *rec
			tl.Days = append(tl.Days, carry)
			continue
		}
		tl.Days = append(tl.Days, model.Day{Date: d, Balance: carry.Balance})
	}
	return tl
}

// Sorted returns the timelines ordered by account name.
func Sorted(timelines map[string]*model.Timeline) []*model.Timeline {
	out := make([]*model.Timeline, 0, len(timelines))
	for _, tl := range timelines {
		out = append(out, tl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Account < out[j].Account })
	return out
}
