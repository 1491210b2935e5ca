// Package report renders balance timelines and spending buckets.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/calendar"
	"github.com/tally-dev/tally/internal/model"
)

// WriteBalances writes one CSV row per day from start to end with each
// account's balance and their total. Every timeline must cover the range.
func WriteBalances(w io.Writer, timelines []*model.Timeline, start, end civil.Date) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(timelines)+2)
	header = append(header, "Date")
	for _, tl := range timelines {
		header = append(header, tl.Account)
	}
	header = append(header, "Total")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(header))
	for d := start; !d.After(end); d = d.AddDays(1) {
		total := decimal.Zero
		row[0] = calendar.Format(d, calendar.BalanceLayout)
		for i, tl := range timelines {
			bal, ok := tl.Balance(d)
			if !ok {
				return fmt.Errorf("account %q has no balance for %s", tl.Account, d)
			}
			row[i+1] = bal.String()
			total = total.Add(bal)
		}
		row[len(row)-1] = total.String()
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", d, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
