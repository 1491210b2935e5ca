package report

import (
	"fmt"
	"io"

	"github.com/tally-dev/tally/internal/calendar"
	"github.com/tally-dev/tally/internal/model"
)

// WriteSpending writes each bucket as a "<label> beginning DD/MM/YY:" line
// followed by its categories and their transactions.
func WriteSpending(w io.Writer, buckets []model.Bucket, currency, label string) error {
	for _, b := range buckets {
		if _, err := fmt.Fprintf(w, "%s beginning %s:\n", label, calendar.Format(b.Start, calendar.PeriodLayout)); err != nil {
			return err
		}
		for _, cs := range b.Breakdown {
			if _, err := fmt.Fprintf(w, "  %s: %s%s\n", cs.Category, currency, cs.Total.StringFixed(2)); err != nil {
				return err
			}
			for _, tx := range cs.Transactions {
				if _, err := fmt.Fprintf(w, "    %s\n", tx); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
