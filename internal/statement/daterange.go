package statement

import (
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/tally-dev/tally/internal/model"
)

// DateRange returns the first day every account has data for and the last
// day any account has data for.
func DateRange(timelines []*model.Timeline) (start, end civil.Date, err error) {
	if len(timelines) == 0 {
		return civil.Date{}, civil.Date{}, ErrEmptyInput
	}
	for i, tl := range timelines {
		if tl.Empty() {
			return civil.Date{}, civil.Date{}, fmt.Errorf("timeline %d: %w", i, ErrInvalidRange)
		}
		if i == 0 || tl.Start().After(start) {
			start = tl.Start()
		}
		if i == 0 || tl.End().After(end) {
			end = tl.End()
		}
	}
	return start, end, nil
}
