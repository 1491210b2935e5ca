package statement

import (
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/tally-dev/tally/internal/model"
)

// Extend appends days after the timeline's last day up to and including
// target, carrying the last balance forward. It is a no-op when target is not
// after the last day.
func Extend(tl *model.Timeline, target civil.Date) error {
	if tl.Empty() {
		return ErrInvalidRange
	}
	last := tl.Days[len(tl.Days)-1]
	for d := last.Date.AddDays(1); !d.After(target); d = d.AddDays(1) {
		tl.Days = append(tl.Days, model.Day{Date: d, Balance: last.Balance})
	}
	return nil
}

// ExtendAll extends every timeline to target.
func ExtendAll(timelines []*model.Timeline, target civil.Date) error {
	for _, tl := range timelines {
		if err := Extend(tl, target); err != nil {
			if tl != nil {
				return fmt.Errorf("extending %q: %w", tl.Account, err)
			}
			return err
		}
	}
	return nil
}
