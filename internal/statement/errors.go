package statement

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
)

var (
	// ErrEmptyInput is returned when there are no timelines to resolve a range over.
	ErrEmptyInput = errors.New("no statement data")
	// ErrInvalidRange is returned when extending a timeline that has no days.
	ErrInvalidRange = errors.New("invalid timeline range")
	// ErrInconsistentOrder is returned when an account's entries do not follow
	// the declared order of their source.
	ErrInconsistentOrder = errors.New("entries inconsistent with declared order")
)

// OrderError describes the first entry that goes back in time for its account
// once the stream has been normalized to ascending order.
type OrderError struct {
	Account string
	Index   int // position in the normalized stream
	Prev    civil.Date
	Got     civil.Date
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("account %q: entry %d dated %s follows %s", e.Account, e.Index, e.Got, e.Prev)
}

func (e *OrderError) Unwrap() error { return ErrInconsistentOrder }
