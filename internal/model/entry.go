package model

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// SortOrder is the chronological direction a statement source lists its entries in.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

func (o SortOrder) String() string {
	switch o {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return fmt.Sprintf("SortOrder(%d)", int(o))
	}
}

// ParseSortOrder parses "ascending" or "descending" (case-insensitive).
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascending", "asc":
		return Ascending, nil
	case "descending", "desc":
		return Descending, nil
	}
	return 0, fmt.Errorf("unknown sort order %q", s)
}

// Entry is a single normalized statement line.
type Entry struct {
	Date        civil.Date
	Amount      decimal.Decimal // negative = outflow
	Description string
	Balance     decimal.Decimal // may be synthesized by the reader
	Account     string
}

// Outflow reports whether the entry moves money out of the account.
func (e Entry) Outflow() bool { return e.Amount.IsNegative() }

// Stream is the fully materialized output of one reader over one file,
// tagged with the order the file lists entries in.
type Stream struct {
	Source  string
	Order   SortOrder
	Entries []Entry
}
