package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/calendar"
	"github.com/tally-dev/tally/internal/model"
)

// HSBCParser parses HSBC CSV exports, which list date, description and
// amount newest first and carry no balance. Balances are synthesized as a
// running total from zero, so they are relative to the start of the file.
type HSBCParser struct{}

const (
	hsbcNumFields = 3
	hsbcColDate   = 0
	hsbcColDesc   = 1
	hsbcColAmount = 2
)

// Format returns the parser name.
func (p *HSBCParser) Format() string { return "hsbc" }

// Order returns the order Parse yields entries in. The file itself is
// newest first; Parse reverses it to accumulate balances.
func (p *HSBCParser) Order() model.SortOrder { return model.Ascending }

// Parse reads an HSBC CSV. opts.Account is required.
func (p *HSBCParser) Parse(r io.Reader, opts Options) ([]model.Entry, error) {
	if opts.Account == "" {
		return nil, malformed(0, "hsbc statements need an account name")
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var entries []model.Entry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading hsbc CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)

		date, err := calendar.Parse(calendar.StatementLayout, rec[hsbcColDate])
		if err != nil {
			continue
		}
		if len(rec) < hsbcNumFields {
			return nil, malformed(line, "expected %d fields, got %d", hsbcNumFields, len(rec))
		}
		amount, err := parseAmount(rec[hsbcColAmount])
		if err != nil {
			return nil, malformed(line, "%v", err)
		}

		entries = append(entries, model.Entry{
			Date:        date,
			Amount:      amount,
			Description: cleanText(rec[hsbcColDesc]),
			Account:     opts.Account,
		})
	}

	slices.Reverse(entries)
	balance := decimal.Zero
	for i := range entries {
		balance = balance.Add(entries[i].Amount)
		entries[i].Balance = balance
	}
	return entries, nil
}
