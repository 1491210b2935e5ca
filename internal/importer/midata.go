package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/tally-dev/tally/internal/calendar"
	"github.com/tally-dev/tally/internal/model"
)

// MidataParser parses midata exports: delimited rows of
// Date|Type|Merchant/Description|Debit/Credit|Balance, newest first.
// Amounts look like -£3.01 or +£400.71.
type MidataParser struct{}

const (
	midataDefaultDelimiter = '|'
	midataMinFields        = 5
	midataColDate          = 0
	midataColDesc          = 2
	midataColAmount        = 3
	midataColBalance       = 4
)

// Format returns the parser name.
func (p *MidataParser) Format() string { return "midata" }

// Order returns the order Parse yields entries in.
func (p *MidataParser) Order() model.SortOrder { return model.Descending }

// Parse reads a midata export. opts.Account is required; opts.Delimiter
// defaults to '|'. The header and the trailing overdraft-limit footer are
// skipped because they do not start with a date.
func (p *MidataParser) Parse(r io.Reader, opts Options) ([]model.Entry, error) {
	if opts.Account == "" {
		return nil, malformed(0, "midata statements need an account name")
	}

	cr := csv.NewReader(r)
	cr.Comma = midataDefaultDelimiter
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var entries []model.Entry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading midata export: %w", err)
		}
		line, _ := cr.FieldPos(0)

		date, err := calendar.Parse(calendar.StatementLayout, rec[midataColDate])
		if err != nil {
			continue
		}
		if len(rec) < midataMinFields {
			return nil, malformed(line, "expected at least %d fields, got %d", midataMinFields, len(rec))
		}
		amount, err := parseAmount(rec[midataColAmount])
		if err != nil {
			return nil, malformed(line, "%v", err)
		}
		balance, err := parseAmount(rec[midataColBalance])
		if err != nil {
			return nil, malformed(line, "%v", err)
		}

		entries = append(entries, model.Entry{
			Date:        date,
			Amount:      amount,
			Description: cleanText(rec[midataColDesc]),
			Balance:     balance,
			Account:     opts.Account,
		})
	}
	return entries, nil
}
