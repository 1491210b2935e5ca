package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/tally-dev/tally/internal/calendar"
	"github.com/tally-dev/tally/internal/model"
)

// NatwestParser parses NatWest CSV exports. Fields may be quoted and contain
// commas; text cells carry a leading apostrophe.
type NatwestParser struct{}

const (
	natwestMinFields  = 6
	natwestColDate    = 0
	natwestColDesc    = 2
	natwestColValue   = 3
	natwestColBalance = 4
	natwestColAccount = 5
)

// Format returns the parser name.
func (p *NatwestParser) Format() string { return "natwest" }

// Order returns the order Parse yields entries in.
func (p *NatwestParser) Order() model.SortOrder { return model.Ascending }

// Parse reads a NatWest CSV. Rows that do not start with a date (the header,
// separators) are skipped.
func (p *NatwestParser) Parse(r io.Reader, opts Options) ([]model.Entry, error) {
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
			return nil, fmt.Errorf("reading natwest CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)

		date, err := calendar.Parse(calendar.StatementLayout, rec[natwestColDate])
		if err != nil {
			continue
		}
		if len(rec) < natwestMinFields {
			return nil, malformed(line, "expected at least %d fields, got %d", natwestMinFields, len(rec))
		}

		amount, err := parseAmount(rec[natwestColValue])
		if err != nil {
			return nil, malformed(line, "%v", err)
		}
		balance, err := parseAmount(rec[natwestColBalance])
		if err != nil {
			return nil, malformed(line, "%v", err)
		}

		account := cleanText(rec[natwestColAccount])
		if opts.Account != "" {
			account = opts.Account
		}
		if account == "" {
			return nil, malformed(line, "no account name")
		}

		entries = append(entries, model.Entry{
			Date:        date,
			Amount:      amount,
			Description: cleanText(rec[natwestColDesc]),
			Balance:     balance,
			Account:     account,
		})
	}
	return entries, nil
}
