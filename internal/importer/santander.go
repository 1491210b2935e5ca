package importer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/calendar"
	"github.com/tally-dev/tally/internal/model"
)

// SantanderParser parses Santander fixed-layout text statements:
//
//	From: 01/01/2018 to 31/01/2018
//
//	Account: XXXX XXXX XXXX 1234
//
//	Date: 31/01/2018
//	Description: CARD PAYMENT TO TESCO
//	Amount: -3.01
//	Balance: 100.01
//
// Records are separated by blank lines and listed newest first.
type SantanderParser struct{}

const (
	santanderAccount     = "account"
	santanderDate        = "date"
	santanderDescription = "description"
	santanderAmount      = "amount"
	santanderBalance     = "balance"
)

// Format returns the parser name.
func (p *SantanderParser) Format() string { return "santander" }

// Order returns the order Parse yields entries in.
func (p *SantanderParser) Order() model.SortOrder { return model.Descending }

type santanderRecord struct {
	line   int
	fields map[string]string
}

// Parse reads a Santander text statement.
func (p *SantanderParser) Parse(r io.Reader, opts Options) ([]model.Entry, error) {
	records, header, err := readSantanderRecords(r)
	if err != nil {
		return nil, err
	}

	account := opts.Account
	if account == "" {
		account = header[santanderAccount]
	}
	if account == "" {
		return nil, malformed(0, "no account name in statement header")
	}

	var entries []model.Entry
	for _, rec := range records {
		e, err := santanderEntry(rec)
		if err != nil {
			return nil, err
		}
		e.Account = account
		entries = append(entries, e)
	}
	return entries, nil
}

// readSantanderRecords splits the statement into the header (everything
// before the first Date: line) and one record per blank-separated block.
// A label seen twice in one block starts a new record.
func readSantanderRecords(r io.Reader) ([]santanderRecord, map[string]string, error) {
	sc := bufio.NewScanner(r)
	header := make(map[string]string)
	var records []santanderRecord
	var cur *santanderRecord
	inBody := false

	for n := 1; sc.Scan(); n++ {
		line := cleanText(sc.Text())
		if line == "" {
			cur = nil
			continue
		}
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			if inBody {
				return nil, nil, malformed(n, "expected \"label: value\", got %q", line)
			}
			continue
		}
		label = strings.ToLower(cleanText(label))
		value = cleanText(value)

		if !inBody && label != santanderDate {
			header[label] = value
			continue
		}
		inBody = true
		if cur != nil {
			if _, repeated := cur.fields[label]; repeated {
				cur = nil
			}
		}
		if cur == nil {
			records = append(records, santanderRecord{line: n, fields: make(map[string]string)})
			cur = &records[len(records)-1]
		}
		cur.fields[label] = value
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading santander statement: %w", err)
	}
	return records, header, nil
}

func santanderEntry(rec santanderRecord) (model.Entry, error) {
	for _, label := range []string{santanderDate, santanderAmount, santanderBalance} {
		if _, ok := rec.fields[label]; !ok {
			return model.Entry{}, malformed(rec.line, "record missing %s", label)
		}
	}

	var (
		date    civil.Date
		amount  decimal.Decimal
		balance decimal.Decimal
		err     error
	)
	if date, err = calendar.Parse(calendar.StatementLayout, rec.fields[santanderDate]); err != nil {
		return model.Entry{}, malformed(rec.line, "parsing date %q: %v", rec.fields[santanderDate], err)
	}
	if amount, err = parseAmount(rec.fields[santanderAmount]); err != nil {
		return model.Entry{}, malformed(rec.line, "%v", err)
	}
	if balance, err = parseAmount(rec.fields[santanderBalance]); err != nil {
		return model.Entry{}, malformed(rec.line, "%v", err)
	}

	return model.Entry{
		Date:        date,
		Amount:      amount,
		Description: rec.fields[santanderDescription],
		Balance:     balance,
	}, nil
}
