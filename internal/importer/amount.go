package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads a money value, dropping currency symbols, codes,
// thousands separators and explicit plus signs.
func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("no amount in %q", s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

// cleanText trims whitespace, non-breaking spaces and the leading apostrophe
// spreadsheet exports use to force text cells.
func cleanText(s string) string {
	s = strings.Trim(s, " \t\u00a0")
	return strings.TrimPrefix(s, "'")
}
