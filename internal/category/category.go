// Package category attributes transaction descriptions to spending categories
// using keyword lists.
package category

import "strings"

const (
	// Uncategorised is returned when no rule matches.
	Uncategorised = "uncategorised"
	// Ignored is returned when an ignore keyword matches. Such transactions
	// are left out of spending entirely.
	Ignored = "ignored"
)

// Rule maps a category label to the keywords that select it.
type Rule struct {
	Label    string
	Keywords []string
}

// Mapper matches descriptions against rules in declaration order.
type Mapper struct {
	rules  []Rule
	ignore []string
}

// New creates a Mapper. Matching is a case-insensitive substring test and
// keywords are used as written, surrounding spaces included. Empty keywords
// are dropped.
func New(rules []Rule, ignore []string) *Mapper {
	m := &Mapper{ignore: lowerAll(ignore)}
	for _, r := range rules {
		m.rules = append(m.rules, Rule{Label: r.Label, Keywords: lowerAll(r.Keywords)})
	}
	return m
}

// Categorize returns Ignored if any ignore keyword occurs in description, else
// the label of the first rule with a matching keyword, else Uncategorised.
func (m *Mapper) Categorize(description string) string {
	desc := strings.ToLower(description)
	if containsAny(desc, m.ignore) {
		return Ignored
	}
	for _, r := range m.rules {
		if containsAny(desc, r.Keywords) {
			return r.Label
		}
	}
	return Uncategorised
}

// Labels returns the configured category labels in declaration order.
func (m *Mapper) Labels() []string {
	labels := make([]string, len(m.rules))
	for i, r := range m.rules {
		labels[i] = r.Label
	}
	return labels
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}
