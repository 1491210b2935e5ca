// Package calendar holds calendar-day helpers shared by the statement,
// spending and importer packages.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Date layouts used by statement exports and reports.
const (
	StatementLayout = "02/01/2006" // dd/mm/yyyy
	BalanceLayout   = "02-01-2006" // dd-mm-yyyy
	PeriodLayout    = "02/01/06"   // dd/mm/yy
)

// Parse parses s with layout and drops the time of day.
func Parse(layout, s string) (civil.Date, error) {
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, err
	}
	return civil.DateOf(t), nil
}

// Format renders d with a time layout.
func Format(d civil.Date, layout string) string {
	return d.In(time.UTC).Format(layout)
}

// Weekday returns the day of the week of d.
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// Predicate reports whether a day opens a new period.
type Predicate func(civil.Date) bool

// WeekStart returns a predicate that fires on every weekday wd.
func WeekStart(wd time.Weekday) Predicate {
	return func(d civil.Date) bool { return Weekday(d) == wd }
}

// MonthStart fires on the first day of every month.
func MonthStart(d civil.Date) bool { return d.Day == 1 }

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday parses an English weekday name, full or three-letter.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if wd, ok := weekdays[s]; ok {
		return wd, nil
	}
	if len(s) == 3 {
		for name, wd := range weekdays {
			if strings.HasPrefix(name, s) {
				return wd, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// Period describes how spending is bucketed.
type Period struct {
	Label   string // "Week" or "Month"
	IsStart Predicate
}

// NewPeriod returns the period for length "weekly" or "monthly".
// weekStart is only consulted for weekly periods.
func NewPeriod(length string, weekStart time.Weekday) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(length)) {
	case "", "weekly", "week":
		return Period{Label: "Week", IsStart: WeekStart(weekStart)}, nil
	case "monthly", "month":
		return Period{Label: "Month", IsStart: MonthStart}, nil
	}
	return Period{}, fmt.Errorf("unknown period length %q", length)
}
