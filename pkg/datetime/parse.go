// Package datetime provides date utility functions for trip dates.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/ifta-report/pkg/constants"
)

// DateLayout is the format expected for trip dates in ledgers and imports.
const DateLayout = constants.DateLayout

// ParseDate parses a trip date.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", date, err)
	}
	return t, nil
}

// MustParseDate parses a trip date and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseDate(date string) time.Time {
	t, err := ParseDate(date)
	if err != nil {
		panic(err)
	}
	return t
}

// Today returns the UTC calendar date of now in DateLayout.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// Quarter returns the IFTA filing quarter of a trip date, e.g. "2026 Q1".
func Quarter(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d Q%d", t.Year(), (int(t.Month())-1)/3+1), nil
}

// Period is the span of dates covered by a set of trips.
type Period struct {
	Start string
	End   string
}

// String renders the period for report headers.
func (p Period) String() string {
	if p.Start == "" {
		return "no trips"
	}
	if p.Start == p.End {
		return p.Start
	}
	return p.Start + " to " + p.End
}

// ReportingPeriod returns the earliest and latest of the given dates. Dates
// that do not parse are skipped.
func ReportingPeriod(dates []string) Period {
	var period Period
	var first, last time.Time
	for _, date := range dates {
		t, err := ParseDate(date)
		if err != nil {
			continue
		}
		if period.Start == "" || t.Before(first) {
			first = t
			period.Start = date
		}
		if period.End == "" || t.After(last) {
			last = t
			period.End = date
		}
	}
	return period
}
