// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/iwvelando/finance-planner/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and is also the output
	// date format.
	DateLayout = constants.DateLayout
)

// MustParseDate parses a date string using DateLayout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseDate(dateStr string) time.Time {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a date string. An empty string yields the zero time.
func ParseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, dateStr)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day.
func Today() time.Time {
	return Day(time.Now())
}

// OrToday returns the calendar day of t, or today when t is zero.
func OrToday(t time.Time) time.Time {
	if t.IsZero() {
		return Today()
	}
	return Day(t)
}

// AddDays advances t by a number of days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// AddMonths advances t by calendar months, clamping the day to the last day
// of the target month (Jan 31 + 1 month = Feb 28, or Feb 29 in a leap year).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	if last := DaysInMonth(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// PeriodOffset returns the date of the given period counted from start. With
// twelve periods per year it steps calendar months; otherwise it uses a
// 365/periodsPerYear day approximation.
func PeriodOffset(start time.Time, period, periodsPerYear int) time.Time {
	if periodsPerYear == constants.MonthsPerYear {
		return AddMonths(start, period)
	}
	days := period * constants.DaysPerYear / periodsPerYear
	return AddDays(start, days)
}

// MonthLabel formats t as a YYYY-MM label.
func MonthLabel(t time.Time) string {
	return t.Format(constants.MonthLayout)
}
