// Package budget turns filter selectors into expense criteria and folds
// expense sets into budget summaries.
package budget

import (
	"errors"
	"fmt"
	"time"

	dom "github.com/aswin071/Expense-Tracker/internal/domain"
)

// ErrInvalidFilter is returned by Resolve for unusable selector combinations.
var ErrInvalidFilter = errors.New("invalid filter")

const (
	MinYear = 2000
	MaxYear = 2100
)

// Filter holds the optional selectors of an expense query.
// At most one range selector is applied: Day, then Week, then Month.
type Filter struct {
	Day      *time.Time
	Week     *int
	Month    *int
	Year     *int
	Category *dom.Category
}

// Resolve validates f and converts it into criteria for the repositories.
func (f Filter) Resolve() (dom.ExpenseCriteria, error) {
	if f.Week != nil && f.Year == nil {
		return dom.ExpenseCriteria{}, fmt.Errorf("%w: year is required when filtering by week", ErrInvalidFilter)
	}
	if f.Month != nil && f.Year == nil {
		return dom.ExpenseCriteria{}, fmt.Errorf("%w: year is required when filtering by month", ErrInvalidFilter)
	}
	if f.Week != nil && (*f.Week < 1 || *f.Week > 53) {
		return dom.ExpenseCriteria{}, fmt.Errorf("%w: week must be between 1 and 53", ErrInvalidFilter)
	}
	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		return dom.ExpenseCriteria{}, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidFilter)
	}
	if f.Year != nil && (*f.Year < MinYear || *f.Year > MaxYear) {
		return dom.ExpenseCriteria{}, fmt.Errorf("%w: year must be between %d and %d", ErrInvalidFilter, MinYear, MaxYear)
	}
	if f.Category != nil && !f.Category.Valid() {
		return dom.ExpenseCriteria{}, fmt.Errorf("%w: unknown category %q", ErrInvalidFilter, *f.Category)
	}

	var crit dom.ExpenseCriteria
	switch {
	case f.Day != nil:
		r := DayRange(*f.Day)
		crit.Range = &r
	case f.Week != nil:
		r := WeekRange(*f.Year, *f.Week)
		crit.Range = &r
	case f.Month != nil:
		r := MonthRange(*f.Year, time.Month(*f.Month))
		crit.Range = &r
	}
	if f.Category != nil {
		c := *f.Category
		crit.Category = &c
	}
	return crit, nil
}

// DayRange covers the calendar date of d, 00:00:00.000000 to 23:59:59.999999 UTC.
func DayRange(d time.Time) dom.TimeRange {
	y, m, day := d.Date()
	return dom.TimeRange{
		From: time.Date(y, m, day, 0, 0, 0, 0, time.UTC),
		To:   time.Date(y, m, day, 23, 59, 59, 999999000, time.UTC),
	}
}

// WeekRange returns week n of year, counted in 7-day blocks from January 1st.
// This is not the ISO-8601 week: week 1 always starts on January 1st.
func WeekRange(year, week int) dom.TimeRange {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	start := jan1.AddDate(0, 0, (week-1)*7)
	end := start.AddDate(0, 0, 6).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return dom.TimeRange{From: start, To: end}
}

// MonthRange spans the first day 00:00:00 to the last day 23:59:59 of month.
func MonthRange(year int, month time.Month) dom.TimeRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return dom.TimeRange{
		From: start,
		To:   start.AddDate(0, 1, 0).Add(-time.Second),
	}
}
