package budget

import (
	"errors"
	"testing"
	"time"

	dom "github.com/aswin071/Expense-Tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func catPtr(c dom.Category) *dom.Category { return &c }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_NoSelectors(t *testing.T) {
	crit, err := Filter{}.Resolve()
	require.NoError(t, err)
	assert.Nil(t, crit.Range)
	assert.Nil(t, crit.Category)
}

func TestResolve_RequiresYear(t *testing.T) {
	cases := map[string]Filter{
		"week":         {Week: intPtr(3)},
		"month":        {Month: intPtr(6)},
		"day and week": {Day: timePtr(date(2025, 1, 1)), Week: intPtr(3)},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.Resolve()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFilter))
		})
	}
}

func TestResolve_OutOfRange(t *testing.T) {
	cases := map[string]Filter{
		"week zero":     {Week: intPtr(0), Year: intPtr(2025)},
		"week 54":       {Week: intPtr(54), Year: intPtr(2025)},
		"month 13":      {Month: intPtr(13), Year: intPtr(2025)},
		"year too low":  {Month: intPtr(1), Year: intPtr(1999)},
		"year too high": {Year: intPtr(2101)},
		"bad category":  {Category: catPtr("Rent")},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.Resolve()
			assert.ErrorIs(t, err, ErrInvalidFilter)
		})
	}
}

func TestResolve_Precedence(t *testing.T) {
	day := date(2025, 3, 10)

	crit, err := Filter{Day: &day, Week: intPtr(1), Month: intPtr(12), Year: intPtr(2025)}.Resolve()
	require.NoError(t, err)
	require.NotNil(t, crit.Range)
	assert.Equal(t, DayRange(day), *crit.Range)

	crit, err = Filter{Week: intPtr(2), Month: intPtr(12), Year: intPtr(2025)}.Resolve()
	require.NoError(t, err)
	require.NotNil(t, crit.Range)
	assert.Equal(t, WeekRange(2025, 2), *crit.Range)

	crit, err = Filter{Month: intPtr(12), Year: intPtr(2025)}.Resolve()
	require.NoError(t, err)
	require.NotNil(t, crit.Range)
	assert.Equal(t, MonthRange(2025, time.December), *crit.Range)
}

func TestResolve_CategoryCombinesWithRange(t *testing.T) {
	crit, err := Filter{Month: intPtr(1), Year: intPtr(2025), Category: catPtr(dom.CategoryFood)}.Resolve()
	require.NoError(t, err)
	require.NotNil(t, crit.Range)
	require.NotNil(t, crit.Category)
	assert.Equal(t, dom.CategoryFood, *crit.Category)

	assert.True(t, crit.Matches(dom.Expense{Category: dom.CategoryFood, CreatedAt: date(2025, 1, 15)}))
	assert.False(t, crit.Matches(dom.Expense{Category: dom.CategoryOther, CreatedAt: date(2025, 1, 15)}))
	assert.False(t, crit.Matches(dom.Expense{Category: dom.CategoryFood, CreatedAt: date(2025, 2, 1)}))
}

func TestDayRange(t *testing.T) {
	r := DayRange(time.Date(2025, 1, 15, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, date(2025, 1, 15), r.From)
	assert.Equal(t, time.Date(2025, 1, 15, 23, 59, 59, 999999000, time.UTC), r.To)
	assert.True(t, r.Contains(time.Date(2025, 1, 15, 23, 59, 59, 999999000, time.UTC)))
	assert.False(t, r.Contains(date(2025, 1, 16)))
}

func TestWeekRange(t *testing.T) {
	r := WeekRange(2025, 1)
	assert.Equal(t, date(2025, 1, 1), r.From)
	assert.Equal(t, time.Date(2025, 1, 7, 23, 59, 59, 0, time.UTC), r.To)

	r = WeekRange(2025, 3)
	assert.Equal(t, date(2025, 1, 15), r.From)
	assert.Equal(t, time.Date(2025, 1, 21, 23, 59, 59, 0, time.UTC), r.To)

	// Week 53 runs past the end of the year.
	r = WeekRange(2025, 53)
	assert.Equal(t, date(2025, 12, 31), r.From)
	assert.Equal(t, time.Date(2026, 1, 6, 23, 59, 59, 0, time.UTC), r.To)
}

func TestMonthRange(t *testing.T) {
	r := MonthRange(2025, time.February)
	assert.Equal(t, date(2025, 2, 1), r.From)
	assert.Equal(t, time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC), r.To)

	r = MonthRange(2024, time.February)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), r.To)

	r = MonthRange(2025, time.December)
	assert.Equal(t, date(2025, 12, 1), r.From)
	assert.Equal(t, time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC), r.To)
}

func TestResolve_MonthSelectsExpenses(t *testing.T) {
	expenses := []dom.Expense{
		{ID: 1, CreatedAt: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)},
		{ID: 2, CreatedAt: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)},
		{ID: 3, CreatedAt: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
	}
	pick := func(month int) []int64 {
		crit, err := Filter{Month: intPtr(month), Year: intPtr(2025)}.Resolve()
		require.NoError(t, err)
		var ids []int64
		for _, e := range expenses {
			if crit.Matches(e) {
				ids = append(ids, e.ID)
			}
		}
		return ids
	}
	assert.Equal(t, []int64{1}, pick(1))
	assert.Equal(t, []int64{3}, pick(6))
	assert.Empty(t, pick(3))
}

func timePtr(t time.Time) *time.Time { return &t }
