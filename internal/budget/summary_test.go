package budget

import (
	"testing"

	dom "github.com/aswin071/Expense-Tracker/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize(7, 1000, []dom.Expense{
		{Amount: 300, Category: dom.CategoryFood},
		{Amount: 200, Category: dom.CategoryTransport},
	})

	assert.Equal(t, int64(7), s.UserID)
	assert.Equal(t, 1000.0, s.TotalSalary)
	assert.Equal(t, 500.0, s.TotalExpense)
	assert.Equal(t, 500.0, s.RemainingAmount)
	assert.Equal(t, Breakdown{
		dom.CategoryFood:          300,
		dom.CategoryTransport:     200,
		dom.CategoryEntertainment: 0,
		dom.CategoryUtilities:     0,
		dom.CategoryOther:         0,
	}, s.CategoryBreakdown)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(1, 250.5, nil)
	assert.Equal(t, 0.0, s.TotalExpense)
	assert.Equal(t, 250.5, s.RemainingAmount)
	assert.Len(t, s.CategoryBreakdown, len(dom.Categories))
}

func TestSummarize_RemainingMayBeNegative(t *testing.T) {
	s := Summarize(1, 100, []dom.Expense{{Amount: 150.25, Category: dom.CategoryOther}})
	assert.Equal(t, -50.25, s.RemainingAmount)
}

func TestSummarize_RoundsTotalsOnly(t *testing.T) {
	s := Summarize(1, 1, []dom.Expense{
		{Amount: 0.1, Category: dom.CategoryFood},
		{Amount: 0.2, Category: dom.CategoryFood},
	})
	assert.Equal(t, 0.3, s.TotalExpense)
	assert.Equal(t, 0.7, s.RemainingAmount)
	assert.InDelta(t, 0.3, s.CategoryBreakdown[dom.CategoryFood], 1e-9)
}
