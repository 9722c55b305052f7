package dto

import (
	"testing"
	"time"

	"github.com/aswin071/Expense-Tracker/internal/budget"
	dom "github.com/aswin071/Expense-Tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestFilterQuery(t *testing.T) {
	year, month := 2025, 3
	f, err := ExpenseFilterQuery{Day: strp("2025-01-15"), Month: &month, Year: &year, Category: strp("Food")}.Filter()
	require.NoError(t, err)
	require.NotNil(t, f.Day)
	assert.True(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC).Equal(*f.Day))
	require.NotNil(t, f.Category)
	assert.Equal(t, dom.CategoryFood, *f.Category)
	assert.Equal(t, &month, f.Month)
}

func TestFilterQueryRejects(t *testing.T) {
	_, err := ExpenseFilterQuery{Day: strp("15/01/2025")}.Filter()
	assert.ErrorIs(t, err, budget.ErrInvalidFilter)

	_, err = ExpenseFilterQuery{Category: strp("food")}.Filter()
	assert.ErrorIs(t, err, budget.ErrInvalidFilter)
}
