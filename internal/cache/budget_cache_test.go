package cache

import (
	"context"
	"testing"
	"time"

	"github.com/aswin071/Expense-Tracker/internal/budget"
	dom "github.com/aswin071/Expense-Tracker/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*BudgetCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewBudgetCache(rdb, time.Minute), mr
}

func TestExpensesRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	crit := dom.ExpenseCriteria{}

	got, err := c.GetExpenses(ctx, 1, crit)
	require.NoError(t, err)
	assert.Nil(t, got, "miss returns nil")

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	list := []dom.Expense{{ID: 7, UserID: 1, Name: "Tea", Amount: 2.5, Category: dom.CategoryFood, CreatedAt: at}}
	require.NoError(t, c.SetExpenses(ctx, 1, crit, list))

	got, err = c.GetExpenses(ctx, 1, crit)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Tea", got[0].Name)
	assert.True(t, at.Equal(got[0].CreatedAt))
}

func TestEmptyListIsAHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetExpenses(ctx, 1, dom.ExpenseCriteria{}, nil))
	got, err := c.GetExpenses(ctx, 1, dom.ExpenseCriteria{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCriteriaAreSeparateKeys(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	food := dom.CategoryFood

	require.NoError(t, c.SetExpenses(ctx, 1, dom.ExpenseCriteria{}, []dom.Expense{{ID: 1}}))
	got, err := c.GetExpenses(ctx, 1, dom.ExpenseCriteria{Category: &food})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSummaryRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	r := budget.MonthRange(2025, time.March)
	crit := dom.ExpenseCriteria{Range: &r}

	s := budget.Summarize(3, 1000, []dom.Expense{{Amount: 300, Category: dom.CategoryFood}})
	require.NoError(t, c.SetSummary(ctx, 3, crit, s))

	got, err := c.GetSummary(ctx, 3, crit)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s, *got)
}

func TestInvalidateUserOnlyTouchesThatUser(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	crit := dom.ExpenseCriteria{}

	require.NoError(t, c.SetExpenses(ctx, 1, crit, []dom.Expense{{ID: 1}}))
	require.NoError(t, c.SetSummary(ctx, 1, crit, budget.Summarize(1, 10, nil)))
	require.NoError(t, c.SetExpenses(ctx, 11, crit, []dom.Expense{{ID: 2}}))

	require.NoError(t, c.InvalidateUser(ctx, 1))

	got, err := c.GetExpenses(ctx, 1, crit)
	require.NoError(t, err)
	assert.Nil(t, got)
	sum, err := c.GetSummary(ctx, 1, crit)
	require.NoError(t, err)
	assert.Nil(t, sum)

	assert.True(t, mr.Exists(expensesKey(11, crit)))
}

func TestEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetExpenses(ctx, 1, dom.ExpenseCriteria{}, []dom.Expense{{ID: 1}}))
	mr.FastForward(2 * time.Minute)

	got, err := c.GetExpenses(ctx, 1, dom.ExpenseCriteria{})
	require.NoError(t, err)
	assert.Nil(t, got)
}
