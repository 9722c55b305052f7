// Package cache keeps per-user expense lists and budget summaries in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/aswin071/Expense-Tracker/internal/budget"
	dom "github.com/aswin071/Expense-Tracker/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "budget:"

// BudgetCache caches expense lists and summaries keyed by user and criteria.
type BudgetCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewBudgetCache returns a new BudgetCache.
func NewBudgetCache(rdb *redis.Client, ttl time.Duration) *BudgetCache {
	return &BudgetCache{rdb: rdb, ttl: ttl}
}

// GetExpenses returns the cached list, or nil on a miss.
func (c *BudgetCache) GetExpenses(ctx context.Context, userID int64, crit dom.ExpenseCriteria) ([]dom.Expense, error) {
	var list []dom.Expense
	ok, err := c.get(ctx, expensesKey(userID, crit), &list)
	if err != nil || !ok {
		return nil, err
	}
	if list == nil {
		list = []dom.Expense{}
	}
	return list, nil
}

// SetExpenses stores list for the user and criteria.
func (c *BudgetCache) SetExpenses(ctx context.Context, userID int64, crit dom.ExpenseCriteria, list []dom.Expense) error {
	if list == nil {
		list = []dom.Expense{}
	}
	return c.set(ctx, expensesKey(userID, crit), list)
}

// GetSummary returns the cached summary, or nil on a miss.
func (c *BudgetCache) GetSummary(ctx context.Context, userID int64, crit dom.ExpenseCriteria) (*budget.Summary, error) {
	var s budget.Summary
	ok, err := c.get(ctx, summaryKey(userID, crit), &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

// SetSummary stores s for the user and criteria.
func (c *BudgetCache) SetSummary(ctx context.Context, userID int64, crit dom.ExpenseCriteria, s budget.Summary) error {
	return c.set(ctx, summaryKey(userID, crit), s)
}

// InvalidateUser removes every cached entry belonging to userID.
func (c *BudgetCache) InvalidateUser(ctx context.Context, userID int64) error {
	iter := c.rdb.Scan(ctx, 0, userPrefix(userID)+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *BudgetCache) get(ctx context.Context, key string, v any) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, err
	}
	return true, nil
}

func (c *BudgetCache) set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func userPrefix(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10) + ":"
}

func expensesKey(userID int64, crit dom.ExpenseCriteria) string {
	return userPrefix(userID) + "list:" + crit.Key()
}

func summaryKey(userID int64, crit dom.ExpenseCriteria) string {
	return userPrefix(userID) + "summary:" + crit.Key()
}
