package domain

import (
	"strconv"
	"time"
)

// TimeRange is an inclusive [From, To] range over creation timestamps.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t lies within the range, bounds included.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// ExpenseCriteria narrows a user's expenses. Nil fields do not filter.
type ExpenseCriteria struct {
	Range    *TimeRange
	Category *Category
}

// Matches reports whether e satisfies every set criterion.
func (c ExpenseCriteria) Matches(e Expense) bool {
	if c.Range != nil && !c.Range.Contains(e.CreatedAt) {
		return false
	}
	if c.Category != nil && e.Category != *c.Category {
		return false
	}
	return true
}

// Key returns a stable string form of c, used for cache keys.
func (c ExpenseCriteria) Key() string {
	key := "all"
	if c.Range != nil {
		key = strconv.FormatInt(c.Range.From.UnixMicro(), 10) + "-" + strconv.FormatInt(c.Range.To.UnixMicro(), 10)
	}
	if c.Category != nil {
		key += ":" + string(*c.Category)
	}
	return key
}
