package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeRangeContainsBounds(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
	r := TimeRange{From: from, To: to}

	assert.True(t, r.Contains(from))
	assert.True(t, r.Contains(to))
	assert.False(t, r.Contains(from.Add(-time.Microsecond)))
	assert.False(t, r.Contains(to.Add(time.Second)))
}

func TestCriteriaMatches(t *testing.T) {
	food := CategoryFood
	r := TimeRange{
		From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC),
	}
	e := Expense{Category: CategoryFood, CreatedAt: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)}

	assert.True(t, ExpenseCriteria{}.Matches(e))
	assert.True(t, ExpenseCriteria{Range: &r, Category: &food}.Matches(e))

	e.Category = CategoryOther
	assert.False(t, ExpenseCriteria{Category: &food}.Matches(e))
	assert.True(t, ExpenseCriteria{Range: &r}.Matches(e))
}

func TestCriteriaKey(t *testing.T) {
	food := CategoryFood
	r := TimeRange{From: time.Unix(0, 0).UTC(), To: time.Unix(1, 0).UTC()}

	assert.Equal(t, "all", ExpenseCriteria{}.Key())
	assert.Equal(t, "all:Food", ExpenseCriteria{Category: &food}.Key())
	assert.Equal(t, "0-1000000", ExpenseCriteria{Range: &r}.Key())
	assert.Equal(t, "0-1000000:Food", ExpenseCriteria{Range: &r, Category: &food}.Key())
}
