package domain

import (
	"strconv"
	"time"
)

// Category is one of the fixed expense categories.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryUtilities     Category = "Utilities"
	CategoryOther         Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryOther,
}

// ParseCategory returns the category named s. Matching is exact.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

// Expense is a single spend entry owned by a user.
// Not tied to Gin, Postgres or Redis.
type Expense struct {
	ID        int64
	UserID    int64
	Name      string
	Amount    float64
	Category  Category
	CreatedAt time.Time
}

// Round2 rounds v to two decimal places using the exact decimal value of v,
// with ties to even. 2.675 is stored as 2.67499... and rounds to 2.67.
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil || r == 0 {
		return 0
	}
	return r
}
