package budget

import (
	dom "github.com/aswin071/Expense-Tracker/internal/domain"
)

// Breakdown maps every category to the summed amount spent in it.
type Breakdown map[dom.Category]float64

// Summary is a user's salary set against a filtered set of expenses.
type Summary struct {
	UserID            int64
	TotalSalary       float64
	TotalExpense      float64
	RemainingAmount   float64
	CategoryBreakdown Breakdown
}

// Summarize folds expenses into a Summary. Only the totals are rounded to
// two decimals; category sums are left as accumulated.
func Summarize(userID int64, salary float64, expenses []dom.Expense) Summary {
	breakdown := make(Breakdown, len(dom.Categories))
	for _, c := range dom.Categories {
		breakdown[c] = 0
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
		breakdown[e.Category] += e.Amount
	}

	return Summary{
		UserID:            userID,
		TotalSalary:       salary,
		TotalExpense:      dom.Round2(total),
		RemainingAmount:   dom.Round2(salary - total),
		CategoryBreakdown: breakdown,
	}
}
