package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/aswin071/Expense-Tracker/internal/budget"
	dom "github.com/aswin071/Expense-Tracker/internal/domain"
)

type CreateExpenseRequest struct {
	UserID   int64   `json:"user_id" binding:"required,gt=0"`
	Name     string  `json:"name" binding:"required,min=1,max=200"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Category string  `json:"category" binding:"required"`
}

// UpdateExpenseRequest is the JSON body for PUT /expenses/{id}. Omitted fields are unchanged.
type UpdateExpenseRequest struct {
	Name     *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Amount   *float64 `json:"amount" binding:"omitempty,gt=0"`
	Category *string  `json:"category"`
}

type ExpenseResponse struct {
	ExpenseID int64     `json:"expense_id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// ExpenseFilterQuery is the query string shared by the list and totals endpoints.
type ExpenseFilterQuery struct {
	Day      *string `form:"day"` // YYYY-MM-DD
	Week     *int    `form:"week"`
	Month    *int    `form:"month"`
	Year     *int    `form:"year"`
	Category *string `form:"category"`
}

// Filter converts the query into a budget.Filter. Range checks are left to
// budget.Filter.Resolve.
func (q ExpenseFilterQuery) Filter() (budget.Filter, error) {
	f := budget.Filter{Week: q.Week, Month: q.Month, Year: q.Year}
	if q.Day != nil {
		d, err := time.Parse("2006-01-02", strings.TrimSpace(*q.Day))
		if err != nil {
			return budget.Filter{}, fmt.Errorf("%w: day must be YYYY-MM-DD", budget.ErrInvalidFilter)
		}
		f.Day = &d
	}
	if q.Category != nil {
		c, ok := dom.ParseCategory(*q.Category)
		if !ok {
			return budget.Filter{}, fmt.Errorf("%w: unknown category %q", budget.ErrInvalidFilter, *q.Category)
		}
		f.Category = &c
	}
	return f, nil
}

// CategoryBreakdown lists spend per category; every category is always present.
type CategoryBreakdown struct {
	Food          float64 `json:"Food"`
	Transport     float64 `json:"Transport"`
	Entertainment float64 `json:"Entertainment"`
	Utilities     float64 `json:"Utilities"`
	Other         float64 `json:"Other"`
}

type BudgetSummaryResponse struct {
	UserID            int64             `json:"user_id"`
	TotalSalary       float64           `json:"total_salary"`
	TotalExpense      float64           `json:"total_expense"`
	RemainingAmount   float64           `json:"remaining_amount"`
	CategoryBreakdown CategoryBreakdown `json:"category_breakdown"`
}
