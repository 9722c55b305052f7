package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aswin071/Expense-Tracker/internal/budget"
	dom "github.com/aswin071/Expense-Tracker/internal/domain"
	"github.com/aswin071/Expense-Tracker/internal/dto"
	"github.com/aswin071/Expense-Tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError writes err as {"error": ...} with the status its sentinel maps to.
// Unknown errors are attached to the context for the request logger and
// reported as a generic 500.
func respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidFilter):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		status = http.StatusUnauthorized
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func userToResponse(u dom.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Salary:    u.Salary,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func expenseToResponse(e dom.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ExpenseID: e.ID,
		UserID:    e.UserID,
		Name:      e.Name,
		Amount:    e.Amount,
		Category:  string(e.Category),
		CreatedAt: e.CreatedAt,
	}
}

func expensesToResponses(list []dom.Expense) []dto.ExpenseResponse {
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, expenseToResponse(e))
	}
	return out
}

func summaryToResponse(s budget.Summary) dto.BudgetSummaryResponse {
	b := s.CategoryBreakdown
	return dto.BudgetSummaryResponse{
		UserID:          s.UserID,
		TotalSalary:     s.TotalSalary,
		TotalExpense:    s.TotalExpense,
		RemainingAmount: s.RemainingAmount,
		CategoryBreakdown: dto.CategoryBreakdown{
			Food:          b[dom.CategoryFood],
			Transport:     b[dom.CategoryTransport],
			Entertainment: b[dom.CategoryEntertainment],
			Utilities:     b[dom.CategoryUtilities],
			Other:         b[dom.CategoryOther],
		},
	}
}
