package handlers

import (
	"fmt"
	"net/http"

	"github.com/aswin071/Expense-Tracker/internal/auth"
	"github.com/aswin071/Expense-Tracker/internal/budget"
	dom "github.com/aswin071/Expense-Tracker/internal/domain"
	"github.com/aswin071/Expense-Tracker/internal/dto"
	"github.com/aswin071/Expense-Tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	svc *service.ExpenseService
}

func NewExpenseHandler(svc *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

// Create godoc
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateExpenseRequest  true  "Expense"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /expenses/ [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserID != auth.UserIDFromContext(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to create expenses for this user"})
		return
	}
	e, err := h.svc.Create(c.Request.Context(), service.CreateExpenseInput{
		UserID:   req.UserID,
		Name:     req.Name,
		Amount:   req.Amount,
		Category: dom.Category(req.Category),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expenseToResponse(e))
}

// List godoc
// @Summary      List a user's expenses
// @Description  At most one of day, week, month applies (day first, then week, then month). week and month need year.
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        user_id   path   int     true   "User ID"
// @Param        day       query  string  false  "YYYY-MM-DD"
// @Param        week      query  int     false  "Week 1-53, counted from January 1st"
// @Param        month     query  int     false  "Month 1-12"
// @Param        year      query  int     false  "Year 2000-2100"
// @Param        category  query  string  false  "Food, Transport, Entertainment, Utilities or Other"
// @Success      200  {array}   dto.ExpenseResponse
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /expenses/{user_id} [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID, ok := parseID(c, "user_id")
	if !ok {
		return
	}
	f, ok := bindFilter(c)
	if !ok {
		return
	}
	list, err := h.svc.ListByUser(c.Request.Context(), userID, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expensesToResponses(list))
}

// Get godoc
// @Summary      Get an expense by ID
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        expense_id  path  int  true  "Expense ID"
// @Success      200  {object}  dto.ExpenseResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /expenses/detail/{expense_id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "expense_id")
	if !ok {
		return
	}
	e, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenseToResponse(e))
}

// Update godoc
// @Summary      Update own expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Expense ID"
// @Param        body  body      dto.UpdateExpenseRequest  true  "Fields to change"
// @Success      200   {object}  dto.ExpenseResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.UpdateExpenseInput{Name: req.Name, Amount: req.Amount}
	if req.Category != nil {
		cat := dom.Category(*req.Category)
		in.Category = &cat
	}
	e, err := h.svc.Update(c.Request.Context(), id, auth.UserIDFromContext(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenseToResponse(e))
}

// Delete godoc
// @Summary      Delete own expense
// @Tags         expenses
// @Security     BearerAuth
// @Param        id   path  int  true  "Expense ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, auth.UserIDFromContext(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Totals godoc
// @Summary      Budget summary for a user
// @Description  Accepts the same filters as the expense list.
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        user_id   path   int     true   "User ID"
// @Param        day       query  string  false  "YYYY-MM-DD"
// @Param        week      query  int     false  "Week 1-53, counted from January 1st"
// @Param        month     query  int     false  "Month 1-12"
// @Param        year      query  int     false  "Year 2000-2100"
// @Param        category  query  string  false  "Food, Transport, Entertainment, Utilities or Other"
// @Success      200  {object}  dto.BudgetSummaryResponse
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /expenses/totals/{user_id} [get]
func (h *ExpenseHandler) Totals(c *gin.Context) {
	userID, ok := parseID(c, "user_id")
	if !ok {
		return
	}
	f, ok := bindFilter(c)
	if !ok {
		return
	}
	sum, err := h.svc.Summary(c.Request.Context(), userID, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryToResponse(sum))
}

// bindFilter reads the filter query. Malformed values are reported as 422
// like any other unusable filter.
func bindFilter(c *gin.Context) (budget.Filter, bool) {
	var q dto.ExpenseFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, fmt.Errorf("%w: %v", service.ErrInvalidFilter, err))
		return budget.Filter{}, false
	}
	f, err := q.Filter()
	if err != nil {
		respondError(c, err)
		return budget.Filter{}, false
	}
	return f, true
}
