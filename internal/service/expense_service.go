package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aswin071/Expense-Tracker/internal/budget"
	"github.com/aswin071/Expense-Tracker/internal/cache"
	dom "github.com/aswin071/Expense-Tracker/internal/domain"
	"github.com/aswin071/Expense-Tracker/internal/repo"

	"golang.org/x/sync/singleflight"
)

// CreateExpenseInput is the data needed to record an expense.
type CreateExpenseInput struct {
	UserID   int64
	Name     string
	Amount   float64
	Category dom.Category
}

// UpdateExpenseInput carries a partial expense update. Nil fields are left unchanged.
type UpdateExpenseInput struct {
	Name     *string
	Amount   *float64
	Category *dom.Category
}

// ExpenseService records expenses and computes budget summaries.
type ExpenseService struct {
	expenses repo.ExpenseRepo
	users    repo.UserRepo
	cache    *cache.BudgetCache
	sf       singleflight.Group
	now      func() time.Time
	log      *slog.Logger
}

// NewExpenseService creates an ExpenseService. If c is nil, caching is disabled.
func NewExpenseService(expenses repo.ExpenseRepo, users repo.UserRepo, c *cache.BudgetCache, log *slog.Logger) *ExpenseService {
	if log == nil {
		log = slog.Default()
	}
	return &ExpenseService{
		expenses: expenses,
		users:    users,
		cache:    c,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log.With("component", "expense_service"),
	}
}

// Create records a new expense for in.UserID, stamped with the current time.
func (s *ExpenseService) Create(ctx context.Context, in CreateExpenseInput) (dom.Expense, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return dom.Expense{}, err
	}
	amount, err := cleanAmount(in.Amount)
	if err != nil {
		return dom.Expense{}, err
	}
	if !in.Category.Valid() {
		return dom.Expense{}, validationErr("unknown category %q", in.Category)
	}
	if _, err := s.user(ctx, in.UserID); err != nil {
		return dom.Expense{}, err
	}

	e, err := s.expenses.Create(ctx, dom.Expense{
		UserID:    in.UserID,
		Name:      name,
		Amount:    amount,
		Category:  in.Category,
		CreatedAt: s.now(),
	})
	if err != nil {
		return dom.Expense{}, translate(err, fmt.Sprintf("user %d", in.UserID))
	}
	s.invalidateCache(ctx, in.UserID)
	s.log.Debug("expense created", "expense_id", e.ID, "user_id", e.UserID)
	return e, nil
}

// GetByID returns expense id.
func (s *ExpenseService) GetByID(ctx context.Context, id int64) (dom.Expense, error) {
	e, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return dom.Expense{}, translate(err, fmt.Sprintf("expense %d", id))
	}
	return e, nil
}

// ListByUser returns the user's expenses matching f, newest first.
func (s *ExpenseService) ListByUser(ctx context.Context, userID int64, f budget.Filter) ([]dom.Expense, error) {
	crit, err := f.Resolve()
	if err != nil {
		return nil, err
	}
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}
	return s.list(ctx, userID, crit)
}

// Summary folds the user's expenses matching f against their salary.
func (s *ExpenseService) Summary(ctx context.Context, userID int64, f budget.Filter) (budget.Summary, error) {
	crit, err := f.Resolve()
	if err != nil {
		return budget.Summary{}, err
	}

	if s.cache == nil {
		return s.summarize(ctx, userID, crit)
	}
	key := "summary:" + strconv.FormatInt(userID, 10) + ":" + crit.Key()
	// The flight is shared, so one caller's cancellation must not fail the rest.
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if sum, err := s.cache.GetSummary(flightCtx, userID, crit); err == nil && sum != nil {
			return *sum, nil
		}
		sum, err := s.summarize(flightCtx, userID, crit)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetSummary(flightCtx, userID, crit, sum); err != nil {
			s.log.Warn("cache write failed", "user_id", userID, "key", key, "error", err)
		}
		return sum, nil
	})
	if err != nil {
		return budget.Summary{}, err
	}
	return v.(budget.Summary), nil
}

// Update applies the supplied fields to expense id. A non-zero actingUserID
// must own the expense.
func (s *ExpenseService) Update(ctx context.Context, id, actingUserID int64, in UpdateExpenseInput) (dom.Expense, error) {
	e, err := s.owned(ctx, id, actingUserID)
	if err != nil {
		return dom.Expense{}, err
	}

	if in.Name != nil {
		if e.Name, err = cleanName(*in.Name); err != nil {
			return dom.Expense{}, err
		}
	}
	if in.Amount != nil {
		if e.Amount, err = cleanAmount(*in.Amount); err != nil {
			return dom.Expense{}, err
		}
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return dom.Expense{}, validationErr("unknown category %q", *in.Category)
		}
		e.Category = *in.Category
	}

	updated, err := s.expenses.Update(ctx, e)
	if err != nil {
		return dom.Expense{}, translate(err, fmt.Sprintf("expense %d", id))
	}
	s.invalidateCache(ctx, e.UserID)
	s.log.Debug("expense updated", "expense_id", id, "user_id", e.UserID)
	return updated, nil
}

// Delete removes expense id. A non-zero actingUserID must own the expense.
func (s *ExpenseService) Delete(ctx context.Context, id, actingUserID int64) error {
	e, err := s.owned(ctx, id, actingUserID)
	if err != nil {
		return err
	}
	if err := s.expenses.Delete(ctx, id); err != nil {
		return translate(err, fmt.Sprintf("expense %d", id))
	}
	s.invalidateCache(ctx, e.UserID)
	s.log.Debug("expense deleted", "expense_id", id, "user_id", e.UserID)
	return nil
}

func (s *ExpenseService) summarize(ctx context.Context, userID int64, crit dom.ExpenseCriteria) (budget.Summary, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return budget.Summary{}, err
	}
	list, err := s.list(ctx, userID, crit)
	if err != nil {
		return budget.Summary{}, err
	}
	return budget.Summarize(u.ID, u.Salary, list), nil
}

func (s *ExpenseService) list(ctx context.Context, userID int64, crit dom.ExpenseCriteria) ([]dom.Expense, error) {
	if s.cache == nil {
		return s.expenses.ListByUser(ctx, userID, crit)
	}
	key := "list:" + strconv.FormatInt(userID, 10) + ":" + crit.Key()
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetExpenses(flightCtx, userID, crit); err == nil && list != nil {
			return list, nil
		}
		list, err := s.expenses.ListByUser(flightCtx, userID, crit)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetExpenses(flightCtx, userID, crit, list); err != nil {
			s.log.Warn("cache write failed", "user_id", userID, "key", key, "error", err)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Expense), nil
}

func (s *ExpenseService) user(ctx context.Context, id int64) (dom.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return dom.User{}, translate(err, fmt.Sprintf("user %d", id))
	}
	return u, nil
}

func (s *ExpenseService) owned(ctx context.Context, id, actingUserID int64) (dom.Expense, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return dom.Expense{}, err
	}
	if actingUserID != 0 && e.UserID != actingUserID {
		return dom.Expense{}, fmt.Errorf("%w: expense %d belongs to another user", ErrForbidden, id)
	}
	return e, nil
}

func (s *ExpenseService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.log.Warn("cache invalidation failed", "user_id", userID, "error", err)
	}
}

func cleanName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n < 1 || n > 200 {
		return "", validationErr("name must be 1 to 200 characters")
	}
	return s, nil
}

// cleanAmount rounds v to cents and rejects anything that is not positive after rounding.
func cleanAmount(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, validationErr("amount must be a number")
	}
	v = dom.Round2(v)
	if v <= 0 {
		return 0, validationErr("amount must be greater than 0")
	}
	return v, nil
}
