package repo

import (
	"context"
	"errors"

	dom "github.com/aswin071/Expense-Tracker/internal/domain"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write breaks a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, u dom.User) (dom.User, error)
	GetByID(ctx context.Context, id int64) (dom.User, error)
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	Update(ctx context.Context, u dom.User) (dom.User, error)
	// Delete removes the user and, through the foreign key, all of its expenses.
	Delete(ctx context.Context, id int64) error
}

// ExpenseRepo provides expense persistence.
type ExpenseRepo interface {
	Create(ctx context.Context, e dom.Expense) (dom.Expense, error)
	GetByID(ctx context.Context, id int64) (dom.Expense, error)
	// ListByUser returns the user's expenses matching crit, newest first.
	ListByUser(ctx context.Context, userID int64, crit dom.ExpenseCriteria) ([]dom.Expense, error)
	Update(ctx context.Context, e dom.Expense) (dom.Expense, error)
	Delete(ctx context.Context, id int64) error
}

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
