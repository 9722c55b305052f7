package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	dom "github.com/aswin071/Expense-Tracker/internal/domain"
	"github.com/aswin071/Expense-Tracker/internal/utils"
)

const sqliteExpenseColumns = `expense_id, user_id, name, amount, category, created_at`

// SQLiteExpenseRepo implements ExpenseRepo with SQLite.
type SQLiteExpenseRepo struct {
	db *sql.DB
}

// NewSQLiteExpenseRepo returns a new SQLiteExpenseRepo.
func NewSQLiteExpenseRepo(db *sql.DB) *SQLiteExpenseRepo {
	return &SQLiteExpenseRepo{db: db}
}

func (r *SQLiteExpenseRepo) Create(ctx context.Context, e dom.Expense) (dom.Expense, error) {
	query := `
		INSERT INTO expenses (user_id, name, amount, category, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING ` + sqliteExpenseColumns
	out, err := scanSQLiteExpense(r.db.QueryRowContext(ctx, query,
		e.UserID, e.Name, e.Amount, string(e.Category), formatSQLiteTime(e.CreatedAt)))
	if err != nil {
		if utils.IsForeignKeyViolation(err) {
			return dom.Expense{}, ErrNotFound
		}
		return dom.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	return out, nil
}

func (r *SQLiteExpenseRepo) GetByID(ctx context.Context, id int64) (dom.Expense, error) {
	e, err := scanSQLiteExpense(r.db.QueryRowContext(ctx, `SELECT `+sqliteExpenseColumns+` FROM expenses WHERE expense_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dom.Expense{}, ErrNotFound
		}
		return dom.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteExpenseRepo) ListByUser(ctx context.Context, userID int64, crit dom.ExpenseCriteria) ([]dom.Expense, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + sqliteExpenseColumns + ` FROM expenses WHERE user_id = ?`)
	args := []any{userID}
	if crit.Range != nil {
		sb.WriteString(` AND created_at >= ? AND created_at <= ?`)
		args = append(args, formatSQLiteTime(crit.Range.From), formatSQLiteTime(crit.Range.To))
	}
	if crit.Category != nil {
		sb.WriteString(` AND category = ?`)
		args = append(args, string(*crit.Category))
	}
	sb.WriteString(` ORDER BY created_at DESC, expense_id DESC`)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	list := []dom.Expense{}
	for rows.Next() {
		e, err := scanSQLiteExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *SQLiteExpenseRepo) Update(ctx context.Context, e dom.Expense) (dom.Expense, error) {
	query := `
		UPDATE expenses SET name = ?, amount = ?, category = ?
		WHERE expense_id = ?
		RETURNING ` + sqliteExpenseColumns
	out, err := scanSQLiteExpense(r.db.QueryRowContext(ctx, query, e.Name, e.Amount, string(e.Category), e.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dom.Expense{}, ErrNotFound
		}
		return dom.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	return out, nil
}

func (r *SQLiteExpenseRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE expense_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSQLiteExpense(row rowScanner) (dom.Expense, error) {
	var (
		e       dom.Expense
		cat     string
		created string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Name, &e.Amount, &cat, &created); err != nil {
		return dom.Expense{}, err
	}
	t, err := parseSQLiteTime(created)
	if err != nil {
		return dom.Expense{}, err
	}
	e.Category = dom.Category(cat)
	e.CreatedAt = t
	return e, nil
}
