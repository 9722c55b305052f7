package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	dom "github.com/aswin071/Expense-Tracker/internal/domain"
	"github.com/aswin071/Expense-Tracker/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgExpenseColumns = `expense_id, user_id, name, amount, category, created_at`

// PGExpenseRepo implements ExpenseRepo with Postgres.
type PGExpenseRepo struct {
	db *pgxpool.Pool
}

// NewPGExpenseRepo returns a new PGExpenseRepo.
func NewPGExpenseRepo(db *pgxpool.Pool) *PGExpenseRepo {
	return &PGExpenseRepo{db: db}
}

func (r *PGExpenseRepo) Create(ctx context.Context, e dom.Expense) (dom.Expense, error) {
	query := `
		INSERT INTO expenses (user_id, name, amount, category, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + pgExpenseColumns
	out, err := scanPGExpense(r.db.QueryRow(ctx, query, e.UserID, e.Name, e.Amount, string(e.Category), e.CreatedAt))
	if err != nil {
		if utils.IsForeignKeyViolation(err) {
			return dom.Expense{}, ErrNotFound
		}
		return dom.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	return out, nil
}

func (r *PGExpenseRepo) GetByID(ctx context.Context, id int64) (dom.Expense, error) {
	e, err := scanPGExpense(r.db.QueryRow(ctx, `SELECT `+pgExpenseColumns+` FROM expenses WHERE expense_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Expense{}, ErrNotFound
		}
		return dom.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (r *PGExpenseRepo) ListByUser(ctx context.Context, userID int64, crit dom.ExpenseCriteria) ([]dom.Expense, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + pgExpenseColumns + ` FROM expenses WHERE user_id = $1`)
	args := []any{userID}
	if crit.Range != nil {
		args = append(args, crit.Range.From, crit.Range.To)
		sb.WriteString(` AND created_at >= $` + strconv.Itoa(len(args)-1) + ` AND created_at <= $` + strconv.Itoa(len(args)))
	}
	if crit.Category != nil {
		args = append(args, string(*crit.Category))
		sb.WriteString(` AND category = $` + strconv.Itoa(len(args)))
	}
	sb.WriteString(` ORDER BY created_at DESC, expense_id DESC`)

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	list := []dom.Expense{}
	for rows.Next() {
		e, err := scanPGExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Update writes name, amount and category; created_at is never changed.
func (r *PGExpenseRepo) Update(ctx context.Context, e dom.Expense) (dom.Expense, error) {
	query := `
		UPDATE expenses SET name = $2, amount = $3, category = $4
		WHERE expense_id = $1
		RETURNING ` + pgExpenseColumns
	out, err := scanPGExpense(r.db.QueryRow(ctx, query, e.ID, e.Name, e.Amount, string(e.Category)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Expense{}, ErrNotFound
		}
		return dom.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	return out, nil
}

func (r *PGExpenseRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPGExpense(row rowScanner) (dom.Expense, error) {
	var (
		e   dom.Expense
		cat string
	)
	err := row.Scan(&e.ID, &e.UserID, &e.Name, &e.Amount, &cat, &e.CreatedAt)
	e.Category = dom.Category(cat)
	e.CreatedAt = e.CreatedAt.UTC()
	return e, err
}
