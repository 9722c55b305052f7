package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	dom "github.com/aswin071/Expense-Tracker/internal/domain"
	"github.com/aswin071/Expense-Tracker/internal/utils"
)

const sqliteUserColumns = `user_id, username, email, password_hash, salary, is_active, created_at, updated_at`

// SQLiteUserRepo implements UserRepo with SQLite.
type SQLiteUserRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteUserRepo returns a new SQLiteUserRepo.
func NewSQLiteUserRepo(db *sql.DB) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: db, now: time.Now}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	now := formatSQLiteTime(r.now())
	query := `
		INSERT INTO users (username, email, password_hash, salary, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + sqliteUserColumns
	out, err := scanSQLiteUser(r.db.QueryRowContext(ctx, query, u.Username, u.Email, u.PasswordHash, u.Salary, u.IsActive, now, now))
	if err != nil {
		return dom.User{}, sqliteUserErr("create user", err)
	}
	return out, nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	u, err := scanSQLiteUser(r.db.QueryRowContext(ctx, `SELECT `+sqliteUserColumns+` FROM users WHERE user_id = ?`, id))
	if err != nil {
		return dom.User{}, sqliteUserErr("get user", err)
	}
	return u, nil
}

func (r *SQLiteUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	u, err := scanSQLiteUser(r.db.QueryRowContext(ctx, `SELECT `+sqliteUserColumns+` FROM users WHERE username = ?`, username))
	if err != nil {
		return dom.User{}, sqliteUserErr("get user by username", err)
	}
	return u, nil
}

func (r *SQLiteUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	u, err := scanSQLiteUser(r.db.QueryRowContext(ctx, `SELECT `+sqliteUserColumns+` FROM users WHERE email = ?`, email))
	if err != nil {
		return dom.User{}, sqliteUserErr("get user by email", err)
	}
	return u, nil
}

func (r *SQLiteUserRepo) Update(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		UPDATE users SET username = ?, email = ?, password_hash = ?, salary = ?, is_active = ?, updated_at = ?
		WHERE user_id = ?
		RETURNING ` + sqliteUserColumns
	out, err := scanSQLiteUser(r.db.QueryRowContext(ctx, query,
		u.Username, u.Email, u.PasswordHash, u.Salary, u.IsActive, formatSQLiteTime(r.now()), u.ID))
	if err != nil {
		return dom.User{}, sqliteUserErr("update user", err)
	}
	return out, nil
}

func (r *SQLiteUserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSQLiteUser(row rowScanner) (dom.User, error) {
	var (
		u                dom.User
		created, updated string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Salary, &u.IsActive, &created, &updated); err != nil {
		return dom.User{}, err
	}
	var err error
	if u.CreatedAt, err = parseSQLiteTime(created); err != nil {
		return dom.User{}, err
	}
	if u.UpdatedAt, err = parseSQLiteTime(updated); err != nil {
		return dom.User{}, err
	}
	return u, nil
}

func sqliteUserErr(op string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case utils.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
