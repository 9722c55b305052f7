package repo

import (
	"context"
	"errors"
	"fmt"

	dom "github.com/aswin071/Expense-Tracker/internal/domain"
	"github.com/aswin071/Expense-Tracker/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUserColumns = `user_id, username, email, password_hash, salary, is_active, created_at, updated_at`

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// Create inserts a new user and returns it.
func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, salary, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + pgUserColumns
	out, err := scanPGUser(r.db.QueryRow(ctx, query, u.Username, u.Email, u.PasswordHash, u.Salary, u.IsActive))
	if err != nil {
		return dom.User{}, pgUserErr("create user", err)
	}
	return out, nil
}

// GetByID returns the user by id.
func (r *PGUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	u, err := scanPGUser(r.db.QueryRow(ctx, `SELECT `+pgUserColumns+` FROM users WHERE user_id = $1`, id))
	if err != nil {
		return dom.User{}, pgUserErr("get user", err)
	}
	return u, nil
}

// GetByUsername returns the user by username.
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	u, err := scanPGUser(r.db.QueryRow(ctx, `SELECT `+pgUserColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return dom.User{}, pgUserErr("get user by username", err)
	}
	return u, nil
}

// GetByEmail returns the user by email.
func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	u, err := scanPGUser(r.db.QueryRow(ctx, `SELECT `+pgUserColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return dom.User{}, pgUserErr("get user by email", err)
	}
	return u, nil
}

// Update writes every mutable column of u and bumps updated_at.
func (r *PGUserRepo) Update(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		UPDATE users SET username = $2, email = $3, password_hash = $4, salary = $5, is_active = $6, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + pgUserColumns
	out, err := scanPGUser(r.db.QueryRow(ctx, query, u.ID, u.Username, u.Email, u.PasswordHash, u.Salary, u.IsActive))
	if err != nil {
		return dom.User{}, pgUserErr("update user", err)
	}
	return out, nil
}

// Delete removes the user; expenses go with it via ON DELETE CASCADE.
func (r *PGUserRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPGUser(row rowScanner) (dom.User, error) {
	var u dom.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Salary, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, err
}

func pgUserErr(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case utils.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
