package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/aswin071/Expense-Tracker/internal/cache"
	dom "github.com/aswin071/Expense-Tracker/internal/domain"
	"github.com/aswin071/Expense-Tracker/internal/repo"

	"golang.org/x/crypto/bcrypt"
)

// CreateUserInput is the data needed to register a user.
type CreateUserInput struct {
	Username string
	Email    *string
	Password *string
	Salary   float64
}

// UpdateUserInput carries a partial user update. Nil fields are left unchanged.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	Salary   *float64
}

// UserService handles user accounts and credential checks.
type UserService struct {
	repo  repo.UserRepo
	cache *cache.BudgetCache
	cost  int
	log   *slog.Logger
}

// NewUserService returns a new UserService. If c is nil, caching is disabled.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewUserService(r repo.UserRepo, c *cache.BudgetCache, cost int, log *slog.Logger) *UserService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if log == nil {
		log = slog.Default()
	}
	return &UserService{repo: r, cache: c, cost: cost, log: log.With("component", "user_service")}
}

// Create registers a new user. Username and email must be unused.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (dom.User, error) {
	username, err := cleanUsername(in.Username)
	if err != nil {
		return dom.User{}, err
	}
	email, err := cleanEmail(in.Email)
	if err != nil {
		return dom.User{}, err
	}
	if err := checkSalary(in.Salary); err != nil {
		return dom.User{}, err
	}

	if err := s.ensureUsernameFree(ctx, username); err != nil {
		return dom.User{}, err
	}
	if email != nil {
		if err := s.ensureEmailFree(ctx, *email); err != nil {
			return dom.User{}, err
		}
	}

	u := dom.User{Username: username, Email: email, Salary: in.Salary, IsActive: true}
	if in.Password != nil {
		hash, err := s.hash(*in.Password)
		if err != nil {
			return dom.User{}, err
		}
		u.PasswordHash = &hash
	}

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return dom.User{}, translate(err, "username or email")
	}
	s.log.Debug("user created", "user_id", created.ID)
	return created, nil
}

// GetByID returns the user with id.
func (s *UserService) GetByID(ctx context.Context, id int64) (dom.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.User{}, translate(err, fmt.Sprintf("user %d", id))
	}
	return u, nil
}

// GetByUsername returns the user named username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return dom.User{}, translate(err, "user "+username)
	}
	return u, nil
}

// Update applies the supplied fields to user id.
func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (dom.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return dom.User{}, err
	}

	if in.Username != nil {
		username, err := cleanUsername(*in.Username)
		if err != nil {
			return dom.User{}, err
		}
		if username != u.Username {
			if err := s.ensureUsernameFree(ctx, username); err != nil {
				return dom.User{}, err
			}
		}
		u.Username = username
	}
	if in.Email != nil {
		email, err := cleanEmail(in.Email)
		if err != nil {
			return dom.User{}, err
		}
		if email != nil && (u.Email == nil || *u.Email != *email) {
			if err := s.ensureEmailFree(ctx, *email); err != nil {
				return dom.User{}, err
			}
		}
		u.Email = email
	}
	if in.Salary != nil {
		if err := checkSalary(*in.Salary); err != nil {
			return dom.User{}, err
		}
		u.Salary = *in.Salary
	}
	if in.Password != nil {
		hash, err := s.hash(*in.Password)
		if err != nil {
			return dom.User{}, err
		}
		u.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		return dom.User{}, translate(err, fmt.Sprintf("user %d", id))
	}
	s.invalidateCache(ctx, id)
	s.log.Debug("user updated", "user_id", id)
	return updated, nil
}

// Delete removes user id together with all of its expenses.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err, fmt.Sprintf("user %d", id))
	}
	s.invalidateCache(ctx, id)
	s.log.Debug("user deleted", "user_id", id)
	return nil
}

// Authenticate checks username and password; returns the user if valid.
// Whether the account is active is left to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if !u.HasPassword() {
		return dom.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string) error {
	_, err := s.repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return fmt.Errorf("%w: username '%s'", ErrConflict, username)
	case errors.Is(err, repo.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return fmt.Errorf("%w: email '%s'", ErrConflict, email)
	case errors.Is(err, repo.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *UserService) hash(password string) (string, error) {
	if n := utf8.RuneCountInString(password); n < 8 {
		return "", validationErr("password must be at least 8 characters")
	}
	// bcrypt only looks at the first 72 bytes and rejects longer input.
	if len(password) > 72 {
		return "", validationErr("password must be at most 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *UserService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.log.Warn("cache invalidation failed", "user_id", userID, "error", err)
	}
}

func cleanUsername(s string) (string, error) {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n < 3 || n > 100 {
		return "", validationErr("username must be 3 to 100 characters")
	}
	return s, nil
}

// cleanEmail returns nil for a missing or blank address.
func cleanEmail(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		return nil, validationErr("invalid email address")
	}
	return &v, nil
}

func checkSalary(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return validationErr("salary must be non-negative")
	}
	return nil
}
