package service

import (
	"errors"
	"fmt"

	"github.com/aswin071/Expense-Tracker/internal/budget"
	"github.com/aswin071/Expense-Tracker/internal/repo"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("already exists")
	ErrInvalidFilter      = budget.ErrInvalidFilter
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// translate maps repository sentinels onto service sentinels, keeping what as context.
func translate(err error, what string) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, repo.ErrDuplicate):
		return fmt.Errorf("%w: %s", ErrConflict, what)
	default:
		return err
	}
}
