package domain

import "time"

// User is the domain entity for a user account.
type User struct {
	ID           int64
	Username     string
	Email        *string
	PasswordHash *string
	Salary       float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the user can log in with a password.
func (u User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
