package dto

import "time"

// LoginRequest carries credentials, either as a form (POST /auth/login)
// or as JSON (POST /auth/login-json).
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// RefreshRequest is the JSON body for POST /auth/refresh and /auth/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse is returned by the login and refresh endpoints.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// CreateUserRequest is the JSON body for POST /users/.
type CreateUserRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
	Salary   float64 `json:"salary" binding:"gte=0"`
}

// UpdateUserRequest is the JSON body for PUT /users/{id}. Omitted fields are unchanged.
type UpdateUserRequest struct {
	Username *string  `json:"username" binding:"omitempty,min=3,max=100"`
	Email    *string  `json:"email" binding:"omitempty,email"`
	Password *string  `json:"password" binding:"omitempty,min=8,max=72"`
	Salary   *float64 `json:"salary" binding:"omitempty,gte=0"`
}

type UserResponse struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email"`
	Salary    float64   `json:"salary"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
