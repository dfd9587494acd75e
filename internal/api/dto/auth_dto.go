package dto

import (
	"time"

	"github.com/spec-kit/content-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserView is the public projection of an account. The credential digest is
// deliberately absent; it must never appear on a response surface.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewUserView projects a domain user.
func NewUserView(user *domain.User) UserView {
	return UserView{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// LoginUserView is the minimal subject view returned with a token.
type LoginUserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
