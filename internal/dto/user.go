package dto

import (
	"time"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
)

// RegisterUserRequest creates a new user with their personal account.
type RegisterUserRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	CurrencyCode string `json:"currencyCode" binding:"omitempty,len=3"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserResponse mirrors domain.User without credentials.
type UserResponse struct {
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           domain.UserRole `json:"role"`
	AccountID      string          `json:"accountID"`
	OrganizationID *string         `json:"organizationID,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:         u.UserID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		AccountID:      u.AccountID,
		OrganizationID: u.OrganizationID,
		CreatedAt:      u.CreatedAt,
	}
}
