package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/identity"
)

// LoginInput contains credentials for authentication
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	IP       string `json:"-"` // Set from the request, not the body
}

// LoginResult contains tokens and user info after successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenInput contains the refresh token
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResult contains the new token pair
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput identifies the session being terminated
type LogoutInput struct {
	UserID    uuid.UUID
	AccessJTI string
	ExpiresAt time.Time
}

// UserInfo is the public shape of an authenticated user
type UserInfo struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone,omitempty"`
	Role       string    `json:"role"`
	IsApproved bool      `json:"is_approved"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	IsApproved  bool       `json:"is_approved"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UpdateProfileRequest updates the caller's own profile
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=120"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
}

// ChangePasswordRequest changes the caller's own password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,strongpassword"`
}

// ListUsersRequest contains filters for listing users
type ListUsersRequest struct {
	Keyword    string `form:"keyword"`
	Role       string `form:"role" binding:"omitempty,oneof=admin homeowner"`
	Status     string `form:"status" binding:"omitempty,oneof=active locked deactivated"`
	IsApproved *bool  `form:"is_approved"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// ToUserInfo maps a domain user to UserInfo
func ToUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:         user.ID,
		Email:      user.Email,
		FullName:   user.FullName,
		Phone:      user.Phone,
		Role:       string(user.Role),
		IsApproved: user.IsApproved,
	}
}

// ToUserResponse maps a domain user to UserResponse
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		Phone:       user.Phone,
		Role:        string(user.Role),
		Status:      string(user.Status),
		IsApproved:  user.IsApproved,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
