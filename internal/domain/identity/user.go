package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/hoa/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserRole represents the role of a user in the association
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"     // Association administrator
	UserRoleHomeowner UserRole = "homeowner" // Lot owner or lessee
)

// IsValid checks whether the role is a known value
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleHomeowner:
		return true
	}
	return false
}

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"      // Normal active status
	UserStatusLocked      UserStatus = "locked"      // Locked due to failed attempts/security
	UserStatusDeactivated UserStatus = "deactivated" // Manually deactivated
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents a member of the association
// It is the aggregate root for account operations
type User struct {
	shared.BaseAggregateRoot
	Email          string
	FullName       string
	Phone          string
	PasswordHash   string
	Role           UserRole
	IsApproved     bool // Homeowners stay unusable until an admin approves their application
	Status         UserStatus
	LastLoginAt    *time.Time
	LastLoginIP    string
	FailedAttempts int
	LockedUntil    *time.Time
}

// NewHomeowner creates a homeowner account awaiting approval
func NewHomeowner(email, fullName, password string) (*User, error) {
	user, err := newUser(email, fullName, password, UserRoleHomeowner)
	if err != nil {
		return nil, err
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// NewAdmin creates an administrator account, approved immediately
func NewAdmin(email, fullName, password string) (*User, error) {
	user, err := newUser(email, fullName, password, UserRoleAdmin)
	if err != nil {
		return nil, err
	}

	user.IsApproved = true
	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

func newUser(email, fullName, password string, role UserRole) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateFullName(fullName); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		FullName:          strings.TrimSpace(fullName),
		PasswordHash:      passwordHash,
		Role:              role,
		Status:            UserStatusActive,
	}, nil
}

// SetFullName sets the user's full name
func (u *User) SetFullName(fullName string) error {
	if err := validateFullName(fullName); err != nil {
		return err
	}

	u.FullName = strings.TrimSpace(fullName)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetPhone sets the user's phone number
func (u *User) SetPhone(phone string) error {
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("VALIDATION_ERROR", "Phone cannot exceed 50 characters")
	}

	u.Phone = strings.TrimSpace(phone)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetEmail sets the user's email
func (u *User) SetEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	u.Email = strings.ToLower(strings.TrimSpace(email))
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Approve marks the user as an approved member
func (u *User) Approve() error {
	if u.IsApproved {
		return shared.NewDomainError("INVALID_STATE_TRANSITION", "User is already approved")
	}

	u.IsApproved = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserApprovedEvent(u))

	return nil
}

// ChangePassword changes the user's password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return u.SetPassword(newPassword)
}

// SetPassword sets a new password (admin reset, no old password check)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserPasswordChangedEvent(u))

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Deactivate deactivates the user account
func (u *User) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("INVALID_STATE_TRANSITION", "User is already deactivated")
	}

	oldStatus := u.Status
	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, oldStatus, UserStatusDeactivated))

	return nil
}

// Activate reactivates a deactivated or locked user account
func (u *User) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("INVALID_STATE_TRANSITION", "User is already active")
	}

	oldStatus := u.Status
	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, oldStatus, UserStatusActive))

	return nil
}

// Lock locks the user account
func (u *User) Lock(duration time.Duration) error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("INVALID_STATE_TRANSITION", "Cannot lock a deactivated user")
	}

	oldStatus := u.Status
	u.Status = UserStatusLocked
	if duration > 0 {
		lockedUntil := time.Now().Add(duration)
		u.LockedUntil = &lockedUntil
	}
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, oldStatus, UserStatusLocked))

	return nil
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess(ip string) {
	now := time.Now()
	u.LastLoginAt = &now
	u.LastLoginIP = ip
	u.FailedAttempts = 0
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// RecordLoginFailure records a failed login attempt
// Returns true if the account was locked as a result
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	if u.FailedAttempts >= maxAttempts {
		_ = u.Lock(lockDuration)
		return true
	}

	return false
}

// IsAdmin returns true if the user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// IsHomeowner returns true if the user is a homeowner
func (u *User) IsHomeowner() bool {
	return u.Role == UserRoleHomeowner
}

// IsLocked returns true if the user is locked
func (u *User) IsLocked() bool {
	if u.Status != UserStatusLocked {
		return false
	}

	// Check if lock has expired
	if u.LockedUntil != nil && time.Now().After(*u.LockedUntil) {
		return false
	}

	return true
}

// CanLogin returns true if the user can log in
// Homeowners additionally need an approved application
func (u *User) CanLogin() bool {
	if u.Status == UserStatusDeactivated {
		return false
	}
	if u.IsLocked() {
		return false
	}
	if u.Role == UserRoleHomeowner && !u.IsApproved {
		return false
	}
	return true
}

// Validation functions

func validateFullName(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Full name cannot be empty")
	}
	if len(fullName) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Full name cannot exceed 200 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	// Check for at least one letter and one number
	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	// Basic email validation
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
