package identity

import (
	"github.com/hoa/backend/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserRegistered      = "UserRegistered"
	EventTypeUserApproved        = "UserApproved"
	EventTypeUserPasswordChanged = "UserPasswordChanged"
	EventTypeUserStatusChanged   = "UserStatusChanged"
)

// UserRegisteredEvent is published when a user account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		Email:           user.Email,
		FullName:        user.FullName,
		Role:            user.Role,
	}
}

// UserApprovedEvent is published when a homeowner account is approved
type UserApprovedEvent struct {
	shared.BaseDomainEvent
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// NewUserApprovedEvent creates a new UserApprovedEvent
func NewUserApprovedEvent(user *User) *UserApprovedEvent {
	return &UserApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserApproved, AggregateTypeUser, user.ID),
		Email:           user.Email,
		FullName:        user.FullName,
	}
}

// UserPasswordChangedEvent is published when a user's password is changed
type UserPasswordChangedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserPasswordChangedEvent creates a new UserPasswordChangedEvent
func NewUserPasswordChangedEvent(user *User) *UserPasswordChangedEvent {
	return &UserPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserPasswordChanged, AggregateTypeUser, user.ID),
		Email:           user.Email,
	}
}

// UserStatusChangedEvent is published when a user's status changes
type UserStatusChangedEvent struct {
	shared.BaseDomainEvent
	Email     string     `json:"email"`
	OldStatus UserStatus `json:"old_status"`
	NewStatus UserStatus `json:"new_status"`
}

// NewUserStatusChangedEvent creates a new UserStatusChangedEvent
func NewUserStatusChangedEvent(user *User, oldStatus, newStatus UserStatus) *UserStatusChangedEvent {
	return &UserStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserStatusChanged, AggregateTypeUser, user.ID),
		Email:           user.Email,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
