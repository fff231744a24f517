package models

import (
	"time"

	"github.com/hoa/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User aggregate root.
type UserModel struct {
	AggregateModel
	Email          string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	FullName       string              `gorm:"type:varchar(200);not null"`
	Phone          string              `gorm:"type:varchar(50)"`
	PasswordHash   string              `gorm:"type:varchar(200);not null"`
	Role           identity.UserRole   `gorm:"type:varchar(20);not null;index"`
	IsApproved     bool                `gorm:"not null;default:false;index"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	LastLoginAt    *time.Time
	LastLoginIP    string `gorm:"type:varchar(45)"`
	FailedAttempts int    `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.baseAggregateRoot(),
		Email:             m.Email,
		FullName:          m.FullName,
		Phone:             m.Phone,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		IsApproved:        m.IsApproved,
		Status:            m.Status,
		LastLoginAt:       m.LastLoginAt,
		LastLoginIP:       m.LastLoginIP,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.FullName = u.FullName
	m.Phone = u.Phone
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.IsApproved = u.IsApproved
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
}

// UserModelFromDomain creates a new persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
