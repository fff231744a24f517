package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/property"
	"github.com/hoa/backend/internal/domain/registration"
)

// ApplicationModel is the persistence model for the registration Application aggregate root.
type ApplicationModel struct {
	AggregateModel
	ApplicantID    uuid.UUID                      `gorm:"type:uuid;not null;index"`
	Email          string                         `gorm:"type:varchar(200);not null;index"`
	FullName       string                         `gorm:"type:varchar(200);not null"`
	Phone          string                         `gorm:"type:varchar(50)"`
	RequestedLotID uuid.UUID                      `gorm:"type:uuid;not null;index"`
	OwnerType      property.OwnerType             `gorm:"type:varchar(20);not null"`
	Status         registration.ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminNotes     string                         `gorm:"type:text"`
	ReviewedBy     *uuid.UUID                     `gorm:"type:uuid"`
	ReviewedAt     *time.Time
}

// TableName returns the table name for GORM
func (ApplicationModel) TableName() string {
	return "registration_applications"
}

// ToDomain converts the persistence model to a domain Application entity.
func (m *ApplicationModel) ToDomain() *registration.Application {
	return &registration.Application{
		BaseAggregateRoot: m.baseAggregateRoot(),
		ApplicantID:       m.ApplicantID,
		Email:             m.Email,
		FullName:          m.FullName,
		Phone:             m.Phone,
		RequestedLotID:    m.RequestedLotID,
		OwnerType:         m.OwnerType,
		Status:            m.Status,
		AdminNotes:        m.AdminNotes,
		ReviewedBy:        m.ReviewedBy,
		ReviewedAt:        m.ReviewedAt,
	}
}

// FromDomain populates the persistence model from a domain Application entity.
func (m *ApplicationModel) FromDomain(a *registration.Application) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.ApplicantID = a.ApplicantID
	m.Email = a.Email
	m.FullName = a.FullName
	m.Phone = a.Phone
	m.RequestedLotID = a.RequestedLotID
	m.OwnerType = a.OwnerType
	m.Status = a.Status
	m.AdminNotes = a.AdminNotes
	m.ReviewedBy = a.ReviewedBy
	m.ReviewedAt = a.ReviewedAt
}

// ApplicationModelFromDomain creates a new persistence model from a domain Application.
func ApplicationModelFromDomain(a *registration.Application) *ApplicationModel {
	m := &ApplicationModel{}
	m.FromDomain(a)
	return m
}
