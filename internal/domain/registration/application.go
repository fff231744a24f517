package registration

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/property"
	"github.com/hoa/backend/internal/domain/shared"
)

// ApplicationStatus represents the review status of an application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// IsValid checks whether the status is a known value
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// IsTerminal returns true once the application has been reviewed
// Terminal applications are immutable except for admin notes
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

// ErrInvalidStateTransition is returned when reviewing a non-pending application
var ErrInvalidStateTransition = shared.NewDomainError("INVALID_STATE_TRANSITION", "Application has already been reviewed")

// Application represents a homeowner registration application
// It transitions exactly once from pending to approved or rejected
type Application struct {
	shared.BaseAggregateRoot
	ApplicantID    uuid.UUID // User created at signup, unapproved until review
	Email          string
	FullName       string
	Phone          string
	RequestedLotID uuid.UUID
	OwnerType      property.OwnerType
	Status         ApplicationStatus
	AdminNotes     string
	ReviewedBy     *uuid.UUID
	ReviewedAt     *time.Time
}

// NewApplication creates a pending application for the given applicant
func NewApplication(applicantID uuid.UUID, email, fullName, phone string, requestedLotID uuid.UUID, ownerType property.OwnerType) (*Application, error) {
	if applicantID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Applicant ID cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Applicant email cannot be empty")
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Applicant name cannot be empty")
	}
	if requestedLotID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Requested lot cannot be empty")
	}
	if !ownerType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Owner type must be lessor or lessee")
	}

	app := &Application{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ApplicantID:       applicantID,
		Email:             email,
		FullName:          fullName,
		Phone:             strings.TrimSpace(phone),
		RequestedLotID:    requestedLotID,
		OwnerType:         ownerType,
		Status:            ApplicationStatusPending,
	}

	app.AddDomainEvent(NewApplicationSubmittedEvent(app))

	return app, nil
}

// Approve transitions the application to approved
// Lot assignment and user approval happen alongside in the same transaction,
// coordinated by the application service
func (a *Application) Approve(reviewerID uuid.UUID, notes string) error {
	if reviewerID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Reviewer ID cannot be empty")
	}
	if a.Status != ApplicationStatusPending {
		return ErrInvalidStateTransition
	}

	now := time.Now()
	a.Status = ApplicationStatusApproved
	a.ReviewedBy = &reviewerID
	a.ReviewedAt = &now
	a.AdminNotes = strings.TrimSpace(notes)
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewApplicationApprovedEvent(a))

	return nil
}

// Reject transitions the application to rejected
// Only the application itself is mutated
func (a *Application) Reject(reviewerID uuid.UUID, notes string) error {
	if reviewerID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Reviewer ID cannot be empty")
	}
	if a.Status != ApplicationStatusPending {
		return ErrInvalidStateTransition
	}

	now := time.Now()
	a.Status = ApplicationStatusRejected
	a.ReviewedBy = &reviewerID
	a.ReviewedAt = &now
	a.AdminNotes = strings.TrimSpace(notes)
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewApplicationRejectedEvent(a))

	return nil
}

// SetAdminNotes updates the admin notes
// Notes remain editable after the application reaches a terminal state
func (a *Application) SetAdminNotes(notes string) {
	a.AdminNotes = strings.TrimSpace(notes)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// IsPending returns true if the application awaits review
func (a *Application) IsPending() bool {
	return a.Status == ApplicationStatusPending
}
