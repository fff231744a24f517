package registration

import (
	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/shared"
)

// Aggregate type constant for Application
const AggregateTypeApplication = "RegistrationApplication"

// Application domain event types
const (
	EventTypeApplicationSubmitted = "ApplicationSubmitted"
	EventTypeApplicationApproved  = "ApplicationApproved"
	EventTypeApplicationRejected  = "ApplicationRejected"
)

// ApplicationSubmittedEvent is published when an application is created
type ApplicationSubmittedEvent struct {
	shared.BaseDomainEvent
	ApplicantID    uuid.UUID `json:"applicant_id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	RequestedLotID uuid.UUID `json:"requested_lot_id"`
}

// NewApplicationSubmittedEvent creates a new ApplicationSubmittedEvent
func NewApplicationSubmittedEvent(app *Application) *ApplicationSubmittedEvent {
	return &ApplicationSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationSubmitted, AggregateTypeApplication, app.ID),
		ApplicantID:     app.ApplicantID,
		Email:           app.Email,
		FullName:        app.FullName,
		RequestedLotID:  app.RequestedLotID,
	}
}

// ApplicationApprovedEvent is published when an application is approved
type ApplicationApprovedEvent struct {
	shared.BaseDomainEvent
	ApplicantID    uuid.UUID `json:"applicant_id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	RequestedLotID uuid.UUID `json:"requested_lot_id"`
	ReviewedBy     uuid.UUID `json:"reviewed_by"`
}

// NewApplicationApprovedEvent creates a new ApplicationApprovedEvent
func NewApplicationApprovedEvent(app *Application) *ApplicationApprovedEvent {
	return &ApplicationApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationApproved, AggregateTypeApplication, app.ID),
		ApplicantID:     app.ApplicantID,
		Email:           app.Email,
		FullName:        app.FullName,
		RequestedLotID:  app.RequestedLotID,
		ReviewedBy:      *app.ReviewedBy,
	}
}

// ApplicationRejectedEvent is published when an application is rejected
type ApplicationRejectedEvent struct {
	shared.BaseDomainEvent
	ApplicantID uuid.UUID `json:"applicant_id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	ReviewedBy  uuid.UUID `json:"reviewed_by"`
	AdminNotes  string    `json:"admin_notes"`
}

// NewApplicationRejectedEvent creates a new ApplicationRejectedEvent
func NewApplicationRejectedEvent(app *Application) *ApplicationRejectedEvent {
	return &ApplicationRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationRejected, AggregateTypeApplication, app.ID),
		ApplicantID:     app.ApplicantID,
		Email:           app.Email,
		FullName:        app.FullName,
		ReviewedBy:      *app.ReviewedBy,
		AdminNotes:      app.AdminNotes,
	}
}
