package registration

import (
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/registration"
)

// SignupRequest represents a homeowner registration submission
type SignupRequest struct {
	Email          string    `json:"email" binding:"required,email,max=200"`
	FullName       string    `json:"full_name" binding:"required,min=2,max=120"`
	Phone          string    `json:"phone" binding:"omitempty,max=20"`
	Password       string    `json:"password" binding:"required,min=8,strongpassword"`
	RequestedLotID uuid.UUID `json:"requested_lot_id" binding:"required"`
	OwnerType      string    `json:"owner_type" binding:"required,oneof=lessor lessee"`
}

// ReviewRequest carries the reviewer's decision notes
type ReviewRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

// UpdateNotesRequest replaces the admin notes on an application
type UpdateNotesRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

// ListApplicationsRequest contains filters for listing applications
type ListApplicationsRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Keyword  string `form:"keyword"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// ApplicationResponse represents an application in API responses
type ApplicationResponse struct {
	ID             uuid.UUID  `json:"id"`
	ApplicantID    uuid.UUID  `json:"applicant_id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	Phone          string     `json:"phone,omitempty"`
	RequestedLotID uuid.UUID  `json:"requested_lot_id"`
	OwnerType      string     `json:"owner_type"`
	Status         string     `json:"status"`
	AdminNotes     string     `json:"admin_notes,omitempty"`
	ReviewedBy     *uuid.UUID `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToApplicationResponse maps a domain application to its API shape
func ToApplicationResponse(app *registration.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:             app.ID,
		ApplicantID:    app.ApplicantID,
		Email:          app.Email,
		FullName:       app.FullName,
		Phone:          app.Phone,
		RequestedLotID: app.RequestedLotID,
		OwnerType:      string(app.OwnerType),
		Status:         string(app.Status),
		AdminNotes:     app.AdminNotes,
		ReviewedBy:     app.ReviewedBy,
		ReviewedAt:     app.ReviewedAt,
		CreatedAt:      app.CreatedAt,
	}
}
