package registration

import (
	"context"

	"github.com/google/uuid"
)

// ApplicationRepository defines the interface for application persistence
type ApplicationRepository interface {
	// Create creates a new application
	Create(ctx context.Context, app *Application) error

	// Update updates an existing application
	Update(ctx context.Context, app *Application) error

	// UpdateWithLock updates an application using optimistic locking
	UpdateWithLock(ctx context.Context, app *Application) error

	// FindByID finds an application by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Application, error)

	// FindByApplicantID returns all applications submitted by a user
	FindByApplicantID(ctx context.Context, applicantID uuid.UUID) ([]*Application, error)

	// FindPendingByLotID returns pending applications requesting a lot
	FindPendingByLotID(ctx context.Context, lotID uuid.UUID) ([]*Application, error)

	// FindAll returns applications matching the filter with pagination
	FindAll(ctx context.Context, filter ApplicationFilter) ([]*Application, int64, error)

	// CountByStatus returns the number of applications in a status
	CountByStatus(ctx context.Context, status ApplicationStatus) (int64, error)
}

// ApplicationFilter contains filter options for querying applications
type ApplicationFilter struct {
	// Filter by status
	Status *ApplicationStatus

	// Filter by applicant
	ApplicantID *uuid.UUID

	// Filter by requested lot
	RequestedLotID *uuid.UUID

	// Search keyword for email or full name
	Keyword string

	// Pagination
	Page     int
	PageSize int
}

// NewApplicationFilter creates a new ApplicationFilter with default values
func NewApplicationFilter() ApplicationFilter {
	return ApplicationFilter{
		Page:     1,
		PageSize: 20,
	}
}

// WithStatus sets the status filter
func (f ApplicationFilter) WithStatus(status ApplicationStatus) ApplicationFilter {
	f.Status = &status
	return f
}

// WithApplicantID sets the applicant filter
func (f ApplicationFilter) WithApplicantID(applicantID uuid.UUID) ApplicationFilter {
	f.ApplicantID = &applicantID
	return f
}

// WithRequestedLotID sets the requested lot filter
func (f ApplicationFilter) WithRequestedLotID(lotID uuid.UUID) ApplicationFilter {
	f.RequestedLotID = &lotID
	return f
}

// WithKeyword sets the search keyword
func (f ApplicationFilter) WithKeyword(keyword string) ApplicationFilter {
	f.Keyword = keyword
	return f
}

// WithPagination sets pagination parameters
func (f ApplicationFilter) WithPagination(page, pageSize int) ApplicationFilter {
	f.Page = page
	f.PageSize = pageSize
	return f
}

// Offset returns the offset for pagination
func (f ApplicationFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f ApplicationFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
