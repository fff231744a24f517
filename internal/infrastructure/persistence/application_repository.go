package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/registration"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/hoa/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormApplicationRepository implements registration.ApplicationRepository using GORM
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewGormApplicationRepository creates a new GormApplicationRepository
func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create creates a new registration application
func (r *GormApplicationRepository) Create(ctx context.Context, app *registration.Application) error {
	model := models.ApplicationModelFromDomain(app)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing application
func (r *GormApplicationRepository) Update(ctx context.Context, app *registration.Application) error {
	model := models.ApplicationModelFromDomain(app)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpdateWithLock updates an application using optimistic locking on the
// version column. Review decisions go through this path so that two admins
// cannot both settle the same application.
func (r *GormApplicationRepository) UpdateWithLock(ctx context.Context, app *registration.Application) error {
	model := models.ApplicationModelFromDomain(app)
	result := r.db.WithContext(ctx).
		Model(&models.ApplicationModel{}).
		Where("id = ? AND version = ?", app.ID, app.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The application has been modified by another user")
	}
	return nil
}

// FindByID finds an application by ID
func (r *GormApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*registration.Application, error) {
	var model models.ApplicationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByApplicantID returns all applications submitted by a user, newest first
func (r *GormApplicationRepository) FindByApplicantID(ctx context.Context, applicantID uuid.UUID) ([]*registration.Application, error) {
	var appModels []models.ApplicationModel
	if err := r.db.WithContext(ctx).
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&appModels).Error; err != nil {
		return nil, err
	}
	return toDomainApplications(appModels), nil
}

// FindPendingByLotID returns pending applications that request a given lot
func (r *GormApplicationRepository) FindPendingByLotID(ctx context.Context, lotID uuid.UUID) ([]*registration.Application, error) {
	var appModels []models.ApplicationModel
	if err := r.db.WithContext(ctx).
		Where("requested_lot_id = ? AND status = ?", lotID, registration.ApplicationStatusPending).
		Order("created_at ASC").
		Find(&appModels).Error; err != nil {
		return nil, err
	}
	return toDomainApplications(appModels), nil
}

// FindAll returns applications matching the filter with pagination
func (r *GormApplicationRepository) FindAll(ctx context.Context, filter registration.ApplicationFilter) ([]*registration.Application, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ApplicationModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ApplicantID != nil {
		query = query.Where("applicant_id = ?", *filter.ApplicantID)
	}
	if filter.RequestedLotID != nil {
		query = query.Where("requested_lot_id = ?", *filter.RequestedLotID)
	}
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		query = query.Where("email LIKE ? OR full_name LIKE ?", keyword, keyword)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appModels []models.ApplicationModel
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&appModels).Error; err != nil {
		return nil, 0, err
	}

	return toDomainApplications(appModels), total, nil
}

// CountByStatus returns the number of applications in a given status
func (r *GormApplicationRepository) CountByStatus(ctx context.Context, status registration.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ApplicationModel{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func toDomainApplications(appModels []models.ApplicationModel) []*registration.Application {
	apps := make([]*registration.Application, len(appModels))
	for i := range appModels {
		apps[i] = appModels[i].ToDomain()
	}
	return apps
}

// Ensure GormApplicationRepository implements registration.ApplicationRepository
var _ registration.ApplicationRepository = (*GormApplicationRepository)(nil)
