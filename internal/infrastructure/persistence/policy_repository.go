package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/policy"
	"github.com/hoa/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPolicyRepository implements policy.PolicyRepository using GORM
type GormPolicyRepository struct {
	db *gorm.DB
}

// NewGormPolicyRepository creates a new GormPolicyRepository
func NewGormPolicyRepository(db *gorm.DB) *GormPolicyRepository {
	return &GormPolicyRepository{db: db}
}

// Create creates a new policy
func (r *GormPolicyRepository) Create(ctx context.Context, p *policy.Policy) error {
	model := models.PolicyModelFromDomain(p)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing policy
func (r *GormPolicyRepository) Update(ctx context.Context, p *policy.Policy) error {
	model := models.PolicyModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a policy by ID
func (r *GormPolicyRepository) FindByID(ctx context.Context, id uuid.UUID) (*policy.Policy, error) {
	var model models.PolicyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all policies, newest first
func (r *GormPolicyRepository) FindAll(ctx context.Context) ([]*policy.Policy, error) {
	var policyModels []models.PolicyModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&policyModels).Error; err != nil {
		return nil, err
	}
	return toDomainPolicies(policyModels), nil
}

// FindActive returns all active policies, newest first
func (r *GormPolicyRepository) FindActive(ctx context.Context) ([]*policy.Policy, error) {
	var policyModels []models.PolicyModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&policyModels).Error; err != nil {
		return nil, err
	}
	return toDomainPolicies(policyModels), nil
}

func toDomainPolicies(policyModels []models.PolicyModel) []*policy.Policy {
	policies := make([]*policy.Policy, len(policyModels))
	for i := range policyModels {
		policies[i] = policyModels[i].ToDomain()
	}
	return policies
}

// Ensure GormPolicyRepository implements policy.PolicyRepository
var _ policy.PolicyRepository = (*GormPolicyRepository)(nil)
