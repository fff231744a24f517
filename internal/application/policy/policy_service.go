package policy

import (
	"context"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/policy"
	"github.com/hoa/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PolicyService manages the association's published policies
type PolicyService struct {
	policyRepo policy.PolicyRepository
	logger     *zap.Logger
}

// NewPolicyService creates a new PolicyService
func NewPolicyService(policyRepo policy.PolicyRepository, logger *zap.Logger) *PolicyService {
	return &PolicyService{
		policyRepo: policyRepo,
		logger:     logger,
	}
}

// Create publishes a new policy
func (s *PolicyService) Create(ctx context.Context, adminID uuid.UUID, req CreatePolicyRequest) (*PolicyResponse, error) {
	p, err := policy.NewPolicy(req.Title, req.Content, adminID)
	if err != nil {
		return nil, err
	}

	if err := s.policyRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Policy published",
		zap.String("policy_id", p.ID.String()),
		zap.String("title", p.Title))

	response := ToPolicyResponse(p)
	return &response, nil
}

// Revise updates a policy's text
func (s *PolicyService) Revise(ctx context.Context, policyID uuid.UUID, req RevisePolicyRequest) (*PolicyResponse, error) {
	p, err := s.findPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	if err := p.Revise(req.Title, req.Content); err != nil {
		return nil, err
	}
	if err := s.policyRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	response := ToPolicyResponse(p)
	return &response, nil
}

// Deactivate retires a policy without deleting it
func (s *PolicyService) Deactivate(ctx context.Context, policyID uuid.UUID) (*PolicyResponse, error) {
	p, err := s.findPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	if err := p.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.policyRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Policy deactivated", zap.String("policy_id", policyID.String()))

	response := ToPolicyResponse(p)
	return &response, nil
}

// Reactivate puts a retired policy back into effect
func (s *PolicyService) Reactivate(ctx context.Context, policyID uuid.UUID) (*PolicyResponse, error) {
	p, err := s.findPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	if err := p.Reactivate(); err != nil {
		return nil, err
	}
	if err := s.policyRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	response := ToPolicyResponse(p)
	return &response, nil
}

// GetByID retrieves a single policy
func (s *PolicyService) GetByID(ctx context.Context, policyID uuid.UUID) (*PolicyResponse, error) {
	p, err := s.findPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}
	response := ToPolicyResponse(p)
	return &response, nil
}

// List returns all policies including retired ones (admin)
func (s *PolicyService) List(ctx context.Context) ([]PolicyResponse, error) {
	policies, err := s.policyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toPolicyResponses(policies), nil
}

// ListActive returns the policies currently in effect
func (s *PolicyService) ListActive(ctx context.Context) ([]PolicyResponse, error) {
	policies, err := s.policyRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return toPolicyResponses(policies), nil
}

func (s *PolicyService) findPolicy(ctx context.Context, policyID uuid.UUID) (*policy.Policy, error) {
	p, err := s.policyRepo.FindByID(ctx, policyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func toPolicyResponses(policies []*policy.Policy) []PolicyResponse {
	responses := make([]PolicyResponse, len(policies))
	for i, p := range policies {
		responses[i] = ToPolicyResponse(p)
	}
	return responses
}
