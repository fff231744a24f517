package policy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/policy"
	"github.com/hoa/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPolicyRepository is a mock implementation of policy.PolicyRepository
type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) Create(ctx context.Context, p *policy.Policy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPolicyRepository) Update(ctx context.Context, p *policy.Policy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPolicyRepository) FindByID(ctx context.Context, id uuid.UUID) (*policy.Policy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policy.Policy), args.Error(1)
}

func (m *MockPolicyRepository) FindAll(ctx context.Context) ([]*policy.Policy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*policy.Policy), args.Error(1)
}

func (m *MockPolicyRepository) FindActive(ctx context.Context) ([]*policy.Policy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*policy.Policy), args.Error(1)
}

func newTestPolicyService() (*PolicyService, *MockPolicyRepository) {
	policyRepo := new(MockPolicyRepository)
	return NewPolicyService(policyRepo, zap.NewNop()), policyRepo
}

func newTestPolicy(t *testing.T) *policy.Policy {
	t.Helper()
	p, err := policy.NewPolicy("Quiet hours", "No loud noise between 10 PM and 6 AM.", uuid.New())
	require.NoError(t, err)
	return p
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestPolicyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes a policy", func(t *testing.T) {
		svc, policyRepo := newTestPolicyService()
		policyRepo.On("Create", ctx, mock.AnythingOfType("*policy.Policy")).Return(nil)

		result, err := svc.Create(ctx, uuid.New(), CreatePolicyRequest{
			Title:   "Quiet hours",
			Content: "No loud noise between 10 PM and 6 AM.",
		})
		require.NoError(t, err)
		assert.Equal(t, "Quiet hours", result.Title)
		assert.True(t, result.IsActive)
		policyRepo.AssertExpectations(t)
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		svc, _ := newTestPolicyService()

		_, err := svc.Create(ctx, uuid.New(), CreatePolicyRequest{Title: "   ", Content: "text"})
		assertDomainErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestPolicyService_Revise(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the text", func(t *testing.T) {
		svc, policyRepo := newTestPolicyService()

		p := newTestPolicy(t)
		policyRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		policyRepo.On("Update", ctx, p).Return(nil)

		result, err := svc.Revise(ctx, p.ID, RevisePolicyRequest{
			Title:   "Quiet hours (revised)",
			Content: "No loud noise between 9 PM and 6 AM.",
		})
		require.NoError(t, err)
		assert.Equal(t, "Quiet hours (revised)", result.Title)
	})

	t.Run("returns NOT_FOUND for an unknown policy", func(t *testing.T) {
		svc, policyRepo := newTestPolicyService()
		policyID := uuid.New()
		policyRepo.On("FindByID", ctx, policyID).Return(nil, nil)

		_, err := svc.Revise(ctx, policyID, RevisePolicyRequest{Title: "x", Content: "y"})
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})
}

func TestPolicyService_DeactivateReactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivates and reactivates", func(t *testing.T) {
		svc, policyRepo := newTestPolicyService()

		p := newTestPolicy(t)
		policyRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		policyRepo.On("Update", ctx, p).Return(nil)

		retired, err := svc.Deactivate(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, retired.IsActive)

		restored, err := svc.Reactivate(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, restored.IsActive)
	})

	t.Run("rejects deactivating twice", func(t *testing.T) {
		svc, policyRepo := newTestPolicyService()

		p := newTestPolicy(t)
		require.NoError(t, p.Deactivate())
		policyRepo.On("FindByID", ctx, p.ID).Return(p, nil)

		_, err := svc.Deactivate(ctx, p.ID)
		assertDomainErrorCode(t, err, "INVALID_STATE_TRANSITION")
	})
}

func TestPolicyService_ListActive(t *testing.T) {
	ctx := context.Background()

	t.Run("returns only active policies", func(t *testing.T) {
		svc, policyRepo := newTestPolicyService()

		p := newTestPolicy(t)
		policyRepo.On("FindActive", ctx).Return([]*policy.Policy{p}, nil)

		result, err := svc.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, p.Title, result[0].Title)
	})
}
