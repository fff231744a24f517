package policy

import (
	"context"

	"github.com/google/uuid"
)

// PolicyRepository defines the interface for policy persistence
// There is no Delete: policies are only ever deactivated
type PolicyRepository interface {
	// Create creates a new policy
	Create(ctx context.Context, policy *Policy) error

	// Update updates an existing policy
	Update(ctx context.Context, policy *Policy) error

	// FindByID finds a policy by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Policy, error)

	// FindAll returns all policies, newest first
	FindAll(ctx context.Context) ([]*Policy, error)

	// FindActive returns all active policies, newest first
	FindActive(ctx context.Context) ([]*Policy, error)
}
