package policy

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/shared"
)

// Policy represents an association rule published to homeowners
// Policies are soft-deactivated, never hard-deleted, so the record of what
// rules applied when stays intact
type Policy struct {
	shared.BaseAggregateRoot
	Title     string
	Content   string
	CreatedBy uuid.UUID
	IsActive  bool
}

// NewPolicy creates an active policy
func NewPolicy(title, content string, createdBy uuid.UUID) (*Policy, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Policy title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Policy title cannot exceed 200 characters")
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Policy content cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Creator cannot be empty")
	}

	return &Policy{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Content:           content,
		CreatedBy:         createdBy,
		IsActive:          true,
	}, nil
}

// Revise updates the policy text
func (p *Policy) Revise(title, content string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Policy title cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Policy content cannot be empty")
	}

	p.Title = title
	p.Content = content
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate retires the policy without deleting it
func (p *Policy) Deactivate() error {
	if !p.IsActive {
		return shared.NewDomainError("INVALID_STATE_TRANSITION", "Policy is already inactive")
	}

	p.IsActive = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Reactivate puts a retired policy back into effect
func (p *Policy) Reactivate() error {
	if p.IsActive {
		return shared.NewDomainError("INVALID_STATE_TRANSITION", "Policy is already active")
	}

	p.IsActive = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}
