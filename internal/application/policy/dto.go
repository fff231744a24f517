package policy

import (
	"time"

	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/policy"
)

// CreatePolicyRequest publishes a new association policy
type CreatePolicyRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

// RevisePolicyRequest updates a policy's text
type RevisePolicyRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

// PolicyResponse represents a policy in API responses
type PolicyResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsActive  bool      `json:"is_active"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPolicyResponse maps a domain policy to its API shape
func ToPolicyResponse(p *policy.Policy) PolicyResponse {
	return PolicyResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		IsActive:  p.IsActive,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
