package models

import (
	"github.com/google/uuid"
	"github.com/hoa/backend/internal/domain/policy"
)

// PolicyModel is the persistence model for the Policy aggregate root.
type PolicyModel struct {
	AggregateModel
	Title     string    `gorm:"type:varchar(200);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	IsActive  bool      `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (PolicyModel) TableName() string {
	return "policies"
}

// ToDomain converts the persistence model to a domain Policy entity.
func (m *PolicyModel) ToDomain() *policy.Policy {
	return &policy.Policy{
		BaseAggregateRoot: m.baseAggregateRoot(),
		Title:             m.Title,
		Content:           m.Content,
		CreatedBy:         m.CreatedBy,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Policy entity.
func (m *PolicyModel) FromDomain(p *policy.Policy) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Title = p.Title
	m.Content = p.Content
	m.CreatedBy = p.CreatedBy
	m.IsActive = p.IsActive
}

// PolicyModelFromDomain creates a new persistence model from a domain Policy.
func PolicyModelFromDomain(p *policy.Policy) *PolicyModel {
	m := &PolicyModel{}
	m.FromDomain(p)
	return m
}
