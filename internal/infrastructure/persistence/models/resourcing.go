package models

import (
	"github.com/Swarup9437/pm-tool/internal/domain/resourcing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResourceModel is the persistence model for resourcing.Resource
type ResourceModel struct {
	BaseModel
	Name                 string          `gorm:"type:varchar(200);not null;index"`
	Type                 string          `gorm:"type:varchar(20);not null"`
	Rate                 decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CapacityHoursPerWeek decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	IsActive             bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ResourceModel) TableName() string {
	return "resources"
}

func (m *ResourceModel) ToDomain() *resourcing.Resource {
	return &resourcing.Resource{
		BaseEntity:           m.BaseModel.ToDomain(),
		Name:                 m.Name,
		Type:                 resourcing.ResourceType(m.Type),
		Rate:                 m.Rate,
		CapacityHoursPerWeek: m.CapacityHoursPerWeek,
		IsActive:             m.IsActive,
	}
}

func (m *ResourceModel) FromDomain(r *resourcing.Resource) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Name = r.Name
	m.Type = string(r.Type)
	m.Rate = r.Rate
	m.CapacityHoursPerWeek = r.CapacityHoursPerWeek
	m.IsActive = r.IsActive
}

func ResourceModelFromDomain(r *resourcing.Resource) *ResourceModel {
	m := &ResourceModel{}
	m.FromDomain(r)
	return m
}

// AssignmentModel is the persistence model for resourcing.Assignment
type AssignmentModel struct {
	BaseModel
	TaskID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ResourceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Hours      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (AssignmentModel) TableName() string {
	return "assignments"
}

func (m *AssignmentModel) ToDomain() *resourcing.Assignment {
	return &resourcing.Assignment{
		BaseEntity: m.BaseModel.ToDomain(),
		TaskID:     m.TaskID,
		ResourceID: m.ResourceID,
		Hours:      m.Hours,
	}
}

func (m *AssignmentModel) FromDomain(a *resourcing.Assignment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.TaskID = a.TaskID
	m.ResourceID = a.ResourceID
	m.Hours = a.Hours
}

func AssignmentModelFromDomain(a *resourcing.Assignment) *AssignmentModel {
	m := &AssignmentModel{}
	m.FromDomain(a)
	return m
}
