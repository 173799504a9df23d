package resourcing

import (
	"time"

	"github.com/Swarup9437/pm-tool/internal/domain/resourcing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResourceResponse represents a resource in API responses
type ResourceResponse struct {
	ID                   uuid.UUID       `json:"id"`
	Name                 string          `json:"name"`
	Type                 string          `json:"type"`
	Rate                 decimal.Decimal `json:"rate"`
	CapacityHoursPerWeek decimal.Decimal `json:"capacity_hours_per_week"`
	IsActive             bool            `json:"is_active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ToResourceResponse converts a domain resource
func ToResourceResponse(r *resourcing.Resource) ResourceResponse {
	return ResourceResponse{
		ID:                   r.ID,
		Name:                 r.Name,
		Type:                 r.Type.String(),
		Rate:                 r.Rate,
		CapacityHoursPerWeek: r.CapacityHoursPerWeek,
		IsActive:             r.IsActive,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

// ToResourceResponses converts a slice of resources
func ToResourceResponses(resources []resourcing.Resource) []ResourceResponse {
	out := make([]ResourceResponse, len(resources))
	for i := range resources {
		out[i] = ToResourceResponse(&resources[i])
	}
	return out
}

// ResourceRequest creates or updates a resource.
// A nil capacity means the default of 40 hours per week.
type ResourceRequest struct {
	Name                 string           `json:"name" binding:"required,max=200"`
	Type                 string           `json:"type" binding:"required,oneof=labor equipment"`
	Rate                 decimal.Decimal  `json:"rate" binding:"decimal_gte0"`
	CapacityHoursPerWeek *decimal.Decimal `json:"capacity_hours_per_week" binding:"omitempty,decimal_gte0"`
	IsActive             *bool            `json:"is_active"`
}

// ResourceListFilter represents filter options for the resource list
type ResourceListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=labor equipment"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AssignmentResponse represents an assignment with the names of what it links
type AssignmentResponse struct {
	ID           uuid.UUID       `json:"id"`
	TaskID       uuid.UUID       `json:"task_id"`
	TaskName     string          `json:"task_name,omitempty"`
	ResourceID   uuid.UUID       `json:"resource_id"`
	ResourceName string          `json:"resource_name,omitempty"`
	Hours        decimal.Decimal `json:"hours"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToAssignmentResponse converts a domain assignment
func ToAssignmentResponse(a *resourcing.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:         a.ID,
		TaskID:     a.TaskID,
		ResourceID: a.ResourceID,
		Hours:      a.Hours,
		CreatedAt:  a.CreatedAt,
	}
}

// CreateAssignmentRequest allocates hours of a resource to a task
type CreateAssignmentRequest struct {
	TaskID     uuid.UUID       `json:"task_id" binding:"required"`
	ResourceID uuid.UUID       `json:"resource_id" binding:"required"`
	Hours      decimal.Decimal `json:"hours" binding:"decimal_gte0"`
}

// AssignmentListFilter represents filter options for the assignment list
type AssignmentListFilter struct {
	TaskID     *uuid.UUID `form:"task_id"`
	ResourceID *uuid.UUID `form:"resource_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}
