package planning

import (
	"time"

	"github.com/Swarup9437/pm-tool/internal/domain/planning"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Client             string          `json:"client"`
	Budget             decimal.Decimal `json:"budget"`
	ProjectManagerID   *uuid.UUID      `json:"project_manager_id,omitempty"`
	ProjectManagerName string          `json:"project_manager_name,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToProjectResponse converts a domain project
func ToProjectResponse(p *planning.Project) ProjectResponse {
	return ProjectResponse{
		ID:               p.ID,
		Code:             p.Code,
		Name:             p.Name,
		Client:           p.Client,
		Budget:           p.Budget,
		ProjectManagerID: p.ProjectManagerID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ProjectRequest creates or updates a project
type ProjectRequest struct {
	Code             string          `json:"code" binding:"required,max=50"`
	Name             string          `json:"name" binding:"required,max=200"`
	Client           string          `json:"client" binding:"max=200"`
	Budget           decimal.Decimal `json:"budget" binding:"decimal_gte0"`
	ProjectManagerID *uuid.UUID      `json:"project_manager_id"`
}

// ProjectListFilter represents filter options for the project list
type ProjectListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID              uuid.UUID  `json:"id"`
	ProjectID       uuid.UUID  `json:"project_id"`
	ProjectCode     string     `json:"project_code,omitempty"`
	OwnerID         *uuid.UUID `json:"owner_id,omitempty"`
	OwnerName       string     `json:"owner_name,omitempty"`
	WBS             string     `json:"wbs"`
	Name            string     `json:"name"`
	Start           string     `json:"start,omitempty"`
	Finish          string     `json:"finish,omitempty"`
	PercentComplete int        `json:"percent_complete"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToTaskResponse converts a domain task
func ToTaskResponse(t *planning.Task) TaskResponse {
	return TaskResponse{
		ID:              t.ID,
		ProjectID:       t.ProjectID,
		OwnerID:         t.OwnerID,
		WBS:             t.WBS,
		Name:            t.Name,
		Start:           formatDate(t.Start),
		Finish:          formatDate(t.Finish),
		PercentComplete: t.PercentComplete,
		Status:          t.Status.String(),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// TaskRequest creates or updates a task. Dates are YYYY-MM-DD.
type TaskRequest struct {
	ProjectID       uuid.UUID  `json:"project_id" binding:"required"`
	OwnerID         *uuid.UUID `json:"owner_id"`
	WBS             string     `json:"wbs" binding:"max=50"`
	Name            string     `json:"name" binding:"required,max=200"`
	Start           string     `json:"start"`
	Finish          string     `json:"finish"`
	PercentComplete int        `json:"percent_complete" binding:"min=0,max=100"`
	Status          string     `json:"status" binding:"omitempty,oneof=not_started in_progress blocked done"`
}

// TaskListFilter represents filter options for the task list
type TaskListFilter struct {
	ProjectID *uuid.UUID `form:"project_id"`
	OwnerID   *uuid.UUID `form:"owner_id"`
	Status    string     `form:"status" binding:"omitempty,oneof=not_started in_progress blocked done"`
	Search    string     `form:"search"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
