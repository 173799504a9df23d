package models

import (
	"time"

	"github.com/Swarup9437/pm-tool/internal/domain/planning"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectModel is the persistence model for planning.Project
type ProjectModel struct {
	BaseModel
	Code             string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_projects_code"`
	Name             string          `gorm:"type:varchar(200);not null"`
	Client           string          `gorm:"type:varchar(200)"`
	Budget           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ProjectManagerID *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

func (m *ProjectModel) ToDomain() *planning.Project {
	return &planning.Project{
		BaseEntity:       m.BaseModel.ToDomain(),
		Code:             m.Code,
		Name:             m.Name,
		Client:           m.Client,
		Budget:           m.Budget,
		ProjectManagerID: m.ProjectManagerID,
	}
}

func (m *ProjectModel) FromDomain(p *planning.Project) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Code = p.Code
	m.Name = p.Name
	m.Client = p.Client
	m.Budget = p.Budget
	m.ProjectManagerID = p.ProjectManagerID
}

func ProjectModelFromDomain(p *planning.Project) *ProjectModel {
	m := &ProjectModel{}
	m.FromDomain(p)
	return m
}

// TaskModel is the persistence model for planning.Task
type TaskModel struct {
	BaseModel
	ProjectID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	OwnerID         *uuid.UUID `gorm:"type:uuid;index"`
	WBS             string     `gorm:"column:wbs;type:varchar(50)"`
	Name            string     `gorm:"type:varchar(200);not null"`
	Start           *time.Time `gorm:"column:start_date;type:date"`
	Finish          *time.Time `gorm:"column:finish_date;type:date"`
	PercentComplete int        `gorm:"not null;default:0"`
	Status          string     `gorm:"type:varchar(20);not null;default:'not_started';index"`
}

// TableName returns the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

func (m *TaskModel) ToDomain() *planning.Task {
	return &planning.Task{
		BaseEntity:      m.BaseModel.ToDomain(),
		ProjectID:       m.ProjectID,
		OwnerID:         m.OwnerID,
		WBS:             m.WBS,
		Name:            m.Name,
		Start:           utcDate(m.Start),
		Finish:          utcDate(m.Finish),
		PercentComplete: m.PercentComplete,
		Status:          planning.TaskStatus(m.Status),
	}
}

func (m *TaskModel) FromDomain(t *planning.Task) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.ProjectID = t.ProjectID
	m.OwnerID = t.OwnerID
	m.WBS = t.WBS
	m.Name = t.Name
	m.Start = t.Start
	m.Finish = t.Finish
	m.PercentComplete = t.PercentComplete
	m.Status = string(t.Status)
}

func TaskModelFromDomain(t *planning.Task) *TaskModel {
	m := &TaskModel{}
	m.FromDomain(t)
	return m
}

// utcDate normalizes a driver-scanned date column to midnight UTC.
func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, mo, d := t.Date()
	v := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return &v
}
