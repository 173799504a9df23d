package planning

import (
	"strings"
	"time"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/google/uuid"
)

// TaskStatus is the closed set of task states. Any status may follow any
// other; there are no enforced transitions.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusBlocked    TaskStatus = "blocked"
	TaskStatusDone       TaskStatus = "done"
)

// AllTaskStatuses lists statuses in workflow order
var AllTaskStatuses = []TaskStatus{
	TaskStatusNotStarted,
	TaskStatusInProgress,
	TaskStatusBlocked,
	TaskStatusDone,
}

// String returns the string representation of TaskStatus
func (s TaskStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is known
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusBlocked, TaskStatusDone:
		return true
	}
	return false
}

// ParseTaskStatus converts a raw string into a TaskStatus. An empty string
// yields not_started.
func ParseTaskStatus(s string) (TaskStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TaskStatusNotStarted, nil
	}
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", shared.NewValidationError("status must be one of not_started, in_progress, blocked, done")
	}
	return status, nil
}

// Task is a unit of work within a project
type Task struct {
	shared.BaseEntity
	ProjectID       uuid.UUID
	OwnerID         *uuid.UUID
	WBS             string
	Name            string
	Start           *time.Time
	Finish          *time.Time
	PercentComplete int
	Status          TaskStatus
}

// TaskInput carries the editable fields of a task
type TaskInput struct {
	ProjectID       uuid.UUID
	OwnerID         *uuid.UUID
	WBS             string
	Name            string
	Start           *time.Time
	Finish          *time.Time
	PercentComplete int
	Status          TaskStatus
}

// NewTask creates a task from validated input
func NewTask(in TaskInput) (*Task, error) {
	t := &Task{BaseEntity: shared.NewBaseEntity()}
	if err := t.Update(in); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces the editable fields
func (t *Task) Update(in TaskInput) error {
	if in.ProjectID == uuid.Nil {
		return shared.NewValidationError("project is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewValidationError("name is required")
	}
	if in.PercentComplete < 0 || in.PercentComplete > 100 {
		return shared.NewValidationError("percent_complete must be between 0 and 100")
	}
	if in.Status == "" {
		in.Status = TaskStatusNotStarted
	}
	if !in.Status.IsValid() {
		return shared.NewValidationError("status must be one of not_started, in_progress, blocked, done")
	}
	if in.Start != nil && in.Finish != nil && in.Finish.Before(*in.Start) {
		return shared.NewValidationError("finish must not be before start")
	}
	if in.OwnerID != nil && *in.OwnerID == uuid.Nil {
		in.OwnerID = nil
	}
	t.ProjectID = in.ProjectID
	t.OwnerID = in.OwnerID
	t.WBS = strings.TrimSpace(in.WBS)
	t.Name = name
	t.Start = in.Start
	t.Finish = in.Finish
	t.PercentComplete = in.PercentComplete
	t.Status = in.Status
	t.Touch()
	return nil
}
