package planning

import (
	"errors"
	"testing"
	"time"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	p, err := NewProject(ProjectInput{Code: " P-001 ", Name: "Site Prep", Budget: decimal.NewFromInt(500000)})
	require.NoError(t, err)
	assert.Equal(t, "P-001", p.Code)
	assert.Nil(t, p.ProjectManagerID)

	_, err = NewProject(ProjectInput{Code: "P-002", Name: "X", Budget: decimal.NewFromInt(-1)})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = NewProject(ProjectInput{Name: "No code"})
	assert.Error(t, err)
}

func TestNewProject_NilManagerIsCleared(t *testing.T) {
	nilID := uuid.Nil
	p, err := NewProject(ProjectInput{Code: "P-3", Name: "X", ProjectManagerID: &nilID})
	require.NoError(t, err)
	assert.Nil(t, p.ProjectManagerID)
}

func TestParseTaskStatus(t *testing.T) {
	s, err := ParseTaskStatus("")
	require.NoError(t, err)
	assert.Equal(t, TaskStatusNotStarted, s)

	s, err = ParseTaskStatus("Done")
	require.NoError(t, err)
	assert.Equal(t, TaskStatusDone, s)

	_, err = ParseTaskStatus("paused")
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestNewTask(t *testing.T) {
	projectID := uuid.New()
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	finish := start.AddDate(0, 0, 5)

	task, err := NewTask(TaskInput{ProjectID: projectID, WBS: "1.1", Name: "Mobilization", Start: &start, Finish: &finish, PercentComplete: 100, Status: TaskStatusDone})
	require.NoError(t, err)
	assert.Equal(t, TaskStatusDone, task.Status)

	t.Run("defaults status", func(t *testing.T) {
		task, err := NewTask(TaskInput{ProjectID: projectID, Name: "Survey"})
		require.NoError(t, err)
		assert.Equal(t, TaskStatusNotStarted, task.Status)
	})

	t.Run("rejects percent out of range", func(t *testing.T) {
		_, err := NewTask(TaskInput{ProjectID: projectID, Name: "X", PercentComplete: 101})
		assert.Error(t, err)
	})

	t.Run("rejects finish before start", func(t *testing.T) {
		_, err := NewTask(TaskInput{ProjectID: projectID, Name: "X", Start: &finish, Finish: &start})
		assert.Error(t, err)
	})

	t.Run("requires project", func(t *testing.T) {
		_, err := NewTask(TaskInput{Name: "X"})
		assert.Error(t, err)
	})
}
