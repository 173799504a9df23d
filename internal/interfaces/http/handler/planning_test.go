package handler

import (
	"net/http"
	"net/url"
	"testing"

	planningapp "github.com/Swarup9437/pm-tool/internal/application/planning"
	resourcingapp "github.com/Swarup9437/pm-tool/internal/application/resourcing"
	"github.com/Swarup9437/pm-tool/internal/domain/resourcing"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProject(t *testing.T, f *fixture, code string) planningapp.ProjectResponse {
	t.Helper()
	w := f.sendJSON(t, http.MethodPost, "/api/v1/projects", map[string]any{
		"code": code, "name": "Project " + code, "client": "ACME", "budget": "5000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p planningapp.ProjectResponse
	decode(t, w, &p)
	return p
}

func TestProjectAPI_RejectsNegativeBudget(t *testing.T) {
	f := newFixture(t)

	w := f.sendJSON(t, http.MethodPost, "/api/v1/projects", map[string]any{
		"code": "P-1", "name": "Bridge", "budget": "-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w, nil)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "budget: Must not be negative")
}

func TestProjectForm_CreateAndList(t *testing.T) {
	f := newFixture(t)

	w := f.get("/projects/new")
	require.Equal(t, http.StatusOK, w.Code)

	w = f.postForm("/projects", url.Values{"code": {"P-100"}, "name": {"Plant"}, "budget": {"abc"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "budget must be a number")

	w = f.postForm("/projects", url.Values{"code": {"P-100"}, "name": {"Plant"}, "budget": {"1200.50"}})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/projects-page", w.Header().Get("Location"))

	w = f.get("/projects-page?search=plant")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "P-100")
	assert.Contains(t, w.Body.String(), "1,200.50")
}

func TestTaskAPI_FinishBeforeStart(t *testing.T) {
	f := newFixture(t)
	p := createProject(t, f, "P-1")

	w := f.sendJSON(t, http.MethodPost, "/api/v1/tasks", map[string]any{
		"project_id": p.ID, "name": "Pour", "start": "2025-03-10", "finish": "2025-03-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w, nil)
	assert.Equal(t, "finish must not be before start", resp.Error.Message)

	w = f.sendJSON(t, http.MethodPost, "/api/v1/tasks", map[string]any{
		"project_id": p.ID, "wbs": "1.1", "name": "Pour", "start": "2025-03-01", "finish": "2025-03-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task planningapp.TaskResponse
	decode(t, w, &task)
	assert.Equal(t, "not_started", task.Status)
	assert.Equal(t, "P-1", task.ProjectCode)
}

func TestTaskForm_PreselectsProjectAndFilters(t *testing.T) {
	f := newFixture(t)
	p := createProject(t, f, "P-7")

	w := f.get("/tasks/new?project=" + p.ID.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="`+p.ID.String()+`" selected`)

	w = f.postForm("/tasks", url.Values{
		"project_id": {p.ID.String()}, "wbs": {"2"}, "name": {"Survey"},
		"percent_complete": {"40"}, "status": {"in_progress"},
	})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	w = f.get("/tasks-page?project_id=" + p.ID.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Survey")

	w = f.get("/tasks-page?status=bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignmentsAndUtilization(t *testing.T) {
	f := newFixture(t)
	p := createProject(t, f, "P-2")

	w := f.sendJSON(t, http.MethodPost, "/api/v1/tasks", map[string]any{"project_id": p.ID, "name": "Frame"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task planningapp.TaskResponse
	decode(t, w, &task)

	w = f.sendJSON(t, http.MethodPost, "/api/v1/resources", map[string]any{
		"name": "Crane", "type": "equipment", "rate": "100", "capacity_hours_per_week": "20",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var res resourcingapp.ResourceResponse
	decode(t, w, &res)
	assert.True(t, res.IsActive)

	w = f.postForm("/assignments", url.Values{"task_id": {task.ID.String()}, "resource_id": {res.ID.String()}, "hours": {"15"}})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	w = f.get("/assignments-page")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Frame")
	assert.Contains(t, w.Body.String(), "Crane")

	w = f.get("/api/v1/resources/utilization")
	require.Equal(t, http.StatusOK, w.Code)
	var rows []resourcing.Utilization
	decode(t, w, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, 75, rows[0].Percent)

	w = f.sendJSON(t, http.MethodPost, "/api/v1/assignments", map[string]any{
		"task_id": task.ID, "resource_id": res.ID, "hours": "-2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResourceForm_UncheckedActiveAndDefaultCapacity(t *testing.T) {
	f := newFixture(t)

	w := f.postForm("/resources", url.Values{"name": {"Welder"}, "type": {"labor"}, "rate": {"30"}})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	list, _, err := f.resources.List(t.Context(), resourcingapp.ResourceListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsActive)
	assert.True(t, resourcing.DefaultCapacityHoursPerWeek.Equal(list[0].CapacityHoursPerWeek))

	w = f.postForm("/resources", url.Values{"name": {"Bad"}, "type": {"robot"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
