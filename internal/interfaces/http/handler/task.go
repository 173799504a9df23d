package handler

import (
	"net/http"

	planningapp "github.com/Swarup9437/pm-tool/internal/application/planning"
	workforceapp "github.com/Swarup9437/pm-tool/internal/application/workforce"
	"github.com/Swarup9437/pm-tool/internal/domain/planning"
	"github.com/gin-gonic/gin"
)

// TaskHandler handles task pages and API endpoints
type TaskHandler struct {
	BaseHandler
	taskService     *planningapp.TaskService
	projectService  *planningapp.ProjectService
	employeeService *workforceapp.EmployeeService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(
	base BaseHandler,
	taskService *planningapp.TaskService,
	projectService *planningapp.ProjectService,
	employeeService *workforceapp.EmployeeService,
) *TaskHandler {
	return &TaskHandler{
		BaseHandler:     base,
		taskService:     taskService,
		projectService:  projectService,
		employeeService: employeeService,
	}
}

func taskStatusNames() []string {
	out := make([]string, len(planning.AllTaskStatuses))
	for i, s := range planning.AllTaskStatuses {
		out[i] = s.String()
	}
	return out
}

// List godoc
// @ID           listTasks
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Param        project_id query  string  false  "Project filter" format(uuid)
// @Param        owner_id   query  string  false  "Owner filter" format(uuid)
// @Param        status     query  string  false  "Status filter" Enums(not_started, in_progress, blocked, done)
// @Param        search     query  string  false  "Search by WBS or name"
// @Param        page       query  int     false  "Page number" default(1)
// @Param        page_size  query  int     false  "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]planningapp.TaskResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	var filter planningapp.TaskListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	filter.Page, filter.PageSize = pageOrDefault(filter.Page, filter.PageSize)

	tasks, total, err := h.taskService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, tasks, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @ID           getTask
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Param        id path string true "Task ID" format(uuid)
// @Success      200 {object} APIResponse[planningapp.TaskResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	task, err := h.taskService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, task)
}

// Create godoc
// @ID           createTask
// @Summary      Create a task
// @Description  Dates are YYYY-MM-DD. Finish may not be before start.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        request body planningapp.TaskRequest true "Task"
// @Success      201 {object} APIResponse[planningapp.TaskResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req planningapp.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	task, err := h.taskService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, task)
}

// Update godoc
// @ID           updateTask
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id      path string                  true "Task ID" format(uuid)
// @Param        request body planningapp.TaskRequest true "Task"
// @Success      200 {object} APIResponse[planningapp.TaskResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req planningapp.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	task, err := h.taskService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, task)
}

// Delete godoc
// @ID           deleteTask
// @Summary      Delete a task and its assignments
// @Tags         tasks
// @Param        id path string true "Task ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.taskService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// QuickList returns every task as a bare JSON array
func (h *TaskHandler) QuickList(c *gin.Context) {
	tasks, _, err := h.taskService.List(c.Request.Context(), planningapp.TaskListFilter{})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Page renders the task table, optionally for one project
func (h *TaskHandler) Page(c *gin.Context) {
	var filter planningapp.TaskListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.RenderError(c, http.StatusBadRequest, "invalid filter", "")
		return
	}
	filter.Page, filter.PageSize = 0, 0

	tasks, _, err := h.taskService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "tasks.html", gin.H{
		"Title": "Tasks",
		"Tasks": tasks,
	})
}

func (h *TaskHandler) renderForm(c *gin.Context, form TaskForm, editing bool, action string, formErr error) {
	ctx := c.Request.Context()
	projects, _, err := h.projectService.List(ctx, planningapp.ProjectListFilter{})
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	employees, _, err := h.employeeService.List(ctx, workforceapp.EmployeeListFilter{})
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	data := gin.H{
		"Title":     "Task",
		"Form":      form,
		"Editing":   editing,
		"Action":    action,
		"Projects":  projects,
		"Employees": employees,
		"Statuses":  taskStatusNames(),
	}
	if formErr != nil {
		h.renderFormError(c, formErr, "task_form.html", data)
		return
	}
	h.Render(c, http.StatusOK, "task_form.html", data)
}

// New renders the empty task form. ?project= preselects the project.
func (h *TaskHandler) New(c *gin.Context) {
	form := TaskForm{
		ProjectID:       c.Query("project"),
		PercentComplete: "0",
		Status:          planning.TaskStatusNotStarted.String(),
	}
	h.renderForm(c, form, false, "/tasks", nil)
}

// CreateForm handles the task form post
func (h *TaskHandler) CreateForm(c *gin.Context) {
	var form TaskForm
	if !h.bindForm(c, &form) {
		return
	}

	req, err := form.toRequest()
	if err == nil {
		_, err = h.taskService.Create(c.Request.Context(), req)
	}
	if err != nil {
		h.renderForm(c, form, false, "/tasks", err)
		return
	}
	redirect(c, "/tasks-page")
}

// Edit renders the form for an existing task
func (h *TaskHandler) Edit(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	task, err := h.taskService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.renderForm(c, taskFormFrom(task), true, "/tasks/"+id.String()+"/edit", nil)
}

// UpdateForm handles the edit form post
func (h *TaskHandler) UpdateForm(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var form TaskForm
	if !h.bindForm(c, &form) {
		return
	}

	req, err := form.toRequest()
	if err == nil {
		_, err = h.taskService.Update(c.Request.Context(), id, req)
	}
	if err != nil {
		h.renderForm(c, form, true, "/tasks/"+id.String()+"/edit", err)
		return
	}
	redirect(c, "/tasks-page")
}

// DeleteForm handles the delete button
func (h *TaskHandler) DeleteForm(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.taskService.Delete(c.Request.Context(), id); err != nil {
		h.HandlePageError(c, err)
		return
	}
	redirect(c, "/tasks-page")
}
