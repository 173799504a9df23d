package handler

import (
	"net/http"

	planningapp "github.com/Swarup9437/pm-tool/internal/application/planning"
	resourcingapp "github.com/Swarup9437/pm-tool/internal/application/resourcing"
	"github.com/gin-gonic/gin"
)

// AssignmentHandler handles resource-to-task assignments
type AssignmentHandler struct {
	BaseHandler
	assignmentService *resourcingapp.AssignmentService
	taskService       *planningapp.TaskService
	resourceService   *resourcingapp.ResourceService
}

// NewAssignmentHandler creates a new AssignmentHandler
func NewAssignmentHandler(
	base BaseHandler,
	assignmentService *resourcingapp.AssignmentService,
	taskService *planningapp.TaskService,
	resourceService *resourcingapp.ResourceService,
) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:       base,
		assignmentService: assignmentService,
		taskService:       taskService,
		resourceService:   resourceService,
	}
}

// List godoc
// @ID           listAssignments
// @Summary      List assignments
// @Description  Newest first, with task and resource names
// @Tags         assignments
// @Produce      json
// @Param        task_id     query  string  false  "Task filter" format(uuid)
// @Param        resource_id query  string  false  "Resource filter" format(uuid)
// @Param        page        query  int     false  "Page number" default(1)
// @Param        page_size   query  int     false  "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]resourcingapp.AssignmentResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	var filter resourcingapp.AssignmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	filter.Page, filter.PageSize = pageOrDefault(filter.Page, filter.PageSize)

	assignments, total, err := h.assignmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, assignments, total, filter.Page, filter.PageSize)
}

// QuickList returns every assignment as a bare JSON array
func (h *AssignmentHandler) QuickList(c *gin.Context) {
	assignments, _, err := h.assignmentService.List(c.Request.Context(), resourcingapp.AssignmentListFilter{})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// Create godoc
// @ID           createAssignment
// @Summary      Assign a resource to a task
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        request body resourcingapp.CreateAssignmentRequest true "Assignment"
// @Success      201 {object} APIResponse[resourcingapp.AssignmentResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req resourcingapp.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	assignment, err := h.assignmentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, assignment)
}

// Delete godoc
// @ID           deleteAssignment
// @Summary      Delete an assignment
// @Tags         assignments
// @Param        id path string true "Assignment ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.assignmentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Page renders the assignment table
func (h *AssignmentHandler) Page(c *gin.Context) {
	assignments, _, err := h.assignmentService.List(c.Request.Context(), resourcingapp.AssignmentListFilter{})
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "assignments.html", gin.H{
		"Title":       "Assignments",
		"Assignments": assignments,
	})
}

func (h *AssignmentHandler) renderForm(c *gin.Context, form AssignmentForm, formErr error) {
	ctx := c.Request.Context()
	tasks, _, err := h.taskService.List(ctx, planningapp.TaskListFilter{})
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	resources, _, err := h.resourceService.List(ctx, resourcingapp.ResourceListFilter{})
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	data := gin.H{
		"Title":     "Assignment",
		"Form":      form,
		"Tasks":     tasks,
		"Resources": resources,
	}
	if formErr != nil {
		h.renderFormError(c, formErr, "assignment_form.html", data)
		return
	}
	h.Render(c, http.StatusOK, "assignment_form.html", data)
}

// New renders the assignment form. ?task= and ?resource= preselect options.
func (h *AssignmentHandler) New(c *gin.Context) {
	form := AssignmentForm{
		TaskID:     c.Query("task"),
		ResourceID: c.Query("resource"),
		Hours:      "8",
	}
	h.renderForm(c, form, nil)
}

// CreateForm handles the assignment form post
func (h *AssignmentHandler) CreateForm(c *gin.Context) {
	var form AssignmentForm
	if !h.bindForm(c, &form) {
		return
	}

	req, err := form.toRequest()
	if err == nil {
		_, err = h.assignmentService.Create(c.Request.Context(), req)
	}
	if err != nil {
		h.renderForm(c, form, err)
		return
	}
	redirect(c, "/assignments-page")
}

// DeleteForm handles the delete button
func (h *AssignmentHandler) DeleteForm(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.assignmentService.Delete(c.Request.Context(), id); err != nil {
		h.HandlePageError(c, err)
		return
	}
	redirect(c, "/assignments-page")
}
