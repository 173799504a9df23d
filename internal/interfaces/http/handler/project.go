package handler

import (
	"net/http"

	planningapp "github.com/Swarup9437/pm-tool/internal/application/planning"
	workforceapp "github.com/Swarup9437/pm-tool/internal/application/workforce"
	"github.com/gin-gonic/gin"
)

// ProjectHandler handles project pages and API endpoints
type ProjectHandler struct {
	BaseHandler
	projectService  *planningapp.ProjectService
	employeeService *workforceapp.EmployeeService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(
	base BaseHandler,
	projectService *planningapp.ProjectService,
	employeeService *workforceapp.EmployeeService,
) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:     base,
		projectService:  projectService,
		employeeService: employeeService,
	}
}

// List godoc
// @ID           listProjects
// @Summary      List projects
// @Description  Paginated project list ordered by code. Search matches code, name or client.
// @Tags         projects
// @Produce      json
// @Param        search     query  string  false  "Search text"
// @Param        page       query  int     false  "Page number" default(1)
// @Param        page_size  query  int     false  "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]planningapp.ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	var filter planningapp.ProjectListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	filter.Page, filter.PageSize = pageOrDefault(filter.Page, filter.PageSize)

	projects, total, err := h.projectService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, projects, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @ID           getProject
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID" format(uuid)
// @Success      200 {object} APIResponse[planningapp.ProjectResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	project, err := h.projectService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// Create godoc
// @ID           createProject
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request body planningapp.ProjectRequest true "Project"
// @Success      201 {object} APIResponse[planningapp.ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req planningapp.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	project, err := h.projectService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, project)
}

// Update godoc
// @ID           updateProject
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Project ID" format(uuid)
// @Param        request body planningapp.ProjectRequest true "Project"
// @Success      200 {object} APIResponse[planningapp.ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req planningapp.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	project, err := h.projectService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// Delete godoc
// @ID           deleteProject
// @Summary      Delete a project with its tasks and their assignments
// @Tags         projects
// @Param        id path string true "Project ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// QuickList returns every project as a bare JSON array
func (h *ProjectHandler) QuickList(c *gin.Context) {
	projects, _, err := h.projectService.List(c.Request.Context(), planningapp.ProjectListFilter{})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// Page renders the project table
func (h *ProjectHandler) Page(c *gin.Context) {
	filter := planningapp.ProjectListFilter{Search: c.Query("search")}
	projects, _, err := h.projectService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "projects.html", gin.H{
		"Title":    "Projects",
		"Projects": projects,
		"Search":   filter.Search,
	})
}

func (h *ProjectHandler) formData(c *gin.Context, form ProjectForm, editing bool, action string) (gin.H, error) {
	employees, _, err := h.employeeService.List(c.Request.Context(), workforceapp.EmployeeListFilter{})
	if err != nil {
		return nil, err
	}
	return gin.H{
		"Title":     "Project",
		"Form":      form,
		"Editing":   editing,
		"Action":    action,
		"Employees": employees,
	}, nil
}

func (h *ProjectHandler) renderForm(c *gin.Context, form ProjectForm, editing bool, action string, formErr error) {
	data, err := h.formData(c, form, editing, action)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	if formErr != nil {
		h.renderFormError(c, formErr, "project_form.html", data)
		return
	}
	h.Render(c, http.StatusOK, "project_form.html", data)
}

// New renders the empty project form
func (h *ProjectHandler) New(c *gin.Context) {
	h.renderForm(c, ProjectForm{Budget: "0"}, false, "/projects", nil)
}

// CreateForm handles the project form post
func (h *ProjectHandler) CreateForm(c *gin.Context) {
	var form ProjectForm
	if !h.bindForm(c, &form) {
		return
	}

	req, err := form.toRequest()
	if err == nil {
		_, err = h.projectService.Create(c.Request.Context(), req)
	}
	if err != nil {
		h.renderForm(c, form, false, "/projects", err)
		return
	}
	redirect(c, "/projects-page")
}

// Edit renders the form for an existing project
func (h *ProjectHandler) Edit(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	project, err := h.projectService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.renderForm(c, projectFormFrom(project), true, "/projects/"+id.String()+"/edit", nil)
}

// UpdateForm handles the edit form post
func (h *ProjectHandler) UpdateForm(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var form ProjectForm
	if !h.bindForm(c, &form) {
		return
	}

	req, err := form.toRequest()
	if err == nil {
		_, err = h.projectService.Update(c.Request.Context(), id, req)
	}
	if err != nil {
		h.renderForm(c, form, true, "/projects/"+id.String()+"/edit", err)
		return
	}
	redirect(c, "/projects-page")
}

// DeleteForm handles the delete button
func (h *ProjectHandler) DeleteForm(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		h.HandlePageError(c, err)
		return
	}
	redirect(c, "/projects-page")
}
