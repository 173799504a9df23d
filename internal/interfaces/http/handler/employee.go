package handler

import (
	"net/http"

	workforceapp "github.com/Swarup9437/pm-tool/internal/application/workforce"
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/gin-gonic/gin"
)

// EmployeeHandler handles employee pages and API endpoints
type EmployeeHandler struct {
	BaseHandler
	employeeService *workforceapp.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(base BaseHandler, employeeService *workforceapp.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		BaseHandler:     base,
		employeeService: employeeService,
	}
}

func roleNames() []string {
	out := make([]string, len(workforce.AllRoles))
	for i, r := range workforce.AllRoles {
		out[i] = r.String()
	}
	return out
}

// List godoc
// @ID           listEmployees
// @Summary      List employees
// @Description  Paginated employee list with optional search by name or email and role filter
// @Tags         employees
// @Produce      json
// @Param        search     query  string  false  "Search by name or email"
// @Param        role       query  string  false  "Role filter" Enums(admin, pm, engineer, viewer)
// @Param        page       query  int     false  "Page number" default(1)
// @Param        page_size  query  int     false  "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]workforceapp.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	var filter workforceapp.EmployeeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	filter.Page, filter.PageSize = pageOrDefault(filter.Page, filter.PageSize)

	employees, total, err := h.employeeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, employees, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @ID           getEmployee
// @Summary      Get an employee
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID" format(uuid)
// @Success      200 {object} APIResponse[workforceapp.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	employee, err := h.employeeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// Create godoc
// @ID           createEmployee
// @Summary      Create an employee
// @Description  Creates an employee. A password lets the employee sign in.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        request body workforceapp.CreateEmployeeRequest true "Employee"
// @Success      201 {object} APIResponse[workforceapp.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req workforceapp.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	employee, err := h.employeeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, employee)
}

// Update godoc
// @ID           updateEmployee
// @Summary      Update an employee
// @Description  An empty password keeps the current one
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id      path string                              true "Employee ID" format(uuid)
// @Param        request body workforceapp.UpdateEmployeeRequest true "Employee"
// @Success      200 {object} APIResponse[workforceapp.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req workforceapp.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	employee, err := h.employeeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// Delete godoc
// @ID           deleteEmployee
// @Summary      Delete an employee
// @Description  Projects and tasks referencing the employee lose the reference
// @Tags         employees
// @Param        id path string true "Employee ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.employeeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// QuickList returns every employee as a bare JSON array
func (h *EmployeeHandler) QuickList(c *gin.Context) {
	employees, _, err := h.employeeService.List(c.Request.Context(), workforceapp.EmployeeListFilter{})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

// Page renders the employee table
func (h *EmployeeHandler) Page(c *gin.Context) {
	filter := workforceapp.EmployeeListFilter{Search: c.Query("search")}
	employees, _, err := h.employeeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "employees.html", gin.H{
		"Title":     "Employees",
		"Employees": employees,
		"Search":    filter.Search,
	})
}

func (h *EmployeeHandler) formData(form EmployeeForm, editing bool, action string) gin.H {
	return gin.H{
		"Title":   "Employee",
		"Form":    form,
		"Editing": editing,
		"Action":  action,
		"Roles":   roleNames(),
	}
}

// New renders the empty employee form
func (h *EmployeeHandler) New(c *gin.Context) {
	form := EmployeeForm{Role: workforce.RoleEngineer.String()}
	h.Render(c, http.StatusOK, "employee_form.html", h.formData(form, false, "/employees"))
}

// CreateForm handles the employee form post
func (h *EmployeeHandler) CreateForm(c *gin.Context) {
	var form EmployeeForm
	if !h.bindForm(c, &form) {
		return
	}
	data := h.formData(form, false, "/employees")

	req, err := form.toCreate()
	if err == nil {
		_, err = h.employeeService.Create(c.Request.Context(), req)
	}
	if err != nil {
		h.renderFormError(c, err, "employee_form.html", data)
		return
	}
	redirect(c, "/employees-page")
}

// Edit renders the form for an existing employee
func (h *EmployeeHandler) Edit(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	employee, err := h.employeeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "employee_form.html",
		h.formData(employeeFormFrom(employee), true, "/employees/"+id.String()+"/edit"))
}

// UpdateForm handles the edit form post
func (h *EmployeeHandler) UpdateForm(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var form EmployeeForm
	if !h.bindForm(c, &form) {
		return
	}
	data := h.formData(form, true, "/employees/"+id.String()+"/edit")

	req, err := form.toUpdate()
	if err == nil {
		_, err = h.employeeService.Update(c.Request.Context(), id, req)
	}
	if err != nil {
		h.renderFormError(c, err, "employee_form.html", data)
		return
	}
	redirect(c, "/employees-page")
}

// DeleteForm handles the delete button
func (h *EmployeeHandler) DeleteForm(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.employeeService.Delete(c.Request.Context(), id); err != nil {
		h.HandlePageError(c, err)
		return
	}
	redirect(c, "/employees-page")
}
