package handler

import (
	"net/http"

	resourcingapp "github.com/Swarup9437/pm-tool/internal/application/resourcing"
	"github.com/Swarup9437/pm-tool/internal/domain/resourcing"
	"github.com/gin-gonic/gin"
)

// ResourceHandler handles resource pages, the resource API and utilization
type ResourceHandler struct {
	BaseHandler
	resourceService    *resourcingapp.ResourceService
	utilizationService *resourcingapp.UtilizationService
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler(
	base BaseHandler,
	resourceService *resourcingapp.ResourceService,
	utilizationService *resourcingapp.UtilizationService,
) *ResourceHandler {
	return &ResourceHandler{
		BaseHandler:        base,
		resourceService:    resourceService,
		utilizationService: utilizationService,
	}
}

// List godoc
// @ID           listResources
// @Summary      List resources
// @Tags         resources
// @Produce      json
// @Param        search     query  string  false  "Search by name"
// @Param        type       query  string  false  "Type filter" Enums(labor, equipment)
// @Param        active     query  bool    false  "Active filter"
// @Param        page       query  int     false  "Page number" default(1)
// @Param        page_size  query  int     false  "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]resourcingapp.ResourceResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	var filter resourcingapp.ResourceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	filter.Page, filter.PageSize = pageOrDefault(filter.Page, filter.PageSize)

	resources, total, err := h.resourceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resources, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @ID           getResource
// @Summary      Get a resource
// @Tags         resources
// @Produce      json
// @Param        id path string true "Resource ID" format(uuid)
// @Success      200 {object} APIResponse[resourcingapp.ResourceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /resources/{id} [get]
func (h *ResourceHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	resource, err := h.resourceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resource)
}

// Create godoc
// @ID           createResource
// @Summary      Create a resource
// @Description  Capacity defaults to 40 hours per week
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        request body resourcingapp.ResourceRequest true "Resource"
// @Success      201 {object} APIResponse[resourcingapp.ResourceResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	var req resourcingapp.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	resource, err := h.resourceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resource)
}

// Update godoc
// @ID           updateResource
// @Summary      Update a resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        id      path string                        true "Resource ID" format(uuid)
// @Param        request body resourcingapp.ResourceRequest true "Resource"
// @Success      200 {object} APIResponse[resourcingapp.ResourceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /resources/{id} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req resourcingapp.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	resource, err := h.resourceService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resource)
}

// Delete godoc
// @ID           deleteResource
// @Summary      Delete a resource and its assignments
// @Tags         resources
// @Param        id path string true "Resource ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /resources/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.resourceService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Utilization godoc
// @ID           resourceUtilization
// @Summary      Weekly utilization of every resource
// @Description  Assigned hours over weekly capacity, highest first, clamped to 0..100
// @Tags         resources
// @Produce      json
// @Success      200 {object} APIResponse[[]resourcing.Utilization]
// @Security     BearerAuth
// @Router       /resources/utilization [get]
func (h *ResourceHandler) Utilization(c *gin.Context) {
	rows, err := h.utilizationService.All(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// QuickList returns every resource as a bare JSON array
func (h *ResourceHandler) QuickList(c *gin.Context) {
	resources, _, err := h.resourceService.List(c.Request.Context(), resourcingapp.ResourceListFilter{})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resources)
}

// Page renders the resource table
func (h *ResourceHandler) Page(c *gin.Context) {
	resources, _, err := h.resourceService.List(c.Request.Context(), resourcingapp.ResourceListFilter{})
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "resources.html", gin.H{
		"Title":     "Resources",
		"Resources": resources,
	})
}

func resourceFormData(form ResourceForm, editing bool, action string) gin.H {
	return gin.H{
		"Title":   "Resource",
		"Form":    form,
		"Editing": editing,
		"Action":  action,
	}
}

// New renders the empty resource form
func (h *ResourceHandler) New(c *gin.Context) {
	form := ResourceForm{
		Type:                 resourcing.ResourceTypeLabor.String(),
		Rate:                 "0",
		CapacityHoursPerWeek: resourcing.DefaultCapacityHoursPerWeek.String(),
		IsActive:             "on",
	}
	h.Render(c, http.StatusOK, "resource_form.html", resourceFormData(form, false, "/resources"))
}

// CreateForm handles the resource form post
func (h *ResourceHandler) CreateForm(c *gin.Context) {
	var form ResourceForm
	if !h.bindForm(c, &form) {
		return
	}

	req, err := form.toRequest()
	if err == nil {
		_, err = h.resourceService.Create(c.Request.Context(), req)
	}
	if err != nil {
		h.renderFormError(c, err, "resource_form.html", resourceFormData(form, false, "/resources"))
		return
	}
	redirect(c, "/resources-page")
}

// Edit renders the form for an existing resource
func (h *ResourceHandler) Edit(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	resource, err := h.resourceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "resource_form.html",
		resourceFormData(resourceFormFrom(resource), true, "/resources/"+id.String()+"/edit"))
}

// UpdateForm handles the edit form post
func (h *ResourceHandler) UpdateForm(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var form ResourceForm
	if !h.bindForm(c, &form) {
		return
	}

	req, err := form.toRequest()
	if err == nil {
		_, err = h.resourceService.Update(c.Request.Context(), id, req)
	}
	if err != nil {
		h.renderFormError(c, err, "resource_form.html",
			resourceFormData(form, true, "/resources/"+id.String()+"/edit"))
		return
	}
	redirect(c, "/resources-page")
}

// DeleteForm handles the delete button
func (h *ResourceHandler) DeleteForm(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.resourceService.Delete(c.Request.Context(), id); err != nil {
		h.HandlePageError(c, err)
		return
	}
	redirect(c, "/resources-page")
}
