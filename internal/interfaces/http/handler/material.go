package handler

import (
	"net/http"

	stockapp "github.com/Swarup9437/pm-tool/internal/application/stock"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// MaterialHandler handles materials and the stock ledger
type MaterialHandler struct {
	BaseHandler
	materialService *stockapp.MaterialService
	ledgerService   *stockapp.LedgerService
}

// NewMaterialHandler creates a new MaterialHandler
func NewMaterialHandler(
	base BaseHandler,
	materialService *stockapp.MaterialService,
	ledgerService *stockapp.LedgerService,
) *MaterialHandler {
	return &MaterialHandler{
		BaseHandler:     base,
		materialService: materialService,
		ledgerService:   ledgerService,
	}
}

// List godoc
// @ID           listMaterials
// @Summary      List materials
// @Tags         materials
// @Produce      json
// @Param        search     query  string  false  "Search by name"
// @Param        low_stock  query  bool    false  "Only materials at or below reorder level"
// @Param        active     query  bool    false  "Active filter"
// @Param        order_by   query  string  false  "Sort field" Enums(name, created_at, quantity_on_hand, unit_cost)
// @Param        order_dir  query  string  false  "Sort direction" Enums(asc, desc)
// @Param        page       query  int     false  "Page number" default(1)
// @Param        page_size  query  int     false  "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]stockapp.MaterialResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /materials [get]
func (h *MaterialHandler) List(c *gin.Context) {
	var filter stockapp.MaterialListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	filter.Page, filter.PageSize = pageOrDefault(filter.Page, filter.PageSize)

	materials, total, err := h.materialService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, materials, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @ID           getMaterial
// @Summary      Get a material
// @Tags         materials
// @Produce      json
// @Param        id path string true "Material ID" format(uuid)
// @Success      200 {object} APIResponse[stockapp.MaterialResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /materials/{id} [get]
func (h *MaterialHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	material, err := h.materialService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, material)
}

// Create godoc
// @ID           createMaterial
// @Summary      Create a material
// @Description  The opening quantity is stored as given. Later changes go through transactions.
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        request body stockapp.CreateMaterialRequest true "Material"
// @Success      201 {object} APIResponse[stockapp.MaterialResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /materials [post]
func (h *MaterialHandler) Create(c *gin.Context) {
	var req stockapp.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	material, err := h.materialService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, material)
}

// Update godoc
// @ID           updateMaterial
// @Summary      Update a material
// @Description  Quantity on hand cannot be edited here
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        id      path string                         true "Material ID" format(uuid)
// @Param        request body stockapp.UpdateMaterialRequest true "Material"
// @Success      200 {object} APIResponse[stockapp.MaterialResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /materials/{id} [put]
func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req stockapp.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	material, err := h.materialService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, material)
}

// Delete godoc
// @ID           deleteMaterial
// @Summary      Delete a material and its transactions
// @Tags         materials
// @Param        id path string true "Material ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /materials/{id} [delete]
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.materialService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// LowStock godoc
// @ID           lowStockMaterials
// @Summary      Materials at or below their reorder level
// @Tags         materials
// @Produce      json
// @Param        limit query int false "Maximum rows" default(8)
// @Success      200 {object} APIResponse[[]stockapp.MaterialResponse]
// @Security     BearerAuth
// @Router       /materials/low-stock [get]
func (h *MaterialHandler) LowStock(c *gin.Context) {
	var q struct {
		Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}
	materials, err := h.materialService.ListLowStock(c.Request.Context(), q.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, materials)
}

// ApplyTransaction godoc
// @ID           applyMaterialTransaction
// @Summary      Record a stock movement for a material
// @Description  receive adds, consume subtracts, adjust adds the signed quantity. Quantity may not be 0.
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "Material ID" format(uuid)
// @Param        request body stockapp.ApplyTransactionRequest true "Movement"
// @Success      201 {object} APIResponse[stockapp.ApplyTransactionResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /materials/{id}/transactions [post]
func (h *MaterialHandler) ApplyTransaction(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req stockapp.ApplyTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.MaterialID = id
	h.applyJSON(c, req)
}

func (h *MaterialHandler) applyJSON(c *gin.Context, req stockapp.ApplyTransactionRequest) {
	result, err := h.ledgerService.ApplyTransaction(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListTransactions godoc
// @ID           listMaterialTransactions
// @Summary      List stock movements
// @Description  Newest first, with material name and unit
// @Tags         materials
// @Produce      json
// @Param        material_id query  string  false  "Material filter" format(uuid)
// @Param        type        query  string  false  "Type filter" Enums(receive, consume, adjust)
// @Param        page        query  int     false  "Page number" default(1)
// @Param        page_size   query  int     false  "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]stockapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /material-transactions [get]
func (h *MaterialHandler) ListTransactions(c *gin.Context) {
	var filter stockapp.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}
	filter.Page, filter.PageSize = pageOrDefault(filter.Page, filter.PageSize)

	rows, total, err := h.ledgerService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rows, total, filter.Page, filter.PageSize)
}

// QuickList returns every material as a bare JSON array
func (h *MaterialHandler) QuickList(c *gin.Context) {
	materials, _, err := h.materialService.List(c.Request.Context(), stockapp.MaterialListFilter{})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

// Page renders the material table
func (h *MaterialHandler) Page(c *gin.Context) {
	filter := stockapp.MaterialListFilter{Search: c.Query("search")}
	lowOnly := checked(c.Query("low_stock"))
	if lowOnly {
		filter.LowStock = &lowOnly
	}
	materials, _, err := h.materialService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "materials.html", gin.H{
		"Title":        "Materials",
		"Materials":    materials,
		"Search":       filter.Search,
		"LowStockOnly": lowOnly,
	})
}

func materialFormData(form MaterialForm, editing bool, action, materialID string) gin.H {
	return gin.H{
		"Title":      "Material",
		"Form":       form,
		"Editing":    editing,
		"Action":     action,
		"MaterialID": materialID,
	}
}

// New renders the empty material form
func (h *MaterialHandler) New(c *gin.Context) {
	form := MaterialForm{UnitCost: "0", QuantityOnHand: "0", ReorderLevel: "0", IsActive: "on"}
	h.Render(c, http.StatusOK, "material_form.html", materialFormData(form, false, "/materials", ""))
}

// CreateForm handles POST /materials from the form or as JSON
func (h *MaterialHandler) CreateForm(c *gin.Context) {
	if c.ContentType() == gin.MIMEJSON {
		h.Create(c)
		return
	}

	var form MaterialForm
	if !h.bindForm(c, &form) {
		return
	}

	req, err := form.toCreate()
	if err == nil {
		_, err = h.materialService.Create(c.Request.Context(), req)
	}
	if err != nil {
		h.renderFormError(c, err, "material_form.html", materialFormData(form, false, "/materials", ""))
		return
	}
	redirect(c, "/materials-page")
}

// Edit renders the form for an existing material
func (h *MaterialHandler) Edit(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	material, err := h.materialService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "material_form.html",
		materialFormData(materialFormFrom(material), true, "/materials/"+id.String()+"/edit", id.String()))
}

// UpdateForm handles the edit form post
func (h *MaterialHandler) UpdateForm(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var form MaterialForm
	if !h.bindForm(c, &form) {
		return
	}

	req, err := form.toUpdate()
	if err == nil {
		_, err = h.materialService.Update(c.Request.Context(), id, req)
	}
	if err != nil {
		// The read-only quantity is not posted back
		if current, getErr := h.materialService.GetByID(c.Request.Context(), id); getErr == nil {
			form.QuantityOnHand = decimalString(current.QuantityOnHand)
		}
		h.renderFormError(c, err, "material_form.html",
			materialFormData(form, true, "/materials/"+id.String()+"/edit", id.String()))
		return
	}
	redirect(c, "/materials-page")
}

// DeleteForm handles the delete button
func (h *MaterialHandler) DeleteForm(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.materialService.Delete(c.Request.Context(), id); err != nil {
		h.HandlePageError(c, err)
		return
	}
	redirect(c, "/materials-page")
}

func (h *MaterialHandler) renderTransactionForm(c *gin.Context, form TransactionForm, formErr error) {
	materials, _, err := h.materialService.List(c.Request.Context(), stockapp.MaterialListFilter{})
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	data := gin.H{
		"Title":     "Stock Movement",
		"Form":      form,
		"Materials": materials,
	}
	if formErr != nil {
		h.renderFormError(c, formErr, "transaction_form.html", data)
		return
	}
	h.Render(c, http.StatusOK, "transaction_form.html", data)
}

// NewTransaction renders the stock movement form. ?material= preselects one.
func (h *MaterialHandler) NewTransaction(c *gin.Context) {
	h.renderTransactionForm(c, newTransactionForm(c.Query("material")), nil)
}

// RecordTransaction handles POST /materials/tx from the form or as JSON.
// An unknown material is a 404, a bad type or zero quantity a 400.
func (h *MaterialHandler) RecordTransaction(c *gin.Context) {
	if c.ContentType() == gin.MIMEJSON {
		var req stockapp.ApplyTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.ValidationError(c, err)
			return
		}
		h.applyJSON(c, req)
		return
	}

	var form TransactionForm
	if !h.bindForm(c, &form) {
		return
	}

	req, err := form.toRequest()
	if err == nil {
		_, err = h.ledgerService.ApplyTransaction(c.Request.Context(), req)
	}
	if err != nil {
		if middleware.WantsJSON(c) {
			h.HandleError(c, err)
			return
		}
		h.renderTransactionForm(c, form, err)
		return
	}
	redirect(c, "/materials/transactions-page")
}

// TransactionsPage renders the ledger, newest first
func (h *MaterialHandler) TransactionsPage(c *gin.Context) {
	var filter stockapp.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.RenderError(c, http.StatusBadRequest, "invalid filter", "")
		return
	}
	filter.Page, filter.PageSize = 0, 0

	rows, _, err := h.ledgerService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "transactions.html", gin.H{
		"Title":        "Stock Transactions",
		"Transactions": rows,
	})
}
