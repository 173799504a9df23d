package handler

import (
	"bytes"
	"net/http"

	"github.com/Swarup9437/pm-tool/internal/application/report"
	"github.com/gin-gonic/gin"
)

// CostReportFile is a CostReportWriter with a download name
type CostReportFile interface {
	report.CostReportWriter
	FileName() string
}

// ReportHandler serves the project cost report as a page, JSON and a workbook
type ReportHandler struct {
	BaseHandler
	costService *report.CostReportService
	file        CostReportFile
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(base BaseHandler, costService *report.CostReportService, file CostReportFile) *ReportHandler {
	return &ReportHandler{BaseHandler: base, costService: costService, file: file}
}

// CostsPage renders planned versus actual per project and the consumption total
func (h *ReportHandler) CostsPage(c *gin.Context) {
	r, err := h.costService.Generate(c.Request.Context())
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "costs.html", gin.H{"Title": "Project Costs", "Report": r})
}

// Costs godoc
// @ID           getCostReport
// @Summary      Project cost report
// @Description  Planned budget against labor actuals per project, plus company-wide material consumption cost
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[costing.Report]
// @Security     BearerAuth
// @Router       /reports/costs [get]
func (h *ReportHandler) Costs(c *gin.Context) {
	r, err := h.costService.Generate(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// CostsDownload godoc
// @ID           downloadCostReport
// @Summary      Download the project cost report
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Security     BearerAuth
// @Router       /reports/costs.xlsx [get]
func (h *ReportHandler) CostsDownload(c *gin.Context) {
	r, err := h.costService.Generate(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	// Render fully before writing headers so a failure can still become an error response
	var buf bytes.Buffer
	if err := h.file.Write(&buf, *r); err != nil {
		h.Fail(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+h.file.FileName()+"\"")
	c.Data(http.StatusOK, h.file.ContentType(), buf.Bytes())
}
