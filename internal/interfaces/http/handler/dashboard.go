package handler

import (
	"net/http"

	"github.com/Swarup9437/pm-tool/internal/application/report"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the home page and the dashboard summary
type DashboardHandler struct {
	BaseHandler
	dashboardService *report.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(base BaseHandler, dashboardService *report.DashboardService) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, dashboardService: dashboardService}
}

// Home renders the landing page with counts, status histogram, top utilization and low stock
func (h *DashboardHandler) Home(c *gin.Context) {
	h.render(c, "home.html", "Home")
}

// Page renders the compact dashboard
func (h *DashboardHandler) Page(c *gin.Context) {
	h.render(c, "dashboard.html", "Dashboard")
}

func (h *DashboardHandler) render(c *gin.Context, name, title string) {
	d, err := h.dashboardService.Build(c.Request.Context())
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.Render(c, http.StatusOK, name, gin.H{"Title": title, "Dashboard": d})
}

// Get godoc
// @ID           getDashboard
// @Summary      Dashboard summary
// @Description  Row counts, task status histogram, resource utilization and low-stock materials
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse[report.Dashboard]
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	d, err := h.dashboardService.Build(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, d)
}
