package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/Swarup9437/pm-tool/internal/application/seed"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/logger"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/dto"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger checks that the database answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// Seeder loads the demo data set
type Seeder interface {
	Seed(ctx context.Context) (*seed.Result, error)
}

// SystemHandler handles health, system info and the development seed
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	db        Pinger
	seeder    Seeder
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(base BaseHandler, name, version string, db Pinger, seeder Seeder) *SystemHandler {
	return &SystemHandler{
		BaseHandler: base,
		name:        name,
		version:     version,
		db:          db,
		seeder:      seeder,
		startTime:   time.Now(),
	}
}

// HealthResponse is the health check body
type HealthResponse struct {
	Status   string `json:"status" example:"healthy"`
	Time     string `json:"time" example:"2026-01-23T12:00:00Z"`
	Database string `json:"database" example:"ok"`
}

// Health godoc
// @ID           health
// @Summary      Health check
// @Description  200 when the database answers, 503 otherwise
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	now := time.Now().Format(time.RFC3339)
	if err := h.db.Ping(ctx); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Time: now, Database: "error"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Time: now, Database: "ok"})
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"pm-tool"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// GetSystemInfo godoc
// @ID           getSystemInfo
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Security     BearerAuth
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Seed godoc
// @ID           devSeed
// @Summary      Load demo data
// @Description  Creates the demo employees, projects, tasks, resources and materials. Existing rows are left alone. Disabled in production.
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[seed.Result]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dev/seed [post]
func (h *SystemHandler) Seed(c *gin.Context) {
	if h.production {
		if middleware.WantsJSON(c) {
			h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, "seeding is disabled in production")
			return
		}
		h.RenderError(c, http.StatusForbidden, "Seeding is disabled in production", "")
		return
	}

	result, err := h.seeder.Seed(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	logger.GetGinLogger(c).Info("Demo data seeded",
		zap.Int("employees", result.Employees),
		zap.Int("projects", result.Projects),
		zap.Int("materials", result.Materials),
	)
	if middleware.WantsJSON(c) {
		h.Success(c, result)
		return
	}
	redirect(c, "/")
}
