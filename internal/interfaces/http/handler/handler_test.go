package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	planningapp "github.com/Swarup9437/pm-tool/internal/application/planning"
	"github.com/Swarup9437/pm-tool/internal/application/report"
	resourcingapp "github.com/Swarup9437/pm-tool/internal/application/resourcing"
	"github.com/Swarup9437/pm-tool/internal/application/seed"
	"github.com/Swarup9437/pm-tool/internal/application/session"
	stockapp "github.com/Swarup9437/pm-tool/internal/application/stock"
	workforceapp "github.com/Swarup9437/pm-tool/internal/application/workforce"
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/auth"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/config"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/export"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/persistence"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/dto"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/middleware"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/view"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// fixture wires real services over an in-memory sqlite database
type fixture struct {
	db     *persistence.Database
	engine *gin.Engine
	user   *session.AuthContext

	employees   *workforceapp.EmployeeService
	projects    *planningapp.ProjectService
	tasks       *planningapp.TaskService
	resources   *resourcingapp.ResourceService
	assignments *resourcingapp.AssignmentService
	materials   *stockapp.MaterialService
	ledger      *stockapp.LedgerService
	sessions    *session.Service
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	production bool
}

func inProduction() fixtureOption {
	return func(c *fixtureConfig) { c.production = true }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()
	var cfg fixtureConfig
	for _, o := range opts {
		o(&cfg)
	}

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_busy_timeout=5000"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := persistence.NewDatabaseFromGorm(gdb, "sqlite")
	require.NoError(t, db.AutoMigrate())

	employeeRepo := persistence.NewGormEmployeeRepository(gdb)
	projectRepo := persistence.NewGormProjectRepository(gdb)
	taskRepo := persistence.NewGormTaskRepository(gdb)
	resourceRepo := persistence.NewGormResourceRepository(gdb)
	assignmentRepo := persistence.NewGormAssignmentRepository(gdb)
	materialRepo := persistence.NewGormMaterialRepository(gdb)
	txRepo := persistence.NewGormMaterialTransactionRepository(gdb)

	f := &fixture{
		db:          db,
		employees:   workforceapp.NewEmployeeService(employeeRepo, nil),
		projects:    planningapp.NewProjectService(projectRepo, employeeRepo),
		tasks:       planningapp.NewTaskService(taskRepo, projectRepo, employeeRepo),
		resources:   resourcingapp.NewResourceService(resourceRepo),
		assignments: resourcingapp.NewAssignmentService(assignmentRepo, resourceRepo, taskRepo),
		materials:   stockapp.NewMaterialService(materialRepo),
		ledger:      stockapp.NewLedgerService(txRepo, persistence.NewGormTransactionScope(gdb), nil),
	}
	jwtService := auth.NewJWTService(config.AuthConfig{
		SessionSecret: "test-secret-key-32-characters-long",
		SessionTTL:    time.Hour,
		Issuer:        "pm-tool-test",
	})
	f.sessions = session.NewService(employeeRepo, jwtService, auth.NewInMemoryTokenBlacklist(), nil)
	utilization := resourcingapp.NewUtilizationService(resourceRepo, assignmentRepo)
	dashboard := report.NewDashboardService(projectRepo, taskRepo, employeeRepo, resourceRepo, materialRepo, utilization)
	costs := report.NewCostReportService(projectRepo, taskRepo, assignmentRepo, resourceRepo, txRepo)
	seeder := seed.NewService(f.employees, projectRepo, f.tasks, f.resources, f.assignments, f.materials, f.ledger, nil)

	base := NewBaseHandler(cfg.production)
	employeeH := NewEmployeeHandler(base, f.employees)
	projectH := NewProjectHandler(base, f.projects, f.employees)
	taskH := NewTaskHandler(base, f.tasks, f.projects, f.employees)
	resourceH := NewResourceHandler(base, f.resources, utilization)
	assignmentH := NewAssignmentHandler(base, f.assignments, f.tasks, f.resources)
	materialH := NewMaterialHandler(base, f.materials, f.ledger)
	authH := NewAuthHandler(base, f.sessions, CookieOptions{Name: "pm_session"})
	dashboardH := NewDashboardHandler(base, dashboard)
	reportH := NewReportHandler(base, costs, export.NewCostReportWorkbook())
	systemH := NewSystemHandler(base, "pm-tool", "test", db, seeder)

	r := gin.New()
	r.SetHTMLTemplate(view.MustLoad())
	r.Use(func(c *gin.Context) {
		if f.user != nil {
			c.Request = c.Request.WithContext(session.WithAuthContext(c.Request.Context(), f.user))
		}
		c.Next()
	})

	r.GET("/", dashboardH.Home)
	r.GET("/dashboard", dashboardH.Page)
	r.GET("/health", systemH.Health)
	r.POST("/dev/seed", systemH.Seed)
	r.GET("/login", authH.LoginPage)
	r.POST("/login", authH.LoginForm)
	r.POST("/logout", authH.LogoutForm)

	r.GET("/employees", employeeH.QuickList)
	r.GET("/employees-page", employeeH.Page)
	r.POST("/employees", employeeH.CreateForm)
	r.GET("/employees/:id/edit", employeeH.Edit)
	r.POST("/employees/:id/edit", employeeH.UpdateForm)
	r.POST("/employees/:id/delete", employeeH.DeleteForm)

	r.GET("/projects-page", projectH.Page)
	r.GET("/projects/new", projectH.New)
	r.POST("/projects", projectH.CreateForm)
	r.GET("/tasks/new", taskH.New)
	r.POST("/tasks", taskH.CreateForm)
	r.GET("/tasks-page", taskH.Page)
	r.POST("/resources", resourceH.CreateForm)
	r.POST("/assignments", assignmentH.CreateForm)
	r.GET("/assignments-page", assignmentH.Page)

	r.GET("/materials-page", materialH.Page)
	r.POST("/materials", materialH.CreateForm)
	r.GET("/materials/:id/edit", materialH.Edit)
	r.GET("/materials/tx/new", materialH.NewTransaction)
	r.POST("/materials/tx", materialH.RecordTransaction)
	r.GET("/materials/transactions-page", materialH.TransactionsPage)
	r.GET("/reports/costs-page", reportH.CostsPage)
	r.GET("/reports/costs.xlsx", reportH.CostsDownload)

	api := r.Group("/api/v1")
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/logout", authH.Logout)
	api.GET("/auth/me", authH.Me)
	api.GET("/employees", employeeH.List)
	api.POST("/employees", employeeH.Create)
	api.GET("/employees/:id", employeeH.GetByID)
	api.PUT("/employees/:id", employeeH.Update)
	api.DELETE("/employees/:id", employeeH.Delete)
	api.POST("/projects", projectH.Create)
	api.GET("/projects", projectH.List)
	api.POST("/tasks", taskH.Create)
	api.POST("/resources", resourceH.Create)
	api.GET("/resources/utilization", resourceH.Utilization)
	api.POST("/assignments", assignmentH.Create)
	api.POST("/materials", materialH.Create)
	api.POST("/materials/:id/transactions", materialH.ApplyTransaction)
	api.GET("/material-transactions", materialH.ListTransactions)
	api.GET("/dashboard", dashboardH.Get)
	api.GET("/reports/costs", reportH.Costs)

	f.engine = r
	f.signIn(workforce.RoleAdmin)
	return f
}

// signIn makes later requests run as a user with the given role
func (f *fixture) signIn(role workforce.Role) {
	f.user = &session.AuthContext{UserID: uuid.New(), Name: "Tester", Email: "tester@company.com", Role: role}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func jsonUnmarshal(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

func (f *fixture) get(path string) *httptest.ResponseRecorder {
	return f.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (f *fixture) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(req)
}

func (f *fixture) sendJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return f.do(req)
}

// decode unmarshals the envelope and re-decodes its data into out
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	if out != nil && resp.Data != nil {
		raw, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return resp
}
