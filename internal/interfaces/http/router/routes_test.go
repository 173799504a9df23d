package router

import (
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
	"github.com/Swarup9437/pm-tool/internal/infrastructure/auth"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/config"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/export"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/metrics"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/persistence"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/handler"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/middleware"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/view"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type app struct {
	engine    *gin.Engine
	employees *workforceapp.EmployeeService
	metrics   *metrics.Registry
}

func newApp(t *testing.T, loginBurst int) *app {
	t.Helper()
	middleware.SetupValidator()

	gdb, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
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

	employees := workforceapp.NewEmployeeService(employeeRepo, nil)
	projects := planningapp.NewProjectService(projectRepo, employeeRepo)
	tasks := planningapp.NewTaskService(taskRepo, projectRepo, employeeRepo)
	resources := resourcingapp.NewResourceService(resourceRepo)
	assignments := resourcingapp.NewAssignmentService(assignmentRepo, resourceRepo, taskRepo)
	materials := stockapp.NewMaterialService(materialRepo)
	ledger := stockapp.NewLedgerService(txRepo, persistence.NewGormTransactionScope(gdb), nil)
	utilization := resourcingapp.NewUtilizationService(resourceRepo, assignmentRepo)

	registry := metrics.NewRegistry(metrics.Config{Namespace: "pm"})
	sessions := session.NewService(employeeRepo, auth.NewJWTService(config.AuthConfig{
		SessionSecret: "router-test-secret-32-characters!",
		SessionTTL:    time.Hour,
		Issuer:        "pm-tool-test",
	}), auth.NewInMemoryTokenBlacklist(), nil)
	sessions.SetMetrics(registry)
	ledger.SetMetrics(registry)

	base := handler.NewBaseHandler(false)
	h := Handlers{
		Base:       base,
		Auth:       handler.NewAuthHandler(base, sessions, handler.CookieOptions{Name: "pm_session"}),
		Employee:   handler.NewEmployeeHandler(base, employees),
		Project:    handler.NewProjectHandler(base, projects, employees),
		Task:       handler.NewTaskHandler(base, tasks, projects, employees),
		Resource:   handler.NewResourceHandler(base, resources, utilization),
		Assignment: handler.NewAssignmentHandler(base, assignments, tasks, resources),
		Material:   handler.NewMaterialHandler(base, materials, ledger),
		Dashboard: handler.NewDashboardHandler(base, report.NewDashboardService(
			projectRepo, taskRepo, employeeRepo, resourceRepo, materialRepo, utilization)),
		Report: handler.NewReportHandler(base,
			report.NewCostReportService(projectRepo, taskRepo, assignmentRepo, resourceRepo, txRepo),
			export.NewCostReportWorkbook()),
		System: handler.NewSystemHandler(base, "pm-tool", "test", db,
			seed.NewService(employees, projectRepo, tasks, resources, assignments, materials, ledger, nil)),
	}

	engine := New(h, Options{
		Templates:     view.MustLoad(),
		Authenticator: sessions,
		CookieName:    "pm_session",
		MaxBodySize:   1 << 20,
		LoginLimiter:  middleware.NewRateLimiter(60, loginBurst),
		Metrics:       registry,
		Swagger:       middleware.SwaggerConfig{Enabled: false},
	})
	return &app{engine: engine, employees: employees, metrics: registry}
}

func (a *app) addUser(t *testing.T, email, role, password string) {
	t.Helper()
	_, err := a.employees.Create(t.Context(), workforceapp.CreateEmployeeRequest{
		Name: strings.Split(email, "@")[0], Email: email, Role: role, Password: password,
	})
	require.NoError(t, err)
}

// login posts the login form and returns the session cookie
func (a *app) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	for _, c := range (&http.Response{Header: w.Header()}).Cookies() {
		if c.Name == "pm_session" {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func (a *app) serve(method, path string, cookie *http.Cookie, body url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func TestNew_AnonymousAccess(t *testing.T) {
	a := newApp(t, 10)

	w := a.serve(http.MethodGet, "/projects-page", nil, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = a.serve(http.MethodGet, "/api/v1/projects", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, http.StatusOK, a.serve(http.MethodGet, "/health", nil, nil).Code)
	assert.Equal(t, http.StatusOK, a.serve(http.MethodGet, "/login", nil, nil).Code)
	assert.NotEmpty(t, a.serve(http.MethodGet, "/health", nil, nil).Header().Get("X-Request-ID"))
}

func TestNew_RolesGateMutations(t *testing.T) {
	a := newApp(t, 10)
	a.addUser(t, "viewer@company.com", "viewer", "view123")
	a.addUser(t, "eng@company.com", "engineer", "eng123")

	viewer := a.login(t, "viewer@company.com", "view123")
	assert.Equal(t, http.StatusOK, a.serve(http.MethodGet, "/projects-page", viewer, nil).Code)

	w := a.serve(http.MethodPost, "/projects", viewer, url.Values{"code": {"P-1"}, "name": {"X"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Your role does not allow this action")

	w = a.serve(http.MethodPost, "/dev/seed", viewer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/employees/"+uuid.NewString(), nil)
	req.AddCookie(viewer)
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_FORBIDDEN")

	engineer := a.login(t, "eng@company.com", "eng123")
	assert.Equal(t, http.StatusOK, a.serve(http.MethodGet, "/materials/tx/new", engineer, nil).Code)
	assert.Equal(t, http.StatusForbidden, a.serve(http.MethodGet, "/materials/new", engineer, nil).Code)
}

func TestNew_SeedThenBrowse(t *testing.T) {
	a := newApp(t, 10)
	a.addUser(t, "root@company.com", "admin", "root123")
	admin := a.login(t, "root@company.com", "root123")

	w := a.serve(http.MethodPost, "/dev/seed", admin, nil)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	for _, path := range []string{
		"/", "/dashboard", "/employees-page", "/projects-page", "/tasks-page", "/resources-page",
		"/assignments-page", "/materials-page", "/materials/transactions-page", "/reports/costs-page",
		"/employees/new", "/projects/new", "/tasks/new", "/resources/new", "/assignments/new", "/materials/new",
	} {
		assert.Equal(t, http.StatusOK, a.serve(http.MethodGet, path, admin, nil).Code, path)
	}
	for _, path := range []string{"/employees", "/projects", "/tasks", "/resources", "/assignments", "/materials"} {
		w := a.serve(http.MethodGet, path, admin, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.True(t, strings.HasPrefix(w.Body.String(), "["), path)
	}

	w = a.serve(http.MethodGet, "/api/v1/materials/low-stock", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Steel Rods")
	assert.NotContains(t, w.Body.String(), "Cement")
}

func TestNew_LoginIsRateLimited(t *testing.T) {
	a := newApp(t, 2)
	form := url.Values{"email": {"nobody@company.com"}, "password": {"x"}}

	assert.Equal(t, http.StatusUnauthorized, a.serve(http.MethodPost, "/login", nil, form).Code)
	assert.Equal(t, http.StatusUnauthorized, a.serve(http.MethodPost, "/login", nil, form).Code)
	w := a.serve(http.MethodPost, "/login", nil, form)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestNew_MetricsAndSwagger(t *testing.T) {
	a := newApp(t, 10)
	a.serve(http.MethodGet, "/login", nil, nil)
	a.serve(http.MethodPost, "/login", nil, url.Values{"email": {"a@b.co"}, "password": {"x"}})

	w := a.serve(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `pm_http_requests_total{method="GET",route="/login",status="200"} 1`)
	assert.Contains(t, w.Body.String(), `pm_login_attempts_total{result="failure"} 1`)

	assert.Equal(t, http.StatusNotFound, a.serve(http.MethodGet, "/swagger/index.html", nil, nil).Code)
}
