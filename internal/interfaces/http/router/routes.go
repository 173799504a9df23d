package router

import (
	"html/template"
	"net/http"

	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/logger"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/handler"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// MetricsSource is what the Prometheus endpoint needs from the metrics registry
type MetricsSource interface {
	middleware.HTTPObserver
	Handler() http.Handler
}

// Handlers are the HTTP handlers mounted by New
type Handlers struct {
	Base       handler.BaseHandler
	Auth       *handler.AuthHandler
	Employee   *handler.EmployeeHandler
	Project    *handler.ProjectHandler
	Task       *handler.TaskHandler
	Resource   *handler.ResourceHandler
	Assignment *handler.AssignmentHandler
	Material   *handler.MaterialHandler
	Dashboard  *handler.DashboardHandler
	Report     *handler.ReportHandler
	System     *handler.SystemHandler
}

// Options configures the middleware stack
type Options struct {
	Logger         *zap.Logger
	Templates      *template.Template
	Authenticator  middleware.Authenticator
	CookieName     string
	CORSOrigins    []string
	TrustedProxies []string
	MaxBodySize    int64
	LoginLimiter   *middleware.RateLimiter
	Tracing        middleware.TracingConfig
	// Metrics is nil when the Prometheus endpoint is disabled
	Metrics     MetricsSource
	MetricsPath string
	Swagger     middleware.SwaggerConfig
}

// New builds the engine with the full middleware stack and every route
func New(h Handlers, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}

	engine := gin.New()
	if len(opts.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(opts.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}
	if opts.Templates != nil {
		engine.SetHTMLTemplate(opts.Templates)
	}

	var observer middleware.HTTPObserver
	if opts.Metrics != nil {
		observer = opts.Metrics
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(opts.CORSOrigins))
	if opts.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(opts.MaxBodySize))
	}
	engine.Use(middleware.Tracing(opts.Tracing))
	engine.Use(middleware.HTTPMetrics(observer, opts.MetricsPath, "/health"))

	sessionCfg := middleware.DefaultSessionConfig(opts.Authenticator, opts.CookieName)
	sessionCfg.Logger = log
	engine.Use(middleware.Session(sessionCfg))
	engine.Use(middleware.SpanAttributes())

	engine.GET("/health", h.System.Health)
	if opts.Metrics != nil {
		engine.GET(opts.MetricsPath, gin.WrapH(opts.Metrics.Handler()))
	}
	engine.GET("/swagger/*any", middleware.SwaggerProtection(opts.Swagger), ginSwagger.WrapHandler(swaggerFiles.Handler))

	can := func(action workforce.Action) gin.HandlerFunc {
		return middleware.RequirePermissionWithConfig(action, middleware.PermissionConfig{
			Logger:   log,
			OnDenied: h.Base.Denied,
		})
	}
	read := can(workforce.ActionRead)

	var loginLimit []gin.HandlerFunc
	if opts.LoginLimiter != nil {
		loginLimit = append(loginLimit, middleware.LoginRateLimit(opts.LoginLimiter))
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	registerPages(r, h, can, read, loginLimit)
	registerAPI(r, h, can, read, loginLimit)
	r.Setup()

	return engine
}

func registerPages(r *Router, h Handlers, can func(workforce.Action) gin.HandlerFunc, read gin.HandlerFunc, loginLimit []gin.HandlerFunc) {
	home := NewDomainGroup("home", "")
	home.GET("/", read, h.Dashboard.Home)
	home.GET("/dashboard", read, h.Dashboard.Page)
	home.GET("/login", h.Auth.LoginPage)
	home.POST("/login", append(loginLimit, h.Auth.LoginForm)...)
	home.POST("/logout", h.Auth.LogoutForm)
	home.POST("/dev/seed", can(workforce.ActionSeed), h.System.Seed)
	r.RegisterPages(home)

	employees := NewDomainGroup("employees", "")
	employees.GET("/employees", read, h.Employee.QuickList)
	employees.GET("/employees-page", read, h.Employee.Page)
	employees.GET("/employees/new", can(workforce.ActionManageEmployees), h.Employee.New)
	employees.POST("/employees", can(workforce.ActionManageEmployees), h.Employee.CreateForm)
	employees.GET("/employees/:id/edit", can(workforce.ActionManageEmployees), h.Employee.Edit)
	employees.POST("/employees/:id/edit", can(workforce.ActionManageEmployees), h.Employee.UpdateForm)
	employees.POST("/employees/:id/delete", can(workforce.ActionManageEmployees), h.Employee.DeleteForm)
	r.RegisterPages(employees)

	projects := NewDomainGroup("projects", "")
	projects.GET("/projects", read, h.Project.QuickList)
	projects.GET("/projects-page", read, h.Project.Page)
	projects.GET("/projects/new", can(workforce.ActionManageProjects), h.Project.New)
	projects.POST("/projects", can(workforce.ActionManageProjects), h.Project.CreateForm)
	projects.GET("/projects/:id/edit", can(workforce.ActionManageProjects), h.Project.Edit)
	projects.POST("/projects/:id/edit", can(workforce.ActionManageProjects), h.Project.UpdateForm)
	projects.POST("/projects/:id/delete", can(workforce.ActionManageProjects), h.Project.DeleteForm)
	r.RegisterPages(projects)

	tasks := NewDomainGroup("tasks", "")
	tasks.GET("/tasks", read, h.Task.QuickList)
	tasks.GET("/tasks-page", read, h.Task.Page)
	tasks.GET("/tasks/new", can(workforce.ActionManageTasks), h.Task.New)
	tasks.POST("/tasks", can(workforce.ActionManageTasks), h.Task.CreateForm)
	tasks.GET("/tasks/:id/edit", can(workforce.ActionManageTasks), h.Task.Edit)
	tasks.POST("/tasks/:id/edit", can(workforce.ActionManageTasks), h.Task.UpdateForm)
	tasks.POST("/tasks/:id/delete", can(workforce.ActionManageTasks), h.Task.DeleteForm)
	r.RegisterPages(tasks)

	resources := NewDomainGroup("resources", "")
	resources.GET("/resources", read, h.Resource.QuickList)
	resources.GET("/resources-page", read, h.Resource.Page)
	resources.GET("/resources/new", can(workforce.ActionManageResources), h.Resource.New)
	resources.POST("/resources", can(workforce.ActionManageResources), h.Resource.CreateForm)
	resources.GET("/resources/:id/edit", can(workforce.ActionManageResources), h.Resource.Edit)
	resources.POST("/resources/:id/edit", can(workforce.ActionManageResources), h.Resource.UpdateForm)
	resources.POST("/resources/:id/delete", can(workforce.ActionManageResources), h.Resource.DeleteForm)
	r.RegisterPages(resources)

	assignments := NewDomainGroup("assignments", "")
	assignments.GET("/assignments", read, h.Assignment.QuickList)
	assignments.GET("/assignments-page", read, h.Assignment.Page)
	assignments.GET("/assignments/new", can(workforce.ActionManageAssignments), h.Assignment.New)
	assignments.POST("/assignments", can(workforce.ActionManageAssignments), h.Assignment.CreateForm)
	assignments.POST("/assignments/:id/delete", can(workforce.ActionManageAssignments), h.Assignment.DeleteForm)
	r.RegisterPages(assignments)

	materials := NewDomainGroup("materials", "")
	materials.GET("/materials", read, h.Material.QuickList)
	materials.GET("/materials-page", read, h.Material.Page)
	materials.GET("/materials/new", can(workforce.ActionManageMaterials), h.Material.New)
	materials.POST("/materials", can(workforce.ActionManageMaterials), h.Material.CreateForm)
	materials.GET("/materials/:id/edit", can(workforce.ActionManageMaterials), h.Material.Edit)
	materials.POST("/materials/:id/edit", can(workforce.ActionManageMaterials), h.Material.UpdateForm)
	materials.POST("/materials/:id/delete", can(workforce.ActionManageMaterials), h.Material.DeleteForm)
	materials.GET("/materials/tx/new", can(workforce.ActionRecordStock), h.Material.NewTransaction)
	materials.POST("/materials/tx", can(workforce.ActionRecordStock), h.Material.RecordTransaction)
	materials.GET("/materials/transactions-page", read, h.Material.TransactionsPage)
	r.RegisterPages(materials)

	reports := NewDomainGroup("reports", "/reports").Use(read)
	reports.GET("/costs-page", h.Report.CostsPage)
	reports.GET("/costs.xlsx", h.Report.CostsDownload)
	r.RegisterPages(reports)
}

func registerAPI(r *Router, h Handlers, can func(workforce.Action) gin.HandlerFunc, read gin.HandlerFunc, loginLimit []gin.HandlerFunc) {
	auth := NewDomainGroup("auth", "/auth")
	auth.POST("/login", append(loginLimit, h.Auth.Login)...)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/me", h.Auth.Me)
	r.Register(auth)

	employees := NewDomainGroup("employees", "/employees")
	employees.GET("", read, h.Employee.List)
	employees.GET("/:id", read, h.Employee.GetByID)
	employees.POST("", can(workforce.ActionManageEmployees), h.Employee.Create)
	employees.PUT("/:id", can(workforce.ActionManageEmployees), h.Employee.Update)
	employees.DELETE("/:id", can(workforce.ActionManageEmployees), h.Employee.Delete)
	r.Register(employees)

	projects := NewDomainGroup("projects", "/projects")
	projects.GET("", read, h.Project.List)
	projects.GET("/:id", read, h.Project.GetByID)
	projects.POST("", can(workforce.ActionManageProjects), h.Project.Create)
	projects.PUT("/:id", can(workforce.ActionManageProjects), h.Project.Update)
	projects.DELETE("/:id", can(workforce.ActionManageProjects), h.Project.Delete)
	r.Register(projects)

	tasks := NewDomainGroup("tasks", "/tasks")
	tasks.GET("", read, h.Task.List)
	tasks.GET("/:id", read, h.Task.GetByID)
	tasks.POST("", can(workforce.ActionManageTasks), h.Task.Create)
	tasks.PUT("/:id", can(workforce.ActionManageTasks), h.Task.Update)
	tasks.DELETE("/:id", can(workforce.ActionManageTasks), h.Task.Delete)
	r.Register(tasks)

	resources := NewDomainGroup("resources", "/resources")
	resources.GET("", read, h.Resource.List)
	resources.GET("/utilization", read, h.Resource.Utilization)
	resources.GET("/:id", read, h.Resource.GetByID)
	resources.POST("", can(workforce.ActionManageResources), h.Resource.Create)
	resources.PUT("/:id", can(workforce.ActionManageResources), h.Resource.Update)
	resources.DELETE("/:id", can(workforce.ActionManageResources), h.Resource.Delete)
	r.Register(resources)

	assignments := NewDomainGroup("assignments", "/assignments")
	assignments.GET("", read, h.Assignment.List)
	assignments.POST("", can(workforce.ActionManageAssignments), h.Assignment.Create)
	assignments.DELETE("/:id", can(workforce.ActionManageAssignments), h.Assignment.Delete)
	r.Register(assignments)

	materials := NewDomainGroup("materials", "/materials")
	materials.GET("", read, h.Material.List)
	materials.GET("/low-stock", read, h.Material.LowStock)
	materials.GET("/:id", read, h.Material.GetByID)
	materials.POST("", can(workforce.ActionManageMaterials), h.Material.Create)
	materials.PUT("/:id", can(workforce.ActionManageMaterials), h.Material.Update)
	materials.DELETE("/:id", can(workforce.ActionManageMaterials), h.Material.Delete)
	materials.POST("/:id/transactions", can(workforce.ActionRecordStock), h.Material.ApplyTransaction)
	r.Register(materials)

	reporting := NewDomainGroup("reporting", "").Use(read)
	reporting.GET("/material-transactions", h.Material.ListTransactions)
	reporting.GET("/dashboard", h.Dashboard.Get)
	reporting.GET("/reports/costs", h.Report.Costs)
	r.Register(reporting)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", read, h.System.GetSystemInfo)
	r.Register(system)

	dev := NewDomainGroup("dev", "/dev")
	dev.POST("/seed", can(workforce.ActionSeed), h.System.Seed)
	r.Register(dev)
}
