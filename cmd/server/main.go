package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
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
	"github.com/Swarup9437/pm-tool/internal/infrastructure/logger"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/metrics"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/migration"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/persistence"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/telemetry"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/handler"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/middleware"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/router"
	"github.com/Swarup9437/pm-tool/internal/interfaces/http/view"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/Swarup9437/pm-tool/docs"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			PM Tool API
//	@version		1.0
//	@description	Project management: employees, projects, tasks, resources, assignments and the material stock ledger.

//	@host		localhost:4000
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.FromAppConfig(cfg.Log))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting PM Tool",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Environment:       cfg.App.Env,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabaseWithOptions(&cfg.Database, persistence.Options{Logger: gormLog})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        db.Driver,
	}, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := prepareSchema(db, log); err != nil {
			log.Fatal("Failed to prepare schema", zap.Error(err))
		}
	}

	// Repositories
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	resourceRepo := persistence.NewGormResourceRepository(db.DB)
	assignmentRepo := persistence.NewGormAssignmentRepository(db.DB)
	materialRepo := persistence.NewGormMaterialRepository(db.DB)
	txRepo := persistence.NewGormMaterialTransactionRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	registry := metrics.NewRegistry(metrics.Config{Namespace: cfg.Metrics.Namespace, IncludeRuntime: true})

	// Services
	employeeService := workforceapp.NewEmployeeService(employeeRepo, log)
	projectService := planningapp.NewProjectService(projectRepo, employeeRepo)
	taskService := planningapp.NewTaskService(taskRepo, projectRepo, employeeRepo)
	resourceService := resourcingapp.NewResourceService(resourceRepo)
	assignmentService := resourcingapp.NewAssignmentService(assignmentRepo, resourceRepo, taskRepo)
	utilizationService := resourcingapp.NewUtilizationService(resourceRepo, assignmentRepo)
	materialService := stockapp.NewMaterialService(materialRepo)
	ledgerService := stockapp.NewLedgerService(txRepo, txScope, log)
	ledgerService.SetMetrics(registry)
	dashboardService := report.NewDashboardService(projectRepo, taskRepo, employeeRepo, resourceRepo, materialRepo, utilizationService)
	costReportService := report.NewCostReportService(projectRepo, taskRepo, assignmentRepo, resourceRepo, txRepo)
	seedService := seed.NewService(employeeService, projectRepo, taskService, resourceService,
		assignmentService, materialService, ledgerService, log)

	blacklist, closeBlacklist := newBlacklist(ctx, cfg.Redis, log)
	defer closeBlacklist()
	sessionService := session.NewService(employeeRepo, auth.NewJWTService(cfg.Auth), blacklist, log)
	sessionService.SetMetrics(registry)

	if err := employeeService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Fatal("Failed to bootstrap admin account", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	base := handler.NewBaseHandler(cfg.IsProduction())
	handlers := router.Handlers{
		Base: base,
		Auth: handler.NewAuthHandler(base, sessionService, handler.CookieOptions{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
			Domain: cfg.Auth.CookieDomain,
		}),
		Employee:   handler.NewEmployeeHandler(base, employeeService),
		Project:    handler.NewProjectHandler(base, projectService, employeeService),
		Task:       handler.NewTaskHandler(base, taskService, projectService, employeeService),
		Resource:   handler.NewResourceHandler(base, resourceService, utilizationService),
		Assignment: handler.NewAssignmentHandler(base, assignmentService, taskService, resourceService),
		Material:   handler.NewMaterialHandler(base, materialService, ledgerService),
		Dashboard:  handler.NewDashboardHandler(base, dashboardService),
		Report:     handler.NewReportHandler(base, costReportService, export.NewCostReportWorkbook()),
		System:     handler.NewSystemHandler(base, cfg.App.Name, version, db, seedService),
	}

	opts := router.Options{
		Logger:         log,
		Templates:      view.MustLoad(),
		Authenticator:  sessionService,
		CookieName:     cfg.Auth.CookieName,
		CORSOrigins:    cfg.HTTP.CORSAllowOrigins,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		LoginLimiter:   middleware.NewRateLimiter(cfg.HTTP.LoginRatePerMin, cfg.HTTP.LoginRateBurst),
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		MetricsPath: cfg.Metrics.Path,
		Swagger: middleware.SwaggerConfig{
			Enabled: cfg.HTTP.SwaggerEnabled,
		},
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = registry
	}
	engine := router.New(handlers, opts)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// prepareSchema runs the SQL migrations on postgres and AutoMigrate on sqlite
func prepareSchema(db *persistence.Database, log *zap.Logger) error {
	if db.Driver != config.DriverPostgres {
		return db.AutoMigrate()
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, log)
	if err != nil {
		return err
	}
	// Closing the migrator would close the shared *sql.DB
	return m.Up()
}

// newBlacklist uses Redis when configured and falls back to process memory
func newBlacklist(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (auth.TokenBlacklist, func()) {
	if !cfg.Enabled {
		return auth.NewInMemoryTokenBlacklist(), func() {}
	}
	rb, err := auth.NewRedisTokenBlacklist(ctx, cfg)
	if err != nil {
		log.Warn("Redis unavailable, revoked sessions are kept in memory", zap.Error(err))
		return auth.NewInMemoryTokenBlacklist(), func() {}
	}
	log.Info("Session blacklist backed by Redis", zap.String("addr", cfg.Addr()))
	return rb, func() {
		if err := rb.Close(); err != nil {
			log.Warn("Error closing Redis", zap.Error(err))
		}
	}
}
