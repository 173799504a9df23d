package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	planningapp "github.com/Swarup9437/pm-tool/internal/application/planning"
	resourcingapp "github.com/Swarup9437/pm-tool/internal/application/resourcing"
	"github.com/Swarup9437/pm-tool/internal/application/seed"
	stockapp "github.com/Swarup9437/pm-tool/internal/application/stock"
	workforceapp "github.com/Swarup9437/pm-tool/internal/application/workforce"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/config"
	csvimport "github.com/Swarup9437/pm-tool/internal/infrastructure/import"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/logger"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/persistence"
	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
)

func main() {
	var (
		fake          int
		fakeSeed      uint64
		materialsFile string
	)
	flag.IntVar(&fake, "fake", 0, "Also generate N fake employees, resources and materials")
	flag.Uint64Var(&fakeSeed, "fake-seed", 0, "Random seed for -fake (0 picks a random one)")
	flag.StringVar(&materialsFile, "materials", "", "Import materials from a CSV file (columns: name, unit, unit_cost, reorder_level, opening_quantity, is_active)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.IsProduction() {
		fmt.Fprintln(os.Stderr, "Refusing to seed a production database")
		os.Exit(1)
	}

	log, err := logger.New(logger.FromAppConfig(cfg.Log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()
	if db.Driver != config.DriverPostgres {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to create schema", zap.Error(err))
		}
	}

	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	resourceRepo := persistence.NewGormResourceRepository(db.DB)
	assignmentRepo := persistence.NewGormAssignmentRepository(db.DB)

	employees := workforceapp.NewEmployeeService(employeeRepo, log)
	tasks := planningapp.NewTaskService(taskRepo, projectRepo, employeeRepo)
	resources := resourcingapp.NewResourceService(resourceRepo)
	assignments := resourcingapp.NewAssignmentService(assignmentRepo, resourceRepo, taskRepo)
	materials := stockapp.NewMaterialService(persistence.NewGormMaterialRepository(db.DB))
	ledger := stockapp.NewLedgerService(
		persistence.NewGormMaterialTransactionRepository(db.DB),
		persistence.NewGormTransactionScope(db.DB),
		log,
	)
	svc := seed.NewService(employees, projectRepo, tasks, resources, assignments, materials, ledger, log)

	ctx := context.Background()
	res, err := svc.Seed(ctx)
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	report("demo", res)

	if materialsFile != "" {
		items, err := readMaterials(materialsFile)
		if err != nil {
			log.Fatal("Invalid materials file", zap.String("file", materialsFile), zap.Error(err))
		}
		res, err := svc.ImportMaterials(ctx, items)
		if err != nil {
			log.Fatal("Materials import failed", zap.Error(err))
		}
		report("import", res)
	}

	if fake > 0 {
		res, err := svc.Fake(ctx, gofakeit.New(fakeSeed), fake)
		if err != nil {
			log.Fatal("Fake data generation failed", zap.Error(err))
		}
		report("fake", res)
	}
}

func readMaterials(path string) ([]seed.StockedMaterial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := csvimport.ReadMaterials(f)
	if err != nil {
		return nil, err
	}
	items := make([]seed.StockedMaterial, len(rows))
	for i, r := range rows {
		items[i] = seed.StockedMaterial{Input: r.Input, Opening: r.Opening}
	}
	return items, nil
}

func report(label string, r *seed.Result) {
	fmt.Printf("%s: %d employees, %d projects, %d tasks, %d resources, %d assignments, %d materials, %d transactions\n",
		label, r.Employees, r.Projects, r.Tasks, r.Resources, r.Assignments, r.Materials, r.Transactions)
}
