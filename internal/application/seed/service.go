// Package seed loads demo data. Every step is keyed on a unique field, so
// running it twice creates nothing the second time.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	planningapp "github.com/Swarup9437/pm-tool/internal/application/planning"
	resourcingapp "github.com/Swarup9437/pm-tool/internal/application/resourcing"
	stockapp "github.com/Swarup9437/pm-tool/internal/application/stock"
	workforceapp "github.com/Swarup9437/pm-tool/internal/application/workforce"
	"github.com/Swarup9437/pm-tool/internal/domain/planning"
	"github.com/Swarup9437/pm-tool/internal/domain/resourcing"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Result counts the rows a run created
type Result struct {
	Employees    int `json:"employees"`
	Projects     int `json:"projects"`
	Tasks        int `json:"tasks"`
	Resources    int `json:"resources"`
	Assignments  int `json:"assignments"`
	Materials    int `json:"materials"`
	Transactions int `json:"transactions"`
}

// Service creates the demo data set
type Service struct {
	employees   *workforceapp.EmployeeService
	projectRepo planning.ProjectRepository
	tasks       *planningapp.TaskService
	resources   *resourcingapp.ResourceService
	assignments *resourcingapp.AssignmentService
	materials   *stockapp.MaterialService
	ledger      *stockapp.LedgerService
	logger      *zap.Logger
}

// NewService creates a new seed Service
func NewService(
	employees *workforceapp.EmployeeService,
	projectRepo planning.ProjectRepository,
	tasks *planningapp.TaskService,
	resources *resourcingapp.ResourceService,
	assignments *resourcingapp.AssignmentService,
	materials *stockapp.MaterialService,
	ledger *stockapp.LedgerService,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		employees:   employees,
		projectRepo: projectRepo,
		tasks:       tasks,
		resources:   resources,
		assignments: assignments,
		materials:   materials,
		ledger:      ledger,
		logger:      logger,
	}
}

type seedMaterial struct {
	input   stock.MaterialInput
	opening decimal.Decimal
}

// Seed creates the fixed demo data set
func (s *Service) Seed(ctx context.Context) (*Result, error) {
	var res Result

	if _, created, err := s.employees.EnsureEmployee(ctx, "System Admin", "admin@company.com", workforce.RoleAdmin, "", "admin123"); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	} else if created {
		res.Employees++
	}
	pm, created, err := s.employees.EnsureEmployee(ctx, "Amit Kumar", "amit@company.com", workforce.RolePM, "050-111-2222", "pm123")
	if err != nil {
		return nil, fmt.Errorf("seed pm: %w", err)
	}
	if created {
		res.Employees++
	}

	project, created, err := s.ensureProject(ctx, planning.ProjectInput{
		Code:             "P-001",
		Name:             "Demo Project",
		Client:           "Test Client",
		Budget:           decimal.NewFromInt(500000),
		ProjectManagerID: &pm.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("seed project: %w", err)
	}
	if created {
		res.Projects++
	}

	start := time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC)
	finish := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	task, created, err := s.tasks.EnsureTask(ctx, planning.TaskInput{
		ProjectID:       project.ID,
		OwnerID:         &pm.ID,
		WBS:             "1.1",
		Start:           &start,
		Finish:          &finish,
		Name:            "Mobilization",
		PercentComplete: 100,
		Status:          planning.TaskStatusDone,
	})
	if err != nil {
		return nil, fmt.Errorf("seed task: %w", err)
	}
	if created {
		res.Tasks++
	}

	forty := decimal.NewFromInt(40)
	crew, created, err := s.resources.EnsureResource(ctx, resourcing.ResourceInput{
		Name:                 "Crew A",
		Type:                 resourcing.ResourceTypeLabor,
		Rate:                 decimal.NewFromInt(20),
		CapacityHoursPerWeek: &forty,
		IsActive:             true,
	})
	if err != nil {
		return nil, fmt.Errorf("seed resource: %w", err)
	}
	if created {
		res.Resources++
	}

	created, err = s.assignments.EnsureAssignment(ctx, task.ID, crew.ID, decimal.NewFromInt(24))
	if err != nil {
		return nil, fmt.Errorf("seed assignment: %w", err)
	}
	if created {
		res.Assignments++
	}

	for _, sm := range []seedMaterial{
		{stock.MaterialInput{Name: "Cement", Unit: "bag", UnitCost: decimal.RequireFromString("4.5"), ReorderLevel: decimal.NewFromInt(50), IsActive: true}, decimal.NewFromInt(120)},
		{stock.MaterialInput{Name: "Steel Rods", Unit: "ton", UnitCost: decimal.NewFromInt(520), ReorderLevel: decimal.NewFromInt(5), IsActive: true}, decimal.NewFromInt(2)},
	} {
		if err := s.ensureStockedMaterial(ctx, sm.input, sm.opening, "opening stock", &res); err != nil {
			return nil, fmt.Errorf("seed material %s: %w", sm.input.Name, err)
		}
	}

	s.logger.Info("Demo data seeded",
		zap.Int("employees", res.Employees),
		zap.Int("projects", res.Projects),
		zap.Int("materials", res.Materials),
	)
	return &res, nil
}

// Fake adds n generated employees, resources and materials
func (s *Service) Fake(ctx context.Context, f *gofakeit.Faker, n int) (*Result, error) {
	var res Result
	units := []string{"bag", "ton", "m3", "piece", "roll", "litre"}
	roles := []workforce.Role{workforce.RoleEngineer, workforce.RoleViewer, workforce.RolePM}

	for i := 0; i < n; i++ {
		email := strings.ToLower(fmt.Sprintf("%s.%d@%s", f.Username(), i, f.DomainName()))
		role := roles[f.Number(0, len(roles)-1)]
		if _, created, err := s.employees.EnsureEmployee(ctx, f.Name(), email, role, f.Phone(), ""); err != nil {
			return nil, fmt.Errorf("fake employee: %w", err)
		} else if created {
			res.Employees++
		}

		in := resourcing.ResourceInput{
			Name:     fmt.Sprintf("%s Crew %d", f.LastName(), i),
			Type:     resourcing.ResourceTypeLabor,
			Rate:     decimal.NewFromFloat(f.Price(10, 80)).Round(2),
			IsActive: true,
		}
		if f.Bool() {
			in.Name = fmt.Sprintf("%s %s #%d", f.CarMaker(), f.CarModel(), i)
			in.Type = resourcing.ResourceTypeEquipment
		}
		capacity := decimal.NewFromInt(int64(f.Number(0, 60)))
		in.CapacityHoursPerWeek = &capacity
		if _, created, err := s.resources.EnsureResource(ctx, in); err != nil {
			return nil, fmt.Errorf("fake resource: %w", err)
		} else if created {
			res.Resources++
		}

		mat := stock.MaterialInput{
			Name:         fmt.Sprintf("%s %d", f.ProductName(), i),
			Unit:         f.RandomString(units),
			UnitCost:     decimal.NewFromFloat(f.Price(1, 500)).Round(2),
			ReorderLevel: decimal.NewFromInt(int64(f.Number(0, 50))),
			IsActive:     true,
		}
		opening := decimal.NewFromInt(int64(f.Number(0, 200)))
		if err := s.ensureStockedMaterial(ctx, mat, opening, "generated opening stock", &res); err != nil {
			return nil, fmt.Errorf("fake material: %w", err)
		}
	}

	s.logger.Info("Fake data generated", zap.Int("requested", n), zap.Int("employees", res.Employees))
	return &res, nil
}

// StockedMaterial is a catalogue entry with its opening quantity
type StockedMaterial struct {
	Input   stock.MaterialInput
	Opening decimal.Decimal
}

// ImportMaterials adds materials by name. Existing names are left as they
// are; new ones get their opening quantity booked as a receive.
func (s *Service) ImportMaterials(ctx context.Context, items []StockedMaterial) (*Result, error) {
	var res Result
	for _, it := range items {
		if err := s.ensureStockedMaterial(ctx, it.Input, it.Opening, "imported opening stock", &res); err != nil {
			return &res, fmt.Errorf("import material %s: %w", it.Input.Name, err)
		}
	}
	s.logger.Info("Materials imported",
		zap.Int("rows", len(items)),
		zap.Int("created", res.Materials),
	)
	return &res, nil
}

func (s *Service) ensureProject(ctx context.Context, in planning.ProjectInput) (*planning.Project, bool, error) {
	existing, err := s.projectRepo.FindByCode(ctx, in.Code)
	if err == nil {
		return existing, false, nil
	}
	if !shared.IsNotFound(err) {
		return nil, false, err
	}
	p, err := planning.NewProject(in)
	if err != nil {
		return nil, false, err
	}
	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// ensureStockedMaterial creates the material at zero and books the opening
// quantity as a receive, so the ledger explains the whole balance
func (s *Service) ensureStockedMaterial(ctx context.Context, in stock.MaterialInput, opening decimal.Decimal, note string, res *Result) error {
	m, created, err := s.materials.EnsureMaterial(ctx, in)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}
	res.Materials++
	if !opening.IsPositive() {
		return nil
	}
	if _, err := s.ledger.ApplyTransaction(ctx, stockapp.ApplyTransactionRequest{
		MaterialID: m.ID,
		Type:       stock.TransactionTypeReceive.String(),
		Quantity:   opening,
		Note:       note,
	}); err != nil {
		return err
	}
	res.Transactions++
	return nil
}
