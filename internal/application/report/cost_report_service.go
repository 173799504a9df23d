package report

import (
	"context"
	"io"

	"github.com/Swarup9437/pm-tool/internal/domain/costing"
	"github.com/Swarup9437/pm-tool/internal/domain/planning"
	"github.com/Swarup9437/pm-tool/internal/domain/resourcing"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CostReportWriter renders a cost report into a downloadable file
type CostReportWriter interface {
	ContentType() string
	Write(w io.Writer, r costing.Report) error
}

// CostReportService computes planned versus actual cost per project
type CostReportService struct {
	projectRepo    planning.ProjectRepository
	taskRepo       planning.TaskRepository
	assignmentRepo resourcing.AssignmentRepository
	resourceRepo   resourcing.ResourceRepository
	txRepo         stock.TransactionRepository
}

// NewCostReportService creates a new CostReportService
func NewCostReportService(
	projectRepo planning.ProjectRepository,
	taskRepo planning.TaskRepository,
	assignmentRepo resourcing.AssignmentRepository,
	resourceRepo resourcing.ResourceRepository,
	txRepo stock.TransactionRepository,
) *CostReportService {
	return &CostReportService{
		projectRepo:    projectRepo,
		taskRepo:       taskRepo,
		assignmentRepo: assignmentRepo,
		resourceRepo:   resourceRepo,
		txRepo:         txRepo,
	}
}

// Generate builds the report for every project, ordered by code
func (s *CostReportService) Generate(ctx context.Context) (*costing.Report, error) {
	projectFilter := shared.Unpaged()
	projectFilter.OrderBy = "code"
	projectFilter.OrderDir = "asc"
	projects, err := s.projectRepo.FindAll(ctx, projectFilter)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.FindAll(ctx, shared.Unpaged())
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.FindAll(ctx, shared.Unpaged())
	if err != nil {
		return nil, err
	}
	resources, err := s.resourceRepo.FindAll(ctx, shared.Unpaged())
	if err != nil {
		return nil, err
	}

	projectOfTask := make(map[uuid.UUID]uuid.UUID, len(tasks))
	for _, t := range tasks {
		projectOfTask[t.ID] = t.ProjectID
	}
	rate := make(map[uuid.UUID]decimal.Decimal, len(resources))
	for _, r := range resources {
		rate[r.ID] = r.Rate
	}
	lines := make(map[uuid.UUID][]costing.LaborLine)
	for _, a := range assignments {
		projectID, ok := projectOfTask[a.TaskID]
		if !ok {
			continue
		}
		lines[projectID] = append(lines[projectID], costing.LaborLine{Hours: a.Hours, Rate: rate[a.ResourceID]})
	}

	rows := make([]costing.ProjectCost, len(projects))
	for i, p := range projects {
		row := costing.ComputeProjectCost(p.Budget, lines[p.ID])
		row.ProjectID = p.ID.String()
		row.Code = p.Code
		row.Name = p.Name
		rows[i] = row
	}

	consumption, err := s.materialConsumption(ctx)
	if err != nil {
		return nil, err
	}
	report := costing.NewReport(rows, consumption)
	return &report, nil
}

// materialConsumption prices consume entries at each material's current unit cost
func (s *CostReportService) materialConsumption(ctx context.Context) (decimal.Decimal, error) {
	entries, err := s.txRepo.FindByType(ctx, stock.TransactionTypeConsume)
	if err != nil {
		return decimal.Zero, err
	}
	lines := make([]costing.ConsumptionLine, len(entries))
	for i, e := range entries {
		lines[i] = costing.ConsumptionLine{Quantity: e.Quantity, UnitCost: e.UnitCost}
	}
	return costing.MaterialConsumptionCost(lines), nil
}
