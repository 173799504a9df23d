package report

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/planning"
	"github.com/Swarup9437/pm-tool/internal/domain/resourcing"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// TopUtilizationRows is how many resources the dashboard highlights
	TopUtilizationRows = 5
	// LowStockRows caps the low stock panel
	LowStockRows = 8
	// UnknownStatus labels tasks stored without a status
	UnknownStatus = "unknown"
)

// UtilizationSource yields every resource's utilization, highest first
type UtilizationSource interface {
	All(ctx context.Context) ([]resourcing.Utilization, error)
}

// Counts holds the number of rows per entity
type Counts struct {
	Projects  int64 `json:"projects"`
	Employees int64 `json:"employees"`
	Tasks     int64 `json:"tasks"`
	Resources int64 `json:"resources"`
	Materials int64 `json:"materials"`
}

// StatusBucket is one bar of the task status histogram
type StatusBucket struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// LowStockItem is a material at or below its reorder level
type LowStockItem struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Unit           string          `json:"unit"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	ReorderLevel   decimal.Decimal `json:"reorder_level"`
}

// Dashboard is the data behind the home page. Rendering is left to the caller.
type Dashboard struct {
	Counts          Counts                   `json:"counts"`
	StatusHistogram []StatusBucket           `json:"status_histogram"`
	UtilizationTop  []resourcing.Utilization `json:"utilization_top"`
	UtilizationAll  []resourcing.Utilization `json:"utilization_all"`
	LowStock        []LowStockItem           `json:"low_stock"`
}

// DashboardService assembles the dashboard
type DashboardService struct {
	projectRepo  planning.ProjectRepository
	taskRepo     planning.TaskRepository
	employeeRepo workforce.EmployeeRepository
	resourceRepo resourcing.ResourceRepository
	materialRepo stock.MaterialRepository
	utilization  UtilizationSource
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	projectRepo planning.ProjectRepository,
	taskRepo planning.TaskRepository,
	employeeRepo workforce.EmployeeRepository,
	resourceRepo resourcing.ResourceRepository,
	materialRepo stock.MaterialRepository,
	utilization UtilizationSource,
) *DashboardService {
	return &DashboardService{
		projectRepo:  projectRepo,
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
		resourceRepo: resourceRepo,
		materialRepo: materialRepo,
		utilization:  utilization,
	}
}

// Build loads counts, the status histogram, utilization and low stock
func (s *DashboardService) Build(ctx context.Context) (*Dashboard, error) {
	counts, err := s.counts(ctx)
	if err != nil {
		return nil, err
	}
	statusRows, err := s.taskRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	util, err := s.utilization.All(ctx)
	if err != nil {
		return nil, err
	}
	low, err := s.materialRepo.FindLowStock(ctx, LowStockRows)
	if err != nil {
		return nil, err
	}

	lowItems := make([]LowStockItem, len(low))
	for i, m := range low {
		lowItems[i] = LowStockItem{
			ID:             m.ID,
			Name:           m.Name,
			Unit:           m.Unit,
			QuantityOnHand: m.QuantityOnHand,
			ReorderLevel:   m.ReorderLevel,
		}
	}

	return &Dashboard{
		Counts:          counts,
		StatusHistogram: Histogram(statusRows),
		UtilizationTop:  resourcing.Top(util, TopUtilizationRows),
		UtilizationAll:  util,
		LowStock:        lowItems,
	}, nil
}

func (s *DashboardService) counts(ctx context.Context) (Counts, error) {
	var c Counts
	all := shared.Unpaged()
	var err error
	if c.Projects, err = s.projectRepo.Count(ctx, all); err != nil {
		return c, err
	}
	if c.Employees, err = s.employeeRepo.Count(ctx, all); err != nil {
		return c, err
	}
	if c.Tasks, err = s.taskRepo.Count(ctx, all); err != nil {
		return c, err
	}
	if c.Resources, err = s.resourceRepo.Count(ctx, all); err != nil {
		return c, err
	}
	if c.Materials, err = s.materialRepo.Count(ctx, all); err != nil {
		return c, err
	}
	return c, nil
}

// Histogram orders status counts by the workflow order of task statuses.
// Empty statuses are folded into "unknown", which comes after the known ones
// together with any unrecognized value.
func Histogram(rows []planning.StatusCount) []StatusBucket {
	byStatus := make(map[string]int64, len(rows))
	var extra []string
	for _, r := range rows {
		status := r.Status
		if status == "" {
			status = UnknownStatus
		}
		if _, seen := byStatus[status]; !seen && !planning.TaskStatus(status).IsValid() {
			extra = append(extra, status)
		}
		byStatus[status] += r.Count
	}

	out := make([]StatusBucket, 0, len(byStatus))
	for _, st := range planning.AllTaskStatuses {
		if n, ok := byStatus[st.String()]; ok {
			out = append(out, StatusBucket{Status: st.String(), Count: n})
		}
	}
	for _, st := range extra {
		out = append(out, StatusBucket{Status: st, Count: byStatus[st]})
	}
	return out
}
