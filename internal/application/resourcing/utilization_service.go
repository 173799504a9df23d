package resourcing

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/resourcing"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UtilizationService computes the weekly load of every resource
type UtilizationService struct {
	resourceRepo   resourcing.ResourceRepository
	assignmentRepo resourcing.AssignmentRepository
}

// NewUtilizationService creates a new UtilizationService
func NewUtilizationService(resourceRepo resourcing.ResourceRepository, assignmentRepo resourcing.AssignmentRepository) *UtilizationService {
	return &UtilizationService{resourceRepo: resourceRepo, assignmentRepo: assignmentRepo}
}

// All returns the utilization of every resource, highest first
func (s *UtilizationService) All(ctx context.Context) ([]resourcing.Utilization, error) {
	filter := shared.Unpaged()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	resources, err := s.resourceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	hours, err := s.assignmentRepo.SumHoursByResource(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]resourcing.Utilization, len(resources))
	for i, r := range resources {
		assigned, ok := hours[r.ID]
		if !ok {
			assigned = decimal.Zero
		}
		rows[i] = resourcing.FromHours(r, assigned)
	}
	resourcing.SortByPercent(rows)
	return rows, nil
}
