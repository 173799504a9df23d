package resourcing

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/planning"
	"github.com/Swarup9437/pm-tool/internal/domain/resourcing"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssignmentService links resources to tasks
type AssignmentService struct {
	assignmentRepo resourcing.AssignmentRepository
	resourceRepo   resourcing.ResourceRepository
	taskRepo       planning.TaskRepository
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo resourcing.AssignmentRepository,
	resourceRepo resourcing.ResourceRepository,
	taskRepo planning.TaskRepository,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		resourceRepo:   resourceRepo,
		taskRepo:       taskRepo,
	}
}

// Create allocates hours of an existing resource to an existing task
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*AssignmentResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, req.TaskID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewValidationError("task does not exist")
		}
		return nil, err
	}
	res, err := s.resourceRepo.FindByID(ctx, req.ResourceID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewValidationError("resource does not exist")
		}
		return nil, err
	}
	a, err := resourcing.NewAssignment(task.ID, res.ID, req.Hours)
	if err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.Save(ctx, a); err != nil {
		return nil, err
	}
	resp := ToAssignmentResponse(a)
	resp.TaskName = task.Name
	resp.ResourceName = res.Name
	return &resp, nil
}

// List retrieves assignments, newest first, with task and resource names
func (s *AssignmentService) List(ctx context.Context, filter AssignmentListFilter) ([]AssignmentResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
	if filter.TaskID != nil {
		domainFilter.Filters["task_id"] = *filter.TaskID
	}
	if filter.ResourceID != nil {
		domainFilter.Filters["resource_id"] = *filter.ResourceID
	}

	assignments, err := s.assignmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.assignmentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	taskIDs := make([]uuid.UUID, 0, len(assignments))
	resourceIDs := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		taskIDs = append(taskIDs, a.TaskID)
		resourceIDs = append(resourceIDs, a.ResourceID)
	}
	taskNames := make(map[uuid.UUID]string)
	resourceNames := make(map[uuid.UUID]string)
	if len(assignments) > 0 {
		tasks, err := s.taskRepo.FindByIDs(ctx, taskIDs)
		if err != nil {
			return nil, 0, err
		}
		for _, t := range tasks {
			taskNames[t.ID] = t.Name
		}
		resources, err := s.resourceRepo.FindByIDs(ctx, resourceIDs)
		if err != nil {
			return nil, 0, err
		}
		for _, r := range resources {
			resourceNames[r.ID] = r.Name
		}
	}

	out := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		out[i] = ToAssignmentResponse(&assignments[i])
		out[i].TaskName = taskNames[assignments[i].TaskID]
		out[i].ResourceName = resourceNames[assignments[i].ResourceID]
	}
	return out, total, nil
}

// Delete removes an assignment
func (s *AssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.assignmentRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.assignmentRepo.Delete(ctx, id)
}

// EnsureAssignment creates the task/resource link unless one already exists
func (s *AssignmentService) EnsureAssignment(ctx context.Context, taskID, resourceID uuid.UUID, hours decimal.Decimal) (bool, error) {
	f := shared.Unpaged()
	f.Filters["task_id"] = taskID
	f.Filters["resource_id"] = resourceID
	n, err := s.assignmentRepo.Count(ctx, f)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	a, err := resourcing.NewAssignment(taskID, resourceID, hours)
	if err != nil {
		return false, err
	}
	if err := s.assignmentRepo.Save(ctx, a); err != nil {
		return false, err
	}
	return true, nil
}
