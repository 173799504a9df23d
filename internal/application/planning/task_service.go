package planning

import (
	"context"
	"strings"
	"time"

	"github.com/Swarup9437/pm-tool/internal/domain/planning"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/google/uuid"
)

// TaskService handles task management
type TaskService struct {
	taskRepo     planning.TaskRepository
	projectRepo  planning.ProjectRepository
	employeeRepo workforce.EmployeeRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo planning.TaskRepository, projectRepo planning.ProjectRepository, employeeRepo workforce.EmployeeRepository) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		projectRepo:  projectRepo,
		employeeRepo: employeeRepo,
	}
}

// Create creates a task
func (s *TaskService) Create(ctx context.Context, req TaskRequest) (*TaskResponse, error) {
	in, err := s.toTaskInput(ctx, req)
	if err != nil {
		return nil, err
	}
	t, err := planning.NewTask(in)
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	return s.respond(ctx, t)
}

// GetByID retrieves a task
func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, t)
}

// List retrieves tasks ordered by WBS code
func (s *TaskService) List(ctx context.Context, filter TaskListFilter) ([]TaskResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "wbs",
		OrderDir: "asc",
		Search:   strings.TrimSpace(filter.Search),
		Filters:  make(map[string]any),
	}
	if filter.ProjectID != nil {
		domainFilter.Filters["project_id"] = *filter.ProjectID
	}
	if filter.OwnerID != nil {
		domainFilter.Filters["owner_id"] = *filter.OwnerID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	tasks, err := s.taskRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.taskRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.enrich(ctx, tasks)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update edits a task. Any status may be set from any other.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, req TaskRequest) (*TaskResponse, error) {
	t, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in, err := s.toTaskInput(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := t.Update(in); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	return s.respond(ctx, t)
}

// Delete removes a task and its assignments
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.taskRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, id)
}

// EnsureTask returns the named task of a project, creating it when absent
func (s *TaskService) EnsureTask(ctx context.Context, in planning.TaskInput) (*planning.Task, bool, error) {
	existing, err := s.taskRepo.FindByProjectAndName(ctx, in.ProjectID, strings.TrimSpace(in.Name))
	if err == nil {
		return existing, false, nil
	}
	if !shared.IsNotFound(err) {
		return nil, false, err
	}
	t, err := planning.NewTask(in)
	if err != nil {
		return nil, false, err
	}
	if err := s.taskRepo.Save(ctx, t); err != nil {
		return nil, false, err
	}
	return t, true, nil
}

func (s *TaskService) toTaskInput(ctx context.Context, req TaskRequest) (planning.TaskInput, error) {
	status, err := planning.ParseTaskStatus(req.Status)
	if err != nil {
		return planning.TaskInput{}, err
	}
	start, err := parseOptionalDate("start", req.Start)
	if err != nil {
		return planning.TaskInput{}, err
	}
	finish, err := parseOptionalDate("finish", req.Finish)
	if err != nil {
		return planning.TaskInput{}, err
	}
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		if shared.IsNotFound(err) {
			return planning.TaskInput{}, shared.NewValidationError("project does not exist")
		}
		return planning.TaskInput{}, err
	}
	owner := req.OwnerID
	if owner != nil && *owner == uuid.Nil {
		owner = nil
	}
	if owner != nil {
		if _, err := s.employeeRepo.FindByID(ctx, *owner); err != nil {
			if shared.IsNotFound(err) {
				return planning.TaskInput{}, shared.NewValidationError("owner does not exist")
			}
			return planning.TaskInput{}, err
		}
	}
	return planning.TaskInput{
		ProjectID:       req.ProjectID,
		OwnerID:         owner,
		WBS:             req.WBS,
		Name:            req.Name,
		Start:           start,
		Finish:          finish,
		PercentComplete: req.PercentComplete,
		Status:          status,
	}, nil
}

func (s *TaskService) respond(ctx context.Context, t *planning.Task) (*TaskResponse, error) {
	out, err := s.enrich(ctx, []planning.Task{*t})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// enrich fills project codes and owner names with one lookup per kind
func (s *TaskService) enrich(ctx context.Context, tasks []planning.Task) ([]TaskResponse, error) {
	projectIDs := make([]uuid.UUID, 0, len(tasks))
	ownerIDs := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		projectIDs = append(projectIDs, t.ProjectID)
		if t.OwnerID != nil {
			ownerIDs = append(ownerIDs, *t.OwnerID)
		}
	}

	codes := make(map[uuid.UUID]string)
	if len(projectIDs) > 0 {
		projects, err := s.projectRepo.FindByIDs(ctx, projectIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			codes[p.ID] = p.Code
		}
	}
	names, err := employeeNames(ctx, s.employeeRepo, ownerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = ToTaskResponse(&tasks[i])
		out[i].ProjectCode = codes[tasks[i].ProjectID]
		if id := tasks[i].OwnerID; id != nil {
			out[i].OwnerName = names[*id]
		}
	}
	return out, nil
}

func parseOptionalDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, shared.NewValidationError(field + " must be YYYY-MM-DD")
	}
	return &d, nil
}
