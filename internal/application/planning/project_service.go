package planning

import (
	"context"
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/planning"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/google/uuid"
)

// ProjectService handles project management
type ProjectService struct {
	projectRepo  planning.ProjectRepository
	employeeRepo workforce.EmployeeRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo planning.ProjectRepository, employeeRepo workforce.EmployeeRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, employeeRepo: employeeRepo}
}

var errCodeTaken = shared.NewDomainError(shared.CodeAlreadyExists, "project code already in use")

// Create creates a project
func (s *ProjectService) Create(ctx context.Context, req ProjectRequest) (*ProjectResponse, error) {
	p, err := planning.NewProject(toProjectInput(req))
	if err != nil {
		return nil, err
	}
	if err := s.checkManager(ctx, p.ProjectManagerID); err != nil {
		return nil, err
	}
	exists, err := s.projectRepo.ExistsByCode(ctx, p.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errCodeTaken
	}
	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return s.respond(ctx, p)
}

// GetByID retrieves a project
func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, p)
}

// List retrieves projects ordered by code
func (s *ProjectService) List(ctx context.Context, filter ProjectListFilter) ([]ProjectResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "code",
		OrderDir: "asc",
		Search:   strings.TrimSpace(filter.Search),
	}
	projects, err := s.projectRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.projectRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	managerIDs := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		if p.ProjectManagerID != nil {
			managerIDs = append(managerIDs, *p.ProjectManagerID)
		}
	}
	names, err := employeeNames(ctx, s.employeeRepo, managerIDs)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ProjectResponse, len(projects))
	for i := range projects {
		out[i] = ToProjectResponse(&projects[i])
		if id := projects[i].ProjectManagerID; id != nil {
			out[i].ProjectManagerName = names[*id]
		}
	}
	return out, total, nil
}

// Update edits a project
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req ProjectRequest) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldCode := p.Code
	if err := p.Update(toProjectInput(req)); err != nil {
		return nil, err
	}
	if err := s.checkManager(ctx, p.ProjectManagerID); err != nil {
		return nil, err
	}
	if p.Code != oldCode {
		exists, err := s.projectRepo.ExistsByCode(ctx, p.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errCodeTaken
		}
	}
	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return s.respond(ctx, p)
}

// Delete removes a project together with its tasks and their assignments
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.projectRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, id)
}

func (s *ProjectService) checkManager(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := s.employeeRepo.FindByID(ctx, *id); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewValidationError("project manager does not exist")
		}
		return err
	}
	return nil
}

func (s *ProjectService) respond(ctx context.Context, p *planning.Project) (*ProjectResponse, error) {
	resp := ToProjectResponse(p)
	if p.ProjectManagerID != nil {
		names, err := employeeNames(ctx, s.employeeRepo, []uuid.UUID{*p.ProjectManagerID})
		if err != nil {
			return nil, err
		}
		resp.ProjectManagerName = names[*p.ProjectManagerID]
	}
	return &resp, nil
}

func toProjectInput(req ProjectRequest) planning.ProjectInput {
	return planning.ProjectInput{
		Code:             req.Code,
		Name:             req.Name,
		Client:           req.Client,
		Budget:           req.Budget,
		ProjectManagerID: req.ProjectManagerID,
	}
}

func employeeNames(ctx context.Context, repo workforce.EmployeeRepository, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	employees, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		names[e.ID] = e.Name
	}
	return names, nil
}
