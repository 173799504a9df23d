package workforce

import (
	"context"
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmployeeService handles employee management
type EmployeeService struct {
	employeeRepo workforce.EmployeeRepository
	logger       *zap.Logger
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo workforce.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{employeeRepo: employeeRepo, logger: logger}
}

var errEmailTaken = shared.NewDomainError(shared.CodeAlreadyExists, "email already in use")

// Create creates an employee
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	role, err := workforce.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	e, err := workforce.NewEmployee(req.Name, req.Email, role, req.Phone)
	if err != nil {
		return nil, err
	}
	exists, err := s.employeeRepo.ExistsByEmail(ctx, e.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errEmailTaken
	}
	if req.Password != "" {
		if err := e.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}
	if err := s.employeeRepo.Save(ctx, e); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(e)
	return &resp, nil
}

// GetByID retrieves an employee
func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	e, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(e)
	return &resp, nil
}

// List retrieves employees ordered by name
func (s *EmployeeService) List(ctx context.Context, filter EmployeeListFilter) ([]EmployeeResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   strings.TrimSpace(filter.Search),
		Filters:  make(map[string]any),
	}
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}
	employees, err := s.employeeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.employeeRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToEmployeeResponses(employees), total, nil
}

// Update edits an employee
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	e, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role, err := workforce.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	oldEmail := e.Email
	if err := e.Update(req.Name, req.Email, role, req.Phone); err != nil {
		return nil, err
	}
	if e.Email != oldEmail {
		exists, err := s.employeeRepo.ExistsByEmail(ctx, e.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errEmailTaken
		}
	}
	if req.Password != "" {
		if err := e.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}
	if err := s.employeeRepo.Save(ctx, e); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(e)
	return &resp, nil
}

// Delete removes an employee. Projects and tasks referencing them keep
// existing with the reference cleared.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.employeeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.employeeRepo.Delete(ctx, id)
}

// EnsureEmployee returns the employee with the given email, creating it with
// the password when absent
func (s *EmployeeService) EnsureEmployee(ctx context.Context, name, email string, role workforce.Role, phone, password string) (*workforce.Employee, bool, error) {
	existing, err := s.employeeRepo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !shared.IsNotFound(err) {
		return nil, false, err
	}
	e, err := workforce.NewEmployee(name, email, role, phone)
	if err != nil {
		return nil, false, err
	}
	if password != "" {
		if err := e.SetPassword(password); err != nil {
			return nil, false, err
		}
	}
	if err := s.employeeRepo.Save(ctx, e); err != nil {
		return nil, false, err
	}
	return e, true, nil
}

// EnsureAdmin creates an admin account when no admin exists yet. It is run
// once at boot so a fresh database can be logged into.
func (s *EmployeeService) EnsureAdmin(ctx context.Context, email, password string) error {
	exists, err := s.employeeRepo.ExistsByRole(ctx, workforce.RoleAdmin)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if email == "" || password == "" {
		s.logger.Warn("No admin account exists and no bootstrap credentials are configured")
		return nil
	}
	_, created, err := s.EnsureEmployee(ctx, "System Admin", email, workforce.RoleAdmin, "", password)
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("Bootstrap admin created", zap.String("email", email))
	}
	return nil
}
