package planning

import (
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Project groups tasks under a code and a planned budget
type Project struct {
	shared.BaseEntity
	Code             string
	Name             string
	Client           string
	Budget           decimal.Decimal
	ProjectManagerID *uuid.UUID
}

// ProjectInput carries the editable fields of a project
type ProjectInput struct {
	Code             string
	Name             string
	Client           string
	Budget           decimal.Decimal
	ProjectManagerID *uuid.UUID
}

// NewProject creates a project from validated input
func NewProject(in ProjectInput) (*Project, error) {
	p := &Project{BaseEntity: shared.NewBaseEntity()}
	if err := p.Update(in); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable fields
func (p *Project) Update(in ProjectInput) error {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return shared.NewValidationError("code is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewValidationError("name is required")
	}
	if in.Budget.IsNegative() {
		return shared.NewValidationError("budget must be >= 0")
	}
	if in.ProjectManagerID != nil && *in.ProjectManagerID == uuid.Nil {
		in.ProjectManagerID = nil
	}
	p.Code = code
	p.Name = name
	p.Client = strings.TrimSpace(in.Client)
	p.Budget = in.Budget
	p.ProjectManagerID = in.ProjectManagerID
	p.Touch()
	return nil
}
