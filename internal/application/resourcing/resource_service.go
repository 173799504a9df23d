package resourcing

import (
	"context"
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/resourcing"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/google/uuid"
)

// ResourceService handles crews and equipment
type ResourceService struct {
	resourceRepo resourcing.ResourceRepository
}

// NewResourceService creates a new ResourceService
func NewResourceService(resourceRepo resourcing.ResourceRepository) *ResourceService {
	return &ResourceService{resourceRepo: resourceRepo}
}

// Create creates a resource
func (s *ResourceService) Create(ctx context.Context, req ResourceRequest) (*ResourceResponse, error) {
	r, err := resourcing.NewResource(toResourceInput(req, true))
	if err != nil {
		return nil, err
	}
	if err := s.resourceRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	resp := ToResourceResponse(r)
	return &resp, nil
}

// GetByID retrieves a resource
func (s *ResourceService) GetByID(ctx context.Context, id uuid.UUID) (*ResourceResponse, error) {
	r, err := s.resourceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResourceResponse(r)
	return &resp, nil
}

// List retrieves resources ordered by name
func (s *ResourceService) List(ctx context.Context, filter ResourceListFilter) ([]ResourceResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   strings.TrimSpace(filter.Search),
		Filters:  make(map[string]any),
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Active != nil {
		domainFilter.Filters["is_active"] = *filter.Active
	}

	resources, err := s.resourceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.resourceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToResourceResponses(resources), total, nil
}

// Update edits a resource
func (s *ResourceService) Update(ctx context.Context, id uuid.UUID, req ResourceRequest) (*ResourceResponse, error) {
	r, err := s.resourceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.Update(toResourceInput(req, r.IsActive)); err != nil {
		return nil, err
	}
	if err := s.resourceRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	resp := ToResourceResponse(r)
	return &resp, nil
}

// Delete removes a resource and its assignments
func (s *ResourceService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.resourceRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.resourceRepo.Delete(ctx, id)
}

// EnsureResource returns the resource with the given name, creating it when absent
func (s *ResourceService) EnsureResource(ctx context.Context, in resourcing.ResourceInput) (*resourcing.Resource, bool, error) {
	existing, err := s.resourceRepo.FindByName(ctx, strings.TrimSpace(in.Name))
	if err == nil {
		return existing, false, nil
	}
	if !shared.IsNotFound(err) {
		return nil, false, err
	}
	r, err := resourcing.NewResource(in)
	if err != nil {
		return nil, false, err
	}
	if err := s.resourceRepo.Save(ctx, r); err != nil {
		return nil, false, err
	}
	return r, true, nil
}

func toResourceInput(req ResourceRequest, active bool) resourcing.ResourceInput {
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return resourcing.ResourceInput{
		Name:                 req.Name,
		Type:                 resourcing.ResourceType(strings.ToLower(strings.TrimSpace(req.Type))),
		Rate:                 req.Rate,
		CapacityHoursPerWeek: req.CapacityHoursPerWeek,
		IsActive:             active,
	}
}
