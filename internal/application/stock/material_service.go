package stock

import (
	"context"
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLowStockLimit is the number of low-stock items shown on the dashboard
const DefaultLowStockLimit = 8

// MaterialService handles material master data
type MaterialService struct {
	materialRepo stock.MaterialRepository
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(materialRepo stock.MaterialRepository) *MaterialService {
	return &MaterialService{materialRepo: materialRepo}
}

// Create creates a material. Its opening quantity is the ledger baseline.
func (s *MaterialService) Create(ctx context.Context, req CreateMaterialRequest) (*MaterialResponse, error) {
	m, err := stock.NewMaterial(stock.MaterialInput{
		Name:         req.Name,
		Unit:         req.Unit,
		UnitCost:     req.UnitCost,
		ReorderLevel: req.ReorderLevel,
		IsActive:     boolOr(req.IsActive, true),
	}, req.QuantityOnHand)
	if err != nil {
		return nil, err
	}
	if err := s.materialRepo.Save(ctx, m); err != nil {
		return nil, err
	}
	resp := ToMaterialResponse(m)
	return &resp, nil
}

// GetByID retrieves a material
func (s *MaterialService) GetByID(ctx context.Context, id uuid.UUID) (*MaterialResponse, error) {
	m, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMaterialResponse(m)
	return &resp, nil
}

// List retrieves materials with filtering and pagination
func (s *MaterialService) List(ctx context.Context, filter MaterialListFilter) ([]MaterialResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   strings.TrimSpace(filter.Search),
		Filters:  make(map[string]any),
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "name"
		domainFilter.OrderDir = "asc"
	}
	if filter.LowStock != nil && *filter.LowStock {
		domainFilter.Filters["low_stock"] = true
	}
	if filter.Active != nil {
		domainFilter.Filters["is_active"] = *filter.Active
	}

	materials, err := s.materialRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.materialRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToMaterialResponses(materials), total, nil
}

// ListLowStock returns up to limit materials at or below their reorder level
func (s *MaterialService) ListLowStock(ctx context.Context, limit int) ([]MaterialResponse, error) {
	if limit <= 0 {
		limit = DefaultLowStockLimit
	}
	materials, err := s.materialRepo.FindLowStock(ctx, limit)
	if err != nil {
		return nil, err
	}
	return ToMaterialResponses(materials), nil
}

// Update edits a material's master data. Quantity on hand is left unchanged.
func (s *MaterialService) Update(ctx context.Context, id uuid.UUID, req UpdateMaterialRequest) (*MaterialResponse, error) {
	m, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.Update(stock.MaterialInput{
		Name:         req.Name,
		Unit:         req.Unit,
		UnitCost:     req.UnitCost,
		ReorderLevel: req.ReorderLevel,
		IsActive:     boolOr(req.IsActive, m.IsActive),
	}); err != nil {
		return nil, err
	}
	if err := s.materialRepo.Save(ctx, m); err != nil {
		return nil, err
	}
	resp := ToMaterialResponse(m)
	return &resp, nil
}

// Delete removes a material and its ledger entries
func (s *MaterialService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.materialRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.materialRepo.Delete(ctx, id)
}

// EnsureMaterial returns the material with the given name, creating it with
// a zero opening quantity when absent. Used by the seeder.
func (s *MaterialService) EnsureMaterial(ctx context.Context, in stock.MaterialInput) (*stock.Material, bool, error) {
	existing, err := s.materialRepo.FindByName(ctx, in.Name)
	if err == nil {
		return existing, false, nil
	}
	if !shared.IsNotFound(err) {
		return nil, false, err
	}
	m, err := stock.NewMaterial(in, decimal.Zero)
	if err != nil {
		return nil, false, err
	}
	if err := s.materialRepo.Save(ctx, m); err != nil {
		return nil, false, err
	}
	return m, true, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
