package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared/valueobject"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// MaterialService handles the raw material use cases: registration,
// restocking, edits and the low stock report. All quantities are
// normalized to base units (kg to g, l to ml) at this boundary.
type MaterialService struct {
	materialRepo   stock.MaterialRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(materialRepo stock.MaterialRepository, txScope TransactionScope) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		txScope:      txScope,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *MaterialService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *MaterialService) publishDomainEvents(ctx context.Context, m *stock.Material) {
	if s.eventPublisher == nil {
		return
	}
	events := m.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	m.ClearDomainEvents()
}

// Register creates a material. The purchase quantity and threshold are
// normalized to base units and the unit cost is derived from the total
// purchase value. Registering the same name and unit twice fails.
func (s *MaterialService) Register(ctx context.Context, req RegisterMaterialRequest) (*MaterialResponse, error) {
	if req.Quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Quantity cannot be negative")
	}
	if req.TotalValue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total value cannot be negative")
	}

	quantity, unit := valueobject.NormalizeUnit(req.Quantity, req.Unit)
	minQuantity := valueobject.NormalizeThreshold(req.MinQuantity, req.Unit)

	existing, err := s.materialRepo.FindByNameAndUnit(ctx, req.Name, unit)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_MATERIAL", "A material with this name and unit already exists")
	}

	unitCost := decimal.Zero
	if quantity.IsPositive() {
		unitCost = req.TotalValue.Div(quantity).Round(6)
	}

	material, err := stock.NewMaterial(req.Name, unit, quantity, unitCost, minQuantity)
	if err != nil {
		return nil, err
	}

	if err := s.materialRepo.Save(ctx, material); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, material)

	response := ToMaterialResponse(material)
	return &response, nil
}

// Update edits name, unit and threshold. Quantity and unit cost only
// move through Restock, so a unit change does not rescale the stock on
// hand; the threshold is normalized against the requested unit.
func (s *MaterialService) Update(ctx context.Context, id uuid.UUID, req UpdateMaterialRequest) (*MaterialResponse, error) {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_, unit := valueobject.NormalizeUnit(decimal.Zero, req.Unit)
	minQuantity := valueobject.NormalizeThreshold(req.MinQuantity, req.Unit)

	if req.Name != material.Name || unit != material.Unit {
		existing, err := s.materialRepo.FindByNameAndUnit(ctx, req.Name, unit)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != material.ID {
			return nil, shared.NewDomainError("DUPLICATE_MATERIAL", "A material with this name and unit already exists")
		}
	}

	if err := material.UpdateDetails(req.Name, unit, minQuantity); err != nil {
		return nil, err
	}
	if err := s.materialRepo.Save(ctx, material); err != nil {
		return nil, err
	}

	response := ToMaterialResponse(material)
	return &response, nil
}

// Restock adds a purchase to the material inside a transaction, locking
// the row so concurrent restocks and production debits serialize. The
// purchased quantity must normalize to the material's stored unit.
func (s *MaterialService) Restock(ctx context.Context, id uuid.UUID, req RestockMaterialRequest) (*MaterialResponse, error) {
	if req.TotalValue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total value cannot be negative")
	}

	var response MaterialResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		material, err := repos.MaterialRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		quantity, unit := valueobject.NormalizeUnit(req.Quantity, req.Unit)
		if unit != material.Unit {
			return shared.NewDomainError("INVALID_UNIT", "Restock unit does not match the material unit")
		}

		if err := material.Restock(quantity, req.TotalValue); err != nil {
			return err
		}
		if err := repos.MaterialRepo().Save(ctx, material); err != nil {
			return err
		}

		s.publishDomainEvents(ctx, material)
		response = ToMaterialResponse(material)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete removes a material. Materials referenced by any recipe cannot
// be deleted; the recipe has to drop the line first.
func (s *MaterialService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.MaterialRepo().FindByID(ctx, id); err != nil {
			return err
		}

		inUse, err := repos.ProductRepo().ExistsByMaterial(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return shared.NewDomainError("MATERIAL_IN_USE", "Material is referenced by a recipe and cannot be deleted")
		}

		return repos.MaterialRepo().Delete(ctx, id)
	})
}

// GetByID retrieves a material by ID
func (s *MaterialService) GetByID(ctx context.Context, id uuid.UUID) (*MaterialResponse, error) {
	material, err := s.materialRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMaterialResponse(material)
	return &response, nil
}

// List returns materials matching the filter
func (s *MaterialService) List(ctx context.Context, filter MaterialListFilter) ([]MaterialResponse, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	if filter.Name != "" {
		domainFilter.Filters["name"] = filter.Name
	}
	if filter.Unit != "" {
		domainFilter.Filters["unit"] = filter.Unit
	}

	materials, err := s.materialRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToMaterialResponses(materials), nil
}

// ListLowStock returns materials at or below their minimum threshold
func (s *MaterialService) ListLowStock(ctx context.Context) ([]MaterialResponse, error) {
	materials, err := s.materialRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToMaterialResponses(materials), nil
}
