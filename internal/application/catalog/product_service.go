package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/catalog"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared/valueobject"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/stock"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PricingPolicy configures how sale prices are derived from costs.
type PricingPolicy struct {
	// MarkupFactor multiplies the unit production cost.
	MarkupFactor decimal.Decimal
	// PriceEpsilon is the minimum price difference that triggers an
	// update during a recalculation run.
	PriceEpsilon decimal.Decimal
}

// DefaultPricingPolicy is the fallback when no policy is configured.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		MarkupFactor: decimal.NewFromInt(3),
		PriceEpsilon: decimal.NewFromFloat(0.01),
	}
}

// ProductService handles product and recipe use cases.
type ProductService struct {
	productRepo    catalog.ProductRepository
	materialRepo   stock.MaterialRepository
	txScope        TransactionScope
	pricing        PricingPolicy
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	materialRepo stock.MaterialRepository,
	txScope TransactionScope,
	pricing PricingPolicy,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:  productRepo,
		materialRepo: materialRepo,
		txScope:      txScope,
		pricing:      pricing,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ProductService) publishDomainEvents(ctx context.Context, p *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	events := p.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	p.ClearDomainEvents()
}

// Create registers a new product without a recipe.
func (s *ProductService) Create(ctx context.Context, req SaveProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Kind, req.Yield, req.Price)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Update edits the descriptive fields and the direct price.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req SaveProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDWithRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.UpdateDetails(req.Name, req.Kind, req.Yield); err != nil {
		return nil, err
	}
	product.SetPrice(req.Price)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// SetRecipe replaces the product's recipe with the submitted lines.
// Line quantities are normalized to base units. Lines pointing at
// materials that no longer exist are dropped with a warning instead of
// failing the whole submission, so a recipe can be saved while the
// stock register is being cleaned up.
func (s *ProductService) SetRecipe(ctx context.Context, productID uuid.UUID, req SetRecipeRequest) (*ProductResponse, error) {
	var response ProductResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDWithRecipe(ctx, productID)
		if err != nil {
			return err
		}

		lines := make([]catalog.RecipeLine, 0, len(req.Lines))
		for _, lineReq := range req.Lines {
			material, err := repos.MaterialRepo().FindByID(ctx, lineReq.MaterialID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					s.logger.Warn("dropping recipe line for unknown material",
						zap.String("product_id", productID.String()),
						zap.String("material_id", lineReq.MaterialID.String()))
					continue
				}
				return err
			}

			quantity, unit := valueobject.NormalizeUnit(lineReq.Quantity, lineReq.Unit)
			if unit != material.Unit {
				return shared.NewDomainError("INVALID_UNIT", "Recipe line unit does not match the material unit")
			}

			line, err := catalog.NewRecipeLine(material.ID, quantity)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}

		product.ReplaceRecipe(lines)
		if err := repos.ProductRepo().ReplaceRecipeLines(ctx, product); err != nil {
			return err
		}

		s.publishDomainEvents(ctx, product)
		response = ToProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByID retrieves a product with its recipe
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDWithRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	if filter.Name != "" {
		domainFilter.Filters["name"] = filter.Name
	}
	if filter.Kind != "" {
		domainFilter.Filters["kind"] = filter.Kind
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Cost prices the product's recipe against current material costs.
func (s *ProductService) Cost(ctx context.Context, id uuid.UUID) (*ProductCostResponse, error) {
	product, err := s.productRepo.FindByIDWithRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	recipeCost, unitCost, err := s.costOf(ctx, product)
	if err != nil {
		return nil, err
	}

	return &ProductCostResponse{
		ProductID:   product.ID,
		RecipeCost:  recipeCost,
		UnitCost:    unitCost,
		Yield:       product.Yield,
		Price:       product.Price,
		TargetPrice: unitCost.Mul(s.pricing.MarkupFactor).Round(2),
	}, nil
}

func (s *ProductService) costOf(ctx context.Context, product *catalog.Product) (recipeCost, unitCost decimal.Decimal, err error) {
	lookup := func(materialID uuid.UUID) (decimal.Decimal, error) {
		material, err := s.materialRepo.FindByID(ctx, materialID)
		if err != nil {
			return decimal.Zero, err
		}
		return material.UnitCost, nil
	}

	recipeCost, err = product.Cost(lookup)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	unitCost, err = product.UnitCost(lookup)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return recipeCost, unitCost, nil
}

// RecalculatePrices reprices every product from current material
// costs. A product without recipe lines costs zero and is reset to a
// zero price. Products whose recipe cannot be costed (a material was
// deleted) are skipped and logged, not failed: the run should fix as
// many prices as it can.
func (s *ProductService) RecalculatePrices(ctx context.Context) (*RecalculatePricesResponse, error) {
	products, err := s.productRepo.FindAllWithRecipe(ctx)
	if err != nil {
		return nil, err
	}

	result := &RecalculatePricesResponse{}
	for i := range products {
		product := &products[i]
		result.Checked++

		_, unitCost, err := s.costOf(ctx, product)
		if err != nil {
			s.logger.Warn("skipping product during price recalculation",
				zap.String("product_id", product.ID.String()),
				zap.Error(err))
			result.Skipped++
			continue
		}

		if product.RepriceFromCost(unitCost, s.pricing.MarkupFactor, s.pricing.PriceEpsilon) {
			if err := s.productRepo.Save(ctx, product); err != nil {
				return nil, err
			}
			s.publishDomainEvents(ctx, product)
			result.Updated++
		}
	}
	return result, nil
}

// Delete removes a product and everything hanging off it: sale
// allocations against its batches, the batches themselves, order and
// quote lines, then the recipe. Runs in one transaction.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		batches, err := repos.BatchRepo().FindByProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		for _, batch := range batches {
			if err := repos.SaleRepo().DeleteItemsByBatch(ctx, batch.ID); err != nil {
				return err
			}
		}
		if err := repos.BatchRepo().DeleteByProduct(ctx, product.ID); err != nil {
			return err
		}
		if err := repos.OrderRepo().DeleteItemsByProduct(ctx, product.ID); err != nil {
			return err
		}
		if err := repos.QuoteRepo().DeleteItemsByProduct(ctx, product.ID); err != nil {
			return err
		}

		return repos.ProductRepo().Delete(ctx, product.ID)
	})
}
