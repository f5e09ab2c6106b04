package catalog

import (
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the catalog context
const (
	EventTypeProductRegistered     = "catalog.product_registered"
	EventTypeProductRecipeReplaced = "catalog.product_recipe_replaced"
	EventTypeProductPriceChanged   = "catalog.product_price_changed"
)

const aggregateTypeProduct = "Product"

// ProductRegisteredEvent is emitted when a product is created
type ProductRegisteredEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// NewProductRegisteredEvent creates a ProductRegisteredEvent
func NewProductRegisteredEvent(p *Product) *ProductRegisteredEvent {
	return &ProductRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductRegistered, aggregateTypeProduct, p.ID),
		Name:            p.Name,
		Kind:            p.Kind,
	}
}

// ProductRecipeReplacedEvent is emitted when the recipe is swapped
type ProductRecipeReplacedEvent struct {
	shared.BaseDomainEvent
	Name      string `json:"name"`
	LineCount int    `json:"line_count"`
}

// NewProductRecipeReplacedEvent creates a ProductRecipeReplacedEvent
func NewProductRecipeReplacedEvent(p *Product) *ProductRecipeReplacedEvent {
	return &ProductRecipeReplacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductRecipeReplaced, aggregateTypeProduct, p.ID),
		Name:            p.Name,
		LineCount:       len(p.Recipe),
	}
}

// ProductPriceChangedEvent is emitted when the sale price moves
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	Name     string          `json:"name"`
	OldPrice decimal.Decimal `json:"old_price"`
	NewPrice decimal.Decimal `json:"new_price"`
}

// NewProductPriceChangedEvent creates a ProductPriceChangedEvent
func NewProductPriceChangedEvent(p *Product, oldPrice, newPrice decimal.Decimal) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceChanged, aggregateTypeProduct, p.ID),
		Name:            p.Name,
		OldPrice:        oldPrice,
		NewPrice:        newPrice,
	}
}
