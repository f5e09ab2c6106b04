package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable item produced from a recipe. The recipe lines
// are owned by the product: replacing the recipe replaces all lines.
type Product struct {
	shared.BaseAggregateRoot
	Name   string          `gorm:"size:120;not null"`
	Kind   string          `gorm:"size:40"`                               // sweet, savory, cake...
	Yield  int             `gorm:"not null;default:1"`                    // units produced by one recipe run
	Price  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // sale price per unit
	Recipe []RecipeLine    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// RecipeLine binds a quantity of one material to a product's recipe.
// Quantity is expressed in the material's base unit and covers one full
// recipe run (Yield units of product).
type RecipeLine struct {
	shared.BaseEntity
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// TableName returns the table name for GORM
func (RecipeLine) TableName() string {
	return "recipe_lines"
}

// NewProduct creates a new product with an empty recipe.
func NewProduct(name, kind string, yield int, price decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if yield <= 0 {
		return nil, shared.NewDomainError("INVALID_YIELD", "Product yield must be positive")
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Kind:              kind,
		Yield:             yield,
		Price:             price,
	}

	p.AddDomainEvent(NewProductRegisteredEvent(p))

	return p, nil
}

// NewRecipeLine creates a recipe line for the given material.
func NewRecipeLine(materialID uuid.UUID, quantity decimal.Decimal) (RecipeLine, error) {
	if !quantity.IsPositive() {
		return RecipeLine{}, shared.NewDomainError("INVALID_AMOUNT", "Recipe line quantity must be positive")
	}
	return RecipeLine{
		BaseEntity: shared.NewBaseEntity(),
		MaterialID: materialID,
		Quantity:   quantity,
	}, nil
}

// UpdateDetails changes the descriptive fields of the product.
func (p *Product) UpdateDetails(name, kind string, yield int) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if yield <= 0 {
		return shared.NewDomainError("INVALID_YIELD", "Product yield must be positive")
	}

	p.Name = name
	p.Kind = kind
	p.Yield = yield
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ReplaceRecipe swaps the whole recipe for the given lines. Partial
// edits do not exist at this level; the caller always submits the full
// desired set.
func (p *Product) ReplaceRecipe(lines []RecipeLine) {
	for i := range lines {
		lines[i].ProductID = p.ID
	}
	p.Recipe = lines
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductRecipeReplacedEvent(p))
}

// Cost computes the production cost of one recipe run by pricing every
// line with the supplied material cost lookup. Lookup misses return an
// error: a recipe must never be costed against stale material data.
func (p *Product) Cost(unitCost func(materialID uuid.UUID) (decimal.Decimal, error)) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range p.Recipe {
		cost, err := unitCost(line.MaterialID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(line.Quantity.Mul(cost))
	}
	return total, nil
}

// UnitCost divides the recipe cost over the product yield.
func (p *Product) UnitCost(unitCost func(materialID uuid.UUID) (decimal.Decimal, error)) (decimal.Decimal, error) {
	total, err := p.Cost(unitCost)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Div(decimal.NewFromInt(int64(p.Yield))).Round(6), nil
}

// SetPrice sets the sale price directly.
func (p *Product) SetPrice(price decimal.Decimal) {
	if price.Equal(p.Price) {
		return
	}
	old := p.Price
	p.Price = price.Round(2)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, old, p.Price))
}

// RepriceFromCost recalculates the sale price as unit cost times the
// markup factor. A zero stored price is always overwritten; otherwise
// the price only moves when the difference exceeds the epsilon, so
// repeated recalculation runs do not churn rows whose cost has not
// really changed.
func (p *Product) RepriceFromCost(costPerUnit, markup, epsilon decimal.Decimal) bool {
	target := costPerUnit.Mul(markup).Round(2)
	if target.Equal(p.Price) {
		return false
	}
	if !p.Price.IsZero() && target.Sub(p.Price).Abs().LessThanOrEqual(epsilon) {
		return false
	}
	p.SetPrice(target)
	return true
}
