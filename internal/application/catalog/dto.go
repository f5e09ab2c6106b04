package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// RecipeLineResponse represents a recipe line in API responses
type RecipeLineResponse struct {
	MaterialID uuid.UUID       `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID        uuid.UUID            `json:"id"`
	Name      string               `json:"name"`
	Kind      string               `json:"kind"`
	Yield     int                  `json:"yield"`
	Price     decimal.Decimal      `json:"price"`
	Recipe    []RecipeLineResponse `json:"recipe,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	Version   int                  `json:"version"`
}

// ProductCostResponse carries the computed production cost
type ProductCostResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	RecipeCost  decimal.Decimal `json:"recipe_cost"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Yield       int             `json:"yield"`
	Price       decimal.Decimal `json:"price"`
	TargetPrice decimal.Decimal `json:"target_price"`
}

// SaveProductRequest represents a request to create or edit a product
type SaveProductRequest struct {
	Name  string          `json:"name" binding:"required"`
	Kind  string          `json:"kind"`
	Yield int             `json:"yield" binding:"required,min=1"`
	Price decimal.Decimal `json:"price"`
}

// RecipeLineRequest is one material line in a recipe submission.
// Quantity is given in the request unit and normalized to the
// material's base unit.
type RecipeLineRequest struct {
	MaterialID uuid.UUID       `json:"material_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Unit       string          `json:"unit" binding:"required"`
}

// SetRecipeRequest replaces a product's whole recipe
type SetRecipeRequest struct {
	Lines []RecipeLineRequest `json:"lines"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Name     string `form:"name"`
	Kind     string `form:"kind"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// RecalculatePricesResponse summarizes a bulk reprice run
type RecalculatePricesResponse struct {
	Checked int `json:"checked"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	recipe := make([]RecipeLineResponse, len(p.Recipe))
	for i, line := range p.Recipe {
		recipe[i] = RecipeLineResponse{MaterialID: line.MaterialID, Quantity: line.Quantity}
	}
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Kind:      p.Kind,
		Yield:     p.Yield,
		Price:     p.Price,
		Recipe:    recipe,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Version:   p.Version,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
