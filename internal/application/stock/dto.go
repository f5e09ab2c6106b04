package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// MaterialResponse represents a material in API responses
type MaterialResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Unit        string           `json:"unit"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitCost    decimal.Decimal  `json:"unit_cost"`
	TotalValue  decimal.Decimal  `json:"total_value"`
	MinQuantity *decimal.Decimal `json:"min_quantity,omitempty"`
	LowStock    bool             `json:"low_stock"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Version     int              `json:"version"`
}

// RegisterMaterialRequest represents a request to register a material.
// Quantity and MinQuantity are given in the purchase unit (kg, l, g, ml
// or an unconverted tag); TotalValue is the price paid for the whole
// purchased quantity.
type RegisterMaterialRequest struct {
	Name        string          `json:"name" binding:"required"`
	Unit        string          `json:"unit" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	TotalValue  decimal.Decimal `json:"total_value"`
	MinQuantity *decimal.Decimal `json:"min_quantity"`
}

// UpdateMaterialRequest represents a request to edit material details.
// Stock levels are not editable here; use restock.
type UpdateMaterialRequest struct {
	Name        string           `json:"name" binding:"required"`
	Unit        string           `json:"unit" binding:"required"`
	MinQuantity *decimal.Decimal `json:"min_quantity"`
}

// RestockMaterialRequest represents a purchase added to existing stock
type RestockMaterialRequest struct {
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Unit       string          `json:"unit" binding:"required"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// MaterialListFilter represents filter options for the material list
type MaterialListFilter struct {
	Name     string `form:"name"`
	Unit     string `form:"unit"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToMaterialResponse converts a domain material to a response DTO
func ToMaterialResponse(m *stock.Material) MaterialResponse {
	return MaterialResponse{
		ID:          m.ID,
		Name:        m.Name,
		Unit:        m.Unit,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		TotalValue:  m.TotalValue(),
		MinQuantity: m.MinQuantity,
		LowStock:    m.IsLowStock(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Version:     m.Version,
	}
}

// ToMaterialResponses converts a slice of materials
func ToMaterialResponses(materials []stock.Material) []MaterialResponse {
	responses := make([]MaterialResponse, len(materials))
	for i := range materials {
		responses[i] = ToMaterialResponse(&materials[i])
	}
	return responses
}
