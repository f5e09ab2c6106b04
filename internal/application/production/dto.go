package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/production"
	"github.com/shopspring/decimal"
)

// BatchResponse represents a production batch in API responses
type BatchResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
	Dough     string    `json:"dough,omitempty"`
	Filling   string    `json:"filling,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// BatchAvailabilityResponse adds the units not yet allocated to sales
type BatchAvailabilityResponse struct {
	BatchResponse
	Allocated int `json:"allocated"`
	Available int `json:"available"`
}

// BatchLineRequest is one planned batch within a production run.
// Lines with a non-positive quantity are ignored.
type BatchLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date" binding:"required" time_format:"2006-01-02"`
	Dough     string    `json:"dough"`
	Filling   string    `json:"filling"`
}

// RegisterBatchRequest registers a production run of one or more
// planned batches. Stock is checked for the run as a whole before
// anything is debited.
type RegisterBatchRequest struct {
	Batches []BatchLineRequest `json:"batches" binding:"required,min=1,dive"`
}

// RemoveQuantityRequest removes part of a batch
type RemoveQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// StockViolation describes one material that cannot cover a planned run
type StockViolation struct {
	MaterialID   uuid.UUID       `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Unit         string          `json:"unit"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
}

// ValidateStockLine is one planned batch in a validation request
type ValidateStockLine struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// ValidateStockRequest asks whether stock covers a planned run
type ValidateStockRequest struct {
	Lines []ValidateStockLine `json:"lines" binding:"required,min=1,dive"`
}

// ValidateStockResponse lists every material that would go short.
// An empty list means the run is fully covered.
type ValidateStockResponse struct {
	Sufficient bool             `json:"sufficient"`
	Violations []StockViolation `json:"violations"`
}

// BatchListFilter represents filter options for the batch list
type BatchListFilter struct {
	ProductID *uuid.UUID `form:"product_id"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CalendarEventResponse is one entry in the production calendar feed
type CalendarEventResponse struct {
	BatchID     uuid.UUID `json:"batch_id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Date        time.Time `json:"date"`
}

// ToBatchResponse converts a domain batch to a response DTO
func ToBatchResponse(b *production.Batch) BatchResponse {
	return BatchResponse{
		ID:        b.ID,
		ProductID: b.ProductID,
		Quantity:  b.Quantity,
		Date:      b.Date,
		Dough:     b.Dough,
		Filling:   b.Filling,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		Version:   b.Version,
	}
}

// ToBatchResponses converts a slice of batches
func ToBatchResponses(batches []production.Batch) []BatchResponse {
	responses := make([]BatchResponse, len(batches))
	for i := range batches {
		responses[i] = ToBatchResponse(&batches[i])
	}
	return responses
}
