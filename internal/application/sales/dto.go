package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// SaleItemResponse represents one allocation in API responses
type SaleItemResponse struct {
	BatchID   uuid.UUID       `json:"batch_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	CustomerName  string             `json:"customer_name"`
	PaymentMethod string             `json:"payment_method"`
	Date          time.Time          `json:"date"`
	Donation      bool               `json:"donation"`
	Total         decimal.Decimal    `json:"total"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Version       int                `json:"version"`
}

// SaleItemRequest allocates units of one batch to a sale. Lines with
// a non-positive quantity are dropped rather than rejected.
type SaleItemRequest struct {
	BatchID   uuid.UUID       `json:"batch_id" binding:"required"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaveSaleRequest represents a request to create or edit a sale
type SaveSaleRequest struct {
	CustomerName  string            `json:"customer_name"`
	PaymentMethod string            `json:"payment_method"`
	Date          time.Time         `json:"date" binding:"required" time_format:"2006-01-02"`
	Donation      bool              `json:"donation"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1"`
}

// SaleListFilter represents filter options for the sale list
type SaleListFilter struct {
	Customer string `form:"customer"`
	Donation *bool  `form:"donation"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AvailabilityViolation describes a batch that cannot cover a requested
// allocation
type AvailabilityViolation struct {
	BatchID     uuid.UUID `json:"batch_id"`
	ProductName string    `json:"product_name"`
	Requested   int       `json:"requested"`
	Available   int       `json:"available"`
}

// CalendarEventResponse is one entry in the sales calendar feed
type CalendarEventResponse struct {
	SaleID       uuid.UUID       `json:"sale_id"`
	CustomerName string          `json:"customer_name"`
	Donation     bool            `json:"donation"`
	Total        decimal.Decimal `json:"total"`
	Date         time.Time       `json:"date"`
}

// ToSaleResponse converts a domain sale to a response DTO
func ToSaleResponse(s *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItemResponse{
			BatchID:   item.BatchID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return SaleResponse{
		ID:            s.ID,
		CustomerName:  s.CustomerName,
		PaymentMethod: s.PaymentMethod,
		Date:          s.Date,
		Donation:      s.Donation,
		Total:         s.Total(),
		Items:         items,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Version:       s.Version,
	}
}

// ToSaleResponses converts a slice of sales
func ToSaleResponses(salesList []sales.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(salesList))
	for i := range salesList {
		responses[i] = ToSaleResponse(&salesList[i])
	}
	return responses
}
