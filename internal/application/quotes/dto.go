package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/quotes"
	"github.com/shopspring/decimal"
)

// QuoteItemResponse represents one quote line in API responses
type QuoteItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// QuoteResponse represents a quote in API responses
type QuoteResponse struct {
	ID              uuid.UUID           `json:"id"`
	CustomerName    string              `json:"customer_name"`
	Date            time.Time           `json:"date"`
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Total           decimal.Decimal     `json:"total"`
	Items           []QuoteItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Version         int                 `json:"version"`
}

// QuoteItemRequest is one product line in a quote submission. A zero
// unit price means "use the current catalog price".
type QuoteItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaveQuoteRequest represents a request to create or edit a quote
type SaveQuoteRequest struct {
	CustomerName    string             `json:"customer_name" binding:"required"`
	Date            time.Time          `json:"date" binding:"required" time_format:"2006-01-02"`
	DiscountPercent decimal.Decimal    `json:"discount_percent"`
	Items           []QuoteItemRequest `json:"items" binding:"required,min=1"`
}

// QuoteListFilter represents filter options for the quote list
type QuoteListFilter struct {
	Customer string `form:"customer"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToQuoteResponse converts a domain quote to a response DTO
func ToQuoteResponse(q *quotes.Quote) QuoteResponse {
	items := make([]QuoteItemResponse, len(q.Items))
	for i, item := range q.Items {
		items[i] = QuoteItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return QuoteResponse{
		ID:              q.ID,
		CustomerName:    q.CustomerName,
		Date:            q.Date,
		DiscountPercent: q.DiscountPercent,
		Subtotal:        q.Subtotal(),
		Total:           q.Total(),
		Items:           items,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
		Version:         q.Version,
	}
}

// ToQuoteResponses converts a slice of quotes
func ToQuoteResponses(quotesList []quotes.Quote) []QuoteResponse {
	responses := make([]QuoteResponse, len(quotesList))
	for i := range quotesList {
		responses[i] = ToQuoteResponse(&quotesList[i])
	}
	return responses
}
