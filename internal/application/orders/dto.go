package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/orders"
	"github.com/shopspring/decimal"
)

// OrderItemResponse represents one order line in API responses
type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	CustomerName string              `json:"customer_name"`
	DeliveryDate time.Time           `json:"delivery_date"`
	Status       orders.OrderStatus  `json:"status"`
	Notes        string              `json:"notes,omitempty"`
	Total        decimal.Decimal     `json:"total"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// OrderItemRequest is one product line in an order submission. A zero
// unit price means "use the current catalog price".
type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaveOrderRequest represents a request to create or edit an order
type SaveOrderRequest struct {
	CustomerName string             `json:"customer_name" binding:"required"`
	DeliveryDate time.Time          `json:"delivery_date" binding:"required" time_format:"2006-01-02"`
	Notes        string             `json:"notes"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Customer string `form:"customer"`
	Status   string `form:"status"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *orders.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		DeliveryDate: o.DeliveryDate,
		Status:       o.Status,
		Notes:        o.Notes,
		Total:        o.Total(),
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Version:      o.Version,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(ordersList []orders.Order) []OrderResponse {
	responses := make([]OrderResponse, len(ordersList))
	for i := range ordersList {
		responses[i] = ToOrderResponse(&ordersList[i])
	}
	return responses
}
