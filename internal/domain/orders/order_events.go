package orders

import (
	"time"

	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
)

// Event types for the orders context
const (
	EventTypeOrderPlaced        = "orders.order_placed"
	EventTypeOrderStatusChanged = "orders.order_status_changed"
)

const aggregateTypeOrder = "Order"

// OrderPlacedEvent is emitted when an order is registered
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	CustomerName string    `json:"customer_name"`
	DeliveryDate time.Time `json:"delivery_date"`
	ItemCount    int       `json:"item_count"`
}

// NewOrderPlacedEvent creates an OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, aggregateTypeOrder, o.ID),
		CustomerName:    o.CustomerName,
		DeliveryDate:    o.DeliveryDate,
		ItemCount:       len(o.Items),
	}
}

// OrderStatusChangedEvent is emitted on every lifecycle transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	CustomerName string      `json:"customer_name"`
	OldStatus    OrderStatus `json:"old_status"`
	NewStatus    OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates an OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, oldStatus OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, aggregateTypeOrder, o.ID),
		CustomerName:    o.CustomerName,
		OldStatus:       oldStatus,
		NewStatus:       o.Status,
	}
}
