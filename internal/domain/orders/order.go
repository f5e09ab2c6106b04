package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a customer order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// Order is a customer commitment to buy products for a future delivery
// date. Orders do not move stock by themselves; production and sales do
// that when the order is fulfilled.
type Order struct {
	shared.BaseAggregateRoot
	CustomerName string      `gorm:"size:120;not null"`
	DeliveryDate time.Time   `gorm:"type:date;not null;index"`
	Status       OrderStatus `gorm:"size:20;not null;default:'pending'"`
	Notes        string      `gorm:"size:500"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is one product line on an order.
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrder creates a pending order.
func NewOrder(customerName string, deliveryDate time.Time, notes string, items []OrderItem) (*Order, error) {
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "An order needs at least one item")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		DeliveryDate:      deliveryDate.Truncate(24 * time.Hour),
		Status:            OrderStatusPending,
		Notes:             notes,
	}
	o.attachItems(items)

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return o, nil
}

// NewOrderItem creates an order line.
func NewOrderItem(productID uuid.UUID, quantity int, unitPrice decimal.Decimal) (OrderItem, error) {
	if quantity <= 0 {
		return OrderItem{}, shared.NewDomainError("INVALID_AMOUNT", "Order item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return OrderItem{}, shared.NewDomainError("INVALID_AMOUNT", "Order item price cannot be negative")
	}
	return OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
	}, nil
}

// Confirm moves a pending order to confirmed.
func (o *Order) Confirm() error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be confirmed")
	}
	o.transition(OrderStatusConfirmed)
	return nil
}

// Deliver moves a confirmed order to delivered.
func (o *Order) Deliver() error {
	if o.Status != OrderStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Only confirmed orders can be delivered")
	}
	o.transition(OrderStatusDelivered)
	return nil
}

// Cancel cancels an order that has not been delivered yet.
func (o *Order) Cancel() error {
	if o.Status == OrderStatusDelivered {
		return shared.NewDomainError("INVALID_STATE", "Delivered orders cannot be canceled")
	}
	if o.Status == OrderStatusCanceled {
		return shared.NewDomainError("INVALID_STATE", "Order is already canceled")
	}
	o.transition(OrderStatusCanceled)
	return nil
}

func (o *Order) transition(status OrderStatus) {
	old := o.Status
	o.Status = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, old))
}

// Update rewrites the order header and replaces the item set. Only
// pending orders can be edited.
func (o *Order) Update(customerName string, deliveryDate time.Time, notes string, items []OrderItem) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be edited")
	}
	if customerName == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "An order needs at least one item")
	}

	o.CustomerName = customerName
	o.DeliveryDate = deliveryDate.Truncate(24 * time.Hour)
	o.Notes = notes
	o.attachItems(items)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

func (o *Order) attachItems(items []OrderItem) {
	for i := range items {
		items[i].OrderID = o.ID
	}
	o.Items = items
}

// Total returns the order value.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
