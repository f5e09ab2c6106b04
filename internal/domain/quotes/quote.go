package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Quote is a priced proposal for a customer. It never touches stock; a
// quote that is accepted becomes an order.
type Quote struct {
	shared.BaseAggregateRoot
	CustomerName    string          `gorm:"size:120;not null"`
	Date            time.Time       `gorm:"type:date;not null;index"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Items           []QuoteItem     `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

// QuoteItem is one product line on a quote.
type QuoteItem struct {
	shared.BaseEntity
	QuoteID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Quote) TableName() string {
	return "quotes"
}

// TableName returns the table name for GORM
func (QuoteItem) TableName() string {
	return "quote_items"
}

// NewQuote creates a quote. Discount is a percentage between 0 and 100.
func NewQuote(customerName string, date time.Time, discountPercent decimal.Decimal, items []QuoteItem) (*Quote, error) {
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "A quote needs at least one item")
	}
	if err := validateDiscount(discountPercent); err != nil {
		return nil, err
	}

	q := &Quote{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		Date:              date.Truncate(24 * time.Hour),
		DiscountPercent:   discountPercent,
	}
	q.attachItems(items)

	q.AddDomainEvent(NewQuoteCreatedEvent(q))

	return q, nil
}

// NewQuoteItem creates a quote line.
func NewQuoteItem(productID uuid.UUID, quantity int, unitPrice decimal.Decimal) (QuoteItem, error) {
	if quantity <= 0 {
		return QuoteItem{}, shared.NewDomainError("INVALID_AMOUNT", "Quote item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return QuoteItem{}, shared.NewDomainError("INVALID_AMOUNT", "Quote item price cannot be negative")
	}
	return QuoteItem{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
	}, nil
}

func validateDiscount(discountPercent decimal.Decimal) error {
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_AMOUNT", "Discount must be between 0 and 100 percent")
	}
	return nil
}

// Update rewrites the header and replaces the item set.
func (q *Quote) Update(customerName string, date time.Time, discountPercent decimal.Decimal, items []QuoteItem) error {
	if customerName == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "A quote needs at least one item")
	}
	if err := validateDiscount(discountPercent); err != nil {
		return err
	}

	q.CustomerName = customerName
	q.Date = date.Truncate(24 * time.Hour)
	q.DiscountPercent = discountPercent
	q.attachItems(items)
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

func (q *Quote) attachItems(items []QuoteItem) {
	for i := range items {
		items[i].QuoteID = q.ID
	}
	q.Items = items
}

// Subtotal returns the item total before discount.
func (q *Quote) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range q.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Total applies the percentage discount to the subtotal.
func (q *Quote) Total() decimal.Decimal {
	discount := q.Subtotal().Mul(q.DiscountPercent).Div(decimal.NewFromInt(100))
	return q.Subtotal().Sub(discount).Round(2)
}
