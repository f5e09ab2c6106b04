package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Sale records units leaving stock, allocated against specific
// production batches. A donation is a sale whose items are forced to a
// zero unit price; the stock movement is identical. Customer name and
// payment method are free-form tags, both optional.
type Sale struct {
	shared.BaseAggregateRoot
	CustomerName  string     `gorm:"size:120;not null"`
	PaymentMethod string     `gorm:"size:60;not null"`
	Date          time.Time  `gorm:"type:date;not null;index"`
	Donation      bool       `gorm:"not null;default:false"`
	Items         []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleItem allocates a quantity of one production batch to a sale.
type SaleItem struct {
	shared.BaseEntity
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatchID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// NewSale creates a sale with the given allocations. For donations the
// item prices are zeroed regardless of what the caller provided.
func NewSale(customerName, paymentMethod string, date time.Time, donation bool, items []SaleItem) (*Sale, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "A sale needs at least one item")
	}

	s := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		PaymentMethod:     paymentMethod,
		Date:              date.Truncate(24 * time.Hour),
		Donation:          donation,
	}
	if err := s.attachItems(items); err != nil {
		return nil, err
	}

	s.AddDomainEvent(NewSaleRecordedEvent(s))

	return s, nil
}

// NewSaleItem creates a sale item allocation.
func NewSaleItem(batchID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) (SaleItem, error) {
	if quantity <= 0 {
		return SaleItem{}, shared.NewDomainError("INVALID_AMOUNT", "Sale item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return SaleItem{}, shared.NewDomainError("INVALID_AMOUNT", "Sale item price cannot be negative")
	}
	return SaleItem{
		BaseEntity: shared.NewBaseEntity(),
		BatchID:    batchID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
	}, nil
}

// Update rewrites the sale header and replaces the whole allocation
// set. Edits never patch individual items.
func (s *Sale) Update(customerName, paymentMethod string, date time.Time, donation bool, items []SaleItem) error {
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "A sale needs at least one item")
	}

	s.CustomerName = customerName
	s.PaymentMethod = paymentMethod
	s.Date = date.Truncate(24 * time.Hour)
	s.Donation = donation
	if err := s.attachItems(items); err != nil {
		return err
	}
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleUpdatedEvent(s))

	return nil
}

func (s *Sale) attachItems(items []SaleItem) error {
	for i := range items {
		items[i].SaleID = s.ID
		if s.Donation {
			items[i].UnitPrice = decimal.Zero
		}
	}
	s.Items = items
	return nil
}

// Total returns the sale value, zero for donations.
func (s *Sale) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// QuantityForBatch returns how many units this sale allocates from the
// given batch.
func (s *Sale) QuantityForBatch(batchID uuid.UUID) int {
	total := 0
	for _, item := range s.Items {
		if item.BatchID == batchID {
			total += item.Quantity
		}
	}
	return total
}
