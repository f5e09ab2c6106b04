package sales

import (
	"time"

	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the sales context
const (
	EventTypeSaleRecorded = "sales.sale_recorded"
	EventTypeSaleUpdated  = "sales.sale_updated"
	EventTypeSaleDeleted  = "sales.sale_deleted"
)

const aggregateTypeSale = "Sale"

// SaleRecordedEvent is emitted when a sale or donation is registered
type SaleRecordedEvent struct {
	shared.BaseDomainEvent
	CustomerName string          `json:"customer_name"`
	Date         time.Time       `json:"date"`
	Donation     bool            `json:"donation"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"item_count"`
}

// NewSaleRecordedEvent creates a SaleRecordedEvent
func NewSaleRecordedEvent(s *Sale) *SaleRecordedEvent {
	return &SaleRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleRecorded, aggregateTypeSale, s.ID),
		CustomerName:    s.CustomerName,
		Date:            s.Date,
		Donation:        s.Donation,
		Total:           s.Total(),
		ItemCount:       len(s.Items),
	}
}

// SaleUpdatedEvent is emitted when a sale is edited
type SaleUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
}

// NewSaleUpdatedEvent creates a SaleUpdatedEvent
func NewSaleUpdatedEvent(s *Sale) *SaleUpdatedEvent {
	return &SaleUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleUpdated, aggregateTypeSale, s.ID),
		CustomerName:    s.CustomerName,
		Total:           s.Total(),
	}
}

// SaleDeletedEvent is emitted when a sale is removed
type SaleDeletedEvent struct {
	shared.BaseDomainEvent
	CustomerName string `json:"customer_name"`
}

// NewSaleDeletedEvent creates a SaleDeletedEvent
func NewSaleDeletedEvent(s *Sale) *SaleDeletedEvent {
	return &SaleDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleDeleted, aggregateTypeSale, s.ID),
		CustomerName:    s.CustomerName,
	}
}
