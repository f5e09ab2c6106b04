package quotes

import (
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the quotes context
const (
	EventTypeQuoteCreated = "quotes.quote_created"
)

const aggregateTypeQuote = "Quote"

// QuoteCreatedEvent is emitted when a quote is registered
type QuoteCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"item_count"`
}

// NewQuoteCreatedEvent creates a QuoteCreatedEvent
func NewQuoteCreatedEvent(q *Quote) *QuoteCreatedEvent {
	return &QuoteCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteCreated, aggregateTypeQuote, q.ID),
		CustomerName:    q.CustomerName,
		Total:           q.Total(),
		ItemCount:       len(q.Items),
	}
}
