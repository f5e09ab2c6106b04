package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
)

// Event types for the production context
const (
	EventTypeBatchProduced = "production.batch_produced"
	EventTypeBatchAdjusted = "production.batch_adjusted"
	EventTypeBatchRemoved  = "production.batch_removed"
)

const aggregateTypeBatch = "Batch"

// BatchProducedEvent is emitted when a production run is registered
type BatchProducedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
}

// NewBatchProducedEvent creates a BatchProducedEvent
func NewBatchProducedEvent(b *Batch) *BatchProducedEvent {
	return &BatchProducedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchProduced, aggregateTypeBatch, b.ID),
		ProductID:       b.ProductID,
		Quantity:        b.Quantity,
		Date:            b.Date,
	}
}

// BatchAdjustedEvent is emitted when units are added to or removed from
// a batch after registration
type BatchAdjustedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	Delta       int       `json:"delta"`
	NewQuantity int       `json:"new_quantity"`
}

// NewBatchAdjustedEvent creates a BatchAdjustedEvent
func NewBatchAdjustedEvent(b *Batch, delta int) *BatchAdjustedEvent {
	return &BatchAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchAdjusted, aggregateTypeBatch, b.ID),
		ProductID:       b.ProductID,
		Delta:           delta,
		NewQuantity:     b.Quantity,
	}
}

// BatchRemovedEvent is emitted when a batch is deleted outright
type BatchRemovedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// NewBatchRemovedEvent creates a BatchRemovedEvent
func NewBatchRemovedEvent(b *Batch) *BatchRemovedEvent {
	return &BatchRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchRemoved, aggregateTypeBatch, b.ID),
		ProductID:       b.ProductID,
		Quantity:        b.Quantity,
	}
}
