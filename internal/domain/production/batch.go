package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
)

// Batch records a production run: how many units of a product were made
// on a given day, with which dough and filling. The quantity on a batch
// is what can still be allocated to sales; adjustments that change it
// also return or consume raw materials, which is coordinated by the
// application layer inside one transaction.
type Batch struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`
	Date      time.Time `gorm:"type:date;not null;index"`
	Dough     string    `gorm:"size:60"`
	Filling   string    `gorm:"size:60"`
}

// TableName returns the table name for GORM
func (Batch) TableName() string {
	return "production_batches"
}

// NewBatch creates a production batch.
func NewBatch(productID uuid.UUID, quantity int, date time.Time, dough, filling string) (*Batch, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Batch quantity must be positive")
	}

	b := &Batch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Quantity:          quantity,
		Date:              date.Truncate(24 * time.Hour),
		Dough:             dough,
		Filling:           filling,
	}

	b.AddDomainEvent(NewBatchProducedEvent(b))

	return b, nil
}

// Increment adds one unit to the batch.
func (b *Batch) Increment() {
	b.Quantity++
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBatchAdjustedEvent(b, 1))
}

// Decrement removes one unit. It returns true when the batch is now
// empty and should be deleted by the caller.
func (b *Batch) Decrement() bool {
	b.Quantity--
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBatchAdjustedEvent(b, -1))

	return b.Quantity <= 0
}

// RemoveQuantity removes the given number of units. Removing everything
// is allowed; the caller deletes the batch when true is returned.
func (b *Batch) RemoveQuantity(amount int) (bool, error) {
	if amount <= 0 {
		return false, shared.NewDomainError("INVALID_AMOUNT", "Removal quantity must be positive")
	}
	if amount > b.Quantity {
		return false, shared.NewDomainError("INVALID_AMOUNT", "Cannot remove more units than the batch holds")
	}

	b.Quantity -= amount
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBatchAdjustedEvent(b, -amount))

	return b.Quantity == 0, nil
}
