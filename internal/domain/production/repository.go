package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
)

// BatchRepository provides persistence for the Batch aggregate.
//
// Filter support for FindAll:
//   - Filters["product_id"]: exact product match
//   - OrderBy: "date" or "quantity", with OrderDir "asc"/"desc"
type BatchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)
	// FindByIDForUpdate loads the batch with a row-level write lock so
	// concurrent allocations against the same batch serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Batch, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Batch, error)
	FindByDate(ctx context.Context, date time.Time) ([]Batch, error)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]Batch, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Batch, error)
	Save(ctx context.Context, batch *Batch) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}
