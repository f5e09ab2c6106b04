package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
)

// SaleRepository provides persistence for the Sale aggregate.
//
// Filter support for FindAll:
//   - Filters["customer"]: case-insensitive substring match on customer name
//   - Filters["donation"]: bool match
//   - OrderBy: "date", with OrderDir "asc"/"desc"
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	// FindByIDWithItems eagerly loads the allocation items.
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)
	FindByDate(ctx context.Context, date time.Time) ([]Sale, error)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]Sale, error)
	Save(ctx context.Context, sale *Sale) error
	// ReplaceItems deletes the stored allocation set and inserts the
	// sale's current one.
	ReplaceItems(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SumQuantityByBatch returns the units of a batch already allocated
	// across all sales.
	SumQuantityByBatch(ctx context.Context, batchID uuid.UUID) (int, error)
	// SumQuantityByBatchExcludingSale is the availability sum used while
	// editing: the sale being edited releases its own allocations.
	SumQuantityByBatchExcludingSale(ctx context.Context, batchID, saleID uuid.UUID) (int, error)
	// DeleteItemsByBatch drops allocations pointing at a batch that is
	// being removed.
	DeleteItemsByBatch(ctx context.Context, batchID uuid.UUID) error
}
