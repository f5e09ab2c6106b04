package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
)

// OrderRepository provides persistence for the Order aggregate.
//
// Filter support for FindAll:
//   - Filters["customer"]: case-insensitive substring match on customer name
//   - Filters["status"]: exact status match
//   - OrderBy: "delivery_date", with OrderDir "asc"/"desc"
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByIDWithItems eagerly loads the order lines.
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	FindByDeliveryDate(ctx context.Context, date time.Time) ([]Order, error)
	FindByStatus(ctx context.Context, status OrderStatus) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	// ReplaceItems deletes the stored lines and inserts the order's
	// current set.
	ReplaceItems(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteItemsByProduct drops order lines referencing a product that
	// is being removed from the catalog.
	DeleteItemsByProduct(ctx context.Context, productID uuid.UUID) error
}
