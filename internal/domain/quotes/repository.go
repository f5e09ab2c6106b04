package quotes

import (
	"context"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
)

// QuoteRepository provides persistence for the Quote aggregate.
//
// Filter support for FindAll:
//   - Filters["customer"]: case-insensitive substring match on customer name
//   - OrderBy: "date", with OrderDir "asc"/"desc"
type QuoteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Quote, error)
	// FindByIDWithItems eagerly loads the quote lines.
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*Quote, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Quote, error)
	Save(ctx context.Context, quote *Quote) error
	// ReplaceItems deletes the stored lines and inserts the quote's
	// current set.
	ReplaceItems(ctx context.Context, quote *Quote) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteItemsByProduct drops quote lines referencing a product that
	// is being removed from the catalog.
	DeleteItemsByProduct(ctx context.Context, productID uuid.UUID) error
}
