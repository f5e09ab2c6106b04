package stock

import (
	"context"

	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/google/uuid"
)

// MaterialRepository provides persistence for the Material aggregate.
//
// Filter support for FindAll:
//   - Filters["name"]: case-insensitive substring match on name
//   - Filters["unit"]: exact unit match
//   - OrderBy: "quantity" or "unit_cost", with OrderDir "asc"/"desc"
type MaterialRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Material, error)
	// FindByIDForUpdate loads the material with a row-level write lock so
	// that read-then-debit sequences serialize inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Material, error)
	FindByNameAndUnit(ctx context.Context, name, unit string) (*Material, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Material, error)
	FindLowStock(ctx context.Context) ([]Material, error)
	Save(ctx context.Context, material *Material) error
	Delete(ctx context.Context, id uuid.UUID) error
}
