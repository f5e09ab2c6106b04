package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
)

// ProductRepository provides persistence for the Product aggregate.
//
// Filter support for FindAll:
//   - Filters["name"]: case-insensitive substring match on name
//   - Filters["kind"]: exact kind match
//   - OrderBy: "name" or "price", with OrderDir "asc"/"desc"
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDWithRecipe eagerly loads the recipe lines.
	FindByIDWithRecipe(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindAllWithRecipe(ctx context.Context) ([]Product, error)
	// ExistsByMaterial reports whether any recipe line references the
	// material. Used to block deleting materials still in use.
	ExistsByMaterial(ctx context.Context, materialID uuid.UUID) (bool, error)
	Save(ctx context.Context, product *Product) error
	// ReplaceRecipeLines deletes the stored lines and inserts the
	// product's current set in one pass.
	ReplaceRecipeLines(ctx context.Context, product *Product) error
	DeleteRecipeLinesByMaterial(ctx context.Context, materialID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
