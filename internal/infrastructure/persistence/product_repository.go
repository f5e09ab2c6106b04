package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/catalog"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID without loading the recipe
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDWithRecipe finds a product by ID with its recipe lines loaded
func (r *GormProductRepository) FindByIDWithRecipe(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.db.WithContext(ctx).Model(&catalog.Product{})

	for key, value := range filter.Filters {
		switch key {
		case "name":
			query = query.Where("name ILIKE ?", "%"+value.(string)+"%")
		case "kind":
			query = query.Where("kind = ?", value)
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "name")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAllWithRecipe finds all products with their recipe lines loaded
func (r *GormProductRepository) FindAllWithRecipe(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ExistsByMaterial reports whether any recipe line references the material
func (r *GormProductRepository) ExistsByMaterial(ctx context.Context, materialID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.RecipeLine{}).
		Where("material_id = ?", materialID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a product without touching its recipe lines
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Omit("Recipe").Save(product).Error
}

// ReplaceRecipeLines deletes the stored recipe and inserts the product's
// current line set in one pass
func (r *GormProductRepository) ReplaceRecipeLines(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&catalog.RecipeLine{}, "product_id = ?", product.ID).Error; err != nil {
			return err
		}
		if len(product.Recipe) > 0 {
			if err := tx.Create(&product.Recipe).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Recipe").Save(product).Error
	})
}

// DeleteRecipeLinesByMaterial drops recipe lines referencing a material
func (r *GormProductRepository) DeleteRecipeLinesByMaterial(ctx context.Context, materialID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&catalog.RecipeLine{}, "material_id = ?", materialID).Error
}

// Delete deletes a product. Recipe lines go with it via the FK cascade.
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
