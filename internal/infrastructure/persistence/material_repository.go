package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/stock"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMaterialRepository implements MaterialRepository using GORM
type GormMaterialRepository struct {
	db *gorm.DB
}

// NewGormMaterialRepository creates a new GormMaterialRepository
func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{db: db}
}

// FindByID finds a material by its ID
func (r *GormMaterialRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Material, error) {
	var material stock.Material
	if err := r.db.WithContext(ctx).First(&material, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &material, nil
}

// FindByIDForUpdate finds a material by ID holding a row-level write lock.
// Only meaningful inside a transaction.
func (r *GormMaterialRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*stock.Material, error) {
	var material stock.Material
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&material, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &material, nil
}

// FindByNameAndUnit finds a material by its name and unit combination
func (r *GormMaterialRepository) FindByNameAndUnit(ctx context.Context, name, unit string) (*stock.Material, error) {
	var material stock.Material
	if err := r.db.WithContext(ctx).
		Where("name = ? AND unit = ?", name, unit).
		First(&material).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &material, nil
}

// FindAll finds all materials matching the filter
func (r *GormMaterialRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.Material, error) {
	var materials []stock.Material
	query := r.db.WithContext(ctx).Model(&stock.Material{})

	for key, value := range filter.Filters {
		switch key {
		case "name":
			query = query.Where("name ILIKE ?", "%"+value.(string)+"%")
		case "unit":
			query = query.Where("unit = ?", value)
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, MaterialSortFields, "name")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

// FindLowStock finds materials at or under their minimum threshold
func (r *GormMaterialRepository) FindLowStock(ctx context.Context) ([]stock.Material, error) {
	var materials []stock.Material
	if err := r.db.WithContext(ctx).
		Where("min_quantity IS NOT NULL AND quantity <= min_quantity").
		Order("name ASC").
		Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

// Save creates or updates a material
func (r *GormMaterialRepository) Save(ctx context.Context, material *stock.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

// Delete deletes a material
func (r *GormMaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&stock.Material{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ stock.MaterialRepository = (*GormMaterialRepository)(nil)
