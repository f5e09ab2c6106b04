package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/production"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a production batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.Batch, error) {
	var batch production.Batch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByIDForUpdate finds a batch by ID holding a row-level write lock.
// Only meaningful inside a transaction.
func (r *GormBatchRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*production.Batch, error) {
	var batch production.Batch
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindAll finds all batches matching the filter
func (r *GormBatchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.Batch, error) {
	var batches []production.Batch
	query := r.db.WithContext(ctx).Model(&production.Batch{})

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, BatchSortFields, "date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByDate finds the batches produced on a calendar day
func (r *GormBatchRepository) FindByDate(ctx context.Context, date time.Time) ([]production.Batch, error) {
	day := date.Truncate(24 * time.Hour)
	return r.FindByPeriod(ctx, day, day.Add(24*time.Hour))
}

// FindByPeriod finds the batches with a date in [from, to)
func (r *GormBatchRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]production.Batch, error) {
	var batches []production.Batch
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByProduct finds all batches for a product
func (r *GormBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]production.Batch, error) {
	var batches []production.Batch
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("date DESC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *production.Batch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// Delete deletes a batch
func (r *GormBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&production.Batch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByProduct deletes every batch of a product
func (r *GormBatchRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&production.Batch{}, "product_id = ?", productID).Error
}

var _ production.BatchRepository = (*GormBatchRepository)(nil)
