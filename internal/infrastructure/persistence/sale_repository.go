package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/sales"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID without loading allocations
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByIDWithItems finds a sale by ID with its allocation items loaded
func (r *GormSaleRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll finds all sales matching the filter, allocations included
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	var found []sales.Sale
	query := r.db.WithContext(ctx).Model(&sales.Sale{}).Preload("Items")

	for key, value := range filter.Filters {
		switch key {
		case "customer":
			query = query.Where("customer_name ILIKE ?", "%"+value.(string)+"%")
		case "donation":
			query = query.Where("donation = ?", value)
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// FindByDate finds the sales recorded on a calendar day
func (r *GormSaleRepository) FindByDate(ctx context.Context, date time.Time) ([]sales.Sale, error) {
	day := date.Truncate(24 * time.Hour)
	return r.FindByPeriod(ctx, day, day.Add(24*time.Hour))
}

// FindByPeriod finds the sales with a date in [from, to)
func (r *GormSaleRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]sales.Sale, error) {
	var found []sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// Save creates a sale together with its allocation items
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

// ReplaceItems deletes the stored allocation set and inserts the sale's
// current one
func (r *GormSaleRepository) ReplaceItems(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&sales.SaleItem{}, "sale_id = ?", sale.ID).Error; err != nil {
			return err
		}
		if len(sale.Items) > 0 {
			if err := tx.Create(&sale.Items).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Items").Save(sale).Error
	})
}

// Delete deletes a sale. Allocation items go with it via the FK cascade.
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&sales.Sale{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumQuantityByBatch returns the units of a batch already allocated
// across all sales
func (r *GormSaleRepository) SumQuantityByBatch(ctx context.Context, batchID uuid.UUID) (int, error) {
	var result struct {
		Total int
	}
	if err := r.db.WithContext(ctx).
		Model(&sales.SaleItem{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("batch_id = ?", batchID).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// SumQuantityByBatchExcludingSale sums allocations of a batch made by
// every sale except the one being edited
func (r *GormSaleRepository) SumQuantityByBatchExcludingSale(ctx context.Context, batchID, saleID uuid.UUID) (int, error) {
	var result struct {
		Total int
	}
	if err := r.db.WithContext(ctx).
		Model(&sales.SaleItem{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("batch_id = ? AND sale_id <> ?", batchID, saleID).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// DeleteItemsByBatch drops allocations pointing at a batch being removed
func (r *GormSaleRepository) DeleteItemsByBatch(ctx context.Context, batchID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&sales.SaleItem{}, "batch_id = ?", batchID).Error
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)
