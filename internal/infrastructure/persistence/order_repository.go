package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/orders"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID without loading lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*orders.Order, error) {
	var order orders.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDWithItems finds an order by ID with its lines loaded
func (r *GormOrderRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*orders.Order, error) {
	var order orders.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter, lines included
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]orders.Order, error) {
	var found []orders.Order
	query := r.db.WithContext(ctx).Model(&orders.Order{}).Preload("Items")

	for key, value := range filter.Filters {
		switch key {
		case "customer":
			query = query.Where("customer_name ILIKE ?", "%"+value.(string)+"%")
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "delivery_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// FindByDeliveryDate finds the orders due on a calendar day
func (r *GormOrderRepository) FindByDeliveryDate(ctx context.Context, date time.Time) ([]orders.Order, error) {
	day := date.Truncate(24 * time.Hour)
	var found []orders.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("delivery_date >= ? AND delivery_date < ?", day, day.Add(24*time.Hour)).
		Order("delivery_date ASC").
		Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// FindByStatus finds all orders in a given status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status orders.OrderStatus) ([]orders.Order, error) {
	var found []orders.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ?", status).
		Order("delivery_date ASC").
		Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// Save creates an order together with its lines
func (r *GormOrderRepository) Save(ctx context.Context, order *orders.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// ReplaceItems deletes the stored lines and inserts the order's current set
func (r *GormOrderRepository) ReplaceItems(ctx context.Context, order *orders.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&orders.OrderItem{}, "order_id = ?", order.ID).Error; err != nil {
			return err
		}
		if len(order.Items) > 0 {
			if err := tx.Create(&order.Items).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Items").Save(order).Error
	})
}

// Delete deletes an order. Lines go with it via the FK cascade.
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&orders.Order{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteItemsByProduct drops order lines referencing a product being removed
func (r *GormOrderRepository) DeleteItemsByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&orders.OrderItem{}, "product_id = ?", productID).Error
}

var _ orders.OrderRepository = (*GormOrderRepository)(nil)
