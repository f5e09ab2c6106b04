package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/quotes"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"gorm.io/gorm"
)

// GormQuoteRepository implements QuoteRepository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// FindByID finds a quote by its ID without loading lines
func (r *GormQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*quotes.Quote, error) {
	var quote quotes.Quote
	if err := r.db.WithContext(ctx).First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// FindByIDWithItems finds a quote by ID with its lines loaded
func (r *GormQuoteRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*quotes.Quote, error) {
	var quote quotes.Quote
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// FindAll finds all quotes matching the filter, lines included
func (r *GormQuoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]quotes.Quote, error) {
	var found []quotes.Quote
	query := r.db.WithContext(ctx).Model(&quotes.Quote{}).Preload("Items")

	for key, value := range filter.Filters {
		switch key {
		case "customer":
			query = query.Where("customer_name ILIKE ?", "%"+value.(string)+"%")
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, QuoteSortFields, "date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// Save creates a quote together with its lines
func (r *GormQuoteRepository) Save(ctx context.Context, quote *quotes.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

// ReplaceItems deletes the stored lines and inserts the quote's current set
func (r *GormQuoteRepository) ReplaceItems(ctx context.Context, quote *quotes.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&quotes.QuoteItem{}, "quote_id = ?", quote.ID).Error; err != nil {
			return err
		}
		if len(quote.Items) > 0 {
			if err := tx.Create(&quote.Items).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Items").Save(quote).Error
	})
}

// Delete deletes a quote. Lines go with it via the FK cascade.
func (r *GormQuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&quotes.Quote{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteItemsByProduct drops quote lines referencing a product being removed
func (r *GormQuoteRepository) DeleteItemsByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&quotes.QuoteItem{}, "product_id = ?", productID).Error
}

var _ quotes.QuoteRepository = (*GormQuoteRepository)(nil)
