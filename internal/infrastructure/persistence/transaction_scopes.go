package persistence

import (
	"context"

	appcatalog "github.com/ryannnnnnnnnns/Confeitaria/internal/application/catalog"
	appproduction "github.com/ryannnnnnnnnns/Confeitaria/internal/application/production"
	appsales "github.com/ryannnnnnnnnns/Confeitaria/internal/application/sales"
	appstock "github.com/ryannnnnnnnnns/Confeitaria/internal/application/stock"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/catalog"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/orders"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/production"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/quotes"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/sales"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/stock"
	"gorm.io/gorm"
)

// gormRepositories hands out repositories bound to one *gorm.DB, either
// the root connection or a transaction handle. It backs every
// transaction scope below.
type gormRepositories struct {
	tx *gorm.DB
}

func (r *gormRepositories) MaterialRepo() stock.MaterialRepository {
	return NewGormMaterialRepository(r.tx)
}

func (r *gormRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormRepositories) BatchRepo() production.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

func (r *gormRepositories) SaleRepo() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormRepositories) OrderRepo() orders.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormRepositories) QuoteRepo() quotes.QuoteRepository {
	return NewGormQuoteRepository(r.tx)
}

// GormStockTransactionScope implements the stock TransactionScope using
// GORM transactions.
type GormStockTransactionScope struct {
	db *gorm.DB
}

// NewGormStockTransactionScope creates a new GormStockTransactionScope
func NewGormStockTransactionScope(db *gorm.DB) *GormStockTransactionScope {
	return &GormStockTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormStockTransactionScope) Execute(ctx context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

// GormCatalogTransactionScope implements the catalog TransactionScope
// using GORM transactions.
type GormCatalogTransactionScope struct {
	db *gorm.DB
}

// NewGormCatalogTransactionScope creates a new GormCatalogTransactionScope
func NewGormCatalogTransactionScope(db *gorm.DB) *GormCatalogTransactionScope {
	return &GormCatalogTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormCatalogTransactionScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

// GormProductionTransactionScope implements the production
// TransactionScope using GORM transactions.
type GormProductionTransactionScope struct {
	db *gorm.DB
}

// NewGormProductionTransactionScope creates a new GormProductionTransactionScope
func NewGormProductionTransactionScope(db *gorm.DB) *GormProductionTransactionScope {
	return &GormProductionTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormProductionTransactionScope) Execute(ctx context.Context, fn func(repos appproduction.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

// GormSalesTransactionScope implements the sales TransactionScope using
// GORM transactions.
type GormSalesTransactionScope struct {
	db *gorm.DB
}

// NewGormSalesTransactionScope creates a new GormSalesTransactionScope
func NewGormSalesTransactionScope(db *gorm.DB) *GormSalesTransactionScope {
	return &GormSalesTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormSalesTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

var (
	_ appstock.TransactionScope      = (*GormStockTransactionScope)(nil)
	_ appcatalog.TransactionScope    = (*GormCatalogTransactionScope)(nil)
	_ appproduction.TransactionScope = (*GormProductionTransactionScope)(nil)
	_ appsales.TransactionScope      = (*GormSalesTransactionScope)(nil)

	_ appstock.TransactionalRepositories      = (*gormRepositories)(nil)
	_ appcatalog.TransactionalRepositories    = (*gormRepositories)(nil)
	_ appproduction.TransactionalRepositories = (*gormRepositories)(nil)
	_ appsales.TransactionalRepositories      = (*gormRepositories)(nil)
)
