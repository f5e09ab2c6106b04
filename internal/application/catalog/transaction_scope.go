package catalog

import (
	"context"

	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/catalog"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/orders"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/production"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/quotes"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/sales"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/stock"
)

// TransactionScope provides transactional access to the repositories
// the catalog use cases touch. Deleting a product cascades across
// sales, production, orders and quotes, so all of those repositories
// have to share one transaction.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories the
// catalog context coordinates within a transaction.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	MaterialRepo() stock.MaterialRepository
	BatchRepo() production.BatchRepository
	SaleRepo() sales.SaleRepository
	OrderRepo() orders.OrderRepository
	QuoteRepo() quotes.QuoteRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	productRepo  catalog.ProductRepository
	materialRepo stock.MaterialRepository
	batchRepo    production.BatchRepository
	saleRepo     sales.SaleRepository
	orderRepo    orders.OrderRepository
	quoteRepo    quotes.QuoteRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	materialRepo stock.MaterialRepository,
	batchRepo production.BatchRepository,
	saleRepo sales.SaleRepository,
	orderRepo orders.OrderRepository,
	quoteRepo quotes.QuoteRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:  productRepo,
		materialRepo: materialRepo,
		batchRepo:    batchRepo,
		saleRepo:     saleRepo,
		orderRepo:    orderRepo,
		quoteRepo:    quoteRepo,
	}
}

// Execute runs the function directly.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// MaterialRepo returns the material repository.
func (s *NoOpTransactionScope) MaterialRepo() stock.MaterialRepository { return s.materialRepo }

// BatchRepo returns the production batch repository.
func (s *NoOpTransactionScope) BatchRepo() production.BatchRepository { return s.batchRepo }

// SaleRepo returns the sale repository.
func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository { return s.saleRepo }

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() orders.OrderRepository { return s.orderRepo }

// QuoteRepo returns the quote repository.
func (s *NoOpTransactionScope) QuoteRepo() quotes.QuoteRepository { return s.quoteRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
