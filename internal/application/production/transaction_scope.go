package production

import (
	"context"

	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/catalog"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/production"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/sales"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/stock"
)

// TransactionScope provides transactional access to the repositories
// the production use cases touch. Registering or adjusting a batch
// moves raw material stock in the same transaction, and removing a
// batch also removes the sale allocations that point at it.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories the
// production context coordinates within a transaction.
type TransactionalRepositories interface {
	BatchRepo() production.BatchRepository
	ProductRepo() catalog.ProductRepository
	MaterialRepo() stock.MaterialRepository
	SaleRepo() sales.SaleRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	batchRepo    production.BatchRepository
	productRepo  catalog.ProductRepository
	materialRepo stock.MaterialRepository
	saleRepo     sales.SaleRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope.
func NewNoOpTransactionScope(
	batchRepo production.BatchRepository,
	productRepo catalog.ProductRepository,
	materialRepo stock.MaterialRepository,
	saleRepo sales.SaleRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		batchRepo:    batchRepo,
		productRepo:  productRepo,
		materialRepo: materialRepo,
		saleRepo:     saleRepo,
	}
}

// Execute runs the function directly.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BatchRepo returns the batch repository.
func (s *NoOpTransactionScope) BatchRepo() production.BatchRepository { return s.batchRepo }

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// MaterialRepo returns the material repository.
func (s *NoOpTransactionScope) MaterialRepo() stock.MaterialRepository { return s.materialRepo }

// SaleRepo returns the sale repository.
func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository { return s.saleRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
