package sales

import (
	"context"

	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/catalog"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/production"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/sales"
)

// TransactionScope provides transactional access to the repositories
// the sales use cases touch. Availability checks and allocation writes
// must see the same batch snapshot, so they share one transaction with
// the batch rows locked.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories the
// sales context coordinates within a transaction. The product
// repository is read-only here, used to name products in availability
// errors.
type TransactionalRepositories interface {
	SaleRepo() sales.SaleRepository
	BatchRepo() production.BatchRepository
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	saleRepo    sales.SaleRepository
	batchRepo   production.BatchRepository
	productRepo catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope.
func NewNoOpTransactionScope(saleRepo sales.SaleRepository, batchRepo production.BatchRepository, productRepo catalog.ProductRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{saleRepo: saleRepo, batchRepo: batchRepo, productRepo: productRepo}
}

// Execute runs the function directly.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository.
func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository { return s.saleRepo }

// BatchRepo returns the production batch repository.
func (s *NoOpTransactionScope) BatchRepo() production.BatchRepository { return s.batchRepo }

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
