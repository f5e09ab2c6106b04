package stock

import (
	"context"

	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/catalog"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/stock"
)

// TransactionScope provides transactional access to stock repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or
// roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories the
// stock use cases touch within one transaction. The product repository
// is included because deleting a material has to check recipe
// references under the same snapshot.
type TransactionalRepositories interface {
	MaterialRepo() stock.MaterialRepository
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	materialRepo stock.MaterialRepository
	productRepo  catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope.
func NewNoOpTransactionScope(materialRepo stock.MaterialRepository, productRepo catalog.ProductRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{materialRepo: materialRepo, productRepo: productRepo}
}

// Execute runs the function directly.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// MaterialRepo returns the material repository.
func (s *NoOpTransactionScope) MaterialRepo() stock.MaterialRepository {
	return s.materialRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
