package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/catalog"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/production"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/sales"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/stock"
	"github.com/stretchr/testify/mock"
)

// MockBatchRepository is a mock implementation of production.BatchRepository
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*production.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.Batch, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]production.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByDate(ctx context.Context, date time.Time) ([]production.Batch, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]production.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]production.Batch, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]production.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]production.Batch, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]production.Batch), args.Error(1)
}

func (m *MockBatchRepository) Save(ctx context.Context, batch *production.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBatchRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDWithRecipe(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllWithRecipe(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsByMaterial(ctx context.Context, materialID uuid.UUID) (bool, error) {
	args := m.Called(ctx, materialID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) ReplaceRecipeLines(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteRecipeLinesByMaterial(ctx context.Context, materialID uuid.UUID) error {
	args := m.Called(ctx, materialID)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMaterialRepository is a mock implementation of stock.MaterialRepository
type MockMaterialRepository struct {
	mock.Mock
}

func (m *MockMaterialRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Material), args.Error(1)
}

func (m *MockMaterialRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*stock.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Material), args.Error(1)
}

func (m *MockMaterialRepository) FindByNameAndUnit(ctx context.Context, name, unit string) (*stock.Material, error) {
	args := m.Called(ctx, name, unit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Material), args.Error(1)
}

func (m *MockMaterialRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.Material, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]stock.Material), args.Error(1)
}

func (m *MockMaterialRepository) FindLowStock(ctx context.Context) ([]stock.Material, error) {
	args := m.Called(ctx)
	return args.Get(0).([]stock.Material), args.Error(1)
}

func (m *MockMaterialRepository) Save(ctx context.Context, material *stock.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockMaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSaleRepository is a mock implementation of sales.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByDate(ctx context.Context, date time.Time) ([]sales.Sale, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]sales.Sale, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) ReplaceItems(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) SumQuantityByBatch(ctx context.Context, batchID uuid.UUID) (int, error) {
	args := m.Called(ctx, batchID)
	return args.Int(0), args.Error(1)
}

func (m *MockSaleRepository) SumQuantityByBatchExcludingSale(ctx context.Context, batchID, saleID uuid.UUID) (int, error) {
	args := m.Called(ctx, batchID, saleID)
	return args.Int(0), args.Error(1)
}

func (m *MockSaleRepository) DeleteItemsByBatch(ctx context.Context, batchID uuid.UUID) error {
	args := m.Called(ctx, batchID)
	return args.Error(0)
}
