package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/catalog"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/production"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/sales"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

type fixture struct {
	saleRepo    *MockSaleRepository
	batchRepo   *MockBatchRepository
	productRepo *MockProductRepository
	service     *SaleService
}

func newFixture() *fixture {
	f := &fixture{
		saleRepo:    new(MockSaleRepository),
		batchRepo:   new(MockBatchRepository),
		productRepo: new(MockProductRepository),
	}
	f.service = NewSaleService(f.saleRepo, NewNoOpTransactionScope(f.saleRepo, f.batchRepo, f.productRepo), zap.NewNop())
	return f
}

func saleDate() time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

func TestSaleServiceCreate(t *testing.T) {
	t.Run("allocates within availability", func(t *testing.T) {
		f := newFixture()
		batch, err := production.NewBatch(uuid.New(), 30, saleDate(), "", "")
		require.NoError(t, err)

		f.batchRepo.On("FindByIDForUpdate", mock.Anything, batch.ID).Return(batch, nil)
		f.saleRepo.On("SumQuantityByBatch", mock.Anything, batch.ID).Return(10, nil)
		f.saleRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Sale")).Return(nil)

		resp, err := f.service.Create(context.Background(), SaveSaleRequest{
			CustomerName: "Maria",
			Date:         saleDate(),
			Items: []SaleItemRequest{
				{BatchID: batch.ID, Quantity: 20, UnitPrice: decimal.NewFromFloat(2.5)},
			},
		})

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(50).Equal(resp.Total))
		assert.Equal(t, batch.ProductID, resp.Items[0].ProductID)
	})

	t.Run("rejects allocations beyond availability naming the product", func(t *testing.T) {
		f := newFixture()
		product, err := catalog.NewProduct("Brigadeiro", "sweet", 1, decimal.NewFromInt(2))
		require.NoError(t, err)
		batch, err := production.NewBatch(product.ID, 30, saleDate(), "", "")
		require.NoError(t, err)

		f.batchRepo.On("FindByIDForUpdate", mock.Anything, batch.ID).Return(batch, nil)
		f.saleRepo.On("SumQuantityByBatch", mock.Anything, batch.ID).Return(15, nil)
		f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		_, err = f.service.Create(context.Background(), SaveSaleRequest{
			CustomerName: "Maria",
			Date:         saleDate(),
			Items: []SaleItemRequest{
				{BatchID: batch.ID, Quantity: 20, UnitPrice: decimal.NewFromFloat(2.5)},
			},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Contains(t, domainErr.Message, "Brigadeiro")
		f.saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("sums split lines against the same batch", func(t *testing.T) {
		f := newFixture()
		batch, err := production.NewBatch(uuid.New(), 10, saleDate(), "", "")
		require.NoError(t, err)

		f.batchRepo.On("FindByIDForUpdate", mock.Anything, batch.ID).Return(batch, nil)
		f.saleRepo.On("SumQuantityByBatch", mock.Anything, batch.ID).Return(0, nil)
		f.productRepo.On("FindByID", mock.Anything, batch.ProductID).Return(nil, shared.ErrNotFound)

		_, err = f.service.Create(context.Background(), SaveSaleRequest{
			CustomerName: "Maria",
			Date:         saleDate(),
			Items: []SaleItemRequest{
				{BatchID: batch.ID, Quantity: 6, UnitPrice: decimal.NewFromInt(1)},
				{BatchID: batch.ID, Quantity: 6, UnitPrice: decimal.NewFromInt(1)},
			},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	})

	t.Run("donation zeroes the total", func(t *testing.T) {
		f := newFixture()
		batch, err := production.NewBatch(uuid.New(), 30, saleDate(), "", "")
		require.NoError(t, err)

		f.batchRepo.On("FindByIDForUpdate", mock.Anything, batch.ID).Return(batch, nil)
		f.saleRepo.On("SumQuantityByBatch", mock.Anything, batch.ID).Return(0, nil)
		f.saleRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.Create(context.Background(), SaveSaleRequest{
			CustomerName: "Creche",
			Date:         saleDate(),
			Donation:     true,
			Items: []SaleItemRequest{
				{BatchID: batch.ID, Quantity: 10, UnitPrice: decimal.NewFromFloat(2.5)},
			},
		})

		require.NoError(t, err)
		assert.True(t, resp.Total.IsZero())
	})

	t.Run("records the payment method for an anonymous sale", func(t *testing.T) {
		f := newFixture()
		batch, err := production.NewBatch(uuid.New(), 30, saleDate(), "", "")
		require.NoError(t, err)

		f.batchRepo.On("FindByIDForUpdate", mock.Anything, batch.ID).Return(batch, nil)
		f.saleRepo.On("SumQuantityByBatch", mock.Anything, batch.ID).Return(0, nil)
		f.saleRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.Create(context.Background(), SaveSaleRequest{
			PaymentMethod: "pix",
			Date:          saleDate(),
			Items: []SaleItemRequest{
				{BatchID: batch.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(3)},
			},
		})

		require.NoError(t, err)
		assert.Empty(t, resp.CustomerName)
		assert.Equal(t, "pix", resp.PaymentMethod)
	})

	t.Run("drops lines with a non-positive quantity", func(t *testing.T) {
		f := newFixture()
		batch, err := production.NewBatch(uuid.New(), 30, saleDate(), "", "")
		require.NoError(t, err)

		f.batchRepo.On("FindByIDForUpdate", mock.Anything, batch.ID).Return(batch, nil)
		f.saleRepo.On("SumQuantityByBatch", mock.Anything, batch.ID).Return(0, nil)
		f.saleRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.Create(context.Background(), SaveSaleRequest{
			CustomerName: "Maria",
			Date:         saleDate(),
			Items: []SaleItemRequest{
				{BatchID: batch.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(2)},
				{BatchID: batch.ID, Quantity: 0, UnitPrice: decimal.NewFromInt(2)},
			},
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 5, resp.Items[0].Quantity)
	})

	t.Run("rejects a sale with no positive line", func(t *testing.T) {
		f := newFixture()
		batch, err := production.NewBatch(uuid.New(), 30, saleDate(), "", "")
		require.NoError(t, err)

		_, err = f.service.Create(context.Background(), SaveSaleRequest{
			CustomerName: "Maria",
			Date:         saleDate(),
			Items: []SaleItemRequest{
				{BatchID: batch.ID, Quantity: 0},
			},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		f.saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSaleServiceUpdate(t *testing.T) {
	t.Run("excludes the sale's own allocations from availability", func(t *testing.T) {
		f := newFixture()
		batch, err := production.NewBatch(uuid.New(), 30, saleDate(), "", "")
		require.NoError(t, err)

		existingItem, err := sales.NewSaleItem(batch.ID, batch.ProductID, 30, decimal.NewFromInt(2))
		require.NoError(t, err)
		sale, err := sales.NewSale("Maria", "cash", saleDate(), false, []sales.SaleItem{existingItem})
		require.NoError(t, err)

		f.saleRepo.On("FindByIDWithItems", mock.Anything, sale.ID).Return(sale, nil)
		f.batchRepo.On("FindByIDForUpdate", mock.Anything, batch.ID).Return(batch, nil)
		// other sales hold nothing once this sale's own 30 are released
		f.saleRepo.On("SumQuantityByBatchExcludingSale", mock.Anything, batch.ID, sale.ID).Return(0, nil)
		f.saleRepo.On("ReplaceItems", mock.Anything, sale).Return(nil)

		resp, err := f.service.Update(context.Background(), sale.ID, SaveSaleRequest{
			CustomerName: "Maria",
			Date:         saleDate(),
			Items: []SaleItemRequest{
				{BatchID: batch.ID, Quantity: 25, UnitPrice: decimal.NewFromInt(2)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 25, resp.Items[0].Quantity)
	})
}

func TestSaleServiceDelete(t *testing.T) {
	t.Run("deletes without touching stock", func(t *testing.T) {
		f := newFixture()
		batch, err := production.NewBatch(uuid.New(), 30, saleDate(), "", "")
		require.NoError(t, err)
		item, err := sales.NewSaleItem(batch.ID, batch.ProductID, 5, decimal.NewFromInt(2))
		require.NoError(t, err)
		sale, err := sales.NewSale("Maria", "cash", saleDate(), false, []sales.SaleItem{item})
		require.NoError(t, err)

		f.saleRepo.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
		f.saleRepo.On("Delete", mock.Anything, sale.ID).Return(nil)

		err = f.service.Delete(context.Background(), sale.ID)

		require.NoError(t, err)
		f.saleRepo.AssertExpectations(t)
	})
}
