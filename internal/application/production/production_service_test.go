package production

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/catalog"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/production"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/stock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	batchRepo    *MockBatchRepository
	productRepo  *MockProductRepository
	materialRepo *MockMaterialRepository
	saleRepo     *MockSaleRepository
	service      *ProductionService
}

func newFixture() *fixture {
	f := &fixture{
		batchRepo:    new(MockBatchRepository),
		productRepo:  new(MockProductRepository),
		materialRepo: new(MockMaterialRepository),
		saleRepo:     new(MockSaleRepository),
	}
	scope := NewNoOpTransactionScope(f.batchRepo, f.productRepo, f.materialRepo, f.saleRepo)
	f.service = NewProductionService(f.batchRepo, f.productRepo, scope, zap.NewNop())
	return f
}

// productWithRecipe builds a product consuming 100 g of one material
// per unit produced.
func productWithRecipe(t *testing.T, material *stock.Material) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("Brigadeiro", "sweet", 1, decimal.Zero)
	require.NoError(t, err)
	line, err := catalog.NewRecipeLine(material.ID, decimal.NewFromInt(100))
	require.NoError(t, err)
	product.ReplaceRecipe([]catalog.RecipeLine{line})
	return product
}

func newStock(t *testing.T, quantity int64) *stock.Material {
	t.Helper()
	m, err := stock.NewMaterial("Chocolate", "g", decimal.NewFromInt(quantity), decimal.NewFromFloat(0.05), nil)
	require.NoError(t, err)
	return m
}

func TestRegisterBatch(t *testing.T) {
	t.Run("debits recipe materials per unit produced", func(t *testing.T) {
		f := newFixture()
		material := newStock(t, 5000)
		product := productWithRecipe(t, material)

		f.productRepo.On("FindByIDWithRecipe", mock.Anything, product.ID).Return(product, nil)
		f.materialRepo.On("FindByIDForUpdate", mock.Anything, material.ID).Return(material, nil)
		f.materialRepo.On("Save", mock.Anything, material).Return(nil)
		f.batchRepo.On("Save", mock.Anything, mock.AnythingOfType("*production.Batch")).Return(nil)

		resp, err := f.service.Register(context.Background(), RegisterBatchRequest{
			Batches: []BatchLineRequest{
				{ProductID: product.ID, Quantity: 30, Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
			},
		})

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, 30, resp[0].Quantity)
		// 100 g per unit, 30 units
		assert.True(t, decimal.NewFromInt(2000).Equal(material.Quantity), "got %s", material.Quantity)
	})

	t.Run("rejects the run before any debit when stock is short", func(t *testing.T) {
		f := newFixture()
		material := newStock(t, 100)
		product := productWithRecipe(t, material)

		f.productRepo.On("FindByIDWithRecipe", mock.Anything, product.ID).Return(product, nil)
		f.materialRepo.On("FindByIDForUpdate", mock.Anything, material.ID).Return(material, nil)

		_, err := f.service.Register(context.Background(), RegisterBatchRequest{
			Batches: []BatchLineRequest{
				{ProductID: product.ID, Quantity: 5, Date: time.Now()},
			},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Contains(t, domainErr.Message, "Chocolate")
		assert.True(t, decimal.NewFromInt(100).Equal(material.Quantity), "got %s", material.Quantity)
		f.materialRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("sizes the planned lines as one set", func(t *testing.T) {
		f := newFixture()
		material := newStock(t, 1000)
		product := productWithRecipe(t, material)

		f.productRepo.On("FindByIDWithRecipe", mock.Anything, product.ID).Return(product, nil)
		f.materialRepo.On("FindByIDForUpdate", mock.Anything, material.ID).Return(material, nil)

		// each line alone fits in 1000 g, together they need 1200 g
		_, err := f.service.Register(context.Background(), RegisterBatchRequest{
			Batches: []BatchLineRequest{
				{ProductID: product.ID, Quantity: 6, Date: time.Now()},
				{ProductID: product.ID, Quantity: 6, Date: time.Now()},
			},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		f.batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("skips lines with a non-positive quantity", func(t *testing.T) {
		f := newFixture()
		material := newStock(t, 5000)
		product := productWithRecipe(t, material)

		f.productRepo.On("FindByIDWithRecipe", mock.Anything, product.ID).Return(product, nil)
		f.materialRepo.On("FindByIDForUpdate", mock.Anything, material.ID).Return(material, nil)
		f.materialRepo.On("Save", mock.Anything, material).Return(nil)
		f.batchRepo.On("Save", mock.Anything, mock.AnythingOfType("*production.Batch")).Return(nil)

		resp, err := f.service.Register(context.Background(), RegisterBatchRequest{
			Batches: []BatchLineRequest{
				{ProductID: product.ID, Quantity: 0, Date: time.Now()},
				{ProductID: product.ID, Quantity: 5, Date: time.Now()},
			},
		})

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, 5, resp[0].Quantity)
		f.batchRepo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("rejects a run with no positive line", func(t *testing.T) {
		f := newFixture()
		product := productWithRecipe(t, newStock(t, 5000))

		_, err := f.service.Register(context.Background(), RegisterBatchRequest{
			Batches: []BatchLineRequest{
				{ProductID: product.ID, Quantity: 0, Date: time.Now()},
			},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}

func TestValidateStock(t *testing.T) {
	t.Run("collects every shortage instead of stopping at the first", func(t *testing.T) {
		f := newFixture()
		chocolate := newStock(t, 500)
		butter, err := stock.NewMaterial("Butter", "g", decimal.NewFromInt(50), decimal.Zero, nil)
		require.NoError(t, err)

		product, err := catalog.NewProduct("Brigadeiro", "sweet", 1, decimal.Zero)
		require.NoError(t, err)
		l1, _ := catalog.NewRecipeLine(chocolate.ID, decimal.NewFromInt(100))
		l2, _ := catalog.NewRecipeLine(butter.ID, decimal.NewFromInt(10))
		product.ReplaceRecipe([]catalog.RecipeLine{l1, l2})

		f.productRepo.On("FindByIDWithRecipe", mock.Anything, product.ID).Return(product, nil)
		f.materialRepo.On("FindByID", mock.Anything, chocolate.ID).Return(chocolate, nil)
		f.materialRepo.On("FindByID", mock.Anything, butter.ID).Return(butter, nil)

		resp, err := f.service.ValidateStock(context.Background(), ValidateStockRequest{
			Lines: []ValidateStockLine{
				{ProductID: product.ID, Quantity: 10},
			},
		})

		require.NoError(t, err)
		assert.False(t, resp.Sufficient)
		require.Len(t, resp.Violations, 2)
		assert.True(t, decimal.NewFromInt(1000).Equal(resp.Violations[0].Required))
		assert.True(t, decimal.NewFromInt(100).Equal(resp.Violations[1].Required))
	})

	t.Run("accumulates requirements across lines sharing a material", func(t *testing.T) {
		f := newFixture()
		material := newStock(t, 1000)
		product := productWithRecipe(t, material)

		f.productRepo.On("FindByIDWithRecipe", mock.Anything, product.ID).Return(product, nil)
		f.materialRepo.On("FindByID", mock.Anything, material.ID).Return(material, nil)

		resp, err := f.service.ValidateStock(context.Background(), ValidateStockRequest{
			Lines: []ValidateStockLine{
				{ProductID: product.ID, Quantity: 6},
				{ProductID: product.ID, Quantity: 6},
			},
		})

		require.NoError(t, err)
		assert.False(t, resp.Sufficient)
		require.Len(t, resp.Violations, 1)
		assert.True(t, decimal.NewFromInt(1200).Equal(resp.Violations[0].Required), "got %s", resp.Violations[0].Required)
	})

	t.Run("sufficient stock yields no violations", func(t *testing.T) {
		f := newFixture()
		material := newStock(t, 5000)
		product := productWithRecipe(t, material)

		f.productRepo.On("FindByIDWithRecipe", mock.Anything, product.ID).Return(product, nil)
		f.materialRepo.On("FindByID", mock.Anything, material.ID).Return(material, nil)

		resp, err := f.service.ValidateStock(context.Background(), ValidateStockRequest{
			Lines: []ValidateStockLine{
				{ProductID: product.ID, Quantity: 10},
			},
		})

		require.NoError(t, err)
		assert.True(t, resp.Sufficient)
		assert.Empty(t, resp.Violations)
	})
}

func TestDecrement(t *testing.T) {
	t.Run("credits materials for the removed unit", func(t *testing.T) {
		f := newFixture()
		material := newStock(t, 1000)
		product := productWithRecipe(t, material)
		batch, err := production.NewBatch(product.ID, 5, time.Now(), "", "")
		require.NoError(t, err)

		f.batchRepo.On("FindByIDForUpdate", mock.Anything, batch.ID).Return(batch, nil)
		f.productRepo.On("FindByIDWithRecipe", mock.Anything, product.ID).Return(product, nil)
		f.materialRepo.On("FindByIDForUpdate", mock.Anything, material.ID).Return(material, nil)
		f.materialRepo.On("Save", mock.Anything, material).Return(nil)
		f.batchRepo.On("Save", mock.Anything, batch).Return(nil)

		resp, err := f.service.Decrement(context.Background(), batch.ID)

		require.NoError(t, err)
		assert.Equal(t, 4, resp.Quantity)
		assert.True(t, decimal.NewFromInt(1100).Equal(material.Quantity))
	})

	t.Run("decrementing the last unit deletes the batch", func(t *testing.T) {
		f := newFixture()
		material := newStock(t, 1000)
		product := productWithRecipe(t, material)
		batch, err := production.NewBatch(product.ID, 1, time.Now(), "", "")
		require.NoError(t, err)

		f.batchRepo.On("FindByIDForUpdate", mock.Anything, batch.ID).Return(batch, nil)
		f.productRepo.On("FindByIDWithRecipe", mock.Anything, product.ID).Return(product, nil)
		f.materialRepo.On("FindByIDForUpdate", mock.Anything, material.ID).Return(material, nil)
		f.materialRepo.On("Save", mock.Anything, material).Return(nil)
		f.saleRepo.On("DeleteItemsByBatch", mock.Anything, batch.ID).Return(nil)
		f.batchRepo.On("Delete", mock.Anything, batch.ID).Return(nil)

		resp, err := f.service.Decrement(context.Background(), batch.ID)

		require.NoError(t, err)
		assert.Equal(t, 0, resp.Quantity)
		f.batchRepo.AssertCalled(t, "Delete", mock.Anything, batch.ID)
		f.batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestRemove(t *testing.T) {
	t.Run("credits the full batch quantity back to stock", func(t *testing.T) {
		f := newFixture()
		material := newStock(t, 0)
		product := productWithRecipe(t, material)
		batch, err := production.NewBatch(product.ID, 20, time.Now(), "", "")
		require.NoError(t, err)

		f.batchRepo.On("FindByIDForUpdate", mock.Anything, batch.ID).Return(batch, nil)
		f.productRepo.On("FindByIDWithRecipe", mock.Anything, product.ID).Return(product, nil)
		f.materialRepo.On("FindByIDForUpdate", mock.Anything, material.ID).Return(material, nil)
		f.materialRepo.On("Save", mock.Anything, material).Return(nil)
		f.saleRepo.On("DeleteItemsByBatch", mock.Anything, batch.ID).Return(nil)
		f.batchRepo.On("Delete", mock.Anything, batch.ID).Return(nil)

		err = f.service.Remove(context.Background(), batch.ID)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(2000).Equal(material.Quantity))
	})
}

func TestAvailability(t *testing.T) {
	f := newFixture()
	batch, err := production.NewBatch(uuid.New(), 30, time.Now(), "", "")
	require.NoError(t, err)

	f.batchRepo.On("FindByID", mock.Anything, batch.ID).Return(batch, nil)
	f.saleRepo.On("SumQuantityByBatch", mock.Anything, batch.ID).Return(12, nil)

	resp, err := f.service.Availability(context.Background(), batch.ID)

	require.NoError(t, err)
	assert.Equal(t, 12, resp.Allocated)
	assert.Equal(t, 18, resp.Available)
}

func TestAvailableForSale(t *testing.T) {
	t.Run("drops fully allocated batches", func(t *testing.T) {
		f := newFixture()
		open, err := production.NewBatch(uuid.New(), 30, time.Now(), "", "")
		require.NoError(t, err)
		soldOut, err := production.NewBatch(uuid.New(), 10, time.Now(), "", "")
		require.NoError(t, err)

		f.batchRepo.On("FindAll", mock.Anything, mock.Anything).Return([]production.Batch{*open, *soldOut}, nil)
		f.saleRepo.On("SumQuantityByBatch", mock.Anything, open.ID).Return(5, nil)
		f.saleRepo.On("SumQuantityByBatch", mock.Anything, soldOut.ID).Return(10, nil)

		resp, err := f.service.AvailableForSale(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, open.ID, resp[0].ID)
		assert.Equal(t, 25, resp[0].Available)
	})

	t.Run("releases the excluded sale's own allocations", func(t *testing.T) {
		f := newFixture()
		batch, err := production.NewBatch(uuid.New(), 10, time.Now(), "", "")
		require.NoError(t, err)
		saleID := uuid.New()

		f.batchRepo.On("FindAll", mock.Anything, mock.Anything).Return([]production.Batch{*batch}, nil)
		f.saleRepo.On("SumQuantityByBatchExcludingSale", mock.Anything, batch.ID, saleID).Return(4, nil)

		resp, err := f.service.AvailableForSale(context.Background(), &saleID)

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, 6, resp[0].Available)
	})
}

func TestCalendarEvents(t *testing.T) {
	t.Run("builds the feed with product names", func(t *testing.T) {
		f := newFixture()
		product, err := catalog.NewProduct("Brigadeiro", "sweet", 1, decimal.Zero)
		require.NoError(t, err)
		batch, err := production.NewBatch(product.ID, 30, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "", "")
		require.NoError(t, err)

		from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
		f.batchRepo.On("FindByPeriod", mock.Anything, from, to).Return([]production.Batch{*batch}, nil)
		f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		events, err := f.service.CalendarEvents(context.Background(), from, to)

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Brigadeiro", events[0].ProductName)
		assert.Equal(t, 30, events[0].Quantity)
	})
}
