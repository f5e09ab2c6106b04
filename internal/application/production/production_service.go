package production

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/catalog"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/production"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/stock"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CalendarCache caches the production calendar feed. Implementations
// are best effort: a miss or a cache failure falls back to the
// database, and every batch mutation invalidates the feed.
type CalendarCache interface {
	GetProductionEvents(ctx context.Context, from, to time.Time) ([]CalendarEventResponse, bool)
	SetProductionEvents(ctx context.Context, from, to time.Time, events []CalendarEventResponse)
	InvalidateProduction(ctx context.Context)
}

// ProductionService handles production batch use cases. Every mutation
// that changes a batch quantity moves the corresponding raw materials
// in the same transaction: registering debits, removals credit.
//
// Recipe line quantities are treated as per product unit here, so a run
// of N units debits line quantity times N for each material.
type ProductionService struct {
	batchRepo      production.BatchRepository
	productRepo    catalog.ProductRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	calendarCache  CalendarCache
	logger         *zap.Logger
}

// NewProductionService creates a new ProductionService
func NewProductionService(
	batchRepo production.BatchRepository,
	productRepo catalog.ProductRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *ProductionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductionService{
		batchRepo:   batchRepo,
		productRepo: productRepo,
		txScope:     txScope,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetCalendarCache sets the calendar feed cache
func (s *ProductionService) SetCalendarCache(cache CalendarCache) {
	s.calendarCache = cache
}

func (s *ProductionService) publishEvents(ctx context.Context, aggregates ...interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}) {
	if s.eventPublisher == nil {
		return
	}
	for _, agg := range aggregates {
		events := agg.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		_ = s.eventPublisher.Publish(ctx, events...)
		agg.ClearDomainEvents()
	}
}

func (s *ProductionService) invalidateCalendar(ctx context.Context) {
	if s.calendarCache != nil {
		s.calendarCache.InvalidateProduction(ctx)
	}
}

// plannedRun pairs a product, loaded with its recipe, with the number
// of units to produce.
type plannedRun struct {
	product  *catalog.Product
	quantity int
}

// collectViolations sizes a whole run against current stock. Required
// quantities are accumulated per material across every line before
// comparing, so two lines that are individually covered still fail
// together when they share an ingredient. With lock set the material
// rows are read under a write lock, pinning the quantities the caller
// is about to debit.
func (s *ProductionService) collectViolations(ctx context.Context, repos TransactionalRepositories, runs []plannedRun, lock bool) ([]StockViolation, error) {
	required := make(map[uuid.UUID]decimal.Decimal)
	order := make([]uuid.UUID, 0)
	for _, run := range runs {
		factor := decimal.NewFromInt(int64(run.quantity))
		for _, line := range run.product.Recipe {
			if _, ok := required[line.MaterialID]; !ok {
				order = append(order, line.MaterialID)
			}
			required[line.MaterialID] = required[line.MaterialID].Add(line.Quantity.Mul(factor))
		}
	}

	violations := make([]StockViolation, 0)
	for _, materialID := range order {
		var material *stock.Material
		var err error
		if lock {
			material, err = repos.MaterialRepo().FindByIDForUpdate(ctx, materialID)
		} else {
			material, err = repos.MaterialRepo().FindByID(ctx, materialID)
		}
		if err != nil {
			return nil, err
		}
		if material.Quantity.LessThan(required[materialID]) {
			violations = append(violations, StockViolation{
				MaterialID:   material.ID,
				MaterialName: material.Name,
				Unit:         material.Unit,
				Required:     required[materialID],
				Available:    material.Quantity,
			})
		}
	}
	return violations, nil
}

func insufficientStockError(violations []StockViolation) error {
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = fmt.Sprintf("%s: required %s %s, available %s", v.MaterialName, v.Required, v.Unit, v.Available)
	}
	return shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough raw material: "+strings.Join(parts, "; "))
}

// ValidateStock reports every material a planned run would drive below
// zero. It never stops at the first shortage: the whole picture comes
// back so the baker can restock everything at once.
func (s *ProductionService) ValidateStock(ctx context.Context, req ValidateStockRequest) (*ValidateStockResponse, error) {
	violations := make([]StockViolation, 0)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		products := make(map[uuid.UUID]*catalog.Product)
		runs := make([]plannedRun, 0, len(req.Lines))
		for _, line := range req.Lines {
			if line.Quantity <= 0 {
				continue
			}
			product, ok := products[line.ProductID]
			if !ok {
				var err error
				product, err = repos.ProductRepo().FindByIDWithRecipe(ctx, line.ProductID)
				if err != nil {
					return err
				}
				products[line.ProductID] = product
			}
			runs = append(runs, plannedRun{product: product, quantity: line.Quantity})
		}

		var err error
		violations, err = s.collectViolations(ctx, repos, runs, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &ValidateStockResponse{
		Sufficient: len(violations) == 0,
		Violations: violations,
	}, nil
}

// Register records a production run and debits the recipe materials.
// The whole run is validated against stock first: any shortage rejects
// every planned batch before a single debit happens. Lines with a
// non-positive quantity are ignored.
func (s *ProductionService) Register(ctx context.Context, req RegisterBatchRequest) ([]BatchResponse, error) {
	responses := make([]BatchResponse, 0, len(req.Batches))
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		products := make(map[uuid.UUID]*catalog.Product)
		planned := make([]BatchLineRequest, 0, len(req.Batches))
		runs := make([]plannedRun, 0, len(req.Batches))
		for _, line := range req.Batches {
			if line.Quantity <= 0 {
				continue
			}
			product, ok := products[line.ProductID]
			if !ok {
				var err error
				product, err = repos.ProductRepo().FindByIDWithRecipe(ctx, line.ProductID)
				if err != nil {
					return err
				}
				products[line.ProductID] = product
			}
			planned = append(planned, line)
			runs = append(runs, plannedRun{product: product, quantity: line.Quantity})
		}
		if len(planned) == 0 {
			return shared.NewDomainError("INVALID_INPUT", "A production run needs at least one batch with a positive quantity")
		}

		violations, err := s.collectViolations(ctx, repos, runs, true)
		if err != nil {
			return err
		}
		if len(violations) > 0 {
			return insufficientStockError(violations)
		}

		for i, line := range planned {
			batch, err := production.NewBatch(runs[i].product.ID, line.Quantity, line.Date, line.Dough, line.Filling)
			if err != nil {
				return err
			}
			if err := s.moveMaterials(ctx, repos, runs[i].product, -line.Quantity); err != nil {
				return err
			}
			if err := repos.BatchRepo().Save(ctx, batch); err != nil {
				return err
			}
			s.publishEvents(ctx, batch)
			responses = append(responses, ToBatchResponse(batch))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx)
	return responses, nil
}

// moveMaterials debits (negative delta) or credits (positive delta) the
// product's recipe materials for the given number of units. Rows are
// locked so concurrent runs against the same materials serialize.
func (s *ProductionService) moveMaterials(ctx context.Context, repos TransactionalRepositories, product *catalog.Product, deltaUnits int) error {
	if deltaUnits == 0 {
		return nil
	}
	factor := decimal.NewFromInt(int64(deltaUnits))
	if deltaUnits < 0 {
		factor = decimal.NewFromInt(int64(-deltaUnits))
	}

	for _, line := range product.Recipe {
		material, err := repos.MaterialRepo().FindByIDForUpdate(ctx, line.MaterialID)
		if err != nil {
			return err
		}
		amount := line.Quantity.Mul(factor)
		if deltaUnits < 0 {
			material.Debit(amount)
		} else {
			material.Credit(amount)
		}
		if err := repos.MaterialRepo().Save(ctx, material); err != nil {
			return err
		}
		s.publishEvents(ctx, material)
	}
	return nil
}

// Increment adds one unit to a batch, debiting materials for it.
func (s *ProductionService) Increment(ctx context.Context, batchID uuid.UUID) (*BatchResponse, error) {
	var response BatchResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.BatchRepo().FindByIDForUpdate(ctx, batchID)
		if err != nil {
			return err
		}
		product, err := repos.ProductRepo().FindByIDWithRecipe(ctx, batch.ProductID)
		if err != nil {
			return err
		}

		if err := s.moveMaterials(ctx, repos, product, -1); err != nil {
			return err
		}
		batch.Increment()
		if err := repos.BatchRepo().Save(ctx, batch); err != nil {
			return err
		}

		s.publishEvents(ctx, batch)
		response = ToBatchResponse(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx)
	return &response, nil
}

// Decrement removes one unit from a batch and credits its materials.
// Decrementing the last unit deletes the batch together with any sale
// allocations still pointing at it.
func (s *ProductionService) Decrement(ctx context.Context, batchID uuid.UUID) (*BatchResponse, error) {
	var response BatchResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.BatchRepo().FindByIDForUpdate(ctx, batchID)
		if err != nil {
			return err
		}
		product, err := repos.ProductRepo().FindByIDWithRecipe(ctx, batch.ProductID)
		if err != nil {
			return err
		}

		if err := s.moveMaterials(ctx, repos, product, 1); err != nil {
			return err
		}
		empty := batch.Decrement()
		if empty {
			if err := s.deleteBatch(ctx, repos, batch); err != nil {
				return err
			}
		} else if err := repos.BatchRepo().Save(ctx, batch); err != nil {
			return err
		}

		s.publishEvents(ctx, batch)
		response = ToBatchResponse(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx)
	return &response, nil
}

// RemoveQuantity takes units out of a batch, crediting their materials.
// Removing everything deletes the batch.
func (s *ProductionService) RemoveQuantity(ctx context.Context, batchID uuid.UUID, req RemoveQuantityRequest) (*BatchResponse, error) {
	var response BatchResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.BatchRepo().FindByIDForUpdate(ctx, batchID)
		if err != nil {
			return err
		}
		product, err := repos.ProductRepo().FindByIDWithRecipe(ctx, batch.ProductID)
		if err != nil {
			return err
		}

		empty, err := batch.RemoveQuantity(req.Quantity)
		if err != nil {
			return err
		}
		if err := s.moveMaterials(ctx, repos, product, req.Quantity); err != nil {
			return err
		}
		if empty {
			if err := s.deleteBatch(ctx, repos, batch); err != nil {
				return err
			}
		} else if err := repos.BatchRepo().Save(ctx, batch); err != nil {
			return err
		}

		s.publishEvents(ctx, batch)
		response = ToBatchResponse(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx)
	return &response, nil
}

// Remove deletes a whole batch, crediting all of its materials back.
func (s *ProductionService) Remove(ctx context.Context, batchID uuid.UUID) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.BatchRepo().FindByIDForUpdate(ctx, batchID)
		if err != nil {
			return err
		}
		product, err := repos.ProductRepo().FindByIDWithRecipe(ctx, batch.ProductID)
		if err != nil {
			return err
		}

		if err := s.moveMaterials(ctx, repos, product, batch.Quantity); err != nil {
			return err
		}
		batch.AddDomainEvent(production.NewBatchRemovedEvent(batch))
		if err := s.deleteBatch(ctx, repos, batch); err != nil {
			return err
		}

		s.publishEvents(ctx, batch)
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidateCalendar(ctx)
	return nil
}

func (s *ProductionService) deleteBatch(ctx context.Context, repos TransactionalRepositories, batch *production.Batch) error {
	if err := repos.SaleRepo().DeleteItemsByBatch(ctx, batch.ID); err != nil {
		return err
	}
	return repos.BatchRepo().Delete(ctx, batch.ID)
}

// GetByID retrieves a batch by ID
func (s *ProductionService) GetByID(ctx context.Context, id uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBatchResponse(batch)
	return &response, nil
}

// List returns batches matching the filter
func (s *ProductionService) List(ctx context.Context, filter BatchListFilter) ([]BatchResponse, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}

	batches, err := s.batchRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToBatchResponses(batches), nil
}

// FindByDate returns the batches produced on one day
func (s *ProductionService) FindByDate(ctx context.Context, date time.Time) ([]BatchResponse, error) {
	batches, err := s.batchRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return ToBatchResponses(batches), nil
}

// Availability returns a batch with its allocated and free unit counts.
func (s *ProductionService) Availability(ctx context.Context, batchID uuid.UUID) (*BatchAvailabilityResponse, error) {
	var response BatchAvailabilityResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.BatchRepo().FindByID(ctx, batchID)
		if err != nil {
			return err
		}
		allocated, err := repos.SaleRepo().SumQuantityByBatch(ctx, batch.ID)
		if err != nil {
			return err
		}
		response = BatchAvailabilityResponse{
			BatchResponse: ToBatchResponse(batch),
			Allocated:     allocated,
			Available:     batch.Quantity - allocated,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// AvailableForSale lists the batches that still have unsold units.
// When a sale is being edited its own allocations are excluded, so the
// units that sale already holds still count as available to it.
func (s *ProductionService) AvailableForSale(ctx context.Context, excludeSaleID *uuid.UUID) ([]BatchAvailabilityResponse, error) {
	responses := make([]BatchAvailabilityResponse, 0)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batches, err := repos.BatchRepo().FindAll(ctx, shared.DefaultFilter())
		if err != nil {
			return err
		}
		for i := range batches {
			batch := &batches[i]
			var allocated int
			if excludeSaleID != nil {
				allocated, err = repos.SaleRepo().SumQuantityByBatchExcludingSale(ctx, batch.ID, *excludeSaleID)
			} else {
				allocated, err = repos.SaleRepo().SumQuantityByBatch(ctx, batch.ID)
			}
			if err != nil {
				return err
			}
			available := batch.Quantity - allocated
			if available <= 0 {
				continue
			}
			responses = append(responses, BatchAvailabilityResponse{
				BatchResponse: ToBatchResponse(batch),
				Allocated:     allocated,
				Available:     available,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// CalendarEvents returns the production feed for a period, served from
// the cache when possible.
func (s *ProductionService) CalendarEvents(ctx context.Context, from, to time.Time) ([]CalendarEventResponse, error) {
	if s.calendarCache != nil {
		if events, ok := s.calendarCache.GetProductionEvents(ctx, from, to); ok {
			return events, nil
		}
	}

	batches, err := s.batchRepo.FindByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string)
	events := make([]CalendarEventResponse, 0, len(batches))
	for i := range batches {
		batch := &batches[i]
		name, ok := names[batch.ProductID]
		if !ok {
			product, err := s.productRepo.FindByID(ctx, batch.ProductID)
			if err != nil {
				s.logger.Warn("skipping calendar entry for missing product",
					zap.String("batch_id", batch.ID.String()),
					zap.Error(err))
				continue
			}
			name = product.Name
			names[batch.ProductID] = name
		}
		events = append(events, CalendarEventResponse{
			BatchID:     batch.ID,
			ProductID:   batch.ProductID,
			ProductName: name,
			Quantity:    batch.Quantity,
			Date:        batch.Date,
		})
	}

	if s.calendarCache != nil {
		s.calendarCache.SetProductionEvents(ctx, from, to, events)
	}
	return events, nil
}
