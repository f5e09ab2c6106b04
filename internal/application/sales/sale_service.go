package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/sales"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"go.uber.org/zap"
)

// CalendarCache caches the sales calendar feed. Implementations are
// best effort: misses fall back to the database and every sale
// mutation invalidates the feed.
type CalendarCache interface {
	GetSaleEvents(ctx context.Context, from, to time.Time) ([]CalendarEventResponse, bool)
	SetSaleEvents(ctx context.Context, from, to time.Time, events []CalendarEventResponse)
	InvalidateSales(ctx context.Context)
}

// SaleService handles sale and donation use cases. Allocations are
// validated against batch availability inside one transaction, with the
// batch rows locked so two sales cannot oversell the same batch.
type SaleService struct {
	saleRepo       sales.SaleRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	calendarCache  CalendarCache
	logger         *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo sales.SaleRepository, txScope TransactionScope, logger *zap.Logger) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		saleRepo: saleRepo,
		txScope:  txScope,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetCalendarCache sets the calendar feed cache
func (s *SaleService) SetCalendarCache(cache CalendarCache) {
	s.calendarCache = cache
}

func (s *SaleService) publishDomainEvents(ctx context.Context, sale *sales.Sale) {
	if s.eventPublisher == nil {
		return
	}
	events := sale.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	sale.ClearDomainEvents()
}

func (s *SaleService) invalidateCalendar(ctx context.Context) {
	if s.calendarCache != nil {
		s.calendarCache.InvalidateSales(ctx)
	}
}

// buildItems validates availability for every requested allocation and
// returns the domain items. Lines with a non-positive quantity are
// dropped. When editing, excludeSale releases the sale's own existing
// allocations from the availability sum.
func (s *SaleService) buildItems(ctx context.Context, repos TransactionalRepositories, reqItems []SaleItemRequest, excludeSale *uuid.UUID) ([]sales.SaleItem, error) {
	valid := make([]SaleItemRequest, 0, len(reqItems))
	for _, item := range reqItems {
		if item.Quantity > 0 {
			valid = append(valid, item)
		}
	}
	if len(valid) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "A sale needs at least one item with a positive quantity")
	}

	// Requests may split one batch over several lines; availability is
	// checked against the per-batch total.
	requested := make(map[uuid.UUID]int)
	for _, item := range valid {
		requested[item.BatchID] += item.Quantity
	}

	violations := make([]AvailabilityViolation, 0)
	products := make(map[uuid.UUID]uuid.UUID)
	for batchID, quantity := range requested {
		batch, err := repos.BatchRepo().FindByIDForUpdate(ctx, batchID)
		if err != nil {
			return nil, err
		}
		products[batchID] = batch.ProductID

		var allocated int
		if excludeSale != nil {
			allocated, err = repos.SaleRepo().SumQuantityByBatchExcludingSale(ctx, batchID, *excludeSale)
		} else {
			allocated, err = repos.SaleRepo().SumQuantityByBatch(ctx, batchID)
		}
		if err != nil {
			return nil, err
		}

		available := batch.Quantity - allocated
		if quantity > available {
			name := batch.ProductID.String()
			if product, perr := repos.ProductRepo().FindByID(ctx, batch.ProductID); perr == nil {
				name = product.Name
			}
			violations = append(violations, AvailabilityViolation{
				BatchID:     batchID,
				ProductName: name,
				Requested:   quantity,
				Available:   available,
			})
		}
	}
	if len(violations) > 0 {
		parts := make([]string, len(violations))
		for i, v := range violations {
			parts[i] = fmt.Sprintf("%s: requested %d, available %d", v.ProductName, v.Requested, v.Available)
		}
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough units available: "+strings.Join(parts, "; "))
	}

	items := make([]sales.SaleItem, 0, len(valid))
	for _, reqItem := range valid {
		item, err := sales.NewSaleItem(reqItem.BatchID, products[reqItem.BatchID], reqItem.Quantity, reqItem.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Create registers a sale or donation after checking batch availability.
func (s *SaleService) Create(ctx context.Context, req SaveSaleRequest) (*SaleResponse, error) {
	var response SaleResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		items, err := s.buildItems(ctx, repos, req.Items, nil)
		if err != nil {
			return err
		}

		sale, err := sales.NewSale(req.CustomerName, req.PaymentMethod, req.Date, req.Donation, items)
		if err != nil {
			return err
		}
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}

		s.publishDomainEvents(ctx, sale)
		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx)
	return &response, nil
}

// Update edits a sale, replacing the whole allocation set. The sale's
// own existing allocations do not count against availability.
func (s *SaleService) Update(ctx context.Context, id uuid.UUID, req SaveSaleRequest) (*SaleResponse, error) {
	var response SaleResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.SaleRepo().FindByIDWithItems(ctx, id)
		if err != nil {
			return err
		}

		items, err := s.buildItems(ctx, repos, req.Items, &sale.ID)
		if err != nil {
			return err
		}
		if err := sale.Update(req.CustomerName, req.PaymentMethod, req.Date, req.Donation, items); err != nil {
			return err
		}
		if err := repos.SaleRepo().ReplaceItems(ctx, sale); err != nil {
			return err
		}

		s.publishDomainEvents(ctx, sale)
		response = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCalendar(ctx)
	return &response, nil
}

// Delete removes a sale. The allocated units become available again;
// nothing is returned to the raw material ledger because the units were
// produced, not unmade.
func (s *SaleService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.SaleRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		sale.AddDomainEvent(sales.NewSaleDeletedEvent(sale))
		if err := repos.SaleRepo().Delete(ctx, sale.ID); err != nil {
			return err
		}
		s.publishDomainEvents(ctx, sale)
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidateCalendar(ctx)
	return nil
}

// GetByID retrieves a sale with its items
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List returns sales matching the filter
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) ([]SaleResponse, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	if filter.Customer != "" {
		domainFilter.Filters["customer"] = filter.Customer
	}
	if filter.Donation != nil {
		domainFilter.Filters["donation"] = *filter.Donation
	}

	found, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToSaleResponses(found), nil
}

// FindByDate returns the sales recorded on one day
func (s *SaleService) FindByDate(ctx context.Context, date time.Time) ([]SaleResponse, error) {
	found, err := s.saleRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return ToSaleResponses(found), nil
}

// FindByPeriod returns the sales recorded in a period
func (s *SaleService) FindByPeriod(ctx context.Context, from, to time.Time) ([]SaleResponse, error) {
	found, err := s.saleRepo.FindByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return ToSaleResponses(found), nil
}

// CalendarEvents returns the sales feed for a period, served from the
// cache when possible.
func (s *SaleService) CalendarEvents(ctx context.Context, from, to time.Time) ([]CalendarEventResponse, error) {
	if s.calendarCache != nil {
		if events, ok := s.calendarCache.GetSaleEvents(ctx, from, to); ok {
			return events, nil
		}
	}

	found, err := s.saleRepo.FindByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	events := make([]CalendarEventResponse, len(found))
	for i := range found {
		sale := &found[i]
		events[i] = CalendarEventResponse{
			SaleID:       sale.ID,
			CustomerName: sale.CustomerName,
			Donation:     sale.Donation,
			Total:        sale.Total(),
			Date:         sale.Date,
		}
	}

	if s.calendarCache != nil {
		s.calendarCache.SetSaleEvents(ctx, from, to, events)
	}
	return events, nil
}
