package quotes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/catalog"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/quotes"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
)

// QuoteService handles quote use cases. Quotes never touch stock.
type QuoteService struct {
	quoteRepo      quotes.QuoteRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(quoteRepo quotes.QuoteRepository, productRepo catalog.ProductRepository) *QuoteService {
	return &QuoteService{
		quoteRepo:   quoteRepo,
		productRepo: productRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *QuoteService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *QuoteService) publishDomainEvents(ctx context.Context, quote *quotes.Quote) {
	if s.eventPublisher == nil {
		return
	}
	events := quote.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	quote.ClearDomainEvents()
}

// buildItems prices the requested lines from the catalog. Lines
// pointing at products that no longer exist are dropped, so a quote
// can still be saved while the catalog is being cleaned up.
func (s *QuoteService) buildItems(ctx context.Context, reqItems []QuoteItemRequest) ([]quotes.QuoteItem, error) {
	items := make([]quotes.QuoteItem, 0, len(reqItems))
	for _, reqItem := range reqItems {
		product, err := s.productRepo.FindByID(ctx, reqItem.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}

		price := reqItem.UnitPrice
		if price.IsZero() {
			price = product.Price
		}

		item, err := quotes.NewQuoteItem(product.ID, reqItem.Quantity, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Create registers a quote.
func (s *QuoteService) Create(ctx context.Context, req SaveQuoteRequest) (*QuoteResponse, error) {
	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	quote, err := quotes.NewQuote(req.CustomerName, req.Date, req.DiscountPercent, items)
	if err != nil {
		return nil, err
	}
	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Update edits a quote, replacing its lines.
func (s *QuoteService) Update(ctx context.Context, id uuid.UUID, req SaveQuoteRequest) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	if err := quote.Update(req.CustomerName, req.Date, req.DiscountPercent, items); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.ReplaceItems(ctx, quote); err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Delete removes a quote.
func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.quoteRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.quoteRepo.Delete(ctx, id)
}

// GetByID retrieves a quote with its lines
func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToQuoteResponse(quote)
	return &response, nil
}

// List returns quotes matching the filter
func (s *QuoteService) List(ctx context.Context, filter QuoteListFilter) ([]QuoteResponse, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	if filter.Customer != "" {
		domainFilter.Filters["customer"] = filter.Customer
	}

	found, err := s.quoteRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToQuoteResponses(found), nil
}
