package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/catalog"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/orders"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
)

// OrderService handles customer order use cases. Orders never move
// stock; they feed the production planning views.
type OrderService struct {
	orderRepo      orders.OrderRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo orders.OrderRepository, productRepo catalog.ProductRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *OrderService) publishDomainEvents(ctx context.Context, order *orders.Order) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}

// buildItems resolves each line's product and fills in the catalog
// price when the request does not carry one.
func (s *OrderService) buildItems(ctx context.Context, reqItems []OrderItemRequest) ([]orders.OrderItem, error) {
	items := make([]orders.OrderItem, 0, len(reqItems))
	for _, reqItem := range reqItems {
		product, err := s.productRepo.FindByID(ctx, reqItem.ProductID)
		if err != nil {
			return nil, err
		}

		price := reqItem.UnitPrice
		if price.IsZero() {
			price = product.Price
		}

		item, err := orders.NewOrderItem(product.ID, reqItem.Quantity, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Create registers a pending order.
func (s *OrderService) Create(ctx context.Context, req SaveOrderRequest) (*OrderResponse, error) {
	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	order, err := orders.NewOrder(req.CustomerName, req.DeliveryDate, req.Notes, items)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Update edits a pending order, replacing its lines.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req SaveOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	if err := order.Update(req.CustomerName, req.DeliveryDate, req.Notes, items); err != nil {
		return nil, err
	}
	if err := s.orderRepo.ReplaceItems(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Confirm moves an order to confirmed.
func (s *OrderService) Confirm(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*orders.Order).Confirm)
}

// Deliver moves an order to delivered.
func (s *OrderService) Deliver(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*orders.Order).Deliver)
}

// Cancel cancels an order.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*orders.Order).Cancel)
}

func (s *OrderService) transition(ctx context.Context, id uuid.UUID, fn func(*orders.Order) error) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes an order outright.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, id)
}

// GetByID retrieves an order with its lines
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List returns orders matching the filter
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = filter.OrderBy
	domainFilter.OrderDir = filter.OrderDir
	if filter.Customer != "" {
		domainFilter.Filters["customer"] = filter.Customer
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	found, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(found), nil
}

// FindByDeliveryDate returns the orders due on one day
func (s *OrderService) FindByDeliveryDate(ctx context.Context, date time.Time) ([]OrderResponse, error) {
	found, err := s.orderRepo.FindByDeliveryDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(found), nil
}
