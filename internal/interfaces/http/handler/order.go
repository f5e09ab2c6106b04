package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ordersapp "github.com/ryannnnnnnnnns/Confeitaria/internal/application/orders"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/interfaces/http/dto"
)

// OrderHandler exposes customer order endpoints
type OrderHandler struct {
	BaseHandler
	orders *ordersapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *ordersapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterRoutes registers order routes on the API group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/orders")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/by-delivery-date", h.ListByDeliveryDate)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.POST("/:id/confirm", h.Confirm)
	group.POST("/:id/deliver", h.Deliver)
	group.POST("/:id/cancel", h.Cancel)
	group.DELETE("/:id", h.Delete)
}

// Create records a customer order
func (h *OrderHandler) Create(c *gin.Context) {
	var req ordersapp.SaveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List returns orders matching the query filters
func (h *OrderHandler) List(c *gin.Context) {
	var filter ordersapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// ListByDeliveryDate returns orders due on a given day
func (h *OrderHandler) ListByDeliveryDate(c *gin.Context) {
	var req dto.DateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "date query parameter is required")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date")
		return
	}

	orders, err := h.orders.FindByDeliveryDate(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get returns a single order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Update replaces an order while it is still pending
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req ordersapp.SaveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orders.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Confirm moves a pending order to confirmed
func (h *OrderHandler) Confirm(c *gin.Context) {
	h.transition(c, h.orders.Confirm)
}

// Deliver moves a confirmed order to delivered
func (h *OrderHandler) Deliver(c *gin.Context) {
	h.transition(c, h.orders.Deliver)
}

// Cancel cancels an order that has not been delivered
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.orders.Cancel)
}

func (h *OrderHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*ordersapp.OrderResponse, error)) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	order, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete removes an order
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
