package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	productionapp "github.com/ryannnnnnnnnns/Confeitaria/internal/application/production"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/interfaces/http/dto"
)

// ProductionHandler exposes production batch endpoints
type ProductionHandler struct {
	BaseHandler
	production *productionapp.ProductionService
}

// NewProductionHandler creates a new ProductionHandler
func NewProductionHandler(production *productionapp.ProductionService) *ProductionHandler {
	return &ProductionHandler{production: production}
}

// RegisterRoutes registers production routes on the API group
func (h *ProductionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/production")
	group.POST("/batches", h.Register)
	group.GET("/batches", h.List)
	group.GET("/batches/by-date", h.ListByDate)
	group.GET("/batches/available", h.Available)
	group.GET("/batches/:id", h.Get)
	group.GET("/batches/:id/availability", h.Availability)
	group.POST("/batches/:id/increment", h.Increment)
	group.POST("/batches/:id/decrement", h.Decrement)
	group.POST("/batches/:id/remove-quantity", h.RemoveQuantity)
	group.DELETE("/batches/:id", h.Remove)
	group.POST("/validate-stock", h.ValidateStock)
	group.GET("/calendar", h.Calendar)
}

// ValidateStock checks whether material stock covers a planned batch
func (h *ProductionHandler) ValidateStock(c *gin.Context) {
	var req productionapp.ValidateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.production.ValidateStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Register records a production run and debits its materials. The run
// is rejected as a whole when stock cannot cover it.
func (h *ProductionHandler) Register(c *gin.Context) {
	var req productionapp.RegisterBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batches, err := h.production.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, batches)
}

// List returns batches matching the query filters
func (h *ProductionHandler) List(c *gin.Context) {
	var filter productionapp.BatchListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batches, err := h.production.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// ListByDate returns batches produced on a given day
func (h *ProductionHandler) ListByDate(c *gin.Context) {
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

	batches, err := h.production.FindByDate(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// Available lists batches with units not yet allocated to sales. An
// optional exclude_sale query releases that sale's own allocations.
func (h *ProductionHandler) Available(c *gin.Context) {
	var excludeSale *uuid.UUID
	if raw := c.Query("exclude_sale"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid exclude_sale")
			return
		}
		excludeSale = &id
	}

	batches, err := h.production.AvailableForSale(c.Request.Context(), excludeSale)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// Get returns a single batch
func (h *ProductionHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	batch, err := h.production.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// Availability returns how many units of a batch are still unsold
func (h *ProductionHandler) Availability(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	availability, err := h.production.Availability(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, availability)
}

// Increment adds one unit to a batch, debiting materials
func (h *ProductionHandler) Increment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	batch, err := h.production.Increment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// Decrement removes one unit from a batch, crediting materials back
func (h *ProductionHandler) Decrement(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	batch, err := h.production.Decrement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// RemoveQuantity removes several units from a batch at once
func (h *ProductionHandler) RemoveQuantity(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req productionapp.RemoveQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.production.RemoveQuantity(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// Remove deletes a batch, crediting its materials back
func (h *ProductionHandler) Remove(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.production.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Calendar returns production events for a period as a calendar feed
func (h *ProductionHandler) Calendar(c *gin.Context) {
	from, to, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	events, err := h.production.CalendarEvents(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}
