package handler

import (
	"github.com/gin-gonic/gin"
	salesapp "github.com/ryannnnnnnnnns/Confeitaria/internal/application/sales"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/interfaces/http/dto"
)

// SaleHandler exposes sale endpoints
type SaleHandler struct {
	BaseHandler
	sales *salesapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(sales *salesapp.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// RegisterRoutes registers sale routes on the API group
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sales")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/by-date", h.ListByDate)
	group.GET("/by-period", h.ListByPeriod)
	group.GET("/calendar", h.Calendar)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// Create records a sale allocating units from production batches
func (h *SaleHandler) Create(c *gin.Context) {
	var req salesapp.SaveSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.sales.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// List returns sales matching the query filters
func (h *SaleHandler) List(c *gin.Context) {
	var filter salesapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sales, err := h.sales.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sales)
}

// ListByDate returns sales made on a given day
func (h *SaleHandler) ListByDate(c *gin.Context) {
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

	sales, err := h.sales.FindByDate(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sales)
}

// ListByPeriod returns sales within a date range
func (h *SaleHandler) ListByPeriod(c *gin.Context) {
	from, to, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	sales, err := h.sales.FindByPeriod(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sales)
}

// Get returns a single sale with its items
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	sale, err := h.sales.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Update replaces a sale, revalidating batch availability
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req salesapp.SaveSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.sales.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Delete removes a sale, freeing its batch allocations
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.sales.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Calendar returns sale events for a period as a calendar feed
func (h *SaleHandler) Calendar(c *gin.Context) {
	from, to, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	events, err := h.sales.CalendarEvents(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}
