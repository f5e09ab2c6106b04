package handler

import (
	"github.com/gin-gonic/gin"
	quotesapp "github.com/ryannnnnnnnnns/Confeitaria/internal/application/quotes"
)

// QuoteHandler exposes price quote endpoints
type QuoteHandler struct {
	BaseHandler
	quotes *quotesapp.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quotes *quotesapp.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// RegisterRoutes registers quote routes on the API group
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/quotes")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// Create builds a quote pricing items from the current catalog
func (h *QuoteHandler) Create(c *gin.Context) {
	var req quotesapp.SaveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quote, err := h.quotes.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, quote)
}

// List returns quotes matching the query filters
func (h *QuoteHandler) List(c *gin.Context) {
	var filter quotesapp.QuoteListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quotes, err := h.quotes.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quotes)
}

// Get returns a single quote with its items
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	quote, err := h.quotes.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// Update replaces a quote, repricing items from the catalog
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req quotesapp.SaveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quote, err := h.quotes.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// Delete removes a quote
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.quotes.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
