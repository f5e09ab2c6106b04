package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/ryannnnnnnnnns/Confeitaria/internal/application/catalog"
)

// ProductHandler exposes product and recipe endpoints
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// RegisterRoutes registers product routes on the API group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/products")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.POST("/recalculate-prices", h.RecalculatePrices)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.PUT("/:id/recipe", h.SetRecipe)
	group.GET("/:id/cost", h.Cost)
	group.DELETE("/:id", h.Delete)
}

// Create adds a product to the catalog
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// List returns products matching the query filters
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Get returns a single product with its recipe
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Update edits product details
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// SetRecipe replaces the whole recipe of a product
func (h *ProductHandler) SetRecipe(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req catalogapp.SetRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.products.SetRecipe(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Cost returns the computed production cost and suggested price
func (h *ProductHandler) Cost(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	cost, err := h.products.Cost(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cost)
}

// RecalculatePrices reprices the whole catalog from current material costs
func (h *ProductHandler) RecalculatePrices(c *gin.Context) {
	result, err := h.products.RecalculatePrices(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a product and its dependent records
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
