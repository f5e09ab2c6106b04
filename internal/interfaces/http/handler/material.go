package handler

import (
	"github.com/gin-gonic/gin"
	stockapp "github.com/ryannnnnnnnnns/Confeitaria/internal/application/stock"
)

// MaterialHandler exposes raw material endpoints
type MaterialHandler struct {
	BaseHandler
	materials *stockapp.MaterialService
}

// NewMaterialHandler creates a new MaterialHandler
func NewMaterialHandler(materials *stockapp.MaterialService) *MaterialHandler {
	return &MaterialHandler{materials: materials}
}

// RegisterRoutes registers material routes on the API group
func (h *MaterialHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/materials")
	group.POST("", h.Register)
	group.GET("", h.List)
	group.GET("/low-stock", h.ListLowStock)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.POST("/:id/restock", h.Restock)
	group.DELETE("/:id", h.Delete)
}

// Register creates a material from an initial purchase
func (h *MaterialHandler) Register(c *gin.Context) {
	var req stockapp.RegisterMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	material, err := h.materials.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, material)
}

// List returns materials matching the query filters
func (h *MaterialHandler) List(c *gin.Context) {
	var filter stockapp.MaterialListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	materials, err := h.materials.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, materials)
}

// ListLowStock returns materials at or below their minimum quantity
func (h *MaterialHandler) ListLowStock(c *gin.Context) {
	materials, err := h.materials.ListLowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, materials)
}

// Get returns a single material
func (h *MaterialHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	material, err := h.materials.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, material)
}

// Update edits material details without touching stock levels
func (h *MaterialHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req stockapp.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	material, err := h.materials.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, material)
}

// Restock merges a new purchase into existing stock
func (h *MaterialHandler) Restock(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req stockapp.RestockMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	material, err := h.materials.Restock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, material)
}

// Delete removes a material and its recipe references
func (h *MaterialHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.materials.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
