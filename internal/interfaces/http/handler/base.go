package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/infrastructure/logger"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// BaseHandler provides shared response helpers for all handlers
type BaseHandler struct{}

// Success sends a 200 response wrapping data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response wrapping data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response with an INVALID_INPUT error
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.respondError(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, message)
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.respondError(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// HandleError maps a service error to an HTTP response. Domain errors
// carry their own code, everything else becomes a 500 without leaking
// internals to the client.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.respondError(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	logger.FromContext(c.Request.Context()).Error("unhandled service error",
		zap.Error(err),
		zap.String("path", c.FullPath()),
	)
	h.respondError(c, http.StatusInternalServerError, dto.ErrCodeInternalError, "An internal error occurred")
}

func (h *BaseHandler) respondError(c *gin.Context, status int, code, message string) {
	requestID := logger.GetRequestID(c.Request.Context())
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// parseID binds and parses the :id path parameter
func (h *BaseHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// parseDate parses a date accepting both plain dates and RFC3339
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// parsePeriod binds and parses the from/to query range
func (h *BaseHandler) parsePeriod(c *gin.Context) (from, to time.Time, ok bool) {
	var req dto.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "from and to query parameters are required")
		return time.Time{}, time.Time{}, false
	}
	from, err := parseDate(req.From)
	if err != nil {
		h.BadRequest(c, "Invalid from date")
		return time.Time{}, time.Time{}, false
	}
	to, err = parseDate(req.To)
	if err != nil {
		h.BadRequest(c, "Invalid to date")
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		h.BadRequest(c, "to must not be before from")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
