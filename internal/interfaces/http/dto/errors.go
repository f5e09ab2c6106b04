package dto

import "net/http"

// Error codes produced by the domain and application layers. Handlers
// map these to HTTP status codes in a single place so the mapping stays
// consistent across endpoints.
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeInvalidName         = "INVALID_NAME"
	ErrCodeInvalidUnit         = "INVALID_UNIT"
	ErrCodeInvalidAmount       = "INVALID_AMOUNT"
	ErrCodeInvalidYield        = "INVALID_YIELD"
	ErrCodeInvalidState        = "INVALID_STATE"
	ErrCodeDuplicateMaterial   = "DUPLICATE_MATERIAL"
	ErrCodeMaterialInUse       = "MATERIAL_IN_USE"
	ErrCodeInsufficientStock   = "INSUFFICIENT_STOCK"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeInvalidName:         http.StatusBadRequest,
	ErrCodeInvalidUnit:         http.StatusBadRequest,
	ErrCodeInvalidAmount:       http.StatusBadRequest,
	ErrCodeInvalidYield:        http.StatusBadRequest,
	ErrCodeInvalidState:        http.StatusConflict,
	ErrCodeDuplicateMaterial:   http.StatusConflict,
	ErrCodeMaterialInUse:       http.StatusConflict,
	ErrCodeInsufficientStock:   http.StatusUnprocessableEntity,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInternalError:       http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes default to 500.
func GetHTTPStatus(errorCode string) int {
	if status, ok := ErrorCodeHTTPStatus[errorCode]; ok {
		return status
	}
	return http.StatusInternalServerError
}
