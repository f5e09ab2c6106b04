package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeDuplicateMaterial, http.StatusConflict},
		{ErrCodeMaterialInUse, http.StatusConflict},
		{ErrCodeInvalidUnit, http.StatusBadRequest},
		{ErrCodeInvalidAmount, http.StatusBadRequest},
		{ErrCodeInvalidYield, http.StatusBadRequest},
		{ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeInvalidState, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{"SOMETHING_UNKNOWN", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}
