package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// MaterialSortFields contains allowed sort fields for raw materials
var MaterialSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"unit":         true,
	"quantity":     true,
	"unit_cost":    true,
	"min_quantity": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"kind":       true,
	"yield":      true,
	"price":      true,
}

// BatchSortFields contains allowed sort fields for production batches
var BatchSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"date":       true,
	"quantity":   true,
	"product_id": true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"date":          true,
	"customer_name": true,
}

// OrderSortFields contains allowed sort fields for customer orders
var OrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"delivery_date": true,
	"customer_name": true,
	"status":        true,
}

// QuoteSortFields contains allowed sort fields for quotes
var QuoteSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"date":          true,
	"customer_name": true,
}
