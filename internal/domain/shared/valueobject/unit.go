package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical base units. All raw-material arithmetic downstream of the
// registration boundary happens in one of these (or in an unconverted
// unit that has no canonical form, e.g. "un").
const (
	UnitGram       = "g"
	UnitMilliliter = "ml"
	UnitKilogram   = "kg"
	UnitLiter      = "l"
)

var thousand = decimal.NewFromInt(1000)

// NormalizeUnit canonicalizes a quantity/unit pair at the boundary:
// kilograms become grams and liters become milliliters, both scaled by
// 1000. Any other unit tag passes through unchanged. The match is
// case-insensitive and the returned unit is lowercased only when a
// conversion applies.
func NormalizeUnit(quantity decimal.Decimal, unit string) (decimal.Decimal, string) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case UnitKilogram:
		return quantity.Mul(thousand), UnitGram
	case UnitLiter:
		return quantity.Mul(thousand), UnitMilliliter
	default:
		return quantity, unit
	}
}

// NormalizeThreshold applies the same conversion to an optional minimum
// threshold. A nil threshold stays nil.
func NormalizeThreshold(threshold *decimal.Decimal, unit string) *decimal.Decimal {
	if threshold == nil {
		return nil
	}
	converted, _ := NormalizeUnit(*threshold, unit)
	return &converted
}

// IsCanonical reports whether the unit tag is already a base unit that
// required no conversion (grams, milliliters, or any passthrough tag).
func IsCanonical(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case UnitKilogram, UnitLiter:
		return false
	default:
		return true
	}
}
