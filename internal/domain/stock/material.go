package stock

import (
	"time"

	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Material represents a raw material in the stock ledger. It is the
// aggregate root for all stock movements: quantity on hand and the
// weighted-average unit cost live here and nowhere else.
//
// Quantity and UnitCost are always expressed in the canonical base unit
// (grams, milliliters, or an unconverted tag); conversion happens at the
// registration boundary, never at query time.
type Material struct {
	shared.BaseAggregateRoot
	Name        string           `gorm:"size:120;not null;uniqueIndex:idx_materials_name_unit,priority:1"`
	Unit        string           `gorm:"size:10;not null;uniqueIndex:idx_materials_name_unit,priority:2"`
	Quantity    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost    decimal.Decimal  `gorm:"type:decimal(18,6);not null;default:0"` // weighted average, per base unit
	MinQuantity *decimal.Decimal `gorm:"type:decimal(18,4)"`                    // low-stock threshold, optional
}

// TableName returns the table name for GORM
func (Material) TableName() string {
	return "materials"
}

// NewMaterial creates a new material. Name and unit must already be
// canonicalized by the caller; unitCost is per base unit.
func NewMaterial(name, unit string, quantity, unitCost decimal.Decimal, minQuantity *decimal.Decimal) (*Material, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Material name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Material unit cannot be empty")
	}

	m := &Material{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Unit:              unit,
		Quantity:          quantity,
		UnitCost:          unitCost,
		MinQuantity:       minQuantity,
	}

	m.AddDomainEvent(NewMaterialRegisteredEvent(m))

	return m, nil
}

// Restock adds purchased quantity to the ledger and recalculates the
// unit cost as a weighted average:
//
//	newCost = (oldQty*oldCost + addedTotalCost) / (oldQty + addedQty)
//
// When the resulting quantity is not positive the unit cost is left
// unchanged rather than recomputed (avoids a divide by zero and keeps
// the last known cost for alerting).
func (m *Material) Restock(addedQuantity, addedTotalCost decimal.Decimal) error {
	if addedQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Restock quantity cannot be negative")
	}

	oldCost := m.UnitCost
	oldValue := m.Quantity.Mul(m.UnitCost)
	newQuantity := m.Quantity.Add(addedQuantity)

	m.Quantity = newQuantity
	if newQuantity.IsPositive() {
		m.UnitCost = oldValue.Add(addedTotalCost).Div(newQuantity).Round(6)
	}
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMaterialRestockedEvent(m, addedQuantity, addedTotalCost))
	if !oldCost.Equal(m.UnitCost) {
		m.AddDomainEvent(NewMaterialCostChangedEvent(m, oldCost, m.UnitCost))
	}

	return nil
}

// Debit removes the given amount from the quantity on hand. There is
// deliberately no lower bound: single-unit batch adjustments debit
// without revalidating the run, so a material can go negative, which
// surfaces through low-stock alerting instead of a hard failure.
func (m *Material) Debit(amount decimal.Decimal) {
	m.Quantity = m.Quantity.Sub(amount)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewStockDebitedEvent(m, amount))
	if m.IsLowStock() {
		m.AddDomainEvent(NewStockBelowThresholdEvent(m))
	}
}

// Credit returns the given amount to the quantity on hand.
func (m *Material) Credit(amount decimal.Decimal) {
	m.Quantity = m.Quantity.Add(amount)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewStockCreditedEvent(m, amount))
}

// UpdateDetails changes name, unit and threshold on a registration edit.
// Quantity and unit cost are never touched here; those only move through
// Restock, Debit and Credit.
func (m *Material) UpdateDetails(name, unit string, minQuantity *decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Material name cannot be empty")
	}
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Material unit cannot be empty")
	}

	m.Name = name
	m.Unit = unit
	m.MinQuantity = minQuantity
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// IsLowStock reports whether the material is at or below its minimum
// threshold. Materials without a threshold never alert.
func (m *Material) IsLowStock() bool {
	return m.MinQuantity != nil && m.Quantity.LessThanOrEqual(*m.MinQuantity)
}

// TotalValue returns quantity * unit cost.
func (m *Material) TotalValue() decimal.Decimal {
	return m.Quantity.Mul(m.UnitCost)
}
