package stock

import (
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the stock context
const (
	EventTypeMaterialRegistered  = "stock.material_registered"
	EventTypeMaterialRestocked   = "stock.material_restocked"
	EventTypeMaterialCostChanged = "stock.material_cost_changed"
	EventTypeStockDebited        = "stock.debited"
	EventTypeStockCredited       = "stock.credited"
	EventTypeStockBelowThreshold = "stock.below_threshold"
)

const aggregateTypeMaterial = "Material"

// MaterialRegisteredEvent is emitted when a material enters the ledger
type MaterialRegisteredEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// NewMaterialRegisteredEvent creates a MaterialRegisteredEvent
func NewMaterialRegisteredEvent(m *Material) *MaterialRegisteredEvent {
	return &MaterialRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMaterialRegistered, aggregateTypeMaterial, m.ID),
		Name:            m.Name,
		Unit:            m.Unit,
	}
}

// MaterialRestockedEvent is emitted when stock is added to a material
type MaterialRestockedEvent struct {
	shared.BaseDomainEvent
	Name          string          `json:"name"`
	AddedQuantity decimal.Decimal `json:"added_quantity"`
	AddedCost     decimal.Decimal `json:"added_cost"`
	NewQuantity   decimal.Decimal `json:"new_quantity"`
}

// NewMaterialRestockedEvent creates a MaterialRestockedEvent
func NewMaterialRestockedEvent(m *Material, addedQuantity, addedCost decimal.Decimal) *MaterialRestockedEvent {
	return &MaterialRestockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMaterialRestocked, aggregateTypeMaterial, m.ID),
		Name:            m.Name,
		AddedQuantity:   addedQuantity,
		AddedCost:       addedCost,
		NewQuantity:     m.Quantity,
	}
}

// MaterialCostChangedEvent is emitted when the weighted-average cost moves
type MaterialCostChangedEvent struct {
	shared.BaseDomainEvent
	Name    string          `json:"name"`
	OldCost decimal.Decimal `json:"old_cost"`
	NewCost decimal.Decimal `json:"new_cost"`
}

// NewMaterialCostChangedEvent creates a MaterialCostChangedEvent
func NewMaterialCostChangedEvent(m *Material, oldCost, newCost decimal.Decimal) *MaterialCostChangedEvent {
	return &MaterialCostChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMaterialCostChanged, aggregateTypeMaterial, m.ID),
		Name:            m.Name,
		OldCost:         oldCost,
		NewCost:         newCost,
	}
}

// StockDebitedEvent is emitted when production consumes a material
type StockDebitedEvent struct {
	shared.BaseDomainEvent
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// NewStockDebitedEvent creates a StockDebitedEvent
func NewStockDebitedEvent(m *Material, amount decimal.Decimal) *StockDebitedEvent {
	return &StockDebitedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDebited, aggregateTypeMaterial, m.ID),
		Name:            m.Name,
		Amount:          amount,
		NewQuantity:     m.Quantity,
	}
}

// StockCreditedEvent is emitted when a batch adjustment returns material
type StockCreditedEvent struct {
	shared.BaseDomainEvent
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// NewStockCreditedEvent creates a StockCreditedEvent
func NewStockCreditedEvent(m *Material, amount decimal.Decimal) *StockCreditedEvent {
	return &StockCreditedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockCredited, aggregateTypeMaterial, m.ID),
		Name:            m.Name,
		Amount:          amount,
		NewQuantity:     m.Quantity,
	}
}

// StockBelowThresholdEvent is emitted when a debit leaves the material at
// or under its minimum threshold
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
}

// NewStockBelowThresholdEvent creates a StockBelowThresholdEvent
func NewStockBelowThresholdEvent(m *Material) *StockBelowThresholdEvent {
	event := &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, aggregateTypeMaterial, m.ID),
		Name:            m.Name,
		Unit:            m.Unit,
		Quantity:        m.Quantity,
	}
	if m.MinQuantity != nil {
		event.MinQuantity = *m.MinQuantity
	}
	return event
}
