package stock

import (
	"context"
	"fmt"

	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/shared"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/domain/stock"
	"go.uber.org/zap"
)

// LowStockHandler reacts to StockBelowThreshold events by notifying
// whoever does the purchasing.
type LowStockHandler struct {
	logger   *zap.Logger
	notifier LowStockNotifier
}

// LowStockNotifier sends low stock alerts. Implementations can support
// different channels.
type LowStockNotifier interface {
	SendAlert(ctx context.Context, alert LowStockAlert) error
}

// LowStockAlert describes a material that dropped to or under its
// threshold
type LowStockAlert struct {
	MaterialID   string `json:"material_id"`
	MaterialName string `json:"material_name"`
	Unit         string `json:"unit"`
	Quantity     string `json:"quantity"`
	MinQuantity  string `json:"min_quantity"`
	AlertType    string `json:"alert_type"` // "low_stock", "out_of_stock"
}

// NewLowStockHandler creates a handler for stock threshold events
func NewLowStockHandler(logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{logger: logger}
}

// WithNotifier sets the notifier for sending alerts
func (h *LowStockHandler) WithNotifier(notifier LowStockNotifier) *LowStockHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{stock.EventTypeStockBelowThreshold}
}

// Handle processes a StockBelowThresholdEvent
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	thresholdEvent, ok := event.(*stock.StockBelowThresholdEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			stock.EventTypeStockBelowThreshold, event.EventType())
	}

	h.logger.Warn("material below minimum threshold",
		zap.String("material_id", thresholdEvent.AggregateID().String()),
		zap.String("material", thresholdEvent.Name),
		zap.String("quantity", thresholdEvent.Quantity.String()),
		zap.String("min_quantity", thresholdEvent.MinQuantity.String()),
	)

	alertType := "low_stock"
	if !thresholdEvent.Quantity.IsPositive() {
		alertType = "out_of_stock"
	}

	if h.notifier != nil {
		alert := LowStockAlert{
			MaterialID:   thresholdEvent.AggregateID().String(),
			MaterialName: thresholdEvent.Name,
			Unit:         thresholdEvent.Unit,
			Quantity:     thresholdEvent.Quantity.String(),
			MinQuantity:  thresholdEvent.MinQuantity.String(),
			AlertType:    alertType,
		}
		if err := h.notifier.SendAlert(ctx, alert); err != nil {
			// Notification failure must not fail the event handling.
			h.logger.Error("failed to send low stock alert",
				zap.String("material", alert.MaterialName),
				zap.Error(err),
			)
		}
	}

	return nil
}

var _ shared.EventHandler = (*LowStockHandler)(nil)

// LoggingLowStockNotifier logs alerts instead of delivering them.
// Useful in development.
type LoggingLowStockNotifier struct {
	logger *zap.Logger
}

// NewLoggingLowStockNotifier creates a new logging notifier
func NewLoggingLowStockNotifier(logger *zap.Logger) *LoggingLowStockNotifier {
	return &LoggingLowStockNotifier{logger: logger}
}

// SendAlert logs the alert
func (n *LoggingLowStockNotifier) SendAlert(_ context.Context, alert LowStockAlert) error {
	n.logger.Warn("LOW STOCK ALERT",
		zap.String("type", alert.AlertType),
		zap.String("material", alert.MaterialName),
		zap.String("quantity", alert.Quantity),
		zap.String("minimum", alert.MinQuantity),
	)
	return nil
}

var _ LowStockNotifier = (*LoggingLowStockNotifier)(nil)
