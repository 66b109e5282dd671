package inventory

import (
	"context"

	"go.uber.org/zap"

	"github.com/medsupply/backend/internal/domain/inventory"
	"github.com/medsupply/backend/internal/domain/shared"
)

// LowStockAlertHandler reacts to reorder-level events by logging an alert.
// It is the hook point for future notification channels (email, webhook).
type LowStockAlertHandler struct {
	logger *zap.Logger
}

var _ shared.EventHandler = (*LowStockAlertHandler)(nil)

// NewLowStockAlertHandler creates a new LowStockAlertHandler
func NewLowStockAlertHandler(logger *zap.Logger) *LowStockAlertHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LowStockAlertHandler{logger: logger}
}

// EventTypes returns the event types this handler subscribes to
func (h *LowStockAlertHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowReorder}
}

// Handle logs a reorder alert for the affected product
func (h *LowStockAlertHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	alert, ok := evt.(*inventory.StockBelowReorderLevelEvent)
	if !ok {
		return nil
	}

	h.logger.Warn("product stock below reorder level",
		zap.String("product_id", alert.AggregateID().String()),
		zap.Int64("current_stock", alert.CurrentStock),
		zap.Int64("reorder_level", alert.ReorderLevel),
	)
	return nil
}
