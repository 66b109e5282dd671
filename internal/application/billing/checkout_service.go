package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appinventory "github.com/medsupply/backend/internal/application/inventory"
	"github.com/medsupply/backend/internal/domain/billing"
	"github.com/medsupply/backend/internal/domain/cart"
	"github.com/medsupply/backend/internal/domain/shared"
)

// StockRecorder records ledger movements on behalf of checkout
type StockRecorder interface {
	RecordMovement(ctx context.Context, req appinventory.RecordMovementRequest, recordedBy *uuid.UUID) (*appinventory.MovementResponse, error)
}

// CheckoutService converts a session's cart into a confirmed order, recording
// one sale movement per product against the inventory ledger. Stock shortfall
// for any product aborts the checkout: movements already recorded are reversed
// with restoration movements and the order is cancelled.
type CheckoutService struct {
	orderRepo billing.OrderRepository
	cartStore cart.Store
	stock     StockRecorder
	logger    *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	orderRepo billing.OrderRepository,
	cartStore cart.Store,
	stock StockRecorder,
	logger *zap.Logger,
) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		orderRepo: orderRepo,
		cartStore: cartStore,
		stock:     stock,
		logger:    logger,
	}
}

// Checkout places an order from the session's cart
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*OrderResponse, error) {
	if sessionID == "" {
		return nil, shared.NewDomainError("INVALID_SESSION", "Session ID cannot be empty")
	}

	current, err := s.cartStore.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
		}
		return nil, err
	}
	if current.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
	}

	lines, err := orderLinesFromCart(current)
	if err != nil {
		return nil, err
	}

	order, err := billing.NewOrder(generateOrderNumber(), lines)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != nil {
		order.SetCustomer(*req.CustomerID)
	}
	order.Notes = req.Notes

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.recordSales(ctx, order, current); err != nil {
		if cancelErr := s.orderRepo.UpdateStatus(ctx, order.ID, billing.OrderStatusCancelled); cancelErr != nil {
			s.logger.Error("Failed to cancel order after stock shortfall",
				zap.String("order_number", order.Number),
				zap.Error(cancelErr))
		}
		return nil, err
	}

	if err := order.Confirm(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, billing.OrderStatusConfirmed); err != nil {
		return nil, err
	}

	// Best-effort: a stale persisted cart degrades the session, not the order
	if err := s.cartStore.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	summary := billing.FallbackPaymentSummary(order.TotalAmount, order.PaymentStatus)
	response := ToOrderResponse(order, summary)
	return &response, nil
}

// recordSales records one sale movement per product, aggregated across the
// product's size lines. On failure the movements already recorded are
// reversed with restoration movements referencing the same order.
func (s *CheckoutService) recordSales(ctx context.Context, order *billing.Order, current *cart.Cart) error {
	recorded := make([]cart.CartItem, 0, len(current.Items))

	for i := range current.Items {
		item := &current.Items[i]
		_, err := s.stock.RecordMovement(ctx, appinventory.RecordMovementRequest{
			ProductID:   item.ProductID,
			Type:        inventorySale,
			Quantity:    item.Quantity(),
			ReferenceID: order.Number,
		}, nil)
		if err != nil {
			s.rollbackSales(ctx, order.Number, recorded)
			return err
		}
		recorded = append(recorded, *item)
	}

	return nil
}

func (s *CheckoutService) rollbackSales(ctx context.Context, orderNumber string, recorded []cart.CartItem) {
	for i := range recorded {
		_, err := s.stock.RecordMovement(ctx, appinventory.RecordMovementRequest{
			ProductID:   recorded[i].ProductID,
			Type:        inventoryRestoration,
			Quantity:    recorded[i].Quantity(),
			ReferenceID: orderNumber,
			Notes:       "Checkout aborted",
		}, nil)
		if err != nil {
			s.logger.Error("Failed to restore stock for aborted checkout",
				zap.String("order_number", orderNumber),
				zap.String("product_id", recorded[i].ProductID.String()),
				zap.Error(err))
		}
	}
}

func orderLinesFromCart(current *cart.Cart) ([]billing.OrderLine, error) {
	lines := make([]billing.OrderLine, 0, len(current.Items))
	for i := range current.Items {
		item := &current.Items[i]
		for _, size := range item.Sizes {
			sizeID := size.SizeID
			description := item.Name
			if size.Label != "" {
				description = item.Name + " / " + size.Label
			}
			line, err := billing.NewOrderLine(item.ProductID, &sizeID, description, size.Quantity, size.UnitPrice)
			if err != nil {
				return nil, err
			}
			lines = append(lines, *line)
		}
	}
	return lines, nil
}

// Movement type names owned by the inventory domain; redeclared as strings
// here to keep the DTO boundary string-typed
const (
	inventorySale        = "sale"
	inventoryRestoration = "restoration"
)

// generateOrderNumber produces a human-readable, collision-resistant order
// number such as ORD-20260901-1A2B3C4D
func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
