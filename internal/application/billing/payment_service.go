package billing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medsupply/backend/internal/domain/billing"
	"github.com/medsupply/backend/internal/domain/shared"
)

// PaymentService reconciles orders against their payment transaction log.
// The stored payment status on the order is a cache of the derived summary;
// the transaction log is the source of truth.
type PaymentService struct {
	orderRepo billing.OrderRepository
	txRepo    billing.PaymentTransactionRepository
	logger    *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	orderRepo billing.OrderRepository,
	txRepo billing.PaymentTransactionRepository,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		orderRepo: orderRepo,
		txRepo:    txRepo,
		logger:    logger,
	}
}

// GetOrder returns an order with its derived payment summary. When the
// transaction log cannot be read the summary falls back to the stored
// payment status rather than failing the request.
func (s *PaymentService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order, s.summarize(ctx, order))
	return &response, nil
}

// GetOrderByNumber returns an order looked up by its order number
func (s *PaymentService) GetOrderByNumber(ctx context.Context, number string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order, s.summarize(ctx, order))
	return &response, nil
}

// ListOrders returns a page of orders. List rows carry the fallback summary
// derived from the stored status; the full reconciliation runs on detail
// requests only.
func (s *PaymentService) ListOrders(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.Search = filter.Search
	if filter.Status != "" {
		repoFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		summary := billing.FallbackPaymentSummary(orders[i].TotalAmount, orders[i].PaymentStatus)
		responses[i] = ToOrderResponse(&orders[i], summary)
	}

	page := shared.NewPaginated(responses, total, repoFilter.Page, repoFilter.PageSize)
	return &page, nil
}

// ListTransactions returns the payment log for an order, oldest first
func (s *PaymentService) ListTransactions(ctx context.Context, orderID uuid.UUID) ([]TransactionResponse, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}

	transactions, err := s.txRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = ToTransactionResponse(&transactions[i])
	}
	return responses, nil
}

// RecordPayment appends a payment event to an order's transaction log and
// refreshes the stored payment status from the recomputed summary
func (s *PaymentService) RecordPayment(ctx context.Context, orderID uuid.UUID, req RecordPaymentRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	tx, err := billing.NewPaymentTransaction(order.ID, billing.PaymentType(req.Type), req.Status, req.Amount)
	if err != nil {
		return nil, err
	}
	tx.WithReference(req.Reference)

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	summary := s.summarize(ctx, order)
	if summary.Status() != order.PaymentStatus {
		if err := s.orderRepo.UpdatePaymentStatus(ctx, order.ID, summary.Status()); err != nil {
			// The stored status is only a cache; the next reconciliation heals it
			s.logger.Warn("Failed to refresh stored payment status",
				zap.String("order_number", order.Number),
				zap.Error(err))
		} else {
			order.PaymentStatus = summary.Status()
		}
	}

	response := ToOrderResponse(order, summary)
	return &response, nil
}

func (s *PaymentService) summarize(ctx context.Context, order *billing.Order) billing.PaymentSummary {
	transactions, err := s.txRepo.FindByOrder(ctx, order.ID)
	if err != nil {
		s.logger.Warn("Failed to load payment transactions, using stored status",
			zap.String("order_number", order.Number),
			zap.Error(err))
		return billing.FallbackPaymentSummary(order.TotalAmount, order.PaymentStatus)
	}
	return billing.CalculatePaymentSummary(order.TotalAmount, order.PaymentStatus, transactions)
}
