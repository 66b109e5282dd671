package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medsupply/backend/internal/domain/catalog"
	"github.com/medsupply/backend/internal/domain/inventory"
	"github.com/medsupply/backend/internal/domain/shared"
)

// DefaultHistoryLimit caps product history queries when no limit is given
const DefaultHistoryLimit = 50

// MaxHistoryLimit is the hard cap on product history queries
const MaxHistoryLimit = 500

// StockService records stock movements against the append-only ledger.
// Every stock change goes through here: the product counter is mutated with
// a single atomic conditional update, and only after that write succeeds is
// the ledger row appended.
type StockService struct {
	productRepo    catalog.ProductRepository
	movementRepo   inventory.StockMovementRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	productRepo catalog.ProductRepository,
	movementRepo inventory.StockMovementRepository,
	logger *zap.Logger,
) *StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RecordMovement applies one stock movement: the signed delta derived from
// the movement type is pushed to the product counter atomically, then the
// ledger row is appended. If the ledger write fails the counter change is
// compensated, so a returned error always means no net stock change.
func (s *StockService) RecordMovement(ctx context.Context, req RecordMovementRequest, recordedBy *uuid.UUID) (*MovementResponse, error) {
	movementType := inventory.MovementType(req.Type)
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown movement type: "+req.Type)
	}

	signed, err := movementType.SignedQuantity(req.Quantity)
	if err != nil {
		return nil, err
	}

	newStock, err := s.productRepo.AdjustStock(ctx, req.ProductID, signed)
	if err != nil {
		if errors.Is(err, shared.ErrInsufficientStock) {
			return nil, s.insufficientStockError(ctx, req.ProductID, signed)
		}
		return nil, err
	}

	movement, err := inventory.NewStockMovement(req.ProductID, movementType, signed, newStock-signed, newStock)
	if err != nil {
		s.compensate(ctx, req.ProductID, signed)
		return nil, err
	}
	movement.WithReference(req.ReferenceID).WithNotes(req.Notes)
	if recordedBy != nil {
		movement.WithRecordedBy(*recordedBy)
	}
	if req.OccurredAt != nil {
		movement.WithOccurredAt(*req.OccurredAt)
	}

	if err := s.movementRepo.Create(ctx, movement); err != nil {
		s.logger.Error("Ledger append failed, compensating stock counter",
			zap.String("product_id", req.ProductID.String()),
			zap.Int64("quantity", signed),
			zap.Error(err))
		s.compensate(ctx, req.ProductID, signed)
		return nil, err
	}

	s.publishMovementEvents(ctx, movement)

	response := ToMovementResponse(movement)
	return &response, nil
}

// RecordBulkMovements applies a batch of movements sequentially. Each
// movement commits independently: a failure is recorded in the result and
// the batch continues, so earlier successes stay applied.
func (s *StockService) RecordBulkMovements(ctx context.Context, req BulkMovementRequest, recordedBy *uuid.UUID) (*BulkMovementResult, error) {
	if len(req.Movements) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Bulk request must contain at least one movement")
	}

	result := &BulkMovementResult{
		Succeeded: make([]MovementResponse, 0, len(req.Movements)),
		Failed:    make([]BulkMovementFailure, 0),
	}

	for i, movementReq := range req.Movements {
		response, err := s.RecordMovement(ctx, movementReq, recordedBy)
		if err != nil {
			result.Failed = append(result.Failed, BulkMovementFailure{
				Index:   i,
				Code:    errorCode(err),
				Message: err.Error(),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, *response)
	}

	return result, nil
}

// GetProductHistory returns the most recent movements for a product,
// newest first
func (s *StockService) GetProductHistory(ctx context.Context, productID uuid.UUID, limit int) ([]MovementResponse, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.FindByProduct(ctx, productID, limit)
	if err != nil {
		return nil, err
	}

	return ToMovementResponses(movements), nil
}

// GetMovementReport aggregates all movements in a date range into one
// summary row per product, enriched with the product name and SKU
func (s *StockService) GetMovementReport(ctx context.Context, start, end time.Time) (*MovementReportResponse, error) {
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End date must not precede start date")
	}

	movements, err := s.movementRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summaries := inventory.SummarizeMovements(movements)

	ids := make([]uuid.UUID, len(summaries))
	for i := range summaries {
		ids[i] = summaries[i].ProductID
	}
	names := s.productNames(ctx, ids)

	report := &MovementReportResponse{
		Start:    start,
		End:      end,
		Products: make([]ProductSummaryResponse, len(summaries)),
	}
	for i, summary := range summaries {
		row := ProductSummaryResponse{
			ProductID: summary.ProductID,
			Sold:      summary.Sold,
			Received:  summary.Received,
			Adjusted:  summary.Adjusted,
			Returned:  summary.Returned,
			NetChange: summary.NetChange,
		}
		if product, ok := names[summary.ProductID]; ok {
			row.ProductName = product.Name
			row.SKU = product.SKU
		}
		report.Products[i] = row
	}

	return report, nil
}

// ListBelowReorderLevel returns active products whose stock has fallen
// below their reorder threshold
func (s *StockService) ListBelowReorderLevel(ctx context.Context) ([]LowStockProductResponse, error) {
	products, err := s.productRepo.FindBelowReorderLevel(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]LowStockProductResponse, len(products))
	for i := range products {
		responses[i] = LowStockProductResponse{
			ProductID:     products[i].ID,
			SKU:           products[i].SKU,
			Name:          products[i].Name,
			StockQuantity: products[i].StockQuantity,
			ReorderLevel:  products[i].ReorderLevel,
		}
	}
	return responses, nil
}

// insufficientStockError enriches the repository's sentinel with the current
// counter value so callers can report both sides of the shortfall
func (s *StockService) insufficientStockError(ctx context.Context, productID uuid.UUID, requested int64) error {
	current := int64(0)
	if product, err := s.productRepo.FindByID(ctx, productID); err == nil {
		current = product.StockQuantity
	}
	return inventory.NewInsufficientStockError(productID, current, requested)
}

// compensate reverses a counter change after a failed ledger append
func (s *StockService) compensate(ctx context.Context, productID uuid.UUID, applied int64) {
	if _, err := s.productRepo.AdjustStock(ctx, productID, -applied); err != nil {
		s.logger.Error("Stock compensation failed, counter and ledger have diverged",
			zap.String("product_id", productID.String()),
			zap.Int64("applied", applied),
			zap.Error(err))
	}
}

func (s *StockService) publishMovementEvents(ctx context.Context, movement *inventory.StockMovement) {
	if s.eventPublisher == nil {
		return
	}

	events := []shared.DomainEvent{inventory.NewStockMovementRecordedEvent(movement)}

	if movement.IsOutflow() {
		if product, err := s.productRepo.FindByID(ctx, movement.ProductID); err == nil && product.IsBelowReorderLevel() {
			events = append(events, inventory.NewStockBelowReorderLevelEvent(product.ID, product.StockQuantity, product.ReorderLevel))
		}
	}

	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish stock movement events", zap.Error(err))
	}
}

func (s *StockService) productNames(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]catalog.Product {
	names := make(map[uuid.UUID]catalog.Product, len(ids))
	if len(ids) == 0 {
		return names
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("Failed to enrich movement report with product names", zap.Error(err))
		return names
	}
	for i := range products {
		names[products[i].ID] = products[i]
	}
	return names
}

func errorCode(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	var stockErr *inventory.InsufficientStockError
	if errors.As(err, &stockErr) {
		return "INSUFFICIENT_STOCK"
	}
	return "INTERNAL_ERROR"
}
