package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medsupply/backend/internal/domain/cart"
	"github.com/medsupply/backend/internal/domain/catalog"
	"github.com/medsupply/backend/internal/domain/shared"
)

// CartService manages per-session shopping carts. Persistence through the
// store is best-effort: a failing store is logged and the mutated cart is
// still returned, so the session degrades to memory-only operation instead
// of surfacing an error to the shopper.
type CartService struct {
	store       cart.Store
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(store cart.Store, productRepo catalog.ProductRepository, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		store:       store,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetCart returns the session's cart, or an empty cart if none is persisted
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	current, err := s.loadOrNew(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(current)
	return &response, nil
}

// AddItem adds a product with one or more size lines to the cart. Prices are
// snapshotted from the catalog at add time; an existing entry for the same
// product has matching size lines merged by summing quantities.
func (s *CartService) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Product is no longer available")
	}

	item := cart.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Sizes:     make([]cart.SizeLine, 0, len(req.Sizes)),
	}
	for _, sizeReq := range req.Sizes {
		size, ok := product.FindSize(sizeReq.SizeID)
		if !ok {
			return nil, shared.NewDomainError("SIZE_NOT_FOUND", "Size does not belong to this product")
		}
		item.Sizes = append(item.Sizes, cart.SizeLine{
			SizeID:    size.ID,
			Label:     size.Label,
			Quantity:  sizeReq.Quantity,
			UnitPrice: size.UnitPrice,
		})
	}

	current, err := s.loadOrNew(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := current.AddItem(item); err != nil {
		return nil, err
	}

	s.save(ctx, current)
	response := ToCartResponse(current)
	return &response, nil
}

// UpdateQuantity sets the quantity of one size line in the cart
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, req UpdateQuantityRequest) (*CartResponse, error) {
	current, err := s.loadOrNew(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := current.UpdateQuantity(req.ProductID, req.SizeID, req.Quantity); err != nil {
		return nil, err
	}

	s.save(ctx, current)
	response := ToCartResponse(current)
	return &response, nil
}

// RemoveItem removes a product from the cart. Removing a product that is
// not in the cart succeeds and returns the cart unchanged.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*CartResponse, error) {
	current, err := s.loadOrNew(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	current.RemoveItem(productID)

	s.save(ctx, current)
	response := ToCartResponse(current)
	return &response, nil
}

// ClearCart empties the cart and drops its persisted state
func (s *CartService) ClearCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	current, err := cart.NewCart(sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("Failed to delete persisted cart, session degrades to memory-only",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	response := ToCartResponse(current)
	return &response, nil
}

func (s *CartService) loadOrNew(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if sessionID == "" {
		return nil, shared.NewDomainError("INVALID_SESSION", "Session ID cannot be empty")
	}

	current, err := s.store.Load(ctx, sessionID)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		// A broken store must not block the shopper
		s.logger.Warn("Failed to load persisted cart, starting empty",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
	return cart.NewCart(sessionID)
}

func (s *CartService) save(ctx context.Context, current *cart.Cart) {
	if err := s.store.Save(ctx, current); err != nil {
		s.logger.Warn("Failed to persist cart, session degrades to memory-only",
			zap.String("session_id", current.SessionID),
			zap.Error(err))
	}
}
