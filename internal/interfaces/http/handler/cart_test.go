package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/medsupply/backend/internal/application/cart"
	"github.com/medsupply/backend/internal/domain/catalog"
	"github.com/medsupply/backend/internal/domain/shared"
	"github.com/medsupply/backend/internal/infrastructure/cartstore"
	"github.com/medsupply/backend/internal/interfaces/http/dto"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindBelowReorderLevel(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (int64, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(int64), args.Error(1)
}

func newCartRouter(t *testing.T, repo catalog.ProductRepository) *gin.Engine {
	t.Helper()

	store := cartstore.NewMemoryStore(time.Hour)
	service := cartapp.NewCartService(store, repo, zap.NewNop())
	h := NewCartHandler(service)

	engine := gin.New()
	carts := engine.Group("/cart")
	carts.GET("", h.Get)
	carts.POST("/items", h.AddItem)
	carts.PUT("/items", h.UpdateQuantity)
	carts.DELETE("/items/:product_id", h.RemoveItem)
	carts.DELETE("", h.Clear)
	return engine
}

func testProduct(t *testing.T) (*catalog.Product, *catalog.ProductSize) {
	t.Helper()

	product, err := catalog.NewProduct("GLV-NTR-001", "Nitrile Exam Gloves", decimal.NewFromFloat(12.50))
	require.NoError(t, err)
	size, err := product.AddSize("Medium", decimal.NewFromFloat(12.50))
	require.NoError(t, err)
	return product, size
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(SessionIDHeader, sessionID)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCartHandlerRequiresSessionID(t *testing.T) {
	engine := newCartRouter(t, new(MockProductRepository))

	w := doJSON(t, engine, http.MethodGet, "/cart", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestCartHandlerGetEmptyCart(t *testing.T) {
	engine := newCartRouter(t, new(MockProductRepository))

	w := doJSON(t, engine, http.MethodGet, "/cart", "session-1", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "session-1", data["session_id"])
	assert.Empty(t, data["items"])
}

func TestCartHandlerAddItem(t *testing.T) {
	repo := new(MockProductRepository)
	product, size := testProduct(t)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	engine := newCartRouter(t, repo)

	body := map[string]any{
		"product_id": product.ID.String(),
		"sizes": []map[string]any{
			{"size_id": size.ID.String(), "quantity": 3},
		},
	}
	w := doJSON(t, engine, http.MethodPost, "/cart/items", "session-1", body)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["item_count"])
	assert.Equal(t, "37.5", data["subtotal"])

	repo.AssertExpectations(t)
}

func TestCartHandlerAddItemUnknownProduct(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	engine := newCartRouter(t, repo)

	body := map[string]any{
		"product_id": uuid.New().String(),
		"sizes": []map[string]any{
			{"size_id": uuid.New().String(), "quantity": 1},
		},
	}
	w := doJSON(t, engine, http.MethodPost, "/cart/items", "session-1", body)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartHandlerAddItemValidation(t *testing.T) {
	engine := newCartRouter(t, new(MockProductRepository))

	// quantity below minimum
	body := map[string]any{
		"product_id": uuid.New().String(),
		"sizes": []map[string]any{
			{"size_id": uuid.New().String(), "quantity": 0},
		},
	}
	w := doJSON(t, engine, http.MethodPost, "/cart/items", "session-1", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandlerRemoveAndClear(t *testing.T) {
	repo := new(MockProductRepository)
	product, size := testProduct(t)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	engine := newCartRouter(t, repo)

	body := map[string]any{
		"product_id": product.ID.String(),
		"sizes": []map[string]any{
			{"size_id": size.ID.String(), "quantity": 2},
		},
	}
	w := doJSON(t, engine, http.MethodPost, "/cart/items", "session-1", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/cart/items/%s", product.ID), "session-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Empty(t, data["items"])

	w = doJSON(t, engine, http.MethodDelete, "/cart", "session-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
