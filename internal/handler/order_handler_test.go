package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cakeshop/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderService) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Create(ctx context.Context, payload model.OrderCreate) (*model.Order, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Update(ctx context.Context, id int64, payload model.OrderUpdate) (*model.Order, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) UpdatePaymentStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderService) Statistics(ctx context.Context) (*model.OrderStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderStatistics), args.Error(1)
}

// orderRouter mounts the handler the way the real router does so {id} path
// parameters resolve through chi.
func orderRouter(h *OrderHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/statistics", h.Statistics)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Patch("/{id}/payment-status", h.UpdatePaymentStatus)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func TestOrderHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	testOrder := &model.Order{
		ID:          1,
		OrderNumber: "ORD2501150042",
		TotalAmount: 30,
		Items: []model.OrderItem{
			{ID: 1, OrderID: 1, ProductName: "Chocolate Cake", Quantity: 2, UnitPrice: 15, TotalPrice: 30},
		},
	}

	tests := []struct {
		name           string
		requestBody    any
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name: "Success",
			requestBody: model.OrderCreate{
				CustomerName:  "Alice",
				CustomerEmail: "alice@example.com",
				Subtotal:      30,
				TotalAmount:   30,
				Items: []model.OrderItemCreate{
					{ProductName: "Chocolate Cake", Quantity: 2, UnitPrice: 15},
				},
			},
			mockReturn:     testOrder,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Validation error",
			requestBody:    model.OrderCreate{},
			mockError:      model.NewValidationError("order must contain at least one item"),
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name: "Duplicate order number",
			requestBody: model.OrderCreate{
				OrderNumber: "ORD2501150042",
			},
			mockError:      model.NewConflictError("order number already exists"),
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			requestBody:    "not json",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Service internal error",
			requestBody:    model.OrderCreate{},
			mockError:      errors.New("database connection failed"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, logger)

			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			if tt.expectService {
				mockService.On("Create", mock.Anything, mock.AnythingOfType("model.OrderCreate")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			orderRouter(handler).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedStatus < 400, resp.Success)

			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}

func TestOrderHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		path           string
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			path:           "/api/orders/42",
			mockReturn:     &model.Order{ID: 42, OrderNumber: "ORD2501150042"},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Not found",
			path:           "/api/orders/404",
			mockError:      model.NewNotFoundError("order not found"),
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid ID",
			path:           "/api/orders/not-a-number",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, logger)

			if tt.expectService {
				mockService.On("GetByID", mock.Anything, mock.AnythingOfType("int64")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			orderRouter(handler).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}

func TestOrderHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, logger)

	mockService.On("List", mock.Anything, mock.MatchedBy(func(f model.OrderFilter) bool {
		return f.Status != nil && *f.Status == "pending" &&
			f.DateFrom != nil && f.DateFrom.Format("2006-01-02") == "2025-01-01" &&
			f.Limit == 5 && f.Offset == 5
	})).Return([]model.Order{{ID: 1}}, int64(11), nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/orders?status=pending&date_from=2025-01-01&page=2&limit=5", nil)
	w := httptest.NewRecorder()

	orderRouter(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, int64(11), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.Pages)
}

func TestOrderHandler_List_EmptyPageEncodesAsArray(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, logger)

	mockService.On("List", mock.Anything, mock.AnythingOfType("model.OrderFilter")).
		Return([]model.Order{}, int64(0), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders?search=nothing-matches", nil)
	w := httptest.NewRecorder()

	orderRouter(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// clients get an empty array, never null
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewOrderHandler(mockService, logger)

		mockService.On("UpdateStatus", mock.Anything, int64(42), "confirmed").
			Return(&model.Order{ID: 42, OrderStatus: model.OrderStatusConfirmed}, nil)

		body := bytes.NewBufferString(`{"status": "confirmed"}`)
		req := httptest.NewRequest(http.MethodPatch, "/api/orders/42/status", body)
		w := httptest.NewRecorder()

		orderRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Unknown status is rejected", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewOrderHandler(mockService, logger)

		mockService.On("UpdateStatus", mock.Anything, int64(42), "shipped").
			Return(nil, model.NewValidationError("invalid order status"))

		body := bytes.NewBufferString(`{"status": "shipped"}`)
		req := httptest.NewRequest(http.MethodPatch, "/api/orders/42/status", body)
		w := httptest.NewRecorder()

		orderRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_Delete(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewOrderHandler(mockService, logger)

		mockService.On("Delete", mock.Anything, int64(42)).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/orders/42", nil)
		w := httptest.NewRecorder()

		orderRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		mockService := new(MockOrderService)
		handler := NewOrderHandler(mockService, logger)

		mockService.On("Delete", mock.Anything, int64(404)).
			Return(model.NewNotFoundError("order not found"))

		req := httptest.NewRequest(http.MethodDelete, "/api/orders/404", nil)
		w := httptest.NewRecorder()

		orderRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderHandler_Statistics(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, logger)

	mockService.On("Statistics", mock.Anything).
		Return(&model.OrderStatistics{TotalOrders: 3, TotalRevenue: 180}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/statistics", nil)
	w := httptest.NewRecorder()

	orderRouter(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
