package handler

import (
	"bytes"
	"context"
	"encoding/json"
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

// MockCustomerService is a mock implementation of CustomerService.
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) List(ctx context.Context, filter model.CustomerFilter) ([]model.Customer, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerService) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Create(ctx context.Context, payload model.CustomerCreate) (*model.Customer, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, id int64, payload model.CustomerUpdate) (*model.Customer, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerService) Authenticate(ctx context.Context, email, password string) (*model.Customer, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Statistics(ctx context.Context) (*model.CustomerStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerStatistics), args.Error(1)
}

func customerRouter(h *CustomerHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Post("/login", h.Login)
		r.Get("/statistics", h.Statistics)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func TestCustomerHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Status defaults to active", func(t *testing.T) {
		mockService := new(MockCustomerService)
		handler := NewCustomerHandler(mockService, logger)

		mockService.On("List", mock.Anything, mock.MatchedBy(func(f model.CustomerFilter) bool {
			return f.Status != nil && *f.Status == model.CustomerStatusActive
		})).Return([]model.Customer{{ID: 1}}, int64(1), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
		w := httptest.NewRecorder()

		customerRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Explicit status is passed through", func(t *testing.T) {
		mockService := new(MockCustomerService)
		handler := NewCustomerHandler(mockService, logger)

		mockService.On("List", mock.Anything, mock.MatchedBy(func(f model.CustomerFilter) bool {
			return f.Status != nil && *f.Status == "inactive"
		})).Return([]model.Customer{}, int64(0), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/customers?status=inactive", nil)
		w := httptest.NewRecorder()

		customerRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCustomerHandler_Login(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockCustomerService)
		handler := NewCustomerHandler(mockService, logger)

		mockService.On("Authenticate", mock.Anything, "alice@example.com", "secret123").
			Return(&model.Customer{ID: 3, Email: "alice@example.com"}, nil)

		body := bytes.NewBufferString(`{"email": "alice@example.com", "password": "secret123"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/customers/login", body)
		w := httptest.NewRecorder()

		customerRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "login successful", resp.Message)
	})

	t.Run("Bad credentials map to 400", func(t *testing.T) {
		mockService := new(MockCustomerService)
		handler := NewCustomerHandler(mockService, logger)

		mockService.On("Authenticate", mock.Anything, "alice@example.com", "wrong").
			Return(nil, model.NewValidationError("invalid email or password"))

		body := bytes.NewBufferString(`{"email": "alice@example.com", "password": "wrong"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/customers/login", body)
		w := httptest.NewRecorder()

		customerRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "invalid email or password", resp.Message)
	})
}

func TestCustomerHandler_Delete(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Customer with orders maps to 400", func(t *testing.T) {
		mockService := new(MockCustomerService)
		handler := NewCustomerHandler(mockService, logger)

		mockService.On("Delete", mock.Anything, int64(3)).
			Return(model.NewConflictError("cannot delete customer with orders"))

		req := httptest.NewRequest(http.MethodDelete, "/api/customers/3", nil)
		w := httptest.NewRecorder()

		customerRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "cannot delete customer with orders", resp.Message)
	})

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockCustomerService)
		handler := NewCustomerHandler(mockService, logger)

		mockService.On("Delete", mock.Anything, int64(3)).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/customers/3", nil)
		w := httptest.NewRecorder()

		customerRouter(handler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCustomerHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCustomerService)
	handler := NewCustomerHandler(mockService, logger)

	mockService.On("Create", mock.Anything, mock.AnythingOfType("model.CustomerCreate")).
		Return(&model.Customer{ID: 1, Email: "alice@example.com"}, nil)

	body := bytes.NewBufferString(`{"email": "alice@example.com", "password": "secret123", "full_name": "Alice"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/customers", body)
	w := httptest.NewRecorder()

	customerRouter(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}
