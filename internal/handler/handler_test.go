package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cakeshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDomainError(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "Validation maps to 400",
			err:             model.NewValidationError("order must contain at least one item"),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "order must contain at least one item",
		},
		{
			name:            "Conflict maps to 400",
			err:             model.NewConflictError("product sku already exists"),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "product sku already exists",
		},
		{
			name:            "Not found maps to 404",
			err:             model.NewNotFoundError("order not found"),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "order not found",
		},
		{
			name:            "Transaction maps to 500 with generic message",
			err:             model.NewTransactionError("failed to create order", errors.New("deadlock")),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal server error",
		},
		{
			name:            "Unclassified maps to 500 with generic message",
			err:             errors.New("connection refused"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeDomainError(w, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name          string
		page          int
		limit         int
		total         int64
		expectedPages int
	}{
		{
			name:          "Exact multiple",
			page:          1,
			limit:         10,
			total:         30,
			expectedPages: 3,
		},
		{
			name:          "Partial last page",
			page:          2,
			limit:         10,
			total:         31,
			expectedPages: 4,
		},
		{
			name:          "Empty result",
			page:          1,
			limit:         10,
			total:         0,
			expectedPages: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.expectedPages, p.Pages)
		})
	}
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		expectedPage   int
		expectedLimit  int
		expectedOffset int
	}{
		{
			name:           "Defaults",
			url:            "/api/products",
			expectedPage:   1,
			expectedLimit:  defaultPageSize,
			expectedOffset: 0,
		},
		{
			name:           "Explicit page and limit",
			url:            "/api/products?page=3&limit=20",
			expectedPage:   3,
			expectedLimit:  20,
			expectedOffset: 40,
		},
		{
			name:           "Junk falls back to defaults",
			url:            "/api/products?page=abc&limit=-5",
			expectedPage:   1,
			expectedLimit:  defaultPageSize,
			expectedOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			page, limit, offset := pageParams(r)
			assert.Equal(t, tt.expectedPage, page)
			assert.Equal(t, tt.expectedLimit, limit)
			assert.Equal(t, tt.expectedOffset, offset)
		})
	}
}

func TestQueryString(t *testing.T) {
	t.Run("Absent returns nil", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		assert.Nil(t, queryString(r, "status"))
	})

	t.Run("Empty returns nil", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/products?status=", nil)
		assert.Nil(t, queryString(r, "status"))
	})

	t.Run("Present returns value", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/products?status=active", nil)
		v := queryString(r, "status")
		require.NotNil(t, v)
		assert.Equal(t, "active", *v)
	})
}

func TestQueryInt64(t *testing.T) {
	t.Run("Present", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/products?category_id=7", nil)
		v := queryInt64(r, "category_id")
		require.NotNil(t, v)
		assert.Equal(t, int64(7), *v)
	})

	t.Run("Unparseable returns nil", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/products?category_id=seven", nil)
		assert.Nil(t, queryInt64(r, "category_id"))
	})
}

func TestQueryBool(t *testing.T) {
	t.Run("False participates in the filter", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/products?is_featured=false", nil)
		v := queryBool(r, "is_featured")
		require.NotNil(t, v)
		assert.False(t, *v)
	})

	t.Run("Absent returns nil", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		assert.Nil(t, queryBool(r, "is_featured"))
	})
}
