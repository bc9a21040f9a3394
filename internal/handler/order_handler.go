package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"cakeshop/internal/model"
	"cakeshop/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

func orderFilterFromQuery(r *http.Request) (model.OrderFilter, int, int) {
	page, limit, offset := pageParams(r)

	filter := model.OrderFilter{
		CustomerID:    queryInt64(r, "customer_id"),
		Status:        queryString(r, "status"),
		PaymentStatus: queryString(r, "payment_status"),
		Search:        r.URL.Query().Get("search"),
		SortBy:        r.URL.Query().Get("sortBy"),
		SortOrder:     r.URL.Query().Get("sortOrder"),
		Limit:         limit,
		Offset:        offset,
	}
	if v := r.URL.Query().Get("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateFrom = &t
		}
	}
	if v := r.URL.Query().Get("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateTo = &t
		}
	}
	return filter, page, limit
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, page, limit := orderFilterFromQuery(r)

	orders, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "orders retrieved", orders, newPagination(page, limit, total))
}

// CustomerOrders handles GET /api/customers/{id}/orders.
func (h *OrderHandler) CustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid customer ID")
		return
	}

	filter, page, limit := orderFilterFromQuery(r)
	filter.CustomerID = &customerID

	orders, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "customer orders retrieved", orders, newPagination(page, limit, total))
}

// GetByID handles GET /api/orders/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid order ID")
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "order retrieved", order, nil)
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.OrderCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	order, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, "order created", order, nil)
}

// Update handles PUT /api/orders/{id}. Line items in the body are ignored;
// they cannot change after creation.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid order ID")
		return
	}

	var payload model.OrderUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	order, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "order updated", order, nil)
}

// UpdateStatus handles PATCH /api/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid order ID")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "order status updated", order, nil)
}

// UpdatePaymentStatus handles PATCH /api/orders/{id}/payment-status.
func (h *OrderHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid order ID")
		return
	}

	var body struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	order, err := h.service.UpdatePaymentStatus(r.Context(), id, body.PaymentStatus)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "order payment status updated", order, nil)
}

// Delete handles DELETE /api/orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid order ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "order deleted", nil, nil)
}

// Statistics handles GET /api/orders/statistics.
func (h *OrderHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "order statistics retrieved", stats, nil)
}
