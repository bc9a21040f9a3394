package handler

import (
	"encoding/json"
	"net/http"

	"cakeshop/internal/model"
	"cakeshop/internal/service"

	"github.com/rs/zerolog"
)

// CustomerHandler handles customer HTTP requests.
type CustomerHandler struct {
	service service.CustomerService
	logger  zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(service service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger.With().Str("handler", "customer").Logger(),
	}
}

// List handles GET /api/customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	status := queryString(r, "status")
	if status == nil {
		active := model.CustomerStatusActive
		status = &active
	}

	filter := model.CustomerFilter{
		Status:    status,
		Search:    r.URL.Query().Get("search"),
		SortBy:    r.URL.Query().Get("sortBy"),
		SortOrder: r.URL.Query().Get("sortOrder"),
		Limit:     limit,
		Offset:    offset,
	}

	customers, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "customers retrieved", customers, newPagination(page, limit, total))
}

// GetByID handles GET /api/customers/{id}.
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid customer ID")
		return
	}

	customer, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "customer retrieved", customer, nil)
}

// Create handles POST /api/customers.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CustomerCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	customer, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, "customer created", customer, nil)
}

// Update handles PUT /api/customers/{id}.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid customer ID")
		return
	}

	var payload model.CustomerUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	customer, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "customer updated", customer, nil)
}

// Delete handles DELETE /api/customers/{id}. Deleting a customer with
// orders fails with a 400 conflict.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid customer ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "customer deleted", nil, nil)
}

// Login handles POST /api/customers/login.
func (h *CustomerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	customer, err := h.service.Authenticate(r.Context(), body.Email, body.Password)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "login successful", customer, nil)
}

// Statistics handles GET /api/customers/statistics.
func (h *CustomerHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "customer statistics retrieved", stats, nil)
}
