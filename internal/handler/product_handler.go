package handler

import (
	"encoding/json"
	"net/http"

	"cakeshop/internal/model"
	"cakeshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles product HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	status := queryString(r, "status")
	if status == nil {
		active := model.ProductStatusActive
		status = &active
	}

	filter := model.ProductFilter{
		CategoryID:   queryInt64(r, "category_id"),
		Status:       status,
		IsFeatured:   queryBool(r, "is_featured"),
		IsBestseller: queryBool(r, "is_bestseller"),
		Search:       r.URL.Query().Get("search"),
		SortBy:       r.URL.Query().Get("sortBy"),
		SortOrder:    r.URL.Query().Get("sortOrder"),
		Limit:        limit,
		Offset:       offset,
	}

	products, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "products retrieved", products, newPagination(page, limit, total))
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid product ID")
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "product retrieved", product, nil)
}

// GetBySlug handles GET /api/products/slug/{slug}.
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "product retrieved", product, nil)
}

// Featured handles GET /api/products/featured.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Featured(r.Context(), queryInt(r, "limit", 8))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "featured products retrieved", products, nil)
}

// Bestsellers handles GET /api/products/bestsellers.
func (h *ProductHandler) Bestsellers(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Bestsellers(r.Context(), queryInt(r, "limit", 8))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "bestseller products retrieved", products, nil)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.ProductCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	product, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, "product created", product, nil)
}

// Update handles PUT /api/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid product ID")
		return
	}

	var payload model.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	product, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "product updated", product, nil)
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid product ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "product deleted", nil, nil)
}
