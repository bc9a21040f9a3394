package handler

import (
	"encoding/json"
	"net/http"

	"cakeshop/internal/model"
	"cakeshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CategoryHandler handles category HTTP requests.
type CategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// List handles GET /api/categories. The parent_id parameter is tri-state:
// absent means no parent filter, "null" matches root categories, and a
// number matches children of that parent.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	filter := model.CategoryFilter{
		Status:     queryString(r, "status"),
		IsFeatured: queryBool(r, "is_featured"),
		Search:     r.URL.Query().Get("search"),
		SortBy:     r.URL.Query().Get("sortBy"),
		SortOrder:  r.URL.Query().Get("sortOrder"),
		Limit:      limit,
		Offset:     offset,
	}
	if raw := r.URL.Query().Get("parent_id"); raw != "" {
		if raw == "null" {
			filter.ParentID = model.NoParent()
		} else if id := queryInt64(r, "parent_id"); id != nil {
			filter.ParentID = model.ParentID(*id)
		}
	}

	categories, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "categories retrieved", categories, newPagination(page, limit, total))
}

// GetByID handles GET /api/categories/{id}.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid category ID")
		return
	}

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "category retrieved", category, nil)
}

// GetBySlug handles GET /api/categories/slug/{slug}.
func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "category retrieved", category, nil)
}

// Featured handles GET /api/categories/featured.
func (h *CategoryHandler) Featured(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Featured(r.Context(), queryInt(r, "limit", 8))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "featured categories retrieved", categories, nil)
}

// Parents handles GET /api/categories/parents.
func (h *CategoryHandler) Parents(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Parents(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "parent categories retrieved", categories, nil)
}

// Children handles GET /api/categories/{id}/children.
func (h *CategoryHandler) Children(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid category ID")
		return
	}

	categories, err := h.service.Children(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "child categories retrieved", categories, nil)
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CategoryCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	category, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, "category created", category, nil)
}

// Update handles PUT /api/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid category ID")
		return
	}

	var payload model.CategoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	category, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "category updated", category, nil)
}

// Delete handles DELETE /api/categories/{id}. Deleting a category that
// still has products fails with a 400 conflict.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid category ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "category deleted", nil, nil)
}
