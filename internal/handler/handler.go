package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"cakeshop/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// defaultPageSize caps listings when the caller does not pick a limit.
const defaultPageSize = 10

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the page window of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// newPagination computes the page count from the unpaginated total.
func newPagination(page, limit int, total int64) *Pagination {
	return &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// writeJSON writes a success envelope with the given status code.
func writeJSON(w http.ResponseWriter, status int, message string, data any, pagination *Pagination) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
	})
}

// writeDomainError maps a classified error onto an HTTP status. Validation
// and conflict failures are the client's fault (400), lookup misses are 404,
// everything else is a 500 with a generic message. Only this layer turns
// error kinds into wire codes.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch model.KindOf(err) {
	case model.KindValidation, model.KindConflict:
		status = http.StatusBadRequest
		message = err.Error()
	case model.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	default:
		logger.Error().Err(err).Msg("request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Success: false, Message: message})
}

// writeBadRequest reports a malformed request that never reached a service.
func writeBadRequest(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(Response{Success: false, Message: message})
}

// idParam parses the {id} path parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// pageParams reads page/limit query parameters with defaults and returns
// (page, limit, offset).
func pageParams(r *http.Request) (int, int, int) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(r, "limit", defaultPageSize)
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, limit, (page - 1) * limit
}

// queryInt reads an integer query parameter, falling back on absence or junk.
func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// queryString returns a pointer to the query parameter value, or nil when
// the parameter is absent. Distinguishes "not provided" from "empty".
func queryString(r *http.Request, key string) *string {
	if !r.URL.Query().Has(key) {
		return nil
	}
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

// queryInt64 returns a pointer to an integer query parameter, or nil when
// absent or unparseable.
func queryInt64(r *http.Request, key string) *int64 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// queryBool returns a pointer to a boolean query parameter, or nil when
// absent or unparseable. "false" participates in the filter; absence skips it.
func queryBool(r *http.Request, key string) *bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
