package handler

import (
	"encoding/json"
	"net/http"

	"cakeshop/internal/model"
	"cakeshop/internal/service"

	"github.com/rs/zerolog"
)

// AccountHandler handles staff account HTTP requests.
type AccountHandler struct {
	service service.AccountService
	logger  zerolog.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(service service.AccountService, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  logger.With().Str("handler", "account").Logger(),
	}
}

// List handles GET /api/accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.List(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "accounts retrieved", accounts, nil)
}

// Create handles POST /api/accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.AccountCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	account, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, "account created", account, nil)
}

// Login handles POST /api/accounts/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	account, err := h.service.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, "login successful", account, nil)
}
