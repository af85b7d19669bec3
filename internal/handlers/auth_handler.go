package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"github.com/Lixing-Zhang/shop-backend/internal/service"
)

// AuthHandler handles login requests
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var credentials models.Login
	if err := decodeJSON(r, &credentials); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	token, err := h.service.Login(r.Context(), credentials)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, token, h.logger)
}
