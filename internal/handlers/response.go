package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/shop-backend/internal/basket"
	"github.com/Lixing-Zhang/shop-backend/internal/repository"
	"github.com/Lixing-Zhang/shop-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// WriteServiceError maps a service error onto its HTTP status.
func WriteServiceError(w http.ResponseWriter, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		w.Header().Set("WWW-Authenticate", "Bearer")
		WriteError(w, http.StatusUnauthorized, "Unauthorized", logger)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, http.StatusForbidden, "Forbidden: insufficient role", logger)
	case errors.Is(err, repository.ErrProductNotFound):
		WriteError(w, http.StatusNotFound, "Product not found", logger)
	case errors.Is(err, basket.ErrItemNotInBasket):
		WriteError(w, http.StatusNotFound, "Item not in basket", logger)
	case errors.Is(err, service.ErrInvalidArgument):
		WriteError(w, http.StatusBadRequest, err.Error(), logger)
	default:
		logger.Error("request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// productIDParam parses the {productId} URL parameter
func productIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
