package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/shop-backend/internal/middleware"
	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"github.com/Lixing-Zhang/shop-backend/internal/service"
)

// BasketHandler handles basket HTTP requests for the calling session
type BasketHandler struct {
	service *service.BasketService
	logger  *slog.Logger
}

// NewBasketHandler creates a new basket handler
func NewBasketHandler(service *service.BasketService, logger *slog.Logger) *BasketHandler {
	return &BasketHandler{
		service: service,
		logger:  logger,
	}
}

// GetBasket handles GET /basket
func (h *BasketHandler) GetBasket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	b, err := h.service.GetBasket(ctx, middleware.PrincipalFrom(ctx))
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, b, h.logger)
}

// AddItem handles POST /basket
// Responds 201 when the product was added and 200 when it was already present.
func (h *BasketHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.BasketAdd
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("failed to decode basket add request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	result, err := h.service.AddItem(ctx, middleware.PrincipalFrom(ctx), req.ProductID, req.Quantity)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	WriteJSON(w, status, result, h.logger)
}

// SetItem handles PUT /basket/{productId}
func (h *BasketHandler) SetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, ok := productIDParam(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	var req models.BasketUpdate
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("failed to decode basket update request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	b, err := h.service.SetItemQuantity(ctx, middleware.PrincipalFrom(ctx), productID, req.Quantity)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, b, h.logger)
}

// RemoveItem handles DELETE /basket/{productId}
func (h *BasketHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, ok := productIDParam(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	if err := h.service.RemoveItem(ctx, middleware.PrincipalFrom(ctx), productID); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"detail": "Item removed."}, h.logger)
}

// ClearBasket handles DELETE /basket
func (h *BasketHandler) ClearBasket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	b, err := h.service.ClearBasket(ctx, middleware.PrincipalFrom(ctx))
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, b, h.logger)
}
