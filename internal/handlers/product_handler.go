package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/shop-backend/internal/middleware"
	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"github.com/Lixing-Zhang/shop-backend/internal/service"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /products and GET /products/search
// Query parameters: q (alias description, search_str), min_price, max_price
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	search := models.ProductSearch{Query: firstNonEmpty(query.Get("q"), query.Get("description"), query.Get("search_str"))}

	var err error
	if search.MinPrice, err = parseOptionalDecimal(query.Get("min_price")); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid min_price", h.logger)
		return
	}
	if search.MaxPrice, err = parseOptionalDecimal(query.Get("max_price")); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid max_price", h.logger)
		return
	}

	products, err := h.service.ListProducts(ctx, middleware.PrincipalFrom(ctx).Role, search)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// CountProducts handles GET /products/count
func (h *ProductHandler) CountProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := h.service.CountProducts(ctx, middleware.PrincipalFrom(ctx).Role)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, models.ProductCount{Total: total}, h.logger)
}

// GetProduct handles GET /products/{productId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Product not found
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, ok := productIDParam(r)
	if !ok {
		h.logger.Warn("invalid product ID format", "productId", r.URL.Path)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	product, err := h.service.GetProduct(ctx, middleware.PrincipalFrom(ctx).Role, productID)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// CreateProduct handles POST /products (admin only)
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in models.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		h.logger.Warn("failed to decode product", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	product, err := h.service.CreateProduct(ctx, middleware.PrincipalFrom(ctx).Role, in)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, product, h.logger)
}

// UpdateProduct handles PUT /products/{productId} (admin only)
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, ok := productIDParam(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	var in models.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		h.logger.Warn("failed to decode product", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	product, err := h.service.UpdateProduct(ctx, middleware.PrincipalFrom(ctx).Role, productID, in)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// DeleteProduct handles DELETE /products/{productId} (admin only)
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, ok := productIDParam(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	if err := h.service.DeleteProduct(ctx, middleware.PrincipalFrom(ctx).Role, productID); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"detail": "Product deleted."}, h.logger)
}

func parseOptionalDecimal(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
