package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/Lixing-Zhang/shop-backend/internal/middleware"
	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"github.com/Lixing-Zhang/shop-backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// SalesHandler handles sales history HTTP requests
type SalesHandler struct {
	service *service.SalesService
	logger  *slog.Logger
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(service *service.SalesService, logger *slog.Logger) *SalesHandler {
	return &SalesHandler{
		service: service,
		logger:  logger,
	}
}

// QuerySales handles GET /sales
// Query parameters: start_date, end_date (YYYY-MM-DD), product_id, min_price,
// max_price, min_quantity, max_quantity, min_total_price, max_total_price, page, size
func (h *SalesHandler) QuerySales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, page, err := parseSalesQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("invalid sales query", "error", err)
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	records, err := h.service.QuerySales(ctx, middleware.PrincipalFrom(ctx).Role, filter, page)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, records, h.logger)
}

// SalesSummary handles GET /sales/{year}/{bucket}
func (h *SalesHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid year supplied", h.logger)
		return
	}

	totals, err := h.service.SalesSummary(ctx, middleware.PrincipalFrom(ctx).Role, year, chi.URLParam(r, "bucket"))
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, totals, h.logger)
}

func parseSalesQuery(q url.Values) (models.SalesFilter, models.PageRequest, error) {
	var (
		f    models.SalesFilter
		page models.PageRequest
		err  error
	)

	if f.StartDate, err = parseOptionalDate(q, "start_date"); err != nil {
		return f, page, err
	}
	if f.EndDate, err = parseOptionalDate(q, "end_date"); err != nil {
		return f, page, err
	}
	if v := strings.TrimSpace(q.Get("product_id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, page, fmt.Errorf("invalid product_id %q", v)
		}
		f.ProductID = &id
	}

	decimals := []struct {
		name string
		dst  *decimal.NullDecimal
	}{
		{"min_price", &f.MinPrice},
		{"max_price", &f.MaxPrice},
		{"min_total_price", &f.MinTotalPrice},
		{"max_total_price", &f.MaxTotalPrice},
	}
	for _, d := range decimals {
		if *d.dst, err = parseOptionalDecimal(q.Get(d.name)); err != nil {
			return f, page, fmt.Errorf("invalid %s %q", d.name, q.Get(d.name))
		}
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{"min_quantity", &f.MinQuantity},
		{"max_quantity", &f.MaxQuantity},
		{"page", &page.Page},
		{"size", &page.Size},
	}
	for _, i := range ints {
		if *i.dst, err = parseOptionalInt(q, i.name); err != nil {
			return f, page, err
		}
	}

	return f, page, nil
}

func parseOptionalDate(q url.Values, name string) (*civil.Date, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: expected YYYY-MM-DD", name, v)
	}
	return &d, nil
}

func parseOptionalInt(q url.Values, name string) (*int, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, v)
	}
	return &n, nil
}
