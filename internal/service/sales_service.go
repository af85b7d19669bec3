package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/shop-backend/internal/ledger"
	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"github.com/shopspring/decimal"
)

// PageLimits bounds the sales page size.
type PageLimits struct {
	Default int
	Min     int
	Max     int
}

// DefaultPageLimits allows any size up to 1000, defaulting to 10.
func DefaultPageLimits() PageLimits {
	return PageLimits{Default: 10, Min: 1, Max: 1000}
}

// SalesService answers sales history queries
type SalesService struct {
	ledger *ledger.Ledger
	limits PageLimits
}

// NewSalesService creates a new sales service
func NewSalesService(l *ledger.Ledger, limits PageLimits) *SalesService {
	return &SalesService{
		ledger: l,
		limits: limits,
	}
}

// ResolvePage applies defaults and validates the requested page.
func (s *SalesService) ResolvePage(req models.PageRequest) (models.PageInfo, error) {
	page := models.PageInfo{Page: 1, Size: s.limits.Default}
	if req.Page != nil {
		page.Page = *req.Page
	}
	if req.Size != nil {
		page.Size = *req.Size
	}
	if page.Page < 1 {
		return models.PageInfo{}, invalidArgument(fmt.Errorf("page must be at least 1"))
	}
	if page.Size < s.limits.Min || page.Size > s.limits.Max {
		return models.PageInfo{}, invalidArgument(fmt.Errorf("size must be between %d and %d", s.limits.Min, s.limits.Max))
	}
	return page, nil
}

// QuerySales returns a page of sales matching the filter
func (s *SalesService) QuerySales(ctx context.Context, role models.Role, filter models.SalesFilter, req models.PageRequest) ([]models.SalesRecord, error) {
	if err := authorize(role, models.RoleUser); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, invalidArgument(err)
	}
	page, err := s.ResolvePage(req)
	if err != nil {
		return nil, err
	}

	records, err := s.ledger.Query(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("ledger.Query: %w", err)
	}
	return records, nil
}

// SalesSummary aggregates a year's sales by bucket
func (s *SalesService) SalesSummary(ctx context.Context, role models.Role, year int, bucket string) ([]decimal.Decimal, error) {
	if err := authorize(role, models.RoleUser); err != nil {
		return nil, err
	}
	totals, err := s.ledger.Totals(ctx, year, bucket)
	if errors.Is(err, ledger.ErrUnsupportedBucket) {
		return nil, invalidArgument(err)
	}
	return totals, err
}
