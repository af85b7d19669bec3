package models

import (
	"fmt"
	"math"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// SalesRecord is a single historical sale. Records are never mutated once recorded.
type SalesRecord struct {
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	SaleDate   civil.Date      `json:"sale_date"`
}

// NewSalesRecord prices a sale of quantity units at unitPrice.
func NewSalesRecord(productID int64, unitPrice decimal.Decimal, quantity int, date civil.Date) SalesRecord {
	return SalesRecord{
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: RoundPrice(unitPrice.Mul(decimal.NewFromInt(int64(quantity)))),
		SaleDate:   date,
	}
}

// UnitPrice derives the per-unit price of the sale.
func (r SalesRecord) UnitPrice() decimal.Decimal {
	if r.Quantity <= 0 {
		return decimal.Zero
	}
	return r.TotalPrice.Div(decimal.NewFromInt(int64(r.Quantity)))
}

// SalesFilter holds the optional sales query predicates; all set predicates must match.
type SalesFilter struct {
	StartDate     *civil.Date
	EndDate       *civil.Date
	ProductID     *int64
	MinPrice      decimal.NullDecimal
	MaxPrice      decimal.NullDecimal
	MinQuantity   *int
	MaxQuantity   *int
	MinTotalPrice decimal.NullDecimal
	MaxTotalPrice decimal.NullDecimal
}

// Validate rejects inverted ranges.
func (f SalesFilter) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return fmt.Errorf("start_date cannot be after end_date")
	}
	if f.MinPrice.Valid && f.MaxPrice.Valid && f.MinPrice.Decimal.GreaterThan(f.MaxPrice.Decimal) {
		return fmt.Errorf("min_price cannot be greater than max_price")
	}
	if f.MinQuantity != nil && f.MaxQuantity != nil && *f.MinQuantity > *f.MaxQuantity {
		return fmt.Errorf("min_quantity cannot be greater than max_quantity")
	}
	if f.MinTotalPrice.Valid && f.MaxTotalPrice.Valid && f.MinTotalPrice.Decimal.GreaterThan(f.MaxTotalPrice.Decimal) {
		return fmt.Errorf("min_total_price cannot be greater than max_total_price")
	}
	return nil
}

// Matches applies every set predicate to r.
func (f SalesFilter) Matches(r SalesRecord) bool {
	if f.StartDate != nil && r.SaleDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && r.SaleDate.After(*f.EndDate) {
		return false
	}
	if f.ProductID != nil && r.ProductID != *f.ProductID {
		return false
	}
	if f.MinQuantity != nil && r.Quantity < *f.MinQuantity {
		return false
	}
	if f.MaxQuantity != nil && r.Quantity > *f.MaxQuantity {
		return false
	}
	if !InRange(r.TotalPrice, f.MinTotalPrice, f.MaxTotalPrice) {
		return false
	}
	if (f.MinPrice.Valid || f.MaxPrice.Valid) && !InRange(r.UnitPrice(), f.MinPrice, f.MaxPrice) {
		return false
	}
	return true
}

// PageInfo selects a 1-based page of Size records.
type PageInfo struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Bounds returns the half-open slice range of the page over n records.
// Pages past the end, including ones whose offset would overflow, yield an
// empty range.
func (p PageInfo) Bounds(n int) (start, end int) {
	if p.Page < 1 || p.Size < 1 || p.Page-1 > (math.MaxInt-p.Size)/p.Size {
		return n, n
	}
	start = (p.Page - 1) * p.Size
	if start >= n {
		return n, n
	}
	end = start + p.Size
	if end > n {
		end = n
	}
	return start, end
}

// PageRequest carries the pagination parameters as supplied; nil means unset.
type PageRequest struct {
	Page *int
	Size *int
}
