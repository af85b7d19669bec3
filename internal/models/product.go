package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// PriceScale is the number of decimal places kept for prices and totals.
const PriceScale = 2

// Product represents an item in the shop catalog
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// ProductInput carries the mutable fields of a product for create and update
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// Validate checks the input and normalizes the price to two decimals.
func (in *ProductInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("name is required")
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("price must not be negative")
	}
	in.Price = RoundPrice(in.Price)
	return nil
}

// ProductSearch holds the optional catalog search filters.
type ProductSearch struct {
	Query    string
	MinPrice decimal.NullDecimal
	MaxPrice decimal.NullDecimal
}

// Validate rejects an inverted price range.
func (s ProductSearch) Validate() error {
	if s.MinPrice.Valid && s.MaxPrice.Valid && s.MinPrice.Decimal.GreaterThan(s.MaxPrice.Decimal) {
		return fmt.Errorf("min_price cannot be greater than max_price")
	}
	return nil
}

// ProductCount is the response body of the product count endpoint
type ProductCount struct {
	Total int `json:"total"`
}

// RoundPrice rounds an amount to the display precision.
func RoundPrice(d decimal.Decimal) decimal.Decimal {
	return d.Round(PriceScale)
}

// InRange reports whether v lies within the inclusive optional bounds.
func InRange(v decimal.Decimal, lo, hi decimal.NullDecimal) bool {
	if lo.Valid && v.LessThan(lo.Decimal) {
		return false
	}
	if hi.Valid && v.GreaterThan(hi.Decimal) {
		return false
	}
	return true
}
