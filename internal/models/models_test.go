package models

import (
	"encoding/json"
	"math"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageInfo_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		page      PageInfo
		n         int
		wantStart int
		wantEnd   int
	}{
		{"first page", PageInfo{Page: 1, Size: 10}, 25, 0, 10},
		{"last partial page", PageInfo{Page: 3, Size: 10}, 25, 20, 25},
		{"past the end", PageInfo{Page: 4, Size: 10}, 25, 25, 25},
		{"empty set", PageInfo{Page: 1, Size: 10}, 0, 0, 0},
		{"offset overflows", PageInfo{Page: math.MaxInt, Size: 10}, 25, 25, 25},
		{"huge size", PageInfo{Page: 1, Size: math.MaxInt}, 25, 0, 25},
		{"invalid page", PageInfo{Page: 0, Size: 10}, 25, 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.page.Bounds(tt.n)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestProductInput_Validate(t *testing.T) {
	in := ProductInput{Name: "  Hammer ", Price: decimal.RequireFromString("9.999")}
	require.NoError(t, in.Validate())
	assert.Equal(t, "Hammer", in.Name)
	assert.True(t, in.Price.Equal(decimal.NewFromInt(10)))

	blank := ProductInput{Name: "   ", Price: decimal.NewFromInt(1)}
	assert.Error(t, blank.Validate())

	negative := ProductInput{Name: "Saw", Price: decimal.NewFromInt(-1)}
	assert.Error(t, negative.Validate())
}

func TestSalesRecord_Pricing(t *testing.T) {
	day := civil.Date{Year: 2024, Month: 3, Day: 1}
	r := NewSalesRecord(1, decimal.RequireFromString("12.99"), 3, day)

	assert.True(t, r.TotalPrice.Equal(decimal.RequireFromString("38.97")))
	assert.True(t, r.UnitPrice().Equal(decimal.RequireFromString("12.99")))
	assert.True(t, SalesRecord{}.UnitPrice().IsZero())
}

func TestSalesFilter(t *testing.T) {
	start := civil.Date{Year: 2024, Month: 3, Day: 1}
	end := civil.Date{Year: 2024, Month: 3, Day: 31}
	pid := int64(2)
	minQty := 2
	r := NewSalesRecord(2, decimal.NewFromInt(10), 3, civil.Date{Year: 2024, Month: 3, Day: 15})

	f := SalesFilter{
		StartDate:   &start,
		EndDate:     &end,
		ProductID:   &pid,
		MinQuantity: &minQty,
		MinPrice:    decimal.NewNullDecimal(decimal.NewFromInt(10)),
		MaxPrice:    decimal.NewNullDecimal(decimal.NewFromInt(10)),
	}
	require.NoError(t, f.Validate())
	assert.True(t, f.Matches(r))

	f.MaxTotalPrice = decimal.NewNullDecimal(decimal.NewFromInt(29))
	assert.False(t, f.Matches(r))

	inverted := SalesFilter{StartDate: &end, EndDate: &start}
	assert.Error(t, inverted.Validate())
}

func TestNewBasket(t *testing.T) {
	b := NewBasket([]BasketItem{
		{ProductID: 1, UnitPrice: decimal.RequireFromString("1.10"), Quantity: 3},
		{ProductID: 2, UnitPrice: decimal.RequireFromString("0.05"), Quantity: 1},
	})
	assert.True(t, b.Total.Equal(decimal.RequireFromString("3.35")))
	assert.Equal(t, 4, b.TotalQuantity)

	empty := NewBasket(nil)
	assert.NotNil(t, empty.Items)
	assert.True(t, empty.Total.IsZero())

	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"total":0,"total_quantity":0}`, string(data))
}

func TestRole_Satisfies(t *testing.T) {
	assert.True(t, RoleAdmin.Satisfies(RoleUser))
	assert.True(t, RoleUser.Satisfies(RoleUser))
	assert.False(t, RoleUser.Satisfies(RoleAdmin))
	assert.False(t, RoleNone.Satisfies(RoleUser))
	assert.False(t, Role("").Satisfies(RoleUser))
}
