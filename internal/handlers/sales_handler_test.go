package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"github.com/shopspring/decimal"
)

func TestQuerySales(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCount  int
	}{
		{"all", "/sales", http.StatusOK, 3},
		{"by product", "/sales?product_id=1", http.StatusOK, 2},
		{"date range", "/sales?start_date=2024-01-01&end_date=2024-12-31", http.StatusOK, 2},
		{"paged", "/sales?page=2&size=2", http.StatusOK, 1},
		{"past the end", "/sales?page=5&size=2", http.StatusOK, 0},
		{"overflowing page", "/sales?page=9223372036854775807&size=10", http.StatusOK, 0},
		{"unit price", "/sales?min_price=8", http.StatusOK, 2},
		{"bad date", "/sales?start_date=2024-13-01", http.StatusBadRequest, 0},
		{"bad quantity", "/sales?min_quantity=lots", http.StatusBadRequest, 0},
		{"page zero", "/sales?page=0", http.StatusBadRequest, 0},
		{"size too large", "/sales?size=1001", http.StatusBadRequest, 0},
		{"inverted dates", "/sales?start_date=2024-02-01&end_date=2024-01-01", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, tt.target, userToken, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var records []models.SalesRecord
			decodeBody(t, w, &records)
			if len(records) != tt.wantCount {
				t.Errorf("expected %d records, got %d", tt.wantCount, len(records))
			}
		})
	}
}

func TestParseSalesQuery(t *testing.T) {
	q := url.Values{
		"start_date":      {"2024-03-01"},
		"product_id":      {"7"},
		"max_total_price": {"100.5"},
		"max_quantity":    {"3"},
		"size":            {"25"},
	}

	f, page, err := parseSalesQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.StartDate == nil || f.StartDate.String() != "2024-03-01" {
		t.Errorf("unexpected start date %v", f.StartDate)
	}
	if f.ProductID == nil || *f.ProductID != 7 {
		t.Errorf("unexpected product id %v", f.ProductID)
	}
	if !f.MaxTotalPrice.Valid || !f.MaxTotalPrice.Decimal.Equal(decimal.RequireFromString("100.5")) {
		t.Errorf("unexpected max total price %v", f.MaxTotalPrice)
	}
	if f.MaxQuantity == nil || *f.MaxQuantity != 3 {
		t.Errorf("unexpected max quantity %v", f.MaxQuantity)
	}
	if f.MinPrice.Valid || f.EndDate != nil {
		t.Error("unset parameters must stay unset")
	}
	if page.Page != nil || page.Size == nil || *page.Size != 25 {
		t.Errorf("unexpected page request %+v", page)
	}
}

func TestSalesSummary(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/sales/2024/month", userToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var totals []decimal.Decimal
	decodeBody(t, w, &totals)
	if len(totals) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(totals))
	}
	if !totals[2].Equal(decimal.NewFromInt(50)) || !totals[3].Equal(decimal.NewFromInt(70)) {
		t.Errorf("unexpected March/April totals %s/%s", totals[2], totals[3])
	}
	if !totals[11].IsZero() {
		t.Errorf("December 2023 sale must not count toward 2024, got %s", totals[11])
	}

	for target, want := range map[string]int{
		"/sales/2024/week":  http.StatusBadRequest,
		"/sales/year/month": http.StatusBadRequest,
	} {
		if w := s.do(t, http.MethodGet, target, userToken, nil); w.Code != want {
			t.Errorf("%s: expected status %d, got %d", target, want, w.Code)
		}
	}
}
