package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/Lixing-Zhang/shop-backend/internal/auth"
	"github.com/Lixing-Zhang/shop-backend/internal/basket"
	"github.com/Lixing-Zhang/shop-backend/internal/ledger"
	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"github.com/Lixing-Zhang/shop-backend/internal/repository"
	"github.com/Lixing-Zhang/shop-backend/internal/service"
	"github.com/Lixing-Zhang/shop-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

type testServer struct {
	router http.Handler
	ledger *ledger.Ledger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.NewWithWriter(io.Discard, "error")

	seed, err := repository.DefaultSeed()
	if err != nil {
		t.Fatalf("DefaultSeed: %v", err)
	}
	repo := repository.NewInMemoryProductRepository(seed)

	gate, err := auth.NewGate([]auth.Account{
		{Role: models.RoleUser, Token: userToken, Username: "Version1", Password: "Version1"},
		{Role: models.RoleAdmin, Token: adminToken, Username: "admin", Password: "admin"},
	}, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewGate: %v", err)
	}

	cfg := ledger.DefaultGeneratorConfig()
	cfg.BurstCount = 3
	cfg.RandomSeed = 7
	generator := ledger.NewGenerator(cfg, nil)

	l := ledger.New()
	l.Append(
		models.NewSalesRecord(1, decimal.NewFromInt(10), 5, civil.Date{Year: 2024, Month: 3, Day: 10}),
		models.NewSalesRecord(2, decimal.NewFromInt(7), 10, civil.Date{Year: 2024, Month: 4, Day: 2}),
		models.NewSalesRecord(1, decimal.NewFromInt(10), 1, civil.Date{Year: 2023, Month: 12, Day: 31}),
	)

	authService := service.NewAuthService(gate, log)
	h := Handlers{
		Health:   NewHealthHandler(l, log),
		Auth:     NewAuthHandler(authService, log),
		Products: NewProductHandler(service.NewProductService(repo, l, generator, log), log),
		Basket:   NewBasketHandler(service.NewBasketService(basket.NewManager(repo), log), log),
		Sales:    NewSalesHandler(service.NewSalesService(l, service.DefaultPageLimits()), log),
	}

	return &testServer{
		router: NewRouter(h, authService, RouterOptions{AllowedOrigins: []string{"*"}}, log),
		ledger: l,
	}
}

// do sends a request with the given bearer token; an empty token sends none.
func (s *testServer) do(t *testing.T, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp HealthResponse
	decodeBody(t, w, &resp)
	if resp.Status != "healthy" {
		t.Errorf("expected healthy, got %q", resp.Status)
	}
	if resp.SalesRecords != 3 {
		t.Errorf("expected 3 sales records, got %d", resp.SalesRecords)
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/login", "", models.Login{Username: "admin", Password: "admin"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var token models.BearerToken
	decodeBody(t, w, &token)
	if token.AccessToken != adminToken || token.Role != models.RoleAdmin {
		t.Errorf("unexpected token %+v", token)
	}

	// The issued token authenticates later requests
	if w := s.do(t, http.MethodGet, "/products/count", token.AccessToken, nil); w.Code != http.StatusOK {
		t.Errorf("expected issued token to work, got %d", w.Code)
	}

	w = s.do(t, http.MethodPost, "/login", "", models.Login{Username: "admin", Password: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}

	w = s.do(t, http.MethodPost, "/login", "", map[string]string{"user": "admin"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for unknown fields, got %d", w.Code)
	}
}

func TestAuthenticationRequired(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/products", "/products/1", "/basket", "/sales", "/sales/2024/month"} {
		w := s.do(t, http.MethodGet, target, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected status 401, got %d", target, w.Code)
		}
		w = s.do(t, http.MethodGet, target, "bogus", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s with unknown token: expected status 401, got %d", target, w.Code)
		}
	}
}

func TestAPIKeyHeader(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/products/count", nil)
	req.Header.Set("X-API-Key", userToken)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}
