package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/shop-backend/internal/config"
	"github.com/Lixing-Zhang/shop-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
		Auth: config.AuthConfig{
			UserToken:       "generated-user-token",
			AdminToken:      "generated-admin-token",
			UserLogin:       config.Credentials{Username: "Version1", Password: "Version1"},
			AdminLogin:      config.Credentials{Username: "admin", Password: "admin"},
			BcryptCost:      bcrypt.MinCost,
			GeneratedTokens: true,
		},
		Sales: config.SalesConfig{
			SeedCount:        50,
			SeedDays:         30,
			SeedMaxQuantity:  5,
			BurstCount:       2,
			BurstDays:        7,
			BurstMaxQuantity: 5,
			RandomSeed:       1,
			DefaultPageSize:  10,
			MinPageSize:      1,
			MaxPageSize:      100,
		},
		LogLevel: "debug",
	}
}

func TestBuildRouter_DoesNotLogGeneratedTokens(t *testing.T) {
	cfg := testConfig()
	var buf bytes.Buffer

	router, err := buildRouter(cfg, logger.NewWithWriter(&buf, cfg.LogLevel))
	if err != nil {
		t.Fatalf("buildRouter: %v", err)
	}

	if !bytes.Contains(buf.Bytes(), []byte("generated tokens")) {
		t.Error("expected a warning about generated tokens")
	}
	for _, token := range []string{cfg.Auth.UserToken, cfg.Auth.AdminToken} {
		if bytes.Contains(buf.Bytes(), []byte(token)) {
			t.Errorf("log output contains token %q", token)
		}
	}

	// The generated admin token still authenticates requests
	req := httptest.NewRequest(http.MethodGet, "/products/count", nil)
	req.Header.Set("Authorization", "Bearer "+cfg.Auth.AdminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}
