package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/shop-backend/internal/models"
)

type staticResolver map[string]models.Role

func (s staticResolver) Resolve(credential string) (models.Role, error) {
	role, ok := s[credential]
	if !ok {
		return models.RoleNone, errors.New("unknown token")
	}
	return role, nil
}

func TestAuthenticate(t *testing.T) {
	resolver := staticResolver{
		"user-token":  models.RoleUser,
		"admin-token": models.RoleAdmin,
	}

	// Create a test handler that echoes the resolved role
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(string(p.Role) + ":" + p.Token))
	})

	// Wrap with auth middleware
	authHandler := Authenticate(resolver)(testHandler)

	tests := []struct {
		name           string
		header         string
		value          string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "bearer user token",
			header:         "Authorization",
			value:          "Bearer user-token",
			expectedStatus: http.StatusOK,
			expectedBody:   "user:user-token",
		},
		{
			name:           "api key admin token",
			header:         "X-API-Key",
			value:          "admin-token",
			expectedStatus: http.StatusOK,
			expectedBody:   "admin:admin-token",
		},
		{
			name:           "legacy api_key header",
			header:         "api_key",
			value:          "user-token",
			expectedStatus: http.StatusOK,
			expectedBody:   "user:user-token",
		},
		{
			name:           "missing credential",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown credential",
			header:         "Authorization",
			value:          "Bearer wrongkey",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/basket", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}

			w := httptest.NewRecorder()
			authHandler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusOK {
				if w.Body.String() != tt.expectedBody {
					t.Errorf("body = %s, want %s", w.Body.String(), tt.expectedBody)
				}
			} else if w.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Errorf("missing WWW-Authenticate header")
			}
		})
	}
}

func TestPrincipalFrom_Default(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := PrincipalFrom(req.Context()); got.Role != models.RoleNone {
		t.Errorf("role = %q, want %q", got.Role, models.RoleNone)
	}
}
