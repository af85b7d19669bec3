package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Lixing-Zhang/shop-backend/internal/auth"
	"github.com/Lixing-Zhang/shop-backend/internal/models"
)

// RoleResolver maps a presented credential to a role
type RoleResolver interface {
	Resolve(credential string) (models.Role, error)
}

type principalKey struct{}

// Authenticate middleware resolves the caller's credential from the
// Authorization bearer header or the API-key headers. Missing or unknown
// credentials are rejected with 401; role checks happen in the services.
func Authenticate(resolver RoleResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := auth.CredentialFromRequest(r)
			if credential == "" {
				unauthorized(w, "Unauthorized: API token required")
				return
			}

			role, err := resolver.Resolve(credential)
			if err != nil {
				unauthorized(w, "Unauthorized: invalid API token")
				return
			}

			ctx := WithPrincipal(r.Context(), models.Principal{Token: credential, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithPrincipal stores the resolved caller in ctx
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller stored by Authenticate, or a RoleNone principal.
func PrincipalFrom(ctx context.Context) models.Principal {
	p, ok := ctx.Value(principalKey{}).(models.Principal)
	if !ok {
		return models.Principal{Role: models.RoleNone}
	}
	return p
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
