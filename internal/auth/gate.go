// Package auth resolves credentials to roles against a static token table.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownToken       = errors.New("invalid or missing API token")
)

// Header names accepted as the API-key fallback, in lookup order.
var apiKeyHeaders = []string{"X-API-Key", "api_key"}

// Account binds a login and its bearer token to a role.
type Account struct {
	Role     models.Role
	Token    string
	Username string
	Password string
}

type account struct {
	role         models.Role
	token        []byte
	username     string
	passwordHash []byte
}

// Gate is a read-only token→role table. It is safe for concurrent use.
type Gate struct {
	accounts []account
}

// NewGate hashes the account passwords with the given bcrypt cost.
func NewGate(accounts []Account, cost int) (*Gate, error) {
	g := &Gate{accounts: make([]account, 0, len(accounts))}
	for _, a := range accounts {
		if a.Token == "" {
			return nil, fmt.Errorf("account %q: token is empty", a.Username)
		}
		if a.Role != models.RoleUser && a.Role != models.RoleAdmin {
			return nil, fmt.Errorf("account %q: unsupported role %q", a.Username, a.Role)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
		}
		g.accounts = append(g.accounts, account{
			role:         a.Role,
			token:        []byte(a.Token),
			username:     a.Username,
			passwordHash: hash,
		})
	}
	return g, nil
}

// Resolve maps a presented token to its role.
func (g *Gate) Resolve(token string) (models.Role, error) {
	if token == "" {
		return models.RoleNone, ErrUnknownToken
	}
	for _, a := range g.accounts {
		if subtle.ConstantTimeCompare(a.token, []byte(token)) == 1 {
			return a.role, nil
		}
	}
	return models.RoleNone, ErrUnknownToken
}

// Authenticate checks a username and password and issues the account's token.
func (g *Gate) Authenticate(username, password string) (models.BearerToken, error) {
	for _, a := range g.accounts {
		if a.username == "" || a.username != username {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
			return models.BearerToken{}, ErrInvalidCredentials
		}
		return models.BearerToken{
			AccessToken: string(a.token),
			TokenType:   "bearer",
			Role:        a.role,
		}, nil
	}
	return models.BearerToken{}, ErrInvalidCredentials
}

// CredentialFromRequest extracts the presented credential: a bearer
// Authorization header first, then the API-key headers.
func CredentialFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, value, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(value)
		}
	}
	for _, name := range apiKeyHeaders {
		if v := strings.TrimSpace(r.Header.Get(name)); v != "" {
			return v
		}
	}
	return ""
}
