// Package basket keeps one product quantity map per session token.
//
// Entries hold product identifiers only. A product deleted from the catalog
// stays in the stored map until the next view or mutation of that basket
// prunes it.
package basket

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"github.com/Lixing-Zhang/shop-backend/internal/repository"
)

var (
	ErrItemNotInBasket  = errors.New("item not in basket")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrProductNotFound  = repository.ErrProductNotFound
	ErrInvalidSessionID = errors.New("session token is empty")
)

// ProductLookup is the catalog view the manager needs.
type ProductLookup interface {
	GetByID(ctx context.Context, id int64) (models.Product, error)
}

type entry struct {
	productID int64
	quantity  int
}

// session is one token's basket. Entries keep insertion order.
type session struct {
	mu      sync.Mutex
	entries []entry
}

func (s *session) find(productID int64) int {
	for i, e := range s.entries {
		if e.productID == productID {
			return i
		}
	}
	return -1
}

func (s *session) removeAt(i int) {
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
}

// Manager owns every session basket. Operations on different tokens only
// share the registry lock for the session lookup.
type Manager struct {
	catalog ProductLookup

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewManager creates a basket manager backed by catalog
func NewManager(catalog ProductLookup) *Manager {
	return &Manager{
		catalog:  catalog,
		sessions: make(map[string]*session),
	}
}

// session returns the token's basket, creating it on first use.
func (m *Manager) session(token string) *session {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok = m.sessions[token]; !ok {
		s = &session{}
		m.sessions[token] = s
	}
	return s
}

// View materializes the basket with live catalog names and prices, pruning
// entries whose product no longer exists.
func (m *Manager) View(ctx context.Context, token string) (models.Basket, error) {
	if token == "" {
		return models.Basket{}, ErrInvalidSessionID
	}
	s := m.session(token)
	s.mu.Lock()
	defer s.mu.Unlock()

	return m.viewLocked(ctx, s)
}

func (m *Manager) viewLocked(ctx context.Context, s *session) (models.Basket, error) {
	items := make([]models.BasketItem, 0, len(s.entries))
	kept := make([]entry, 0, len(s.entries))
	for _, e := range s.entries {
		p, err := m.catalog.GetByID(ctx, e.productID)
		if errors.Is(err, ErrProductNotFound) {
			continue
		}
		if err != nil {
			return models.Basket{}, fmt.Errorf("catalog.GetByID: %w", err)
		}
		kept = append(kept, e)
		items = append(items, models.BasketItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  e.quantity,
		})
	}
	s.entries = kept
	return models.NewBasket(items), nil
}

// Add inserts the product with quantity if absent and reports created=true.
// A product already in the basket keeps its quantity and created is false.
func (m *Manager) Add(ctx context.Context, token string, productID int64, quantity int) (models.Basket, bool, error) {
	if token == "" {
		return models.Basket{}, false, ErrInvalidSessionID
	}
	if quantity <= 0 {
		return models.Basket{}, false, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if _, err := m.catalog.GetByID(ctx, productID); err != nil {
		return models.Basket{}, false, err
	}

	s := m.session(token)
	s.mu.Lock()
	defer s.mu.Unlock()

	created := false
	if s.find(productID) < 0 {
		s.entries = append(s.entries, entry{productID: productID, quantity: quantity})
		created = true
	}

	b, err := m.viewLocked(ctx, s)
	if err != nil {
		return models.Basket{}, false, err
	}
	// A delete between the lookup above and the view prunes the new entry.
	if s.find(productID) < 0 {
		return models.Basket{}, false, ErrProductNotFound
	}
	return b, created, nil
}

// SetQuantity overwrites the stored quantity. Zero removes the entry and
// succeeds even when it was absent.
func (m *Manager) SetQuantity(ctx context.Context, token string, productID int64, quantity int) (models.Basket, error) {
	if token == "" {
		return models.Basket{}, ErrInvalidSessionID
	}
	if quantity < 0 {
		return models.Basket{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if quantity > 0 {
		if _, err := m.catalog.GetByID(ctx, productID); err != nil {
			return models.Basket{}, err
		}
	}

	s := m.session(token)
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(productID)
	switch {
	case quantity == 0 && i >= 0:
		s.removeAt(i)
	case quantity > 0 && i >= 0:
		s.entries[i].quantity = quantity
	case quantity > 0:
		s.entries = append(s.entries, entry{productID: productID, quantity: quantity})
	}

	b, err := m.viewLocked(ctx, s)
	if err != nil {
		return models.Basket{}, err
	}
	if quantity > 0 && s.find(productID) < 0 {
		return models.Basket{}, ErrProductNotFound
	}
	return b, nil
}

// Remove deletes an entry that must currently be in the basket.
func (m *Manager) Remove(ctx context.Context, token string, productID int64) error {
	if token == "" {
		return ErrInvalidSessionID
	}
	s := m.session(token)
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(productID)
	if i < 0 {
		return ErrItemNotInBasket
	}
	s.removeAt(i)
	return nil
}

// Clear empties the basket unconditionally.
func (m *Manager) Clear(ctx context.Context, token string) (models.Basket, error) {
	if token == "" {
		return models.Basket{}, ErrInvalidSessionID
	}
	s := m.session(token)
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()

	return models.NewBasket(nil), nil
}
