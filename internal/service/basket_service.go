package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Lixing-Zhang/shop-backend/internal/basket"
	"github.com/Lixing-Zhang/shop-backend/internal/models"
)

// BasketService exposes the basket manager to authenticated users
type BasketService struct {
	baskets *basket.Manager
	logger  *slog.Logger
}

// NewBasketService creates a new basket service
func NewBasketService(baskets *basket.Manager, logger *slog.Logger) *BasketService {
	return &BasketService{
		baskets: baskets,
		logger:  logger,
	}
}

// GetBasket returns the caller's basket
func (s *BasketService) GetBasket(ctx context.Context, p models.Principal) (models.Basket, error) {
	if err := authorize(p.Role, models.RoleUser); err != nil {
		return models.Basket{}, err
	}
	b, err := s.baskets.View(ctx, p.Token)
	return b, mapBasketError(err)
}

// AddItem puts a product in the basket. An existing line keeps its quantity.
func (s *BasketService) AddItem(ctx context.Context, p models.Principal, productID int64, quantity int) (models.BasketAddResult, error) {
	if err := authorize(p.Role, models.RoleUser); err != nil {
		return models.BasketAddResult{}, err
	}
	b, created, err := s.baskets.Add(ctx, p.Token, productID, quantity)
	if err != nil {
		return models.BasketAddResult{}, mapBasketError(err)
	}
	if created {
		s.logger.Info("basket item added", "product_id", productID, "quantity", quantity)
	}
	return models.BasketAddResult{Basket: b, Created: created}, nil
}

// SetItemQuantity overwrites a line's quantity; zero removes it
func (s *BasketService) SetItemQuantity(ctx context.Context, p models.Principal, productID int64, quantity int) (models.Basket, error) {
	if err := authorize(p.Role, models.RoleUser); err != nil {
		return models.Basket{}, err
	}
	b, err := s.baskets.SetQuantity(ctx, p.Token, productID, quantity)
	return b, mapBasketError(err)
}

// RemoveItem deletes a line that must be in the basket
func (s *BasketService) RemoveItem(ctx context.Context, p models.Principal, productID int64) error {
	if err := authorize(p.Role, models.RoleUser); err != nil {
		return err
	}
	return mapBasketError(s.baskets.Remove(ctx, p.Token, productID))
}

// ClearBasket empties the caller's basket
func (s *BasketService) ClearBasket(ctx context.Context, p models.Principal) (models.Basket, error) {
	if err := authorize(p.Role, models.RoleUser); err != nil {
		return models.Basket{}, err
	}
	b, err := s.baskets.Clear(ctx, p.Token)
	return b, mapBasketError(err)
}

func mapBasketError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, basket.ErrInvalidQuantity):
		return invalidArgument(err)
	case errors.Is(err, basket.ErrInvalidSessionID):
		return ErrUnauthenticated
	default:
		return err
	}
}
