package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"github.com/Lixing-Zhang/shop-backend/internal/repository"
)

// SalesRecorder appends records to the sales ledger
type SalesRecorder interface {
	Append(records ...models.SalesRecord)
}

// BurstGenerator fabricates the opening sales of a new product
type BurstGenerator interface {
	Burst(p models.Product) []models.SalesRecord
}

// ProductService handles business logic for products
type ProductService struct {
	repo      repository.ProductRepository
	sales     SalesRecorder
	generator BurstGenerator
	logger    *slog.Logger
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository, sales SalesRecorder, generator BurstGenerator, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		sales:     sales,
		generator: generator,
		logger:    logger,
	}
}

// ListProducts returns the products matching the search filters
func (s *ProductService) ListProducts(ctx context.Context, role models.Role, search models.ProductSearch) ([]models.Product, error) {
	if err := authorize(role, models.RoleUser); err != nil {
		return nil, err
	}
	if err := search.Validate(); err != nil {
		return nil, invalidArgument(err)
	}
	return s.repo.Search(ctx, search)
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, role models.Role, id int64) (models.Product, error) {
	if err := authorize(role, models.RoleUser); err != nil {
		return models.Product{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// CountProducts returns the catalog size
func (s *ProductService) CountProducts(ctx context.Context, role models.Role) (int, error) {
	if err := authorize(role, models.RoleUser); err != nil {
		return 0, err
	}
	return s.repo.Count(ctx)
}

// CreateProduct stores a new product and records its opening sales burst.
func (s *ProductService) CreateProduct(ctx context.Context, role models.Role, in models.ProductInput) (models.Product, error) {
	if err := authorize(role, models.RoleAdmin); err != nil {
		return models.Product{}, err
	}
	if err := in.Validate(); err != nil {
		return models.Product{}, invalidArgument(err)
	}

	product, err := s.repo.Create(ctx, in)
	if err != nil {
		return models.Product{}, fmt.Errorf("repo.Create: %w", err)
	}

	if s.generator != nil && s.sales != nil {
		burst := s.generator.Burst(product)
		s.sales.Append(burst...)
		s.logger.Debug("recorded opening sales", "product_id", product.ID, "records", len(burst))
	}

	s.logger.Info("product created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// UpdateProduct replaces the fields of an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, role models.Role, id int64, in models.ProductInput) (models.Product, error) {
	if err := authorize(role, models.RoleAdmin); err != nil {
		return models.Product{}, err
	}
	if err := in.Validate(); err != nil {
		return models.Product{}, invalidArgument(err)
	}

	product, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return models.Product{}, err
	}
	s.logger.Info("product updated", "product_id", id)
	return product, nil
}

// DeleteProduct removes a product from the catalog
func (s *ProductService) DeleteProduct(ctx context.Context, role models.Role, id int64) error {
	if err := authorize(role, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", "product_id", id)
	return nil
}
