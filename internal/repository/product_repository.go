package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Lixing-Zhang/shop-backend/internal/models"
	"golang.org/x/text/cases"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, in models.ProductInput) (models.Product, error)
	GetByID(ctx context.Context, id int64) (models.Product, error)
	Update(ctx context.Context, id int64, in models.ProductInput) (models.Product, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, s models.ProductSearch) ([]models.Product, error)
	Count(ctx context.Context) (int, error)
}

// InMemoryProductRepository implements ProductRepository with in-memory storage.
// Products are returned in insertion order.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[int64]models.Product
	order    []int64
	lastID   int64
}

// NewInMemoryProductRepository creates a repository holding the given seed products in order.
// Seed identifiers are reassigned sequentially starting at 1.
func NewInMemoryProductRepository(seed []models.ProductInput) *InMemoryProductRepository {
	r := &InMemoryProductRepository{
		products: make(map[int64]models.Product, len(seed)),
		order:    make([]int64, 0, len(seed)),
	}
	for _, in := range seed {
		r.insertLocked(in)
	}
	return r
}

// Create allocates the next identifier and stores the product as one atomic step.
// Identifiers are never reused, even after the highest one is deleted.
func (r *InMemoryProductRepository) Create(ctx context.Context, in models.ProductInput) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertLocked(in), nil
}

func (r *InMemoryProductRepository) insertLocked(in models.ProductInput) models.Product {
	r.lastID++
	p := models.Product{
		ID:          r.lastID,
		Name:        in.Name,
		Description: in.Description,
		Price:       models.RoundPrice(in.Price),
	}
	r.products[p.ID] = p
	r.order = append(r.order, p.ID)
	return p
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id int64) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		return models.Product{}, ErrProductNotFound
	}
	return product, nil
}

// Update replaces every field of the product, keeping its ID
func (r *InMemoryProductRepository) Update(ctx context.Context, id int64, in models.ProductInput) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return models.Product{}, ErrProductNotFound
	}
	p := models.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       models.RoundPrice(in.Price),
	}
	r.products[id] = p
	return p, nil
}

// Delete removes the product. Baskets and sales keep their references.
func (r *InMemoryProductRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return ErrProductNotFound
	}
	delete(r.products, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Search returns the products matching every set filter, in insertion order.
// The query text matches name or description case-insensitively.
func (r *InMemoryProductRepository) Search(ctx context.Context, s models.ProductSearch) ([]models.Product, error) {
	// Caser is stateful; one per call.
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(s.Query))

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.products[id]
		if query != "" &&
			!strings.Contains(fold.String(p.Name), query) &&
			!strings.Contains(fold.String(p.Description), query) {
			continue
		}
		if !models.InRange(p.Price, s.MinPrice, s.MaxPrice) {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// GetAll returns all products
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.Search(ctx, models.ProductSearch{})
}

// Count returns the number of products in the catalog
func (r *InMemoryProductRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products), nil
}
