package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Pesokrava/ecommerce_ledger/internal/domain"
)

// ProductRepository implements domain.ProductRepository in process memory.
// Products are listed in the order they were first saved.
type ProductRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Product
	order []string
}

// NewProductRepository creates an empty in-memory product repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{byID: make(map[string]*domain.Product)}
}

// Save inserts or replaces a product
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) error {
	if product == nil || product.ID == "" {
		return fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[product.ID]; !ok {
		r.order = append(r.order, product.ID)
	}
	stored := *product
	r.byID[product.ID] = &stored

	return nil
}

// GetByID retrieves a copy of the product stored under id
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	product := *stored
	return &product, nil
}

// List returns copies of all products in registration order
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		product := *r.byID[id]
		products = append(products, &product)
	}

	return products, nil
}
