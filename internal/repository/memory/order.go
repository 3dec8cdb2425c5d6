package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/Pesokrava/ecommerce_ledger/internal/domain"
)

// OrderRepository implements domain.OrderRepository as an append-only slice
type OrderRepository struct {
	mu     sync.RWMutex
	orders []domain.Order
}

// NewOrderRepository creates an empty order ledger
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Append adds an order to the end of the ledger
func (r *OrderRepository) Append(ctx context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append(r.orders, order)
	return nil
}

// List returns a copy of every order in append order
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.orders), nil
}

// ListByProductID returns the orders placed for productID in append order
func (r *OrderRepository) ListByProductID(ctx context.Context, productID string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []domain.Order
	for _, order := range r.orders {
		if order.ProductID == productID {
			orders = append(orders, order)
		}
	}

	return orders, nil
}

// Count returns the number of orders in the ledger
func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.orders), nil
}
