package domain

import "context"

// Product is a catalog entry together with its stock and purchase accounting
type Product struct {
	ID                 string  `json:"id" validate:"required"`
	Name               string  `json:"name" validate:"required"`
	UnitPrice          float64 `json:"unit_price" validate:"gte=0"`
	Balance            int     `json:"balance" validate:"gte=0"`
	TotalPurchaseCost  float64 `json:"total_purchase_cost"`
	PurchaseEventCount int     `json:"purchase_event_count" validate:"gte=0"`
}

// HasPurchaseHistory reports whether at least one purchase was recorded
func (p *Product) HasPurchaseHistory() bool {
	return p.PurchaseEventCount > 0
}

// ProductRepository defines the interface for catalog storage.
// Implementations return copies; callers persist changes through Save.
type ProductRepository interface {
	// Save inserts a product or replaces the one stored under the same ID.
	// A replaced product keeps its position in List order.
	Save(ctx context.Context, product *Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id string) (*Product, error)

	// List returns all products in registration order
	List(ctx context.Context) ([]*Product, error)
}
