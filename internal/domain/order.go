package domain

import "context"

// Order is a fulfilled customer order. Orders are identified only by their
// position in the ledger.
type Order struct {
	ProductID  string  `json:"product_id"`
	Quantity   int     `json:"quantity"`
	SaleAmount float64 `json:"sale_amount"`
}

// OrderLine is an order joined with the current state of its product
type OrderLine struct {
	ProductID    string
	ProductName  string
	Quantity     int
	Price        float64
	COGS         float64
	SellingPrice float64
}

// OrderRepository defines the interface for the append-only order ledger
type OrderRepository interface {
	// Append adds an order to the end of the ledger
	Append(ctx context.Context, order Order) error

	// List returns all orders in the order they were appended
	List(ctx context.Context) ([]Order, error)

	// ListByProductID returns the orders placed for one product
	ListByProductID(ctx context.Context, productID string) ([]Order, error)

	// Count returns the number of orders in the ledger
	Count(ctx context.Context) (int, error)
}
