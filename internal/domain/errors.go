package domain

import "errors"

var (
	// ErrNotFound is returned when a product id is not in the catalog
	ErrNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when an order asks for more units than are on hand
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNoPurchaseHistory is returned when a cost metric is requested for a product
	// that has never been purchased
	ErrNoPurchaseHistory = errors.New("no purchase history")

	// ErrInvalidInput is returned when command arguments fail parsing or validation
	ErrInvalidInput = errors.New("invalid input")
)
