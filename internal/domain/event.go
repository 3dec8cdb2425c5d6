package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Ledger event types
const (
	EventProductRegistered = "product.registered"
	EventStockPurchased    = "stock.purchased"
	EventOrderFulfilled    = "order.fulfilled"
)

// LedgerEvent describes a successful mutation of the catalog or ledger
type LedgerEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity,omitempty"`
	Amount    float64   `json:"amount,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEvent stamps an event with a fresh ID and the current time
func NewLedgerEvent(eventType, productID string, quantity int, amount float64) LedgerEvent {
	return LedgerEvent{
		ID:        uuid.New(),
		Type:      eventType,
		ProductID: productID,
		Quantity:  quantity,
		Amount:    amount,
		Timestamp: time.Now().UTC(),
	}
}

// EventPublisher delivers ledger events to interested subscribers
type EventPublisher interface {
	PublishEvent(ctx context.Context, event LedgerEvent) error
}
