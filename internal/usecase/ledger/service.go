package ledger

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/Pesokrava/ecommerce_ledger/internal/domain"
	"github.com/Pesokrava/ecommerce_ledger/internal/pkg/logger"
)

// Service handles order fulfillment and order-based analytics
type Service struct {
	products  domain.ProductRepository
	orders    domain.OrderRepository
	publisher domain.EventPublisher
	logger    *logger.Logger
}

// NewService creates a new ledger service
func NewService(
	products domain.ProductRepository,
	orders domain.OrderRepository,
	publisher domain.EventPublisher,
	log *logger.Logger,
) *Service {
	return &Service{
		products:  products,
		orders:    orders,
		publisher: publisher,
		logger:    log,
	}
}

// FulfillOrder takes quantity units of a product out of stock and appends
// the order to the ledger. Orders larger than the balance are rejected whole.
func (s *Service) FulfillOrder(ctx context.Context, productID string, quantity int) (*domain.Order, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than 0", domain.ErrInvalidInput)
	}

	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Balance < quantity {
		s.logger.WithFields(map[string]interface{}{
			"product_id": productID,
			"requested":  quantity,
			"balance":    product.Balance,
		}).Debug("Order rejected")
		return nil, fmt.Errorf("%w: %d requested, %d on hand", domain.ErrInsufficientStock, quantity, product.Balance)
	}

	order := domain.Order{
		ProductID:  productID,
		Quantity:   quantity,
		SaleAmount: product.UnitPrice * float64(quantity),
	}

	product.Balance -= quantity
	if err := s.products.Save(ctx, product); err != nil {
		s.logger.Error("Failed to update product balance", err)
		return nil, err
	}

	if err := s.orders.Append(ctx, order); err != nil {
		s.logger.Error("Failed to append order", err)
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id":  productID,
		"quantity":    quantity,
		"sale_amount": order.SaleAmount,
		"balance":     product.Balance,
	}).Info("Order fulfilled")

	event := domain.NewLedgerEvent(domain.EventOrderFulfilled, productID, quantity, order.SaleAmount)
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Warnf("Failed to publish %s event for product %s: %v", event.Type, productID, err)
	}

	return &order, nil
}

// Profit returns the total profit attributed to a product.
//
// Both averages divide by the number of purchase events, not by the number of
// orders for the product, so the result reduces to revenue minus total
// purchase cost. This is how the ledger has always reported profit; do not
// switch to an order-count denominator without confirming with finance.
func (s *Service) Profit(ctx context.Context, productID string) (float64, error) {
	product, err := s.product(ctx, productID)
	if err != nil {
		return 0, err
	}

	if !product.HasPurchaseHistory() {
		return 0, fmt.Errorf("%w: product %s", domain.ErrNoPurchaseHistory, productID)
	}

	orders, err := s.orders.ListByProductID(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to list orders", err)
		return 0, err
	}

	var revenue float64
	for _, order := range orders {
		revenue += order.SaleAmount
	}

	events := float64(product.PurchaseEventCount)
	averagePurchaseCost := product.TotalPurchaseCost / events
	averageSalePrice := revenue / events

	return (averageSalePrice - averagePurchaseCost) * events, nil
}

// AllOrders returns the ledger joined with the current product state.
// The sequence reads the repositories each time it is ranged over, so it
// always reflects the latest names and unit prices.
func (s *Service) AllOrders(ctx context.Context) iter.Seq[domain.OrderLine] {
	return func(yield func(domain.OrderLine) bool) {
		orders, err := s.orders.List(ctx)
		if err != nil {
			s.logger.Error("Failed to list orders", err)
			return
		}

		for _, order := range orders {
			product, err := s.products.GetByID(ctx, order.ProductID)
			if err != nil {
				s.logger.Errorf(err, "Skipping order for unknown product %s", order.ProductID)
				continue
			}

			line := domain.OrderLine{
				ProductID:    order.ProductID,
				ProductName:  product.Name,
				Quantity:     order.Quantity,
				Price:        product.UnitPrice,
				COGS:         product.UnitPrice * float64(order.Quantity),
				SellingPrice: order.SaleAmount,
			}
			if !yield(line) {
				return
			}
		}
	}
}

func (s *Service) product(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debugf("Product not found: %s", id)
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		s.logger.Error("Failed to get product", err)
		return nil, err
	}

	return product, nil
}
