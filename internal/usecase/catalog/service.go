package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Pesokrava/ecommerce_ledger/internal/domain"
	"github.com/Pesokrava/ecommerce_ledger/internal/pkg/logger"
	pkgvalidator "github.com/Pesokrava/ecommerce_ledger/internal/pkg/validator"
)

// Service handles product registration, stock purchases and stock analytics
type Service struct {
	repo      domain.ProductRepository
	publisher domain.EventPublisher
	validate  *validator.Validate
	logger    *logger.Logger
}

// NewService creates a new catalog service
func NewService(repo domain.ProductRepository, publisher domain.EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		validate:  pkgvalidator.Get(),
		logger:    log,
	}
}

// RegisterProduct creates a product with an empty stock and purchase history.
// Registering an existing id replaces that product.
func (s *Service) RegisterProduct(ctx context.Context, id, name string, unitPrice float64) error {
	product := &domain.Product{
		ID:        id,
		Name:      name,
		UnitPrice: unitPrice,
	}

	if err := s.validate.Struct(product); err != nil {
		s.logger.Error("Product validation failed", err)
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pkgvalidator.Describe(err))
	}

	// TODO: decide between rejecting and merging duplicate registrations; the
	// existing balance and purchase history are currently discarded.
	if existing, err := s.repo.GetByID(ctx, id); err == nil {
		s.logger.WithFields(map[string]interface{}{
			"product_id":       id,
			"previous_name":    existing.Name,
			"previous_balance": existing.Balance,
		}).Warn("Overwriting existing product")
	}

	if err := s.repo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save product", err)
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": id,
		"name":       name,
		"unit_price": unitPrice,
	}).Info("Product registered")

	s.publish(ctx, domain.NewLedgerEvent(domain.EventProductRegistered, id, 0, unitPrice))

	return nil
}

// RecordPurchase adds a stock-in event of quantity units bought for cost in total
func (s *Service) RecordPurchase(ctx context.Context, id string, quantity int, cost float64) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must be at least 0", domain.ErrInvalidInput)
	}

	product, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	product.Balance += quantity
	product.TotalPurchaseCost += cost
	product.PurchaseEventCount++

	if err := s.repo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to record purchase", err)
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": id,
		"quantity":   quantity,
		"cost":       cost,
		"balance":    product.Balance,
	}).Info("Purchase recorded")

	s.publish(ctx, domain.NewLedgerEvent(domain.EventStockPurchased, id, quantity, cost))

	return nil
}

// QuantityOf returns the on-hand balance of a product
func (s *Service) QuantityOf(ctx context.Context, id string) (int, error) {
	product, err := s.get(ctx, id)
	if err != nil {
		return 0, err
	}

	return product.Balance, nil
}

// AverageCost blends the recorded purchase costs with the remaining stock
// valued at the unit price:
//
//	(totalPurchaseCost + balance*unitPrice) / (purchaseEventCount + balance)
//
// A product that was never purchased has no average cost, whatever its balance.
func (s *Service) AverageCost(ctx context.Context, id string) (float64, error) {
	product, err := s.get(ctx, id)
	if err != nil {
		return 0, err
	}

	if !product.HasPurchaseHistory() {
		return 0, fmt.Errorf("%w: product %s", domain.ErrNoPurchaseHistory, id)
	}

	balance := float64(product.Balance)
	total := product.TotalPurchaseCost + balance*product.UnitPrice

	return total / (float64(product.PurchaseEventCount) + balance), nil
}

// FewestStocked returns the product with the lowest balance, the earliest
// registered one on ties. It returns nil for an empty catalog.
func (s *Service) FewestStocked(ctx context.Context) (*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", err)
		return nil, err
	}

	var fewest *domain.Product
	for _, product := range products {
		if fewest == nil || product.Balance < fewest.Balance {
			fewest = product
		}
	}

	return fewest, nil
}

// MostOrdered returns the product with the most purchase events, the earliest
// registered one on ties. Products never purchased are not candidates, so the
// result is nil until something has been purchased.
func (s *Service) MostOrdered(ctx context.Context) (*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", err)
		return nil, err
	}

	var most *domain.Product
	maxEvents := 0
	for _, product := range products {
		if product.PurchaseEventCount > maxEvents {
			maxEvents = product.PurchaseEventCount
			most = product
		}
	}

	return most, nil
}

func (s *Service) get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
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

// publish sends an event without failing the operation that produced it
func (s *Service) publish(ctx context.Context, event domain.LedgerEvent) {
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Warnf("Failed to publish %s event for product %s: %v", event.Type, event.ProductID, err)
	}
}
