package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/Pesokrava/ecommerce_ledger/internal/domain"
	"github.com/Pesokrava/ecommerce_ledger/internal/pkg/logger"
	"github.com/Pesokrava/ecommerce_ledger/internal/usecase/catalog"
	"github.com/Pesokrava/ecommerce_ledger/internal/usecase/ledger"
)

// Handler executes console commands against the catalog and the ledger and
// writes their output
type Handler struct {
	catalog  *catalog.Service
	ledger   *ledger.Service
	fs       afero.Fs
	fileMode os.FileMode
	out      io.Writer
	logger   *logger.Logger
}

// NewHandler creates a new console handler. Exported reports are written to fs.
func NewHandler(
	catalogService *catalog.Service,
	ledgerService *ledger.Service,
	fs afero.Fs,
	fileMode os.FileMode,
	out io.Writer,
	log *logger.Logger,
) *Handler {
	return &Handler{
		catalog:  catalogService,
		ledger:   ledgerService,
		fs:       fs,
		fileMode: fileMode,
		out:      out,
		logger:   log,
	}
}

// Execute runs one command. It returns true when the session should end.
func (h *Handler) Execute(ctx context.Context, cmd Command) bool {
	switch c := cmd.(type) {
	case SaveProductCommand:
		if err := h.catalog.RegisterProduct(ctx, c.ID, c.Name, c.Price); err != nil {
			h.handleError(c.ID, err)
		}

	case PurchaseProductCommand:
		if err := h.catalog.RecordPurchase(ctx, c.ID, c.Quantity, c.Cost); err != nil {
			h.handleError(c.ID, err)
		}

	case OrderProductCommand:
		if _, err := h.ledger.FulfillOrder(ctx, c.ID, c.Quantity); err != nil {
			h.handleError(c.ID, err)
		}

	case QuantityOfProductCommand:
		quantity, err := h.catalog.QuantityOf(ctx, c.ID)
		if err != nil {
			h.handleError(c.ID, err)
			return false
		}
		h.println(strconv.Itoa(quantity))

	case AveragePriceCommand:
		average, err := h.catalog.AverageCost(ctx, c.ID)
		if err != nil {
			h.handleError(c.ID, err)
			return false
		}
		h.println(FormatNumber(average))

	case ProductProfitCommand:
		profit, err := h.ledger.Profit(ctx, c.ID)
		if err != nil {
			h.handleError(c.ID, err)
			return false
		}
		h.println(FormatNumber(profit))

	case FewestProductCommand:
		product, err := h.catalog.FewestStocked(ctx)
		if err != nil {
			h.handleError("", err)
			return false
		}
		h.printProductName(product)

	case MostPopularProductCommand:
		product, err := h.catalog.MostOrdered(ctx)
		if err != nil {
			h.handleError("", err)
			return false
		}
		h.printProductName(product)

	case OrdersReportCommand:
		fmt.Fprint(h.out, OrdersTable(h.ledger.AllOrders(ctx)))

	case ExportOrdersReportCommand:
		h.exportOrders(ctx, c.Path)

	case HelpCommand:
		h.println("Commands:")
		for _, usage := range Usage() {
			h.println("  " + usage)
		}

	case ExitCommand:
		return true

	default:
		h.println("Invalid command")
	}

	return false
}

func (h *Handler) exportOrders(ctx context.Context, path string) {
	report := OrdersCSV(h.ledger.AllOrders(ctx))

	if err := afero.WriteFile(h.fs, path, []byte(report), h.fileMode); err != nil {
		h.logger.WithFields(map[string]interface{}{
			"path": path,
		}).Error("Failed to export orders report", err)
		h.println(fmt.Sprintf("Failed to export report to %s: %v", path, err))
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"path":  path,
		"bytes": len(report),
	}).Info("Orders report exported")
	h.println("Report exported to " + path)
}

func (h *Handler) printProductName(product *domain.Product) {
	if product == nil {
		h.println("null")
		return
	}
	h.println(product.Name)
}

// handleError maps domain errors to operator messages
func (h *Handler) handleError(productID string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.println(fmt.Sprintf("Product %s not found", productID))
	case errors.Is(err, domain.ErrInsufficientStock):
		h.println("Not enough stock for the order.")
	case errors.Is(err, domain.ErrNoPurchaseHistory):
		h.println(fmt.Sprintf("No purchase history for product %s", productID))
	case errors.Is(err, domain.ErrInvalidInput):
		h.println(invalidCommandMessage(err))
	default:
		h.logger.Error("Command failed", err)
		h.println(fmt.Sprintf("Error: %v", err))
	}
}

func (h *Handler) println(s string) {
	fmt.Fprintln(h.out, s)
}

func invalidCommandMessage(err error) string {
	if err == domain.ErrInvalidInput {
		return "Invalid command"
	}
	return "Invalid command: " + strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
}
