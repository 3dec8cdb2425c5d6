package console

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Pesokrava/ecommerce_ledger/internal/domain"
	"github.com/Pesokrava/ecommerce_ledger/internal/pkg/validator"
)

// ErrUnknownCommand is returned by Parse for an unrecognized action
var ErrUnknownCommand = errors.New("unknown command")

// Command is a parsed and validated console command
type Command interface {
	Action() string
}

// SaveProductCommand registers a product: save_product <id> <name> <price>
type SaveProductCommand struct {
	ID    string  `validate:"required"`
	Name  string  `validate:"required"`
	Price float64 `validate:"gte=0"`
}

// PurchaseProductCommand records a stock purchase: purchase_product <id> <quantity> <cost>
type PurchaseProductCommand struct {
	ID       string  `validate:"required"`
	Quantity int     `validate:"gte=0"`
	Cost     float64 `validate:"gte=0"`
}

// OrderProductCommand fulfills an order: order_product <id> <quantity>
type OrderProductCommand struct {
	ID       string `validate:"required"`
	Quantity int    `validate:"gt=0"`
}

// QuantityOfProductCommand: get_quantity_of_product <id>
type QuantityOfProductCommand struct {
	ID string `validate:"required"`
}

// AveragePriceCommand: get_average_price <id>
type AveragePriceCommand struct {
	ID string `validate:"required"`
}

// ProductProfitCommand: get_product_profit <id>
type ProductProfitCommand struct {
	ID string `validate:"required"`
}

// FewestProductCommand: get_fewest_product
type FewestProductCommand struct{}

// MostPopularProductCommand: get_most_popular_product
type MostPopularProductCommand struct{}

// OrdersReportCommand: get_orders_report
type OrdersReportCommand struct{}

// ExportOrdersReportCommand: export_orders_report <path>
type ExportOrdersReportCommand struct {
	Path string `validate:"required"`
}

// HelpCommand: help
type HelpCommand struct{}

// ExitCommand: exit
type ExitCommand struct{}

func (SaveProductCommand) Action() string        { return "save_product" }
func (PurchaseProductCommand) Action() string    { return "purchase_product" }
func (OrderProductCommand) Action() string       { return "order_product" }
func (QuantityOfProductCommand) Action() string  { return "get_quantity_of_product" }
func (AveragePriceCommand) Action() string       { return "get_average_price" }
func (ProductProfitCommand) Action() string      { return "get_product_profit" }
func (FewestProductCommand) Action() string      { return "get_fewest_product" }
func (MostPopularProductCommand) Action() string { return "get_most_popular_product" }
func (OrdersReportCommand) Action() string       { return "get_orders_report" }
func (ExportOrdersReportCommand) Action() string { return "export_orders_report" }
func (HelpCommand) Action() string               { return "help" }
func (ExitCommand) Action() string               { return "exit" }

type commandSpec struct {
	usage string
	args  int
	build func(args []string) (Command, error)
}

var commands = map[string]commandSpec{
	"save_product": {
		usage: "save_product <id> <name> <price>",
		args:  3,
		build: func(args []string) (Command, error) {
			price, err := parseFloat("price", args[2])
			if err != nil {
				return nil, err
			}
			return SaveProductCommand{ID: args[0], Name: args[1], Price: price}, nil
		},
	},
	"purchase_product": {
		usage: "purchase_product <id> <quantity> <cost>",
		args:  3,
		build: func(args []string) (Command, error) {
			quantity, err := parseInt("quantity", args[1])
			if err != nil {
				return nil, err
			}
			cost, err := parseFloat("cost", args[2])
			if err != nil {
				return nil, err
			}
			return PurchaseProductCommand{ID: args[0], Quantity: quantity, Cost: cost}, nil
		},
	},
	"order_product": {
		usage: "order_product <id> <quantity>",
		args:  2,
		build: func(args []string) (Command, error) {
			quantity, err := parseInt("quantity", args[1])
			if err != nil {
				return nil, err
			}
			return OrderProductCommand{ID: args[0], Quantity: quantity}, nil
		},
	},
	"get_quantity_of_product": {
		usage: "get_quantity_of_product <id>",
		args:  1,
		build: func(args []string) (Command, error) {
			return QuantityOfProductCommand{ID: args[0]}, nil
		},
	},
	"get_average_price": {
		usage: "get_average_price <id>",
		args:  1,
		build: func(args []string) (Command, error) {
			return AveragePriceCommand{ID: args[0]}, nil
		},
	},
	"get_product_profit": {
		usage: "get_product_profit <id>",
		args:  1,
		build: func(args []string) (Command, error) {
			return ProductProfitCommand{ID: args[0]}, nil
		},
	},
	"get_fewest_product": {
		usage: "get_fewest_product",
		build: func([]string) (Command, error) { return FewestProductCommand{}, nil },
	},
	"get_most_popular_product": {
		usage: "get_most_popular_product",
		build: func([]string) (Command, error) { return MostPopularProductCommand{}, nil },
	},
	"get_orders_report": {
		usage: "get_orders_report",
		build: func([]string) (Command, error) { return OrdersReportCommand{}, nil },
	},
	"export_orders_report": {
		usage: "export_orders_report <path>",
		args:  1,
		build: func(args []string) (Command, error) {
			return ExportOrdersReportCommand{Path: args[0]}, nil
		},
	},
	"help": {
		usage: "help",
		build: func([]string) (Command, error) { return HelpCommand{}, nil },
	},
	"exit": {
		usage: "exit",
		build: func([]string) (Command, error) { return ExitCommand{}, nil },
	},
}

// Parse splits a line on whitespace and turns it into a typed command.
// Unknown actions yield ErrUnknownCommand; wrong arity, unparsable numbers and
// out-of-range values yield domain.ErrInvalidInput.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrUnknownCommand
	}

	spec, ok := commands[fields[0]]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}

	args := fields[1:]
	if len(args) != spec.args {
		return nil, fmt.Errorf("%w: usage: %s", domain.ErrInvalidInput, spec.usage)
	}

	cmd, err := spec.build(args)
	if err != nil {
		return nil, err
	}

	if err := validator.Get().Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Describe(err))
	}

	return cmd, nil
}

// Usage lists every command in a stable order
func Usage() []string {
	return []string{
		commands["save_product"].usage,
		commands["purchase_product"].usage,
		commands["order_product"].usage,
		commands["get_quantity_of_product"].usage,
		commands["get_average_price"].usage,
		commands["get_product_profit"].usage,
		commands["get_fewest_product"].usage,
		commands["get_most_popular_product"].usage,
		commands["get_orders_report"].usage,
		commands["export_orders_report"].usage,
		commands["help"].usage,
		commands["exit"].usage,
	}
}

func parseInt(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrInvalidInput, field, value)
	}
	return n, nil
}

func parseFloat(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", domain.ErrInvalidInput, field, value)
	}
	return f, nil
}
