package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/ecommerce_ledger/internal/config"
	"github.com/Pesokrava/ecommerce_ledger/internal/delivery/events"
	"github.com/Pesokrava/ecommerce_ledger/internal/pkg/logger"
	"github.com/Pesokrava/ecommerce_ledger/internal/repository/memory"
	"github.com/Pesokrava/ecommerce_ledger/internal/usecase/catalog"
	"github.com/Pesokrava/ecommerce_ledger/internal/usecase/ledger"
)

type session struct {
	repl *REPL
	out  *bytes.Buffer
	fs   afero.Fs
}

func newSession() *session {
	log := logger.Nop()
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	publisher := events.NopPublisher{}

	out := &bytes.Buffer{}
	fs := afero.NewMemMapFs()
	handler := NewHandler(
		catalog.NewService(products, publisher, log),
		ledger.NewService(products, orders, publisher, log),
		fs,
		0o644,
		out,
		log,
	)
	repl := NewREPL(handler, config.ConsoleConfig{}, out, log)

	return &session{repl: repl, out: out, fs: fs}
}

// run feeds the lines to the REPL and returns everything it printed
func (s *session) run(t *testing.T, lines ...string) []string {
	t.Helper()
	s.out.Reset()

	err := s.repl.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n"))
	require.NoError(t, err)

	output := strings.TrimSuffix(s.out.String(), "\n")
	if output == "" {
		return nil
	}
	return strings.Split(output, "\n")
}

func TestREPL_Scenario(t *testing.T) {
	s := newSession()

	output := s.run(t,
		"save_product P1 Widget 10.0",
		"purchase_product P1 5 40.0",
		"get_quantity_of_product P1",
		"get_average_price P1",
		"order_product P1 3",
		"get_quantity_of_product P1",
		"get_product_profit P1",
		"get_fewest_product",
		"get_most_popular_product",
		"get_orders_report",
		"export_orders_report /reports/orders.csv",
		"exit",
	)

	assert.Equal(t, []string{
		"5",
		"15",
		"2",
		"-10",
		"Widget",
		"Widget",
		"Product ID\tProduct Name\tQuantity\tPrice\tCOGS\tSelling Price",
		"P1\tWidget\t3\t10\t30\t30",
		"Report exported to /reports/orders.csv",
	}, output)

	data, err := afero.ReadFile(s.fs, "/reports/orders.csv")
	require.NoError(t, err)
	assert.Equal(t, "Product ID,Product Name,Quantity,Price,COGS,Selling Price\nP1,Widget,3,10,30,30", string(data))
}

func TestREPL_ErrorsDoNotEndTheSession(t *testing.T) {
	s := newSession()

	output := s.run(t,
		"frobnicate",
		"get_quantity_of_product ghost",
		"purchase_product ghost 1 1",
		"save_product P1 Widget 10",
		"get_average_price P1",
		"get_product_profit P1",
		"order_product P1 1",
		"purchase_product P1 two 10",
		"order_product P1 0",
		"get_quantity_of_product P1",
	)

	assert.Equal(t, []string{
		"Invalid command",
		"Product ghost not found",
		"Product ghost not found",
		"No purchase history for product P1",
		"No purchase history for product P1",
		"Not enough stock for the order.",
		`Invalid command: quantity must be an integer, got "two"`,
		"Invalid command: quantity must be greater than 0",
		"0",
	}, output)
}

func TestREPL_EmptyCatalog(t *testing.T) {
	s := newSession()

	output := s.run(t,
		"get_fewest_product",
		"get_most_popular_product",
		"get_orders_report",
	)

	assert.Equal(t, []string{
		"null",
		"null",
		"Product ID\tProduct Name\tQuantity\tPrice\tCOGS\tSelling Price",
	}, output)
}

func TestREPL_RankingQueries(t *testing.T) {
	s := newSession()

	output := s.run(t,
		"save_product A Alpha 1",
		"save_product B Beta 1",
		"purchase_product A 5 5",
		"purchase_product B 2 2",
		"purchase_product B 0 1",
		"get_fewest_product",
		"get_most_popular_product",
	)

	assert.Equal(t, []string{"Beta", "Beta"}, output)
}

func TestREPL_ExitStopsReading(t *testing.T) {
	s := newSession()

	output := s.run(t,
		"",
		"exit",
		"get_fewest_product",
	)

	assert.Empty(t, output)
}

func TestREPL_ReportIsRepeatable(t *testing.T) {
	s := newSession()
	s.run(t,
		"save_product P1 Widget 10",
		"purchase_product P1 5 40",
		"order_product P1 2",
	)

	first := s.run(t, "get_orders_report")
	second := s.run(t, "get_orders_report")

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestREPL_ExportFailure(t *testing.T) {
	s := newSession()
	s.fs = afero.NewReadOnlyFs(afero.NewMemMapFs())
	s.repl.handler.fs = s.fs

	output := s.run(t, "export_orders_report /orders.csv")

	require.Len(t, output, 1)
	assert.True(t, strings.HasPrefix(output[0], "Failed to export report to /orders.csv"))
}

func TestREPL_GreetingAndPrompt(t *testing.T) {
	s := newSession()
	s.repl.greeting = "Welcome to the Ecommerce Console App"
	s.repl.prompt = "Enter a command: "

	err := s.repl.Run(context.Background(), strings.NewReader("get_fewest_product\nexit\n"))

	require.NoError(t, err)
	assert.Equal(t, "Welcome to the Ecommerce Console App\nEnter a command: null\nEnter a command: ", s.out.String())
}

func TestREPL_CancelledContext(t *testing.T) {
	s := newSession()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.repl.Run(ctx, strings.NewReader("get_fewest_product\n"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.out.String())
}
