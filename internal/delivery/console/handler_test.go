package console

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type unsupportedCommand struct{}

func (unsupportedCommand) Action() string { return "unsupported" }

func TestHandler_Execute_Help(t *testing.T) {
	s := newSession()

	exit := s.repl.handler.Execute(context.Background(), HelpCommand{})

	assert.False(t, exit)
	out := s.out.String()
	assert.True(t, strings.HasPrefix(out, "Commands:\n"))
	for _, usage := range Usage() {
		assert.Contains(t, out, "  "+usage+"\n")
	}
}

func TestHandler_Execute_Exit(t *testing.T) {
	s := newSession()

	assert.True(t, s.repl.handler.Execute(context.Background(), ExitCommand{}))
	assert.Empty(t, s.out.String())
}

func TestHandler_Execute_UnsupportedCommand(t *testing.T) {
	s := newSession()

	exit := s.repl.handler.Execute(context.Background(), unsupportedCommand{})

	assert.False(t, exit)
	assert.Equal(t, "Invalid command\n", s.out.String())
}

func TestHandler_Execute_OverwriteKeepsOrdersJoinedToNewName(t *testing.T) {
	s := newSession()
	ctx := context.Background()
	h := s.repl.handler

	h.Execute(ctx, SaveProductCommand{ID: "P1", Name: "Widget", Price: 10})
	h.Execute(ctx, PurchaseProductCommand{ID: "P1", Quantity: 5, Cost: 40})
	h.Execute(ctx, OrderProductCommand{ID: "P1", Quantity: 3})
	h.Execute(ctx, SaveProductCommand{ID: "P1", Name: "Gizmo", Price: 4})
	s.out.Reset()

	h.Execute(ctx, OrdersReportCommand{})

	assert.Equal(t,
		"Product ID\tProduct Name\tQuantity\tPrice\tCOGS\tSelling Price\nP1\tGizmo\t3\t4\t12\t30\n",
		s.out.String(),
	)
}
