package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Pesokrava/ecommerce_ledger/internal/config"
	"github.com/Pesokrava/ecommerce_ledger/internal/pkg/logger"
)

// REPL reads commands line by line and hands them to a Handler.
// Each command completes, output included, before the next line is read.
type REPL struct {
	handler  *Handler
	prompt   string
	greeting string
	out      io.Writer
	logger   *logger.Logger
}

// NewREPL creates a new read-eval-print loop
func NewREPL(handler *Handler, cfg config.ConsoleConfig, out io.Writer, log *logger.Logger) *REPL {
	return &REPL{
		handler:  handler,
		prompt:   cfg.Prompt,
		greeting: cfg.Greeting,
		out:      out,
		logger:   log,
	}
}

// Run processes commands from in until exit, end of input or ctx is done
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	if r.greeting != "" {
		fmt.Fprintln(r.out, r.greeting)
	}

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines, readErr := readLines(readCtx, in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(r.out, r.prompt)

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read command: %w", err)
				}
				r.logger.Debug("End of input, closing session")
				return nil
			}
			line = strings.TrimSpace(l)
		}

		if line == "" {
			continue
		}

		cmd, err := Parse(line)
		if err != nil {
			r.logger.Debugf("Rejected command %q: %v", line, err)
			if errors.Is(err, ErrUnknownCommand) {
				fmt.Fprintln(r.out, "Invalid command")
			} else {
				fmt.Fprintln(r.out, invalidCommandMessage(err))
			}
			continue
		}

		r.logger.Debugf("Executing %s", cmd.Action())
		if r.handler.Execute(ctx, cmd) {
			r.logger.Debug("Exit requested, closing session")
			return nil
		}
	}
}

// readLines scans in on its own goroutine so a blocked read never delays
// cancellation. The error channel receives the scanner error once lines is
// closed at end of input.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}
