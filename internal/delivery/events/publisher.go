package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/ecommerce_ledger/internal/config"
	"github.com/Pesokrava/ecommerce_ledger/internal/domain"
	"github.com/Pesokrava/ecommerce_ledger/internal/pkg/logger"
)

// Publisher handles publishing ledger events to NATS JetStream
type Publisher struct {
	nc      *nats.Conn
	js      nats.JetStreamContext
	subject string
	timeout time.Duration
	logger  *logger.Logger
}

// NewPublisher connects to NATS, makes sure the ledger stream exists and
// returns a publisher for cfg.NATS.Subject
func NewPublisher(cfg *config.Config, log *logger.Logger) (*Publisher, error) {
	nc, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if err := NewStreamConfig(js, cfg.NATS.Subject, log).EnsureStream(); err != nil {
		nc.Close()
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"url":     cfg.NATS.URL,
		"subject": cfg.NATS.Subject,
	}).Info("Connected to NATS JetStream")

	return &Publisher{
		nc:      nc,
		js:      js,
		subject: cfg.NATS.Subject,
		timeout: cfg.NATS.PublishTimeout,
		logger:  log,
	}, nil
}

// PublishEvent encodes event as JSON and publishes it to the ledger subject
func (p *Publisher) PublishEvent(ctx context.Context, event domain.LedgerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.Publish(ctx, p.subject, data)
}

// Publish publishes a message to a NATS JetStream subject and waits for the ack
func (p *Publisher) Publish(ctx context.Context, subject string, data []byte) error {
	pubAck, err := p.js.Publish(subject, data, nats.Context(ctx))
	if err != nil {
		p.logger.WithFields(map[string]interface{}{
			"subject": subject,
		}).Error("Failed to publish message to JetStream", err)
		return fmt.Errorf("failed to publish to JetStream: %w", err)
	}

	p.logger.WithFields(map[string]interface{}{
		"subject":  subject,
		"stream":   pubAck.Stream,
		"sequence": pubAck.Sequence,
	}).Debug("Published message to JetStream")

	return nil
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
		p.logger.Info("NATS publisher connection closed")
	}
}

// NopPublisher drops every event. It is used when no NATS URL is configured.
type NopPublisher struct{}

// PublishEvent implements domain.EventPublisher
func (NopPublisher) PublishEvent(context.Context, domain.LedgerEvent) error {
	return nil
}

// Close is a no-op
func (NopPublisher) Close() {}
