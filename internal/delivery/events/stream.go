package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/ecommerce_ledger/internal/pkg/logger"
)

const (
	// StreamName is the JetStream stream for ledger events
	StreamName = "LEDGER"

	// StreamMaxAge bounds how long events stay available to late subscribers
	StreamMaxAge = 7 * 24 * time.Hour
)

// StreamConfig holds the JetStream stream configuration
type StreamConfig struct {
	js      nats.JetStreamContext
	subject string
	logger  *logger.Logger
}

// NewStreamConfig creates a new stream configuration helper
func NewStreamConfig(js nats.JetStreamContext, subject string, log *logger.Logger) *StreamConfig {
	return &StreamConfig{
		js:      js,
		subject: subject,
		logger:  log,
	}
}

// StreamSettings returns the configuration of the ledger stream.
// Limits retention keeps events for every subscriber until they age out.
func StreamSettings(subject string) *nats.StreamConfig {
	return &nats.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{subject},
		Retention:   nats.LimitsPolicy,
		Storage:     nats.FileStorage,
		Replicas:    1,
		MaxAge:      StreamMaxAge,
		Discard:     nats.DiscardOld,
		Description: "Catalog and order events from the ledger console",
	}
}

// EnsureStream creates the ledger stream if it does not exist yet
func (s *StreamConfig) EnsureStream() error {
	stream, err := s.js.StreamInfo(StreamName)

	if errors.Is(err, nats.ErrStreamNotFound) {
		s.logger.WithFields(map[string]any{
			"stream":   StreamName,
			"subjects": s.subject,
		}).Info("Creating JetStream stream")

		if _, err := s.js.AddStream(StreamSettings(s.subject)); err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}

		s.logger.Info("JetStream stream created successfully")
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get stream info: %w", err)
	}

	s.logger.WithFields(map[string]any{
		"stream":   stream.Config.Name,
		"messages": stream.State.Msgs,
		"bytes":    stream.State.Bytes,
	}).Info("JetStream stream already exists")

	return nil
}
