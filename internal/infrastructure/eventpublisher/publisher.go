package eventpublisher

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/infrastructure/retry"
)

// TransactionSource reads the append-only transaction log in ID order.
type TransactionSource interface {
	ListAfter(ctx context.Context, afterID uint64, limit int) ([]*domain.Transaction, error)
}

// Publisher defines the interface for publishing events to external systems.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}

// EventPublisher streams committed transactions to a Publisher. The log is
// the outbox: a cursor tracks the last published transaction ID, and events
// are delivered in log order at least once.
type EventPublisher struct {
	source    TransactionSource
	publisher Publisher
	retrier   *retry.Retrier
	metrics   *metrics.Metrics
	logger    zerolog.Logger
	batchSize int
	interval  time.Duration
	cursor    atomic.Uint64
}

// Config for EventPublisher.
type Config struct {
	Source     TransactionSource
	Publisher  Publisher
	Retrier    *retry.Retrier   // optional
	Metrics    *metrics.Metrics // optional
	Logger     zerolog.Logger
	BatchSize  int           // Number of transactions to fetch per batch
	Interval   time.Duration // Polling interval
	StartAfter uint64        // Resume after this transaction ID
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(cfg Config) *EventPublisher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}

	ep := &EventPublisher{
		source:    cfg.Source,
		publisher: cfg.Publisher,
		retrier:   cfg.Retrier,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		batchSize: cfg.BatchSize,
		interval:  cfg.Interval,
	}
	ep.cursor.Store(cfg.StartAfter)

	return ep
}

// Cursor returns the ID of the last published transaction.
func (ep *EventPublisher) Cursor() uint64 {
	return ep.cursor.Load()
}

// Start begins the event publishing worker.
// It runs continuously until the context is cancelled.
func (ep *EventPublisher) Start(ctx context.Context) error {
	ep.logger.Info().
		Int("batch_size", ep.batchSize).
		Dur("interval", ep.interval).
		Uint64("cursor", ep.Cursor()).
		Msg("event publisher started")

	ticker := time.NewTicker(ep.interval)
	defer ticker.Stop()

	// Process immediately on start
	if err := ep.processEvents(ctx); err != nil {
		ep.logger.Error().Err(err).Msg("error processing events on start")
	}

	for {
		select {
		case <-ctx.Done():
			ep.logger.Info().Uint64("cursor", ep.Cursor()).Msg("event publisher shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := ep.processEvents(ctx); err != nil {
				ep.logger.Error().Err(err).Msg("error processing events")
			}
		}
	}
}

// processEvents publishes transactions after the cursor until the log is
// drained or a publish fails. A failed event stops the pass so ordering holds.
func (ep *EventPublisher) processEvents(ctx context.Context) error {
	for {
		records, err := ep.source.ListAfter(ctx, ep.Cursor(), ep.batchSize)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			return nil
		}

		ep.logger.Debug().Int("count", len(records)).Msg("processing events")

		for _, record := range records {
			event := NewEvent(record)
			if err := ep.publishEvent(ctx, event); err != nil {
				if ep.metrics != nil {
					ep.metrics.EventPublishErrors.Inc()
				}
				ep.logger.Error().
					Err(err).
					Str("event_id", event.EventID).
					Str("event_type", event.EventType).
					Msg("failed to publish event")
				return nil
			}

			ep.cursor.Store(record.ID)
			if ep.metrics != nil {
				ep.metrics.EventsPublished.Inc()
				ep.metrics.EventCursorPosition.Set(float64(record.ID))
			}
		}

		if len(records) < ep.batchSize {
			return nil
		}
	}
}

// publishEvent publishes a single event.
func (ep *EventPublisher) publishEvent(ctx context.Context, event *Event) error {
	publish := func() error {
		return ep.publisher.Publish(ctx, event)
	}

	if ep.retrier != nil {
		return ep.retrier.Retry(ctx, "publish_event", publish)
	}
	return publish()
}

// LogPublisher is a simple publisher that logs events.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.logger.Info().
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("account_id", event.AccountID).
		RawJSON("payload", payload).
		Msg("event published")

	return nil
}
