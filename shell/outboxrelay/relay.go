// Package outboxrelay forwards unpublished outbox records to in-process consumers.
//
// Each record is consumed and marked published in one unit of work, so a consumer failure
// leaves the record unpublished for the next pass. Records with an undecodable payload
// are marked published and logged, they would fail forever otherwise.
package outboxrelay

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-rentals-go/rentalstore"
	"github.com/AntonStoeckl/library-rentals-go/shell"
)

const (
	defaultInterval  = time.Second
	defaultBatchSize = 50

	// PublishedMetric counts records handed to a consumer and marked published.
	PublishedMetric = "outbox_records_published_total"

	// FailedMetric counts records whose consumer failed, they stay unpublished.
	FailedMetric = "outbox_records_failed_total"

	// DiscardedMetric counts records marked published without a successful consumer run.
	DiscardedMetric = "outbox_records_discarded_total"

	logMsgConsumeFailed   = "outbox record consumer failed"
	logMsgRecordDiscarded = "outbox record discarded"
	logMsgFlushFailed     = "outbox relay flush failed"
	logAttrRecordID       = "record_id"
	logAttrEventType      = "event_type"
	labelEventType        = "event_type"
)

// ErrNoConsumers is returned by New when no consumer is registered.
var ErrNoConsumers = errors.New("outbox relay needs at least one consumer")

// Store defines the interface needed by the Relay for store operations.
type Store interface {
	WithinTx(ctx context.Context, fn rentalstore.TxFunc) error
	View(ctx context.Context, fn rentalstore.TxFunc) error
}

// Consumer handles one outbox record inside the unit of work that will mark it published.
type Consumer interface {
	Consume(ctx context.Context, uow rentalstore.UnitOfWork, record rentalstore.OutboxRecord) error
}

// ConsumerFunc adapts a function to a Consumer.
type ConsumerFunc func(ctx context.Context, uow rentalstore.UnitOfWork, record rentalstore.OutboxRecord) error

// Consume calls f.
func (f ConsumerFunc) Consume(ctx context.Context, uow rentalstore.UnitOfWork, record rentalstore.OutboxRecord) error {
	return f(ctx, uow, record)
}

// FlushReport summarizes one pass over the unpublished records.
type FlushReport struct {
	Published int
	Failed    int
	Discarded int
}

// Relay polls the outbox and dispatches records by event type.
type Relay struct {
	store     Store
	consumers map[string]Consumer
	interval  time.Duration
	batchSize int
	logger    shell.Logger
	metrics   shell.MetricsCollector
	trigger   chan struct{}
}

// Option configures a Relay.
type Option func(*Relay)

// WithConsumer routes records of eventType to consumer.
func WithConsumer(eventType string, consumer Consumer) Option {
	return func(r *Relay) {
		r.consumers[eventType] = consumer
	}
}

// WithInterval sets the polling interval.
func WithInterval(interval time.Duration) Option {
	return func(r *Relay) {
		if interval > 0 {
			r.interval = interval
		}
	}
}

// WithBatchSize sets how many records one flush reads at most.
func WithBatchSize(batchSize int) Option {
	return func(r *Relay) {
		if batchSize > 0 {
			r.batchSize = batchSize
		}
	}
}

// WithLogger sets the logger for failed and discarded records.
func WithLogger(logger shell.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

// WithMetrics sets the collector for the relay counters.
func WithMetrics(metrics shell.MetricsCollector) Option {
	return func(r *Relay) {
		r.metrics = metrics
	}
}

// New creates a Relay.
func New(store Store, opts ...Option) (*Relay, error) {
	if store == nil {
		return nil, shell.ErrNilStore
	}

	r := &Relay{
		store:     store,
		consumers: make(map[string]Consumer),
		interval:  defaultInterval,
		batchSize: defaultBatchSize,
		trigger:   make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(r)
	}

	if len(r.consumers) == 0 {
		return nil, ErrNoConsumers
	}

	return r, nil
}

// Trigger asks a running Relay for an immediate flush, it never blocks.
func (r *Relay) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Run flushes on every tick and on every Trigger until ctx is done. It returns nil on cancellation.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-r.trigger:
		}

		if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil && r.logger != nil {
			r.logger.Error(logMsgFlushFailed, shell.LogAttrError, err.Error())
		}
	}
}

// Flush dispatches one batch of unpublished records. Consumer failures are counted, not returned.
// The error is only set when the batch could not be read or ctx ended.
func (r *Relay) Flush(ctx context.Context) (FlushReport, error) {
	var records rentalstore.OutboxRecords

	err := r.store.View(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		var err error
		records, err = uow.Outbox().Unpublished(ctx, r.batchSize)

		return err
	})
	if err != nil {
		return FlushReport{}, err
	}

	report := FlushReport{}
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		r.dispatch(ctx, record, &report)
	}

	return report, nil
}

func (r *Relay) dispatch(ctx context.Context, record rentalstore.OutboxRecord, report *FlushReport) {
	consumer, known := r.consumers[record.EventType]

	err := r.store.WithinTx(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		if known {
			if err := consumer.Consume(ctx, uow, record); err != nil {
				return err
			}
		}

		return uow.Outbox().MarkPublished(ctx, record.ID)
	})

	switch {
	case err == nil && known:
		report.Published++
		r.count(ctx, PublishedMetric, record)

	case err == nil:
		report.Discarded++
		r.count(ctx, DiscardedMetric, record)
		r.log(logMsgRecordDiscarded, record, errors.New("no consumer for event type"))

	case errors.Is(err, rentalstore.ErrInvalidPayloadJSON):
		r.discard(ctx, record, err, report)

	case errors.Is(err, rentalstore.ErrConcurrencyConflict):
		// another relay instance got there first

	default:
		report.Failed++
		r.count(ctx, FailedMetric, record)
		r.log(logMsgConsumeFailed, record, err)
	}
}

func (r *Relay) discard(ctx context.Context, record rentalstore.OutboxRecord, cause error, report *FlushReport) {
	err := r.store.WithinTx(ctx, func(ctx context.Context, uow rentalstore.UnitOfWork) error {
		return uow.Outbox().MarkPublished(ctx, record.ID)
	})
	if err != nil {
		report.Failed++
		r.count(ctx, FailedMetric, record)
		r.log(logMsgConsumeFailed, record, err)

		return
	}

	report.Discarded++
	r.count(ctx, DiscardedMetric, record)
	r.log(logMsgRecordDiscarded, record, cause)
}

func (r *Relay) count(ctx context.Context, metric string, record rentalstore.OutboxRecord) {
	if r.metrics == nil {
		return
	}

	labels := map[string]string{labelEventType: record.EventType}
	if contextual, ok := r.metrics.(shell.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	r.metrics.IncrementCounter(metric, labels)
}

func (r *Relay) log(msg string, record rentalstore.OutboxRecord, err error) {
	if r.logger == nil {
		return
	}

	r.logger.Warn(
		msg,
		logAttrRecordID, record.ID.String(),
		logAttrEventType, record.EventType,
		shell.LogAttrError, err.Error(),
	)
}
