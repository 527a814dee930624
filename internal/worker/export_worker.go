package worker

import (
	"context"
	"errors"
	"time"

	"fundilink/internal/domain"
	"fundilink/internal/models"

	"github.com/rs/zerolog"
)

// ExportJob is one report request: a snapshot of bookings and the date range
// it covers.
type ExportJob struct {
	Bookings  []models.Booking
	From      time.Time
	To        time.Time
	CreatedAt time.Time
}

// ExportWorker drains export jobs to a report target (xlsx file, Google
// Sheets) with exponential-backoff retries. Jobs that exhaust their retries
// are dropped with a log line; an export is a convenience, not a record of
// truth.
type ExportWorker struct {
	writer      domain.ExportWriter
	retryPolicy RetryPolicy
	queue       chan ExportJob
	logger      zerolog.Logger
}

func NewExportWorker(writer domain.ExportWriter, retry RetryPolicy, logger *zerolog.Logger) *ExportWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}
	if retry.Jitter == 0 {
		retry.Jitter = 0.2
	}

	return &ExportWorker{
		writer:      writer,
		retryPolicy: retry,
		queue:       make(chan ExportJob, models.ExportQueueSize),
		logger:      logger.With().Str("component", "export-worker").Logger(),
	}
}

// Enqueue schedules an export. Returns an error when the queue is full
// rather than blocking a UI-facing caller.
func (w *ExportWorker) Enqueue(job ExportJob) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	select {
	case w.queue <- job:
		return nil
	default:
		return errors.New("export queue is full")
	}
}

// Start consumes the queue until the context is cancelled.
func (w *ExportWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.queue:
			w.process(ctx, job)
		}
	}
}

func (w *ExportWorker) process(ctx context.Context, job ExportJob) {
	var lastErr error
	for attempt := 1; attempt <= w.retryPolicy.MaxRetries; attempt++ {
		lastErr = w.writer.WriteBookings(ctx, job.Bookings, job.From, job.To)
		if lastErr == nil {
			w.logger.Info().Int("bookings", len(job.Bookings)).Msg("export written")
			return
		}
		if ctx.Err() != nil {
			return
		}

		delay := w.retryPolicy.NextDelay(attempt)
		w.logger.Warn().Err(lastErr).Int("attempt", attempt).Dur("retry_in", delay).Msg("export failed, will retry")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
	w.logger.Error().Err(lastErr).Msg("export dropped after max retries")
}
