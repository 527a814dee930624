package worker

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"fundilink/internal/models"

	"github.com/rs/zerolog"
)

func newExportWorker(writer *fakeWriter, retry RetryPolicy) *ExportWorker {
	logger := zerolog.New(io.Discard)
	return NewExportWorker(writer, retry, &logger)
}

func TestExportWorkerProcessSuccess(t *testing.T) {
	writer := &fakeWriter{}
	worker := newExportWorker(writer, RetryPolicy{MaxRetries: 3, InitialDelay: time.Millisecond})

	job := ExportJob{
		Bookings: []models.Booking{{ID: "b1", Status: models.StatusCompleted}},
		From:     time.Now().AddDate(0, -1, 0),
		To:       time.Now(),
	}
	worker.process(context.Background(), job)

	if writer.calls() != 1 {
		t.Fatalf("expected 1 write call, got %d", writer.calls())
	}
	if len(writer.lastBookings) != 1 || writer.lastBookings[0].ID != "b1" {
		t.Fatalf("unexpected bookings written: %+v", writer.lastBookings)
	}
}

func TestExportWorkerRetriesThenSucceeds(t *testing.T) {
	writer := &fakeWriter{failures: 2}
	worker := newExportWorker(writer, RetryPolicy{MaxRetries: 5, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond})

	worker.process(context.Background(), ExportJob{})

	if writer.calls() != 3 {
		t.Fatalf("expected 3 attempts, got %d", writer.calls())
	}
}

func TestExportWorkerDropsAfterMaxRetries(t *testing.T) {
	writer := &fakeWriter{failures: 100}
	worker := newExportWorker(writer, RetryPolicy{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond})

	worker.process(context.Background(), ExportJob{})

	if writer.calls() != 2 {
		t.Fatalf("expected 2 attempts, got %d", writer.calls())
	}
}

func TestExportWorkerStopsOnContextCancel(t *testing.T) {
	writer := &fakeWriter{failures: 100}
	worker := newExportWorker(writer, RetryPolicy{MaxRetries: 10, InitialDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.process(ctx, ExportJob{})
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("process did not stop on cancellation")
	}
	if writer.calls() != 1 {
		t.Fatalf("expected 1 attempt before cancel, got %d", writer.calls())
	}
}

func TestExportWorkerEnqueue(t *testing.T) {
	writer := &fakeWriter{}
	worker := newExportWorker(writer, RetryPolicy{})

	t.Run("StampsCreatedAt", func(t *testing.T) {
		if err := worker.Enqueue(ExportJob{}); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
		job := <-worker.queue
		if job.CreatedAt.IsZero() {
			t.Fatalf("expected CreatedAt to be stamped")
		}
	})

	t.Run("QueueFull", func(t *testing.T) {
		for i := 0; i < models.ExportQueueSize; i++ {
			if err := worker.Enqueue(ExportJob{}); err != nil {
				t.Fatalf("enqueue %d: %v", i, err)
			}
		}
		if err := worker.Enqueue(ExportJob{}); err == nil {
			t.Fatalf("expected error on full queue")
		}
	})
}

func TestExportWorkerStartDrainsQueue(t *testing.T) {
	writer := &fakeWriter{}
	worker := newExportWorker(writer, RetryPolicy{MaxRetries: 1, InitialDelay: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Start(ctx)

	for i := 0; i < 3; i++ {
		if err := worker.Enqueue(ExportJob{}); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	deadline := time.Now().Add(time.Second)
	for writer.calls() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("expected 3 writes, got %d", writer.calls())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRetryPolicyNextDelay(t *testing.T) {
	policy := RetryPolicy{InitialDelay: time.Second, BackoffFactor: 2, MaxDelay: 5 * time.Second}
	d1 := policy.NextDelay(1)
	d2 := policy.NextDelay(2)
	d3 := policy.NextDelay(5)

	if d1 != time.Second {
		t.Fatalf("attempt1 expected 1s, got %s", d1)
	}
	if d2 != 2*time.Second {
		t.Fatalf("attempt2 expected 2s, got %s", d2)
	}
	if d3 != 5*time.Second {
		t.Fatalf("attempt5 expected capped 5s, got %s", d3)
	}
}

func TestRetryPolicyJitterBounds(t *testing.T) {
	policy := RetryPolicy{InitialDelay: time.Second, BackoffFactor: 2, Jitter: 0.5}

	for i := 0; i < 100; i++ {
		d := policy.NextDelay(2) // base 2s, jittered into [1s, 3s]
		if d < time.Second || d > 3*time.Second {
			t.Fatalf("jittered delay %s outside [1s, 3s]", d)
		}
	}
}

func TestNewExportWorkerDefaultsJitter(t *testing.T) {
	worker := newExportWorker(&fakeWriter{}, RetryPolicy{})
	if worker.retryPolicy.Jitter != 0.2 {
		t.Fatalf("expected default jitter 0.2, got %v", worker.retryPolicy.Jitter)
	}
}

// Helpers

type fakeWriter struct {
	mu           sync.Mutex
	failures     int
	writeCalls   int
	lastBookings []models.Booking
}

func (f *fakeWriter) WriteBookings(ctx context.Context, bookings []models.Booking, from, to time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	f.lastBookings = bookings
	if f.failures > 0 {
		f.failures--
		return errors.New("write failed")
	}
	return nil
}

func (f *fakeWriter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeCalls
}
