package worker

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTasks(t *testing.T) *Tasks {
	t.Helper()
	logger := zerolog.New(io.Discard)
	return NewTasks(time.Second, &logger)
}

func TestTasksRunAndWait(t *testing.T) {
	tasks := newTestTasks(t)

	var mu sync.Mutex
	done := 0
	for i := 0; i < 10; i++ {
		tasks.Go("any", func(ctx context.Context) {
			mu.Lock()
			done++
			mu.Unlock()
		})
	}

	tasks.Wait()
	assert.Equal(t, 10, done)
}

func TestTasksSameKeyRunsSerially(t *testing.T) {
	tasks := newTestTasks(t)

	var mu sync.Mutex
	running := 0
	maxRunning := 0
	for i := 0; i < 8; i++ {
		tasks.Go("booking:b1", func(ctx context.Context) {
			mu.Lock()
			running++
			if running > maxRunning {
				maxRunning = running
			}
			mu.Unlock()

			time.Sleep(2 * time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
		})
	}

	tasks.Wait()
	assert.Equal(t, 1, maxRunning)
}

func TestTasksDifferentKeysRunConcurrently(t *testing.T) {
	tasks := newTestTasks(t)

	release := make(chan struct{})
	started := make(chan struct{}, 2)

	tasks.Go("a", func(ctx context.Context) {
		started <- struct{}{}
		<-release
	})
	tasks.Go("b", func(ctx context.Context) {
		started <- struct{}{}
		<-release
	})

	// both should be running before either is released
	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(time.Second):
			t.Fatal("tasks with distinct keys blocked each other")
		}
	}
	close(release)
	tasks.Wait()
}

func TestTasksContextCarriesTimeout(t *testing.T) {
	tasks := newTestTasks(t)

	var deadlineSet bool
	tasks.Go("k", func(ctx context.Context) {
		_, deadlineSet = ctx.Deadline()
	})
	tasks.Wait()

	assert.True(t, deadlineSet)
}

func TestTasksRecoversPanics(t *testing.T) {
	tasks := newTestTasks(t)

	tasks.Go("k", func(ctx context.Context) {
		panic("boom")
	})
	tasks.Go("k", func(ctx context.Context) {})

	// Wait returning at all proves the panicking task released its key lock
	tasks.Wait()
}

func TestTasksDefaultTimeout(t *testing.T) {
	logger := zerolog.New(io.Discard)
	tasks := NewTasks(0, &logger)
	require.Equal(t, 30*time.Second, tasks.timeout)
}
