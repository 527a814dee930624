package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Tasks runs detached fire-and-forget work for the stores: requests whose
// optimistic update already happened and whose failure path re-enters the
// store safely. Tasks sharing a key run serially in submission order, so a
// revert never races a later optimistic change on the same entity.
type Tasks struct {
	timeout time.Duration
	logger  zerolog.Logger

	mu   sync.Mutex
	keys map[string]*sync.Mutex
	wg   sync.WaitGroup
}

func NewTasks(timeout time.Duration, logger *zerolog.Logger) *Tasks {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Tasks{
		timeout: timeout,
		logger:  logger.With().Str("component", "tasks").Logger(),
		keys:    make(map[string]*sync.Mutex),
	}
}

// Go schedules fn on its own goroutine. The context carries the runner's
// timeout; fn owns its error handling end to end.
func (t *Tasks) Go(key string, fn func(ctx context.Context)) {
	lock := t.keyLock(key)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		lock.Lock()
		defer lock.Unlock()

		defer func() {
			if r := recover(); r != nil {
				t.logger.Error().Interface("panic", r).Str("key", key).Msg("detached task panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		fn(ctx)
	}()
}

// Wait blocks until all scheduled tasks finish. Used on shutdown and in tests.
func (t *Tasks) Wait() {
	t.wg.Wait()
}

func (t *Tasks) keyLock(key string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	lock, ok := t.keys[key]
	if !ok {
		lock = &sync.Mutex{}
		t.keys[key] = lock
	}
	return lock
}
