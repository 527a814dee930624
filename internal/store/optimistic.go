package store

import (
	"context"
	"sync"
)

// runOptimistic is the snapshot/apply/request/revert cycle every optimistic
// mutation follows. apply runs with mu held and returns a revert closure
// capturing the pre-mutation snapshot; request issues the network call; on
// failure the revert runs under the same lock, then onError runs outside it.
// Success paths intentionally do not re-sync with the server response.
func runOptimistic(ctx context.Context, mu sync.Locker, apply func() func(), request func(context.Context) error, onError func(error)) error {
	mu.Lock()
	revert := apply()
	mu.Unlock()

	err := request(ctx)
	if err == nil {
		return nil
	}

	mu.Lock()
	revert()
	mu.Unlock()

	if onError != nil {
		onError(err)
	}
	return err
}
