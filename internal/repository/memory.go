package repository

import (
	"context"
	"sync"
	"time"

	"fundilink/internal/models"
)

// MemoryDraftRepository keeps drafts in process memory. Used as the failover
// fallback and in tests; drafts stored here do not survive a restart.
type MemoryDraftRepository struct {
	drafts sync.Map
	ttl    time.Duration
}

type draftEntry struct {
	draft     *models.Draft
	expiresAt time.Time
}

func NewMemoryDraftRepository(ttl time.Duration) *MemoryDraftRepository {
	return &MemoryDraftRepository{
		ttl: ttl,
	}
}

func (r *MemoryDraftRepository) GetDraft(ctx context.Context, userID string) (*models.Draft, error) {
	val, ok := r.drafts.Load(userID)
	if !ok {
		return nil, nil
	}
	entry := val.(draftEntry)
	if r.ttl > 0 && time.Now().After(entry.expiresAt) {
		r.drafts.Delete(userID)
		return nil, nil
	}
	return entry.draft, nil
}

func (r *MemoryDraftRepository) SetDraft(ctx context.Context, draft *models.Draft) error {
	r.drafts.Store(draft.UserID, draftEntry{
		draft:     draft,
		expiresAt: time.Now().Add(r.ttl),
	})
	return nil
}

func (r *MemoryDraftRepository) ClearDraft(ctx context.Context, userID string) error {
	r.drafts.Delete(userID)
	return nil
}
