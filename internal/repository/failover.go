package repository

import (
	"context"
	"sync/atomic"
	"time"

	"fundilink/internal/domain"
	"fundilink/internal/models"

	"github.com/rs/zerolog"
)

// probeInterval is how long the failover waits before trying the
// primary again after a failure.
const probeInterval = time.Minute

// FailoverDraftRepository fronts a primary (Redis) draft repository with an
// in-memory fallback. After a primary failure it stays on the fallback and
// probes the primary again after a minute. State is atomic because the
// synchronous restore path and detached save tasks hit it concurrently.
type FailoverDraftRepository struct {
	primary   domain.DraftRepository
	fallback  domain.DraftRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos of the last failed primary attempt
}

func NewFailoverDraftRepository(primary, fallback domain.DraftRepository, logger *zerolog.Logger) *FailoverDraftRepository {
	return &FailoverDraftRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverDraftRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary draft repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverDraftRepository) shouldProbe() bool {
	return time.Since(time.Unix(0, r.lastCheck.Load())) > probeInterval
}

func (r *FailoverDraftRepository) GetDraft(ctx context.Context, userID string) (*models.Draft, error) {
	if !r.isDown.Load() {
		draft, err := r.primary.GetDraft(ctx, userID)
		if err == nil {
			return draft, nil
		}
		r.markDown(err)
	}

	if r.isDown.Load() && r.shouldProbe() {
		draft, err := r.primary.GetDraft(ctx, userID)
		if err == nil {
			r.isDown.Store(false)
			return draft, nil
		}
		r.lastCheck.Store(time.Now().UnixNano())
	}

	return r.fallback.GetDraft(ctx, userID)
}

func (r *FailoverDraftRepository) SetDraft(ctx context.Context, draft *models.Draft) error {
	if !r.isDown.Load() {
		err := r.primary.SetDraft(ctx, draft)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.SetDraft(ctx, draft)
}

func (r *FailoverDraftRepository) ClearDraft(ctx context.Context, userID string) error {
	if !r.isDown.Load() {
		err := r.primary.ClearDraft(ctx, userID)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.ClearDraft(ctx, userID)
}
