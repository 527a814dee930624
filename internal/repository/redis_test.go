package repository

import (
	"context"
	"testing"
	"time"

	"fundilink/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDraftRepository(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	repo := NewRedisDraftRepository(client, time.Hour)
	ctx := context.Background()

	t.Run("SetAndGetDraft", func(t *testing.T) {
		draft := &models.Draft{
			UserID:         "u1",
			BookingID:      "b1",
			Kind:           models.DraftPropose,
			ProposeAmount:  "15000",
			ProposeMessage: "includes materials",
		}

		err := repo.SetDraft(ctx, draft)
		require.NoError(t, err)

		got, err := repo.GetDraft(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, draft.BookingID, got.BookingID)
		assert.Equal(t, draft.Kind, got.Kind)
		assert.Equal(t, draft.ProposeAmount, got.ProposeAmount)
		assert.Equal(t, draft.ProposeMessage, got.ProposeMessage)
	})

	t.Run("GetNonExistentDraft", func(t *testing.T) {
		got, err := repo.GetDraft(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ClearDraft", func(t *testing.T) {
		draft := &models.Draft{UserID: "u2", BookingID: "b2", Kind: models.DraftDecline, DeclineReason: "busy"}
		repo.SetDraft(ctx, draft)

		err := repo.ClearDraft(ctx, "u2")
		require.NoError(t, err)

		got, _ := repo.GetDraft(ctx, "u2")
		assert.Nil(t, got)
	})

	t.Run("DraftExpires", func(t *testing.T) {
		draft := &models.Draft{UserID: "u3", BookingID: "b3", Kind: models.DraftPropose}
		require.NoError(t, repo.SetDraft(ctx, draft))

		s.FastForward(2 * time.Hour)

		got, err := repo.GetDraft(ctx, "u3")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("NilClient", func(t *testing.T) {
		nilRepo := NewRedisDraftRepository(nil, time.Hour)

		_, err := nilRepo.GetDraft(ctx, "u1")
		assert.Error(t, err)

		err = nilRepo.SetDraft(ctx, &models.Draft{UserID: "u1"})
		assert.Error(t, err)

		err = nilRepo.ClearDraft(ctx, "u1")
		assert.Error(t, err)
	})
}

func TestPing(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	assert.NoError(t, Ping(context.Background(), client))

	s.Close()
	assert.Error(t, Ping(context.Background(), client))
}
