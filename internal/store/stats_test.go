package store

import (
	"testing"

	"fundilink/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestReduceStats(t *testing.T) {
	t.Run("Buckets", func(t *testing.T) {
		counts := []models.StatusCount{
			{Status: "pending", Count: 3},
			{Status: "accepted", Count: 2},
			{Status: "in_progress", Count: 1},
			{Status: "completed", Count: 5},
			{Status: "cancelled", Count: 1},
		}

		stats := ReduceStats(counts)
		assert.Equal(t, models.BookingStats{Pending: 3, Active: 3, Completed: 5, Total: 12}, stats)
	})

	t.Run("NegotiatingIsActive", func(t *testing.T) {
		stats := ReduceStats([]models.StatusCount{
			{Status: "negotiating", Count: 4},
			{Status: "confirmed", Count: 1},
		})
		assert.Equal(t, 5, stats.Active)
		assert.Equal(t, 5, stats.Total)
	})

	t.Run("UnknownStatusCountsTowardTotalOnly", func(t *testing.T) {
		stats := ReduceStats([]models.StatusCount{
			{Status: "declined", Count: 2},
			{Status: "something_new", Count: 1},
		})
		assert.Equal(t, models.BookingStats{Total: 3}, stats)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, models.BookingStats{}, ReduceStats(nil))
	})

	t.Run("BucketsNeverExceedTotal", func(t *testing.T) {
		counts := []models.StatusCount{
			{Status: "pending", Count: 7},
			{Status: "accepted", Count: 3},
			{Status: "completed", Count: 2},
			{Status: "cancelled", Count: 4},
			{Status: "declined", Count: 1},
		}
		stats := ReduceStats(counts)
		assert.LessOrEqual(t, stats.Pending+stats.Active+stats.Completed, stats.Total)
	})
}
