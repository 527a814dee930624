package store

import (
	"slices"

	"fundilink/internal/models"
)

// ReduceStats folds the raw statusCounts aggregate into the three dashboard
// buckets. Statuses outside the buckets (cancelled, declined) still count
// toward Total, so the named buckets may sum to less than Total.
func ReduceStats(counts []models.StatusCount) models.BookingStats {
	var stats models.BookingStats
	for _, sc := range counts {
		switch {
		case sc.Status == models.StatusPending:
			stats.Pending += sc.Count
		case slices.Contains(models.ActiveStatuses, sc.Status):
			stats.Active += sc.Count
		case sc.Status == models.StatusCompleted:
			stats.Completed += sc.Count
		}
		stats.Total += sc.Count
	}
	return stats
}
