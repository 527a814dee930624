package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"fundilink/internal/config"
	"fundilink/internal/events"
	"fundilink/internal/format"
	"fundilink/internal/models"
	"fundilink/internal/store"
	"fundilink/internal/worker"

	"github.com/rs/zerolog"
)

type dashboard struct {
	cfg           *config.Config
	bookings      *store.BookingStore
	notifications *store.NotificationStore
	exportWorker  *worker.ExportWorker
	logger        zerolog.Logger

	mu  sync.Mutex
	out io.Writer
}

// subscribe re-renders whenever a store publishes a state change.
func (d *dashboard) subscribe(bus *events.EventBus) {
	render := func(_ *events.Event) error {
		d.render()
		return nil
	}
	bus.Subscribe(events.EventBookingsUpdated, render)
	bus.Subscribe(events.EventStatsUpdated, render)
	bus.Subscribe(events.EventNotificationsUpdated, render)
	bus.Subscribe(events.EventUnreadCountChanged, render)
}

func (d *dashboard) render() {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	stats := d.bookings.Stats()
	bookings := d.bookings.Bookings()
	notifications := d.notifications.Notifications()
	unread := d.notifications.UnreadCount()

	fmt.Fprintf(d.out, "\n══ %s ══ %s\n", d.cfg.App.Name, now.Format("15:04:05"))
	fmt.Fprintf(d.out, "Jobs: %d pending · %d active · %d completed · %d total\n",
		stats.Pending, stats.Active, stats.Completed, stats.Total)

	if msg := d.bookings.ErrorMessage(); msg != "" {
		fmt.Fprintf(d.out, "⚠️  %s\n", msg)
	}

	for _, b := range bookings {
		line := fmt.Sprintf("  %s %s", format.StatusLabel(b.Status), b.Service)
		if b.Status == models.StatusPending && b.TimeLeftSeconds > 0 {
			line += " · " + format.Countdown(b.TimeLeftSeconds)
		}
		if round := b.LatestRound(); round != nil && b.Status == models.StatusNegotiating {
			line += fmt.Sprintf(" · offer %s from %s", format.Price(round.Amount), round.ProposedBy)
		} else if b.AgreedPrice > 0 {
			line += " · " + format.Price(b.AgreedPrice)
		} else if b.EstimatedPrice > 0 {
			line += " · est. " + format.Price(b.EstimatedPrice)
		}
		fmt.Fprintln(d.out, line)
	}

	fmt.Fprintf(d.out, "Notifications (%d unread):\n", unread)
	lastBucket := ""
	for _, n := range notifications {
		bucket := format.TimeBucket(n.CreatedAt, now)
		if bucket != lastBucket {
			fmt.Fprintf(d.out, "  ── %s ──\n", bucket)
			lastBucket = bucket
		}
		display := format.DisplayFor(n.Type)
		marker := " "
		if !n.IsRead {
			marker = "•"
		}
		fmt.Fprintf(d.out, "  %s %s %s: %s (%s)\n",
			marker, display.Icon, display.Title, n.Message, format.RelativeTime(n.CreatedAt, now))
	}
}

// enqueueEarningsExport pushes the currently-held completed bookings to the
// earnings sheet sync. No-op when Sheets export is not configured.
func (d *dashboard) enqueueEarningsExport() {
	if d.exportWorker == nil {
		return
	}

	var completed []models.Booking
	for _, b := range d.bookings.Bookings() {
		if b.Status == models.StatusCompleted {
			completed = append(completed, b)
		}
	}
	if len(completed) == 0 {
		return
	}

	now := time.Now()
	job := worker.ExportJob{
		Bookings: completed,
		From:     now.AddDate(0, -1, 0),
		To:       now,
	}
	if err := d.exportWorker.Enqueue(job); err != nil {
		d.logger.Warn().Err(err).Msg("earnings export skipped")
	}
}
