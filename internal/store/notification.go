package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fundilink/internal/api"
	"fundilink/internal/domain"
	"fundilink/internal/events"
	"fundilink/internal/metrics"
	"fundilink/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// NotificationStore holds the client's copy of the notification list, the
// unread badge count, and pagination. All mutations go through its methods;
// optimistic updates revert on request failure. Expected failures never
// escape the store: they terminate in a notice and consistent state.
type NotificationStore struct {
	backend  domain.NotificationAPI
	notifier domain.Notifier
	bus      domain.EventPublisher
	tasks    domain.TaskRunner
	logger   zerolog.Logger

	mu            sync.Mutex
	notifications []models.Notification
	unreadCount   int
	loading       bool
	errMsg        string
	pagination    models.Pagination
}

func NewNotificationStore(backend domain.NotificationAPI, notifier domain.Notifier, bus domain.EventPublisher, tasks domain.TaskRunner, logger *zerolog.Logger) *NotificationStore {
	return &NotificationStore{
		backend:  backend,
		notifier: notifier,
		bus:      bus,
		tasks:    tasks,
		logger:   logger.With().Str("store", "notifications").Logger(),
	}
}

// Notifications returns a copy of the held list in server order.
func (s *NotificationStore) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.notifications...)
}

func (s *NotificationStore) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadCount
}

func (s *NotificationStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ErrorMessage returns the last fetch error for inline display, empty when
// the last fetch succeeded.
func (s *NotificationStore) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *NotificationStore) Pagination() models.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// FetchNotifications replaces the held page from the server. A cancelled
// context is a quiet no-op: no error state, and loading is deliberately left
// set because a successor request is expected to take over the flag.
func (s *NotificationStore) FetchNotifications(ctx context.Context, q models.NotificationQuery) {
	if q.Limit <= 0 {
		q.Limit = models.DefaultPageLimit
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	page, err := s.backend.FetchNotifications(ctx, q)
	if err != nil {
		if api.IsCancelled(err) {
			return
		}
		s.mu.Lock()
		s.errMsg = api.UserMessage(err, "Failed to load notifications")
		s.loading = false
		s.mu.Unlock()
		s.logger.Error().Err(err).Msg("fetch notifications failed")
		return
	}

	s.mu.Lock()
	s.notifications = page.Notifications
	s.unreadCount = page.UnreadCount
	s.pagination = page.Pagination
	s.loading = false
	s.mu.Unlock()

	s.publishList()
	s.publishUnread()
}

// RefreshUnreadCount refreshes just the badge count in the background.
// Best-effort: failures are logged and never surfaced.
func (s *NotificationStore) RefreshUnreadCount() {
	s.tasks.Go("unread-count", func(ctx context.Context) {
		count, err := s.backend.UnreadCount(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("unread count refresh failed")
			return
		}
		s.mu.Lock()
		s.unreadCount = count
		s.mu.Unlock()
		s.publishUnread()
	})
}

// MarkAsRead optimistically marks one notification read and fires the
// request without blocking the caller. Unknown or already-read ids are a
// no-op. On failure the pre-update state is restored.
func (s *NotificationStore) MarkAsRead(id string) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 || s.notifications[idx].IsRead {
		s.mu.Unlock()
		return
	}

	prevList := append([]models.Notification(nil), s.notifications...)
	prevUnread := s.unreadCount

	now := time.Now()
	s.notifications[idx].IsRead = true
	s.notifications[idx].ReadAt = &now
	if s.unreadCount > 0 {
		s.unreadCount--
	}
	s.mu.Unlock()

	s.publishList()
	s.publishUnread()

	s.tasks.Go("notification:"+id, func(ctx context.Context) {
		if err := s.backend.MarkRead(ctx, id); err != nil {
			s.mu.Lock()
			s.notifications = prevList
			s.unreadCount = prevUnread
			s.mu.Unlock()
			metrics.IncRollback("notifications")
			s.logger.Error().Err(err).Str("id", id).Msg("mark as read failed")
			s.notifier.Error("Failed to mark notification as read")
			s.publishList()
			s.publishUnread()
		}
	})
}

// MarkAllAsRead marks every held notification read and zeroes the badge. On
// failure the list is restored and the authoritative unread count re-fetched,
// since the local snapshot may itself be stale.
func (s *NotificationStore) MarkAllAsRead(ctx context.Context) {
	err := runOptimistic(ctx, &s.mu,
		func() func() {
			prevList := append([]models.Notification(nil), s.notifications...)
			prevUnread := s.unreadCount

			now := time.Now()
			for i := range s.notifications {
				if !s.notifications[i].IsRead {
					s.notifications[i].IsRead = true
					s.notifications[i].ReadAt = &now
				}
			}
			s.unreadCount = 0

			return func() {
				s.notifications = prevList
				s.unreadCount = prevUnread
			}
		},
		func(ctx context.Context) error {
			return s.backend.MarkAllRead(ctx)
		},
		func(err error) {
			metrics.IncRollback("notifications")
			s.logger.Error().Err(err).Msg("mark all as read failed")
			s.notifier.Error(api.UserMessage(err, "Failed to mark all notifications as read"))
			s.RefreshUnreadCount()
		},
	)
	s.publishList()
	s.publishUnread()
	if err == nil {
		s.notifier.Success("All notifications marked as read")
	}
}

// DeleteNotification optimistically removes one entry, adjusting the badge
// only when the entry was unread and the total with a floor of zero.
func (s *NotificationStore) DeleteNotification(ctx context.Context, id string) {
	s.mu.Lock()
	if s.indexOf(id) < 0 {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	_ = runOptimistic(ctx, &s.mu,
		func() func() {
			prevList := append([]models.Notification(nil), s.notifications...)
			prevUnread := s.unreadCount
			prevPagination := s.pagination

			idx := s.indexOf(id)
			if idx >= 0 {
				if !s.notifications[idx].IsRead && s.unreadCount > 0 {
					s.unreadCount--
				}
				s.notifications = append(s.notifications[:idx], s.notifications[idx+1:]...)
				if s.pagination.Total > 0 {
					s.pagination.Total--
				}
			}

			return func() {
				s.notifications = prevList
				s.unreadCount = prevUnread
				s.pagination = prevPagination
			}
		},
		func(ctx context.Context) error {
			return s.backend.DeleteNotification(ctx, id)
		},
		func(err error) {
			metrics.IncRollback("notifications")
			s.logger.Error().Err(err).Str("id", id).Msg("delete notification failed")
			s.notifier.Error(api.UserMessage(err, "Failed to delete notification"))
		},
	)
	s.publishList()
	s.publishUnread()
}

// DeleteSelected removes the targeted ids as one unit. The deletes run
// concurrently, but the client-visible outcome is all-or-nothing: any
// failure reverts the whole batch even if some deletes succeeded server-side.
func (s *NotificationStore) DeleteSelected(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		s.notifier.Error("No notifications selected")
		return
	}

	targeted := make(map[string]bool, len(ids))
	for _, id := range ids {
		targeted[id] = true
	}

	err := runOptimistic(ctx, &s.mu,
		func() func() {
			prevList := append([]models.Notification(nil), s.notifications...)
			prevUnread := s.unreadCount
			prevPagination := s.pagination

			unreadRemoved := 0
			kept := s.notifications[:0:0]
			for _, n := range s.notifications {
				if targeted[n.ID] {
					if !n.IsRead {
						unreadRemoved++
					}
					continue
				}
				kept = append(kept, n)
			}
			s.notifications = kept
			s.unreadCount -= unreadRemoved
			if s.unreadCount < 0 {
				s.unreadCount = 0
			}
			s.pagination.Total -= len(ids)
			if s.pagination.Total < 0 {
				s.pagination.Total = 0
			}

			return func() {
				s.notifications = prevList
				s.unreadCount = prevUnread
				s.pagination = prevPagination
			}
		},
		func(ctx context.Context) error {
			g, gctx := errgroup.WithContext(ctx)
			for _, id := range ids {
				g.Go(func() error {
					return s.backend.DeleteNotification(gctx, id)
				})
			}
			return g.Wait()
		},
		func(err error) {
			metrics.IncRollback("notifications")
			s.logger.Error().Err(err).Int("count", len(ids)).Msg("bulk delete failed")
			s.notifier.Error("Failed to delete selected notifications")
		},
	)
	s.publishList()
	s.publishUnread()
	if err == nil {
		s.notifier.Success(fmt.Sprintf("%d notifications deleted", len(ids)))
	}
}

// DeleteAllNotifications empties the list optimistically. On failure the
// list and pagination are restored and the unread count re-fetched.
func (s *NotificationStore) DeleteAllNotifications(ctx context.Context) {
	err := runOptimistic(ctx, &s.mu,
		func() func() {
			prevList := s.notifications
			prevUnread := s.unreadCount
			prevPagination := s.pagination

			s.notifications = nil
			s.unreadCount = 0
			s.pagination.Total = 0
			s.pagination.Pages = 0

			return func() {
				s.notifications = prevList
				s.unreadCount = prevUnread
				s.pagination = prevPagination
			}
		},
		func(ctx context.Context) error {
			return s.backend.DeleteAllNotifications(ctx)
		},
		func(err error) {
			metrics.IncRollback("notifications")
			s.logger.Error().Err(err).Msg("delete all notifications failed")
			s.notifier.Error(api.UserMessage(err, "Failed to delete notifications"))
			s.RefreshUnreadCount()
		},
	)
	s.publishList()
	s.publishUnread()
	if err == nil {
		s.notifier.Success("All notifications deleted")
	}
}

// indexOf must be called with the lock held.
func (s *NotificationStore) indexOf(id string) int {
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *NotificationStore) publishList() {
	s.mu.Lock()
	payload := events.StoreEventPayload{
		Store: "notifications",
		Count: len(s.notifications),
		Page:  s.pagination.Page,
	}
	s.mu.Unlock()
	_ = s.bus.PublishJSON(events.EventNotificationsUpdated, payload)
}

func (s *NotificationStore) publishUnread() {
	s.mu.Lock()
	payload := events.StoreEventPayload{Store: "notifications", UnreadCount: s.unreadCount}
	s.mu.Unlock()
	_ = s.bus.PublishJSON(events.EventUnreadCountChanged, payload)
}
