package domain

import (
	"context"
	"time"

	"fundilink/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BookingAPI is the slice of the marketplace REST backend the booking store
// depends on. All calls honor context cancellation.
type BookingAPI interface {
	FetchBookings(ctx context.Context, q models.BookingQuery) (*models.BookingPage, error)
	FetchStats(ctx context.Context) ([]models.StatusCount, error)
	AcceptBooking(ctx context.Context, bookingID string) error
	DeclineBooking(ctx context.Context, bookingID, reason string) error
	RejectNegotiation(ctx context.Context, bookingID, reason string) error
	ProposePrice(ctx context.Context, bookingID string, amount int64, message string) error
	AcceptNegotiatedPrice(ctx context.Context, bookingID string) error
	StartJob(ctx context.Context, bookingID string) error
	CompleteJob(ctx context.Context, bookingID string, payload any) error
}

// NotificationAPI is the slice of the backend the notification store depends on.
type NotificationAPI interface {
	FetchNotifications(ctx context.Context, q models.NotificationQuery) (*models.NotificationPage, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
	DeleteAllNotifications(ctx context.Context) error
}

// Notifier delivers transient user-facing notices (the toast layer).
type Notifier interface {
	Success(message string)
	Error(message string)
}

// DraftRepository persists in-progress modal form state per user with a TTL.
type DraftRepository interface {
	GetDraft(ctx context.Context, userID string) (*models.Draft, error)
	SetDraft(ctx context.Context, draft *models.Draft) error
	ClearDraft(ctx context.Context, userID string) error
}

// TaskRunner executes detached fire-and-forget work. Tasks sharing a key run
// serially in submission order so a revert can never race a later optimistic
// change on the same entity.
type TaskRunner interface {
	Go(key string, fn func(ctx context.Context))
}

// UnreadRefresher triggers a best-effort refresh of the unread badge count.
type UnreadRefresher interface {
	RefreshUnreadCount()
}

// EventPublisher lets stores signal subscribers which slice of state changed.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// TelegramSender is the subset of the bot API the Telegram notifier uses.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// ExportWriter renders a set of bookings into an external report target.
type ExportWriter interface {
	WriteBookings(ctx context.Context, bookings []models.Booking, from, to time.Time) error
}
