package store

import (
	"context"
	"sync"

	"fundilink/internal/models"

	"github.com/stretchr/testify/mock"
)

// syncTasks runs detached work inline so tests observe its effects
// deterministically.
type syncTasks struct{}

func (syncTasks) Go(_ string, fn func(ctx context.Context)) {
	fn(context.Background())
}

// noticeRecorder captures notices instead of rendering them.
type noticeRecorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *noticeRecorder) Success(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, message)
}

func (r *noticeRecorder) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *noticeRecorder) successCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.successes)
}

func (r *noticeRecorder) errorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors)
}

type mockNotificationAPI struct {
	mock.Mock
}

func (m *mockNotificationAPI) FetchNotifications(ctx context.Context, q models.NotificationQuery) (*models.NotificationPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NotificationPage), args.Error(1)
}

func (m *mockNotificationAPI) UnreadCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockNotificationAPI) MarkRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockNotificationAPI) MarkAllRead(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockNotificationAPI) DeleteNotification(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockNotificationAPI) DeleteAllNotifications(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockBookingAPI struct {
	mock.Mock
}

func (m *mockBookingAPI) FetchBookings(ctx context.Context, q models.BookingQuery) (*models.BookingPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingPage), args.Error(1)
}

func (m *mockBookingAPI) FetchStats(ctx context.Context) ([]models.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StatusCount), args.Error(1)
}

func (m *mockBookingAPI) AcceptBooking(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *mockBookingAPI) DeclineBooking(ctx context.Context, bookingID, reason string) error {
	args := m.Called(ctx, bookingID, reason)
	return args.Error(0)
}

func (m *mockBookingAPI) RejectNegotiation(ctx context.Context, bookingID, reason string) error {
	args := m.Called(ctx, bookingID, reason)
	return args.Error(0)
}

func (m *mockBookingAPI) ProposePrice(ctx context.Context, bookingID string, amount int64, message string) error {
	args := m.Called(ctx, bookingID, amount, message)
	return args.Error(0)
}

func (m *mockBookingAPI) AcceptNegotiatedPrice(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *mockBookingAPI) StartJob(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *mockBookingAPI) CompleteJob(ctx context.Context, bookingID string, payload any) error {
	args := m.Called(ctx, bookingID, payload)
	return args.Error(0)
}

// unreadRecorder counts badge refresh triggers.
type unreadRecorder struct {
	mu    sync.Mutex
	calls int
}

func (r *unreadRecorder) RefreshUnreadCount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
}

func (r *unreadRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
