package store

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"fundilink/internal/api"
	"fundilink/internal/domain"
	"fundilink/internal/events"
	"fundilink/internal/models"

	"github.com/rs/zerolog"
)

// BookingStore holds the client's copy of the booking list, derived stats,
// pagination, and the transient modal/form state for the propose-price,
// decline and negotiation dialogs. The backend is the source of truth for
// the status machine: actions only request transitions and a refresh
// reflects whatever the server reports.
type BookingStore struct {
	backend  domain.BookingAPI
	notifier domain.Notifier
	unread   domain.UnreadRefresher
	bus      domain.EventPublisher
	tasks    domain.TaskRunner
	drafts   domain.DraftRepository
	userID   string
	logger   zerolog.Logger

	mu            sync.Mutex
	bookings      []models.Booking
	stats         models.BookingStats
	loading       bool
	actionLoading bool
	errMsg        string
	pagination    models.Pagination
	lastFetchAt   time.Time

	selectedBooking      *models.Booking
	showProposeModal     bool
	showDeclineModal     bool
	showNegotiationModal bool
	declineReason        string
	proposeAmount        string
	proposeMessage       string
}

// BookingStoreDeps bundles the collaborators a booking store is built from.
// Drafts may be nil: draft persistence is then disabled.
type BookingStoreDeps struct {
	Backend  domain.BookingAPI
	Notifier domain.Notifier
	Unread   domain.UnreadRefresher
	Bus      domain.EventPublisher
	Tasks    domain.TaskRunner
	Drafts   domain.DraftRepository
	UserID   string
	Logger   *zerolog.Logger
}

func NewBookingStore(deps BookingStoreDeps) *BookingStore {
	return &BookingStore{
		backend:  deps.Backend,
		notifier: deps.Notifier,
		unread:   deps.Unread,
		bus:      deps.Bus,
		tasks:    deps.Tasks,
		drafts:   deps.Drafts,
		userID:   deps.UserID,
		logger:   deps.Logger.With().Str("store", "bookings").Logger(),
	}
}

// Bookings returns a copy of the held list in server order.
func (s *BookingStore) Bookings() []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Booking(nil), s.bookings...)
}

func (s *BookingStore) Stats() models.BookingStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *BookingStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ActionLoading reports whether a mutating action is in flight. It is a
// separate flag from Loading so list spinners and button spinners stay
// independent.
func (s *BookingStore) ActionLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actionLoading
}

func (s *BookingStore) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *BookingStore) Pagination() models.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *BookingStore) SelectedBooking() *models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedBooking == nil {
		return nil
	}
	copied := *s.selectedBooking
	return &copied
}

// FetchBookings replaces the held page from the server. Filtering and search
// are server-side; the client forwards the query and trusts the result. A
// cancelled context is a quiet no-op, leaving loading set for the successor
// request to resolve.
func (s *BookingStore) FetchBookings(ctx context.Context, q models.BookingQuery) {
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

	page, err := s.backend.FetchBookings(ctx, q)
	if err != nil {
		if api.IsCancelled(err) {
			return
		}
		s.mu.Lock()
		s.errMsg = api.UserMessage(err, "Failed to load jobs")
		s.loading = false
		s.mu.Unlock()
		s.logger.Error().Err(err).Msg("fetch bookings failed")
		return
	}

	s.mu.Lock()
	s.bookings = page.Bookings
	s.pagination = page.Pagination
	s.loading = false
	s.lastFetchAt = time.Now()
	s.mu.Unlock()

	s.publishList()
}

// FetchStats refreshes the dashboard buckets. Best-effort: failures are
// logged and never block dependent UI.
func (s *BookingStore) FetchStats(ctx context.Context) {
	counts, err := s.backend.FetchStats(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("fetch stats failed")
		return
	}

	s.mu.Lock()
	s.stats = ReduceStats(counts)
	s.mu.Unlock()

	_ = s.bus.PublishJSON(events.EventStatsUpdated, events.StoreEventPayload{Store: "bookings"})
}

// Refresh re-fetches the current page, using the remembered pagination and
// no status override. Every mutating action resynchronizes through it
// instead of hand-patching prices, negotiation rounds and timers locally.
func (s *BookingStore) Refresh(ctx context.Context) {
	s.mu.Lock()
	q := models.BookingQuery{Page: s.pagination.Page, Limit: s.pagination.Limit}
	s.mu.Unlock()
	s.FetchBookings(ctx, q)
}

// Accept requests acceptance of a pending booking.
func (s *BookingStore) Accept(ctx context.Context, bookingID string) {
	s.runAction(ctx, bookingID, "Booking accepted", "Failed to accept booking", func(ctx context.Context) error {
		return s.backend.AcceptBooking(ctx, bookingID)
	})
}

// Decline declines the selected booking with the reason entered in the
// decline modal. A booking in negotiation goes through the
// negotiation-rejection endpoint instead of the plain decline.
func (s *BookingStore) Decline(ctx context.Context) {
	s.mu.Lock()
	selected := s.selectedBooking
	reason := strings.TrimSpace(s.declineReason)
	s.mu.Unlock()

	if selected == nil {
		s.notifier.Error("No booking selected")
		return
	}
	if reason == "" {
		s.notifier.Error("Please provide a reason for declining")
		return
	}

	bookingID := selected.ID
	negotiating := selected.Status == models.StatusNegotiating

	s.setActionLoading(true)
	defer s.setActionLoading(false)

	var err error
	if negotiating {
		err = s.backend.RejectNegotiation(ctx, bookingID, reason)
	} else {
		err = s.backend.DeclineBooking(ctx, bookingID, reason)
	}
	if err != nil {
		s.recordActionError(err, "Failed to decline booking")
		return
	}

	s.CloseDecline()
	s.notifier.Success("Booking declined")
	s.unread.RefreshUnreadCount()
	s.Refresh(ctx)
}

// ProposePrice submits the amount and message entered in the propose modal.
// Validation runs client-side before any network call: the amount must be a
// positive number.
func (s *BookingStore) ProposePrice(ctx context.Context) {
	s.mu.Lock()
	selected := s.selectedBooking
	rawAmount := strings.TrimSpace(s.proposeAmount)
	message := strings.TrimSpace(s.proposeMessage)
	s.mu.Unlock()

	if selected == nil {
		s.notifier.Error("No booking selected")
		return
	}
	if rawAmount == "" {
		s.notifier.Error("Please enter an amount")
		return
	}
	parsed, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil || math.IsNaN(parsed) || parsed <= 0 {
		s.notifier.Error("Please enter a valid amount")
		return
	}
	amount := int64(math.Round(parsed))

	bookingID := selected.ID

	s.setActionLoading(true)
	defer s.setActionLoading(false)

	if err := s.backend.ProposePrice(ctx, bookingID, amount, message); err != nil {
		s.recordActionError(err, "Failed to send price proposal")
		return
	}

	s.ClosePropose()
	s.notifier.Success("Price proposal sent")
	s.unread.RefreshUnreadCount()
	s.Refresh(ctx)
}

// AcceptCounterOffer accepts the latest negotiation round's amount as final.
// The store never patches the status locally; the refresh reports it.
func (s *BookingStore) AcceptCounterOffer(ctx context.Context, bookingID string) {
	s.runAction(ctx, bookingID, "Offer accepted", "Failed to accept offer", func(ctx context.Context) error {
		return s.backend.AcceptNegotiatedPrice(ctx, bookingID)
	})
}

// StartJob marks an accepted or confirmed booking as started.
func (s *BookingStore) StartJob(ctx context.Context, bookingID string) {
	s.runAction(ctx, bookingID, "Job started", "Failed to start job", func(ctx context.Context) error {
		return s.backend.StartJob(ctx, bookingID)
	})
}

// CompleteJob completes an in-progress booking, forwarding the completion
// payload (photos, notes) opaquely to the backend.
func (s *BookingStore) CompleteJob(ctx context.Context, bookingID string, payload any) {
	s.runAction(ctx, bookingID, "Job completed", "Failed to complete job", func(ctx context.Context) error {
		return s.backend.CompleteJob(ctx, bookingID, payload)
	})
}

// runAction is the shared shape of every simple mutating action: fail fast
// on a missing id, hold actionLoading for the duration, notice on either
// outcome, and refresh the list plus the unread badge on success.
func (s *BookingStore) runAction(ctx context.Context, bookingID, successMsg, failMsg string, call func(context.Context) error) {
	if bookingID == "" {
		s.notifier.Error("No booking selected")
		return
	}

	s.setActionLoading(true)
	defer s.setActionLoading(false)

	if err := call(ctx); err != nil {
		s.recordActionError(err, failMsg)
		return
	}

	s.notifier.Success(successMsg)
	s.unread.RefreshUnreadCount()
	s.Refresh(ctx)
}

func (s *BookingStore) recordActionError(err error, fallback string) {
	msg := api.UserMessage(err, fallback)
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
	s.logger.Error().Err(err).Msg("booking action failed")
	s.notifier.Error(msg)
}

// UpdateBookingOptimistically merges a partial patch into the one matching
// booking, leaving all others untouched. An escape hatch for call sites
// patching trivial fields without a full refresh; the action methods above
// deliberately do not use it.
func (s *BookingStore) UpdateBookingOptimistically(bookingID string, update func(*models.Booking)) {
	s.mu.Lock()
	for i := range s.bookings {
		if s.bookings[i].ID == bookingID {
			update(&s.bookings[i])
			break
		}
	}
	s.mu.Unlock()
	s.publishList()
}

// ClearCache resets the held list, stats, pagination, and last-fetch
// bookkeeping. Called on logout or account switch so a new session never
// sees the previous user's data.
func (s *BookingStore) ClearCache() {
	s.mu.Lock()
	s.bookings = nil
	s.stats = models.BookingStats{}
	s.pagination = models.Pagination{}
	s.lastFetchAt = time.Time{}
	s.mu.Unlock()
	s.publishList()
}

func (s *BookingStore) setActionLoading(v bool) {
	s.mu.Lock()
	s.actionLoading = v
	s.mu.Unlock()
}

func (s *BookingStore) publishList() {
	s.mu.Lock()
	payload := events.StoreEventPayload{
		Store: "bookings",
		Count: len(s.bookings),
		Page:  s.pagination.Page,
	}
	s.mu.Unlock()
	_ = s.bus.PublishJSON(events.EventBookingsUpdated, payload)
}
