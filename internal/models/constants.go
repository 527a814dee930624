package models

// Booking statuses as reported by the backend. The client never enforces the
// transition machine locally, it only requests transitions and reflects
// whatever the next refresh reports.
const (
	StatusPending     = "pending"
	StatusNegotiating = "negotiating"
	StatusAccepted    = "accepted"
	StatusConfirmed   = "confirmed"
	StatusInProgress  = "in_progress"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusDeclined    = "declined"
)

// ActiveStatuses are the statuses counted into the "active" stats bucket.
var ActiveStatuses = []string{StatusAccepted, StatusConfirmed, StatusInProgress, StatusNegotiating}

// Negotiation round authors.
const (
	RoleCustomer = "customer"
	RoleArtisan  = "artisan"
)

// Notification types the client knows how to render. Unknown types fall back
// to a generic presentation, never an error.
const (
	NotifBookingCreated    = "booking_created"
	NotifBookingAccepted   = "booking_accepted"
	NotifBookingDeclined   = "booking_declined"
	NotifBookingCompleted  = "booking_completed"
	NotifPriceProposed     = "price_proposed"
	NotifPaymentSuccessful = "payment_successful"
	NotifReviewReceived    = "review_received"
)

const (
	// DefaultPageLimit is the page size used when a caller passes zero.
	DefaultPageLimit = 10

	// DefaultDraftTTL is how long an abandoned modal draft survives, in seconds.
	DefaultDraftTTL = 24 * 60 * 60

	// ExportQueueSize bounds the export worker's in-memory queue.
	ExportQueueSize = 256
)
