package models

import "time"

// Draft is the in-progress modal form state for one user: a half-typed price
// proposal or decline reason. Persisted with a TTL so a dropped session can
// resume where it left off.
type Draft struct {
	UserID         string    `json:"user_id"`
	BookingID      string    `json:"booking_id"`
	Kind           string    `json:"kind"` // propose or decline
	ProposeAmount  string    `json:"propose_amount,omitempty"`
	ProposeMessage string    `json:"propose_message,omitempty"`
	DeclineReason  string    `json:"decline_reason,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	DraftPropose = "propose"
	DraftDecline = "decline"
)
