package models

import "time"

// Booking mirrors a booking document owned by the backend. The client never
// creates or destroys bookings, it only caches the latest fetched copy and
// requests status transitions.
type Booking struct {
	ID              string       `json:"_id"`
	Service         string       `json:"service,omitempty"`
	Description     string       `json:"description,omitempty"`
	Status          string       `json:"status"`
	EstimatedPrice  int64        `json:"estimatedPrice,omitempty"`
	AgreedPrice     int64        `json:"agreedPrice,omitempty"`
	FinalPrice      int64        `json:"finalPrice,omitempty"`
	Negotiation     *Negotiation `json:"negotiation,omitempty"`
	TimeLeftSeconds int64        `json:"timeLeftSeconds,omitempty"`
	ScheduledDate   *time.Time   `json:"scheduledDate,omitempty"`
	Location        string       `json:"location,omitempty"`
	Customer        *Profile     `json:"customer,omitempty"`
	Artisan         *Profile     `json:"artisan,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// Negotiation is the price haggling history on a booking. The latest round
// determines whose turn it is to respond.
type Negotiation struct {
	Rounds []NegotiationRound `json:"rounds"`
}

type NegotiationRound struct {
	ProposedBy string    `json:"proposedBy"` // customer or artisan
	Amount     int64     `json:"amount"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// LatestRound returns the last negotiation round or nil when there is none.
func (b *Booking) LatestRound() *NegotiationRound {
	if b == nil || b.Negotiation == nil || len(b.Negotiation.Rounds) == 0 {
		return nil
	}
	return &b.Negotiation.Rounds[len(b.Negotiation.Rounds)-1]
}

// Profile carries the display-only customer/artisan fields attached to a
// booking. No invariants beyond present-or-absent.
type Profile struct {
	ID       string  `json:"_id,omitempty"`
	Name     string  `json:"name,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	Avatar   string  `json:"avatar,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
	Location string  `json:"location,omitempty"`
}

// BookingStats groups bookings into the three dashboard buckets. Statuses
// outside the buckets (cancelled, declined) count toward Total only, so
// Pending+Active+Completed <= Total.
type BookingStats struct {
	Pending   int `json:"pending"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// StatusCount is one element of the aggregate the stats endpoint returns.
type StatusCount struct {
	Status string `json:"_id"`
	Count  int    `json:"count"`
}
