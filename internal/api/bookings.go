package api

import (
	"context"
	"net/url"
	"strconv"

	"fundilink/internal/models"
)

// bookingListEnvelope is the wire shape of GET /bookings/mine.
type bookingListEnvelope struct {
	Data struct {
		Bookings   []models.Booking  `json:"bookings"`
		Pagination models.Pagination `json:"pagination"`
	} `json:"data"`
}

// statsEnvelope is the wire shape of GET /bookings/stats.
type statsEnvelope struct {
	Data struct {
		Stats struct {
			StatusCounts []models.StatusCount `json:"statusCounts"`
		} `json:"stats"`
	} `json:"data"`
}

func (c *Client) FetchBookings(ctx context.Context, q models.BookingQuery) (*models.BookingPage, error) {
	params := url.Values{}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))

	var envelope bookingListEnvelope
	if err := c.do(ctx, "GET", "/bookings/mine?"+params.Encode(), "bookings_mine", nil, &envelope); err != nil {
		return nil, err
	}
	return &models.BookingPage{
		Bookings:   envelope.Data.Bookings,
		Pagination: envelope.Data.Pagination,
	}, nil
}

func (c *Client) FetchStats(ctx context.Context) ([]models.StatusCount, error) {
	var envelope statsEnvelope
	if err := c.do(ctx, "GET", "/bookings/stats", "bookings_stats", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Stats.StatusCounts, nil
}

func (c *Client) AcceptBooking(ctx context.Context, bookingID string) error {
	return c.do(ctx, "POST", "/bookings/"+bookingID+"/accept", "booking_accept", nil, nil)
}

func (c *Client) DeclineBooking(ctx context.Context, bookingID, reason string) error {
	body := map[string]string{"reason": reason}
	return c.do(ctx, "POST", "/bookings/"+bookingID+"/decline", "booking_decline", body, nil)
}

func (c *Client) RejectNegotiation(ctx context.Context, bookingID, reason string) error {
	body := map[string]string{"reason": reason}
	return c.do(ctx, "POST", "/bookings/"+bookingID+"/reject-negotiation", "booking_reject_negotiation", body, nil)
}

func (c *Client) ProposePrice(ctx context.Context, bookingID string, amount int64, message string) error {
	body := map[string]any{"amount": amount}
	if message != "" {
		body["message"] = message
	}
	return c.do(ctx, "POST", "/bookings/"+bookingID+"/propose-price", "booking_propose_price", body, nil)
}

func (c *Client) AcceptNegotiatedPrice(ctx context.Context, bookingID string) error {
	return c.do(ctx, "POST", "/bookings/"+bookingID+"/accept-negotiated-price", "booking_accept_negotiated_price", nil, nil)
}

func (c *Client) StartJob(ctx context.Context, bookingID string) error {
	return c.do(ctx, "POST", "/bookings/"+bookingID+"/start", "booking_start", nil, nil)
}

func (c *Client) CompleteJob(ctx context.Context, bookingID string, payload any) error {
	return c.do(ctx, "POST", "/bookings/"+bookingID+"/complete", "booking_complete", payload, nil)
}
