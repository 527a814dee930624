package models

// BookingQuery selects a page of the caller's bookings. Filtering and search
// run server-side; the client only forwards the query.
type BookingQuery struct {
	Status string
	Page   int
	Limit  int
	Search string
}

// BookingPage is the payload of the bookings list endpoint.
type BookingPage struct {
	Bookings   []Booking  `json:"bookings"`
	Pagination Pagination `json:"pagination"`
}

// NotificationQuery selects a page of notifications, optionally filtered by
// read status.
type NotificationQuery struct {
	Page   int
	Limit  int
	IsRead *bool
}

// NotificationPage is the payload of the notifications list endpoint.
type NotificationPage struct {
	Notifications []Notification `json:"data"`
	UnreadCount   int            `json:"unreadCount"`
	Pagination    Pagination     `json:"-"`
}
