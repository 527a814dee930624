package api

import (
	"context"
	"net/url"
	"strconv"

	"fundilink/internal/models"
)

// notificationListEnvelope is the wire shape of GET /notifications. Unlike
// the bookings endpoint, pagination fields sit flat next to the data array.
type notificationListEnvelope struct {
	Data        []models.Notification `json:"data"`
	UnreadCount int                   `json:"unreadCount"`
	Page        int                   `json:"page"`
	Limit       int                   `json:"limit"`
	Total       int                   `json:"total"`
	Pages       int                   `json:"pages"`
}

type unreadCountEnvelope struct {
	Count int `json:"count"`
}

func (c *Client) FetchNotifications(ctx context.Context, q models.NotificationQuery) (*models.NotificationPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.IsRead != nil {
		params.Set("isRead", strconv.FormatBool(*q.IsRead))
	}

	var envelope notificationListEnvelope
	if err := c.do(ctx, "GET", "/notifications?"+params.Encode(), "notifications_list", nil, &envelope); err != nil {
		return nil, err
	}
	return &models.NotificationPage{
		Notifications: envelope.Data,
		UnreadCount:   envelope.UnreadCount,
		Pagination: models.Pagination{
			Page:  envelope.Page,
			Limit: envelope.Limit,
			Total: envelope.Total,
			Pages: envelope.Pages,
		},
	}, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var envelope unreadCountEnvelope
	if err := c.do(ctx, "GET", "/notifications/unread-count", "notifications_unread_count", nil, &envelope); err != nil {
		return 0, err
	}
	return envelope.Count, nil
}

func (c *Client) MarkRead(ctx context.Context, id string) error {
	return c.do(ctx, "PUT", "/notifications/"+id+"/read", "notification_mark_read", nil, nil)
}

func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.do(ctx, "PUT", "/notifications/read-all", "notifications_mark_all_read", nil, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/notifications/"+id, "notification_delete", nil, nil)
}

func (c *Client) DeleteAllNotifications(ctx context.Context) error {
	return c.do(ctx, "DELETE", "/notifications", "notifications_delete_all", nil, nil)
}
