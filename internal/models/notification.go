package models

import "time"

// Notification mirrors a notification document owned by the backend.
type Notification struct {
	ID        string         `json:"_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title,omitempty"`
	Message   string         `json:"message,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	IsRead    bool           `json:"isRead"`
	ReadAt    *time.Time     `json:"readAt,omitempty"`
	Recipient *Recipient     `json:"recipient,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Recipient selects role-specific navigation targets on the client.
type Recipient struct {
	ID   string `json:"_id,omitempty"`
	Role string `json:"role,omitempty"` // customer or artisan
}

// Pagination is the shared page envelope both stores hold. Pages is reported
// by the backend and trusted as-is.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
