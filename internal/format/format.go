package format

import (
	"fmt"
	"time"

	"fundilink/internal/models"
)

// RelativeTime renders "how long ago" for notification rows.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// Time buckets for grouping the notification list.
const (
	BucketToday     = "today"
	BucketYesterday = "yesterday"
	BucketThisWeek  = "this_week"
	BucketOlder     = "older"
)

// TimeBucket assigns a timestamp to a display group relative to now.
func TimeBucket(t, now time.Time) string {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case !t.Before(startOfToday):
		return BucketToday
	case !t.Before(startOfToday.AddDate(0, 0, -1)):
		return BucketYesterday
	case !t.Before(startOfToday.AddDate(0, 0, -6)):
		return BucketThisWeek
	default:
		return BucketOlder
	}
}

// NotificationDisplay is the icon and title a notification type renders with.
type NotificationDisplay struct {
	Icon  string
	Title string
}

var notificationDisplays = map[string]NotificationDisplay{
	models.NotifBookingCreated:    {Icon: "📋", Title: "New booking request"},
	models.NotifBookingAccepted:   {Icon: "✅", Title: "Booking accepted"},
	models.NotifBookingDeclined:   {Icon: "❌", Title: "Booking declined"},
	models.NotifBookingCompleted:  {Icon: "🏁", Title: "Job completed"},
	models.NotifPriceProposed:     {Icon: "💬", Title: "New price proposal"},
	models.NotifPaymentSuccessful: {Icon: "💰", Title: "Payment received"},
	models.NotifReviewReceived:    {Icon: "⭐", Title: "New review"},
}

var defaultDisplay = NotificationDisplay{Icon: "🔔", Title: "Notification"}

// DisplayFor maps a notification type to its presentation. Unknown types get
// the generic default, never an error.
func DisplayFor(notificationType string) NotificationDisplay {
	if d, ok := notificationDisplays[notificationType]; ok {
		return d
	}
	return defaultDisplay
}

// NavigationTarget picks the role-specific screen a notification links to.
func NavigationTarget(n models.Notification) string {
	role := models.RoleCustomer
	if n.Recipient != nil && n.Recipient.Role != "" {
		role = n.Recipient.Role
	}

	switch n.Type {
	case models.NotifBookingCreated, models.NotifBookingAccepted, models.NotifBookingDeclined, models.NotifPriceProposed:
		if role == models.RoleArtisan {
			return "/artisan/jobs"
		}
		return "/bookings"
	case models.NotifBookingCompleted, models.NotifPaymentSuccessful:
		if role == models.RoleArtisan {
			return "/artisan/earnings"
		}
		return "/bookings/history"
	case models.NotifReviewReceived:
		return "/reviews"
	default:
		if role == models.RoleArtisan {
			return "/artisan/dashboard"
		}
		return "/dashboard"
	}
}

// Price renders an amount in whole Kenyan shillings with thousands separators.
func Price(amount int64) string {
	if amount < 0 {
		return "-" + Price(-amount)
	}
	s := fmt.Sprintf("%d", amount)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return "KSh " + string(out)
}

// StatusLabel renders a booking status for the dashboard list.
func StatusLabel(status string) string {
	switch status {
	case models.StatusPending:
		return "⏳ Pending"
	case models.StatusNegotiating:
		return "💬 Negotiating"
	case models.StatusAccepted:
		return "✅ Accepted"
	case models.StatusConfirmed:
		return "📌 Confirmed"
	case models.StatusInProgress:
		return "🔧 In progress"
	case models.StatusCompleted:
		return "🏁 Completed"
	case models.StatusCancelled:
		return "🚫 Cancelled"
	case models.StatusDeclined:
		return "❌ Declined"
	default:
		return status
	}
}

// Countdown renders the auto-decline timer on a pending request. The
// deadline is enforced server-side; the client only displays it.
func Countdown(seconds int64) string {
	if seconds <= 0 {
		return "expired"
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds left", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm %ds left", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%dh %dm left", seconds/3600, (seconds%3600)/60)
}
