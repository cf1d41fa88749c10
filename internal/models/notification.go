package models

import "time"

// Notification is the internal audit record written once per status
// transition. It is distinct from the outbound customer/admin messages.
type Notification struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"` // booking_<status>
	Content   string    `json:"content"`
	BookingID int64     `json:"booking_id"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationType builds the audit type tag for a status transition.
func NotificationType(status string) string {
	return "booking_" + status
}
