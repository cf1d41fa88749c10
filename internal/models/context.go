package models

import "time"

// ConversationContext remembers the currently selected booking for one chat.
// One entry per chat id; a new selection overwrites the previous one.
type ConversationContext struct {
	ChatID     int64     `json:"chat_id"`
	BookingID  int64     `json:"booking_id"`
	SelectedAt time.Time `json:"selected_at"`
}
