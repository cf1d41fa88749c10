package models

import "time"

type Booking struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email,omitempty"`
	Service        string    `json:"service"`
	Message        string    `json:"message,omitempty"`
	BookingDate    time.Time `json:"booking_date"`
	BookingTime    string    `json:"booking_time"`
	Method         string    `json:"notification_method"` // sms, telegram
	TelegramChatID string    `json:"telegram_chat_id,omitempty"`
	Status         string    `json:"status"` // pending, confirmed, completed, cancelled
	Visible        bool      `json:"visible"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
