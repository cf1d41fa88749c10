package models

import "time"

// RevenueStat is one aggregated revenue row per period (monthly or weekly).
type RevenueStat struct {
	ID                int64     `json:"id"`
	PeriodType        string    `json:"period_type"` // monthly, weekly
	PeriodStart       time.Time `json:"period_start"`
	TotalRevenue      int64     `json:"total_revenue"`
	TotalBookings     int       `json:"total_bookings"`
	CompletedBookings int       `json:"completed_bookings"`
	CancelledBookings int       `json:"cancelled_bookings"`
}
