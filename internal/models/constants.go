package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	MethodSMS      = "sms"
	MethodTelegram = "telegram"
)

const (
	PeriodMonthly = "monthly"
	PeriodWeekly  = "weekly"
)

const (
	ParseModeMarkdown = "Markdown"
	ParseModeHTML     = "HTML"
)

const (
	// RateLimitMessages default messages allowed per rate-limit window
	RateLimitMessages = 20

	// RateLimitWindow rate-limit window in seconds
	RateLimitWindow = 60

	// StatsRecentRows number of revenue rows fetched for the stats command
	StatsRecentRows = 30

	// StatsMonthlyShown / StatsWeeklyShown rows rendered per period type
	StatsMonthlyShown = 3
	StatsWeeklyShown  = 4
)

// AllStatuses enumerates every booking status the state machine accepts.
var AllStatuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// IsValidStatus reports whether s is one of the enumerated booking statuses.
func IsValidStatus(s string) bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// VisibleForStatus computes the visible flag stored alongside a status.
// Only completed bookings are hidden from default listings; cancelled
// bookings stay visible.
func VisibleForStatus(status string) bool {
	return status != StatusCompleted
}
