package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huonganh",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	botCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huonganh",
			Name:      "bot_commands_total",
			Help:      "Chat commands processed, by command.",
		},
		[]string{"command"},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huonganh",
			Name:      "booking_transitions_total",
			Help:      "Booking status transitions applied, by target status.",
		},
		[]string{"status"},
	)

	notificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "huonganh",
			Name:      "notifications_sent_total",
			Help:      "Outbound notifications by channel and result.",
		},
		[]string{"channel", "result"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, botCommands, bookingTransitions, notificationsSent)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncCommand counts one processed chat command.
func IncCommand(command string) {
	botCommands.WithLabelValues(command).Inc()
}

// IncTransition counts one applied status transition.
func IncTransition(status string) {
	bookingTransitions.WithLabelValues(status).Inc()
}

// IncNotification counts one outbound notification attempt.
func IncNotification(channel string, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	notificationsSent.WithLabelValues(channel, result).Inc()
}
