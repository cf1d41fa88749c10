package service

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"huonganh/internal/database"
	"huonganh/internal/domain"
	"huonganh/internal/events"
	"huonganh/internal/metrics"
	"huonganh/internal/models"
	"huonganh/internal/notify"

	"github.com/rs/zerolog"
)

// transitions is the explicit status transition table. It is total: every
// enumerated status may be requested from any current status, including
// re-entering the same one. Kept as data so product can tighten it later
// without touching Transition.
var transitions = map[string][]string{
	models.StatusPending:   {models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted: {models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled},
	models.StatusCancelled: {models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled},
}

// CanTransition reports whether the table allows current -> next.
func CanTransition(current, next string) bool {
	allowed, ok := transitions[current]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == next {
			return true
		}
	}
	return false
}

type BookingService struct {
	store    domain.Store
	notifier domain.Notifier
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(store domain.Store, notifier domain.Notifier, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		store:    store,
		notifier: notifier,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Create persists a new pending booking from the public form and alerts the
// admin chat. The admin alert is best-effort and never fails the creation.
func (s *BookingService) Create(ctx context.Context, booking *models.Booking) error {
	booking.Status = models.StatusPending
	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return err
	}

	if s.notifier != nil {
		if !s.notifier.NotifyAdminNewBooking(ctx, booking) {
			s.logger.Warn().Int64("booking_id", booking.ID).Msg("admin alert not delivered")
		}
	}

	s.publishEvent(events.EventBookingCreated, booking)
	return nil
}

// Transition drives the booking status state machine. Side effects run as a
// best-effort sequence: persist status+visible first, then notify the
// customer, then append the audit record. A persistence failure aborts
// before any notification; a notification failure is reported through the
// returned bool and never rolls anything back.
func (s *BookingService) Transition(ctx context.Context, bookingID int64, newStatus string) (*models.Booking, bool, error) {
	if !models.IsValidStatus(newStatus) {
		return nil, false, database.ErrInvalidStatus
	}

	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, false, err
	}

	if !CanTransition(booking.Status, newStatus) {
		return nil, false, fmt.Errorf("transition %s -> %s is not allowed", booking.Status, newStatus)
	}

	if err := s.store.UpdateBookingStatus(ctx, bookingID, newStatus); err != nil {
		return nil, false, err
	}
	booking.Status = newStatus
	booking.Visible = models.VisibleForStatus(newStatus)
	metrics.IncTransition(newStatus)

	notified := s.notifier.NotifyCustomer(ctx, booking, newStatus)
	if !notified {
		s.logger.Warn().
			Int64("booking_id", bookingID).
			Str("status", newStatus).
			Msg("customer notification not delivered")
	}

	audit := &models.Notification{
		Type:      models.NotificationType(newStatus),
		Content:   notify.FormatAuditContent(booking, newStatus),
		BookingID: bookingID,
	}
	if err := s.store.CreateNotification(ctx, audit); err != nil {
		// Status has already changed; the missing audit row is logged only.
		s.logger.Error().Err(err).Int64("booking_id", bookingID).Msg("audit record write failed")
	}

	s.recordRevenue(ctx, booking, newStatus)
	s.publishEvent(events.EventTypeForStatus(newStatus), booking)

	return booking, notified, nil
}

// recordRevenue folds terminal transitions into the monthly and weekly
// aggregates read by the stats command.
func (s *BookingService) recordRevenue(ctx context.Context, booking *models.Booking, status string) {
	completed := status == models.StatusCompleted
	cancelled := status == models.StatusCancelled
	if !completed && !cancelled {
		return
	}

	var revenue int64
	if completed {
		revenue = s.servicePrice(ctx, booking.Service)
	}

	date := booking.BookingDate
	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	weekStart := startOfWeek(date)

	if err := s.store.RecordRevenue(ctx, models.PeriodMonthly, monthStart, revenue, completed, cancelled); err != nil {
		s.logger.Error().Err(err).Msg("monthly revenue record failed")
	}
	if err := s.store.RecordRevenue(ctx, models.PeriodWeekly, weekStart, revenue, completed, cancelled); err != nil {
		s.logger.Error().Err(err).Msg("weekly revenue record failed")
	}
}

// servicePrice resolves the booked service's price from the catalog; 0 when
// the service is unknown or the price is not numeric.
func (s *BookingService) servicePrice(ctx context.Context, title string) int64 {
	services, err := s.store.ListServices(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("service price lookup failed")
		return 0
	}
	for _, svc := range services {
		if svc.Title == title {
			return ParsePriceVND(svc.Price)
		}
	}
	return 0
}

// ParsePriceVND extracts the numeric amount from a display price such as
// "500.000đ". Non-digit runes are separators or currency marks.
func ParsePriceVND(price string) int64 {
	var amount int64
	for _, r := range price {
		if unicode.IsDigit(r) {
			amount = amount*10 + int64(r-'0')
		}
	}
	return amount
}

func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week starting the previous Monday
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}
	payload := events.BookingEventPayload{
		BookingID:   booking.ID,
		Name:        booking.Name,
		Service:     booking.Service,
		Status:      booking.Status,
		BookingDate: booking.BookingDate,
		BookingTime: booking.BookingTime,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event", eventType).Msg("event publish failed")
	}
}

// VisibleBookings lists bookings shown by default, ordered by requested date.
func (s *BookingService) VisibleBookings(ctx context.Context) ([]models.Booking, error) {
	return s.store.ListBookings(ctx, database.BookingFilter{
		OnlyVisible: true,
		OrderBy:     "booking_date",
	})
}

// AllBookings lists every booking for the admin dashboard, newest first.
func (s *BookingService) AllBookings(ctx context.Context) ([]models.Booking, error) {
	return s.store.ListBookings(ctx, database.BookingFilter{
		OrderBy:    "created_at",
		Descending: true,
	})
}

func (s *BookingService) Get(ctx context.Context, id int64) (*models.Booking, error) {
	return s.store.GetBooking(ctx, id)
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteBooking(ctx, id)
}
