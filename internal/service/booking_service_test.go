package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"huonganh/internal/database"
	"huonganh/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBookingServiceUnderTest(store *mockStore, notifier *mockNotifier, publisher *mockPublisher) *BookingService {
	logger := zerolog.Nop()
	return NewBookingService(store, notifier, publisher, &logger)
}

func testBooking(status string) *models.Booking {
	return &models.Booking{
		ID:          42,
		Name:        "Nguyễn Thị Hoa",
		Phone:       "0912345678",
		Service:     "Massage Thư Giãn",
		BookingDate: time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC), // a Wednesday
		BookingTime: "14:00",
		Method:      models.MethodSMS,
		Status:      status,
		Visible:     models.VisibleForStatus(status),
	}
}

func TestCanTransitionIsTotal(t *testing.T) {
	for _, from := range models.AllStatuses {
		for _, to := range models.AllStatuses {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, CanTransition("archived", models.StatusPending))
}

func TestCreateSetsPendingAndAlertsAdmin(t *testing.T) {
	store := new(mockStore)
	notifier := new(mockNotifier)
	publisher := new(mockPublisher)
	svc := newBookingServiceUnderTest(store, notifier, publisher)

	booking := testBooking("")
	booking.Status = ""

	store.On("CreateBooking", mock.Anything, booking).Return(nil)
	notifier.On("NotifyAdminNewBooking", mock.Anything, booking).Return(true)
	publisher.On("PublishJSON", "booking_created", mock.Anything).Return(nil)

	require.NoError(t, svc.Create(context.Background(), booking))
	assert.Equal(t, models.StatusPending, booking.Status)

	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateFailedAdminAlertDoesNotFailBooking(t *testing.T) {
	store := new(mockStore)
	notifier := new(mockNotifier)
	publisher := new(mockPublisher)
	svc := newBookingServiceUnderTest(store, notifier, publisher)

	booking := testBooking(models.StatusPending)
	store.On("CreateBooking", mock.Anything, booking).Return(nil)
	notifier.On("NotifyAdminNewBooking", mock.Anything, booking).Return(false)
	publisher.On("PublishJSON", "booking_created", mock.Anything).Return(nil)

	require.NoError(t, svc.Create(context.Background(), booking))
}

func TestTransitionHappyPath(t *testing.T) {
	store := new(mockStore)
	notifier := new(mockNotifier)
	publisher := new(mockPublisher)
	svc := newBookingServiceUnderTest(store, notifier, publisher)

	current := testBooking(models.StatusPending)
	store.On("GetBooking", mock.Anything, int64(42)).Return(current, nil)
	store.On("UpdateBookingStatus", mock.Anything, int64(42), models.StatusConfirmed).Return(nil)
	notifier.On("NotifyCustomer", mock.Anything, current, models.StatusConfirmed).Return(true)
	store.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.Type == "booking_confirmed" && n.BookingID == 42
	})).Return(nil)
	publisher.On("PublishJSON", "booking_confirmed", mock.Anything).Return(nil)

	booking, notified, err := svc.Transition(context.Background(), 42, models.StatusConfirmed)
	require.NoError(t, err)
	assert.True(t, notified)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
	assert.True(t, booking.Visible)

	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTransitionUnknownStatus(t *testing.T) {
	store := new(mockStore)
	svc := newBookingServiceUnderTest(store, new(mockNotifier), new(mockPublisher))

	_, _, err := svc.Transition(context.Background(), 42, "archived")
	assert.ErrorIs(t, err, database.ErrInvalidStatus)
	store.AssertNotCalled(t, "GetBooking", mock.Anything, mock.Anything)
}

func TestTransitionBookingNotFound(t *testing.T) {
	store := new(mockStore)
	svc := newBookingServiceUnderTest(store, new(mockNotifier), new(mockPublisher))

	store.On("GetBooking", mock.Anything, int64(42)).Return(nil, database.ErrNotFound)

	_, _, err := svc.Transition(context.Background(), 42, models.StatusConfirmed)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestTransitionPersistenceFailureAbortsBeforeNotification(t *testing.T) {
	store := new(mockStore)
	notifier := new(mockNotifier)
	svc := newBookingServiceUnderTest(store, notifier, new(mockPublisher))

	current := testBooking(models.StatusPending)
	store.On("GetBooking", mock.Anything, int64(42)).Return(current, nil)
	store.On("UpdateBookingStatus", mock.Anything, int64(42), models.StatusConfirmed).
		Return(errors.New("disk full"))

	_, _, err := svc.Transition(context.Background(), 42, models.StatusConfirmed)
	require.Error(t, err)
	notifier.AssertNotCalled(t, "NotifyCustomer", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
}

func TestTransitionNotificationFailureDoesNotRollBack(t *testing.T) {
	store := new(mockStore)
	notifier := new(mockNotifier)
	publisher := new(mockPublisher)
	svc := newBookingServiceUnderTest(store, notifier, publisher)

	current := testBooking(models.StatusPending)
	store.On("GetBooking", mock.Anything, int64(42)).Return(current, nil)
	store.On("UpdateBookingStatus", mock.Anything, int64(42), models.StatusConfirmed).Return(nil)
	notifier.On("NotifyCustomer", mock.Anything, current, models.StatusConfirmed).Return(false)
	store.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishJSON", "booking_confirmed", mock.Anything).Return(nil)

	booking, notified, err := svc.Transition(context.Background(), 42, models.StatusConfirmed)
	require.NoError(t, err)
	assert.False(t, notified)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
}

func TestTransitionAuditFailureIsSwallowed(t *testing.T) {
	store := new(mockStore)
	notifier := new(mockNotifier)
	publisher := new(mockPublisher)
	svc := newBookingServiceUnderTest(store, notifier, publisher)

	current := testBooking(models.StatusConfirmed)
	store.On("GetBooking", mock.Anything, int64(42)).Return(current, nil)
	store.On("UpdateBookingStatus", mock.Anything, int64(42), models.StatusConfirmed).Return(nil)
	notifier.On("NotifyCustomer", mock.Anything, current, models.StatusConfirmed).Return(true)
	store.On("CreateNotification", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	publisher.On("PublishJSON", "booking_confirmed", mock.Anything).Return(nil)

	_, _, err := svc.Transition(context.Background(), 42, models.StatusConfirmed)
	assert.NoError(t, err)
}

func TestTransitionToCompletedRecordsRevenue(t *testing.T) {
	store := new(mockStore)
	notifier := new(mockNotifier)
	publisher := new(mockPublisher)
	svc := newBookingServiceUnderTest(store, notifier, publisher)

	current := testBooking(models.StatusConfirmed)
	store.On("GetBooking", mock.Anything, int64(42)).Return(current, nil)
	store.On("UpdateBookingStatus", mock.Anything, int64(42), models.StatusCompleted).Return(nil)
	notifier.On("NotifyCustomer", mock.Anything, current, models.StatusCompleted).Return(true)
	store.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)
	store.On("ListServices", mock.Anything).Return([]models.Service{
		{Title: "Massage Thư Giãn", Price: "500.000đ"},
	}, nil)

	monthStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	weekStart := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC) // Monday of that week
	store.On("RecordRevenue", mock.Anything, models.PeriodMonthly, monthStart, int64(500000), true, false).Return(nil)
	store.On("RecordRevenue", mock.Anything, models.PeriodWeekly, weekStart, int64(500000), true, false).Return(nil)
	publisher.On("PublishJSON", "booking_completed", mock.Anything).Return(nil)

	_, _, err := svc.Transition(context.Background(), 42, models.StatusCompleted)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestTransitionToCancelledRecordsZeroRevenue(t *testing.T) {
	store := new(mockStore)
	notifier := new(mockNotifier)
	publisher := new(mockPublisher)
	svc := newBookingServiceUnderTest(store, notifier, publisher)

	current := testBooking(models.StatusPending)
	store.On("GetBooking", mock.Anything, int64(42)).Return(current, nil)
	store.On("UpdateBookingStatus", mock.Anything, int64(42), models.StatusCancelled).Return(nil)
	notifier.On("NotifyCustomer", mock.Anything, current, models.StatusCancelled).Return(true)
	store.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)
	store.On("RecordRevenue", mock.Anything, models.PeriodMonthly, mock.Anything, int64(0), false, true).Return(nil)
	store.On("RecordRevenue", mock.Anything, models.PeriodWeekly, mock.Anything, int64(0), false, true).Return(nil)
	publisher.On("PublishJSON", "booking_cancelled", mock.Anything).Return(nil)

	_, _, err := svc.Transition(context.Background(), 42, models.StatusCancelled)
	require.NoError(t, err)
	store.AssertNotCalled(t, "ListServices", mock.Anything)
}

func TestTransitionToConfirmedSkipsRevenue(t *testing.T) {
	store := new(mockStore)
	notifier := new(mockNotifier)
	publisher := new(mockPublisher)
	svc := newBookingServiceUnderTest(store, notifier, publisher)

	current := testBooking(models.StatusPending)
	store.On("GetBooking", mock.Anything, int64(42)).Return(current, nil)
	store.On("UpdateBookingStatus", mock.Anything, int64(42), models.StatusConfirmed).Return(nil)
	notifier.On("NotifyCustomer", mock.Anything, current, models.StatusConfirmed).Return(true)
	store.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishJSON", "booking_confirmed", mock.Anything).Return(nil)

	_, _, err := svc.Transition(context.Background(), 42, models.StatusConfirmed)
	require.NoError(t, err)
	store.AssertNotCalled(t, "RecordRevenue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestParsePriceVND(t *testing.T) {
	assert.Equal(t, int64(500000), ParsePriceVND("500.000đ"))
	assert.Equal(t, int64(1200000), ParsePriceVND("1.200.000 VNĐ"))
	assert.Equal(t, int64(0), ParsePriceVND("Liên hệ"))
	assert.Equal(t, int64(0), ParsePriceVND(""))
}

func TestStartOfWeek(t *testing.T) {
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   time.Time
	}{
		{"Monday", time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)},
		{"Wednesday", time.Date(2026, 9, 16, 23, 59, 0, 0, time.UTC)},
		{"Sunday", time.Date(2026, 9, 20, 1, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, monday, startOfWeek(tc.in))
		})
	}
}
