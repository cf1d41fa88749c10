package service

import (
	"context"
	"time"

	"huonganh/internal/database"
	"huonganh/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockStore) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockStore) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *mockStore) ListBookings(ctx context.Context, filter database.BookingFilter) ([]models.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}
func (m *mockStore) DeleteBooking(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	return m.Called(ctx, n).Error(0)
}
func (m *mockStore) ListNotifications(ctx context.Context, filter database.NotificationFilter) ([]models.Notification, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}
func (m *mockStore) MarkNotificationRead(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) CountUnreadNotifications(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) ListServices(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}
func (m *mockStore) CreateService(ctx context.Context, svc *models.Service) error {
	return m.Called(ctx, svc).Error(0)
}
func (m *mockStore) UpdateService(ctx context.Context, svc *models.Service) error {
	return m.Called(ctx, svc).Error(0)
}
func (m *mockStore) DeleteService(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) ReorderServices(ctx context.Context, updates []database.OrderUpdate) error {
	return m.Called(ctx, updates).Error(0)
}

func (m *mockStore) ListGalleryImages(ctx context.Context) ([]models.GalleryImage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GalleryImage), args.Error(1)
}
func (m *mockStore) CreateGalleryImage(ctx context.Context, img *models.GalleryImage) error {
	return m.Called(ctx, img).Error(0)
}
func (m *mockStore) UpdateGalleryImage(ctx context.Context, img *models.GalleryImage) error {
	return m.Called(ctx, img).Error(0)
}
func (m *mockStore) DeleteGalleryImage(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) ReorderGalleryImages(ctx context.Context, updates []database.OrderUpdate) error {
	return m.Called(ctx, updates).Error(0)
}

func (m *mockStore) ListAboutSections(ctx context.Context) ([]models.AboutSection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AboutSection), args.Error(1)
}
func (m *mockStore) CreateAboutSection(ctx context.Context, section *models.AboutSection) error {
	return m.Called(ctx, section).Error(0)
}
func (m *mockStore) UpdateAboutSection(ctx context.Context, section *models.AboutSection) error {
	return m.Called(ctx, section).Error(0)
}
func (m *mockStore) DeleteAboutSection(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) ReorderAboutSections(ctx context.Context, updates []database.OrderUpdate) error {
	return m.Called(ctx, updates).Error(0)
}

func (m *mockStore) ListRecentRevenue(ctx context.Context, limit int) ([]models.RevenueStat, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RevenueStat), args.Error(1)
}
func (m *mockStore) RecordRevenue(ctx context.Context, periodType string, periodStart time.Time, revenue int64, completed, cancelled bool) error {
	return m.Called(ctx, periodType, periodStart, revenue, completed, cancelled).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyCustomer(ctx context.Context, booking *models.Booking, status string) bool {
	return m.Called(ctx, booking, status).Bool(0)
}
func (m *mockNotifier) NotifyAdminNewBooking(ctx context.Context, booking *models.Booking) bool {
	return m.Called(ctx, booking).Bool(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(eventType string, payload interface{}) error {
	return m.Called(eventType, payload).Error(0)
}
