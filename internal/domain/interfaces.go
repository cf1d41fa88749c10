package domain

import (
	"context"
	"time"

	"huonganh/internal/database"
	"huonganh/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Store is the persistence surface consumed by the services and the bot.
// *database.DB satisfies it.
type Store interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	ListBookings(ctx context.Context, filter database.BookingFilter) ([]models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error

	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, filter database.NotificationFilter) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	CountUnreadNotifications(ctx context.Context) (int, error)

	ListServices(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, svc *models.Service) error
	UpdateService(ctx context.Context, svc *models.Service) error
	DeleteService(ctx context.Context, id int64) error
	ReorderServices(ctx context.Context, updates []database.OrderUpdate) error

	ListGalleryImages(ctx context.Context) ([]models.GalleryImage, error)
	CreateGalleryImage(ctx context.Context, img *models.GalleryImage) error
	UpdateGalleryImage(ctx context.Context, img *models.GalleryImage) error
	DeleteGalleryImage(ctx context.Context, id int64) error
	ReorderGalleryImages(ctx context.Context, updates []database.OrderUpdate) error

	ListAboutSections(ctx context.Context) ([]models.AboutSection, error)
	CreateAboutSection(ctx context.Context, section *models.AboutSection) error
	UpdateAboutSection(ctx context.Context, section *models.AboutSection) error
	DeleteAboutSection(ctx context.Context, id int64) error
	ReorderAboutSections(ctx context.Context, updates []database.OrderUpdate) error

	ListRecentRevenue(ctx context.Context, limit int) ([]models.RevenueStat, error)
	RecordRevenue(ctx context.Context, periodType string, periodStart time.Time, revenue int64, completed, cancelled bool) error
}

// ContextRepository keeps the per-conversation selected booking. Upsert
// semantics: the latest selection wins, no history, no expiry.
type ContextRepository interface {
	GetContext(ctx context.Context, chatID int64) (*models.ConversationContext, error)
	SetContext(ctx context.Context, convCtx *models.ConversationContext) error
	ClearContext(ctx context.Context, chatID int64) error
	CheckRateLimit(ctx context.Context, chatID int64, limit int, window time.Duration) (bool, error)
}

// Notifier is the outbound customer/admin message boundary. Implementations
// never return errors; delivery failure is reported as false.
type Notifier interface {
	NotifyCustomer(ctx context.Context, booking *models.Booking, status string) bool
	NotifyAdminNewBooking(ctx context.Context, booking *models.Booking) bool
}

// BookingTransitioner applies the booking status state machine; both the
// dashboard API and the chat bot drive it. The bool reports whether the
// customer notification was delivered; a false value never accompanies a
// rolled-back transition.
type BookingTransitioner interface {
	Transition(ctx context.Context, bookingID int64, newStatus string) (*models.Booking, bool, error)
}

// EventPublisher fans out domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// TelegramSender is the slice of the bot API used by the interpreter,
// narrow enough to fake in tests.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}
