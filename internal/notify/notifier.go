package notify

import (
	"context"

	"huonganh/internal/metrics"
	"huonganh/internal/models"

	"github.com/rs/zerolog"
)

// SMSSender is implemented by SMSClient and by test fakes.
type SMSSender interface {
	Send(ctx context.Context, to, body string) bool
}

// HTMLSender is implemented by TelegramSink and by test fakes.
type HTMLSender interface {
	SendHTML(chatID int64, text string) bool
	SendToChatRef(chatRef, text string) bool
}

// Notifier routes outbound customer/admin messages to the chosen channel.
// It never returns errors: a provider failure is reported as false so
// callers can record it without aborting the booking flow.
type Notifier struct {
	telegram    HTMLSender
	sms         SMSSender
	adminChatID int64
	hotline     string
	logger      *zerolog.Logger
}

func NewNotifier(telegram HTMLSender, sms SMSSender, adminChatID int64, hotline string, logger *zerolog.Logger) *Notifier {
	return &Notifier{
		telegram:    telegram,
		sms:         sms,
		adminChatID: adminChatID,
		hotline:     hotline,
		logger:      logger,
	}
}

// NotifyCustomer sends the status message through the booking's chosen
// channel. Telegram is used when chosen and a chat reference is stored;
// otherwise the SMS sink gets the phone number. Statuses without a template
// send nothing and report success.
func (n *Notifier) NotifyCustomer(ctx context.Context, booking *models.Booking, status string) bool {
	if booking == nil {
		return false
	}

	if booking.Method == models.MethodTelegram && booking.TelegramChatID != "" {
		text := FormatCustomerMessage(booking, status, n.hotline)
		if text == "" {
			return true
		}
		ok := n.telegram.SendToChatRef(booking.TelegramChatID, text)
		metrics.IncNotification("telegram", ok)
		return ok
	}

	text := FormatCustomerSMS(booking, status, n.hotline)
	if text == "" {
		return true
	}
	if n.sms == nil {
		n.logger.Warn().Int64("booking_id", booking.ID).Msg("sms sink disabled, customer not notified")
		return false
	}
	ok := n.sms.Send(ctx, booking.Phone, text)
	metrics.IncNotification("sms", ok)
	return ok
}

// NotifyAdminNewBooking alerts the admin chat about a new form submission.
func (n *Notifier) NotifyAdminNewBooking(ctx context.Context, booking *models.Booking) bool {
	if booking == nil {
		return false
	}
	ok := n.telegram.SendHTML(n.adminChatID, FormatAdminNewBooking(booking))
	metrics.IncNotification("telegram", ok)
	return ok
}
