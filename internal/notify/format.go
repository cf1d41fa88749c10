package notify

import (
	"fmt"

	"huonganh/internal/models"
)

// Customer-facing message templates. Statuses without a template produce no
// customer message.
var statusMessages = map[string]string{
	models.StatusConfirmed: "✅ Lịch hẹn của bạn đã được xác nhận",
	models.StatusCompleted: "🎉 Cảm ơn bạn đã sử dụng dịch vụ của chúng tôi",
	models.StatusCancelled: "❌ Lịch hẹn của bạn đã bị hủy",
}

// StatusLabel renders a booking status with its emoji, as shown to the admin.
func StatusLabel(status string) string {
	switch status {
	case models.StatusPending:
		return "⏳ Chờ xử lý"
	case models.StatusConfirmed:
		return "✅ Đã xác nhận"
	case models.StatusCompleted:
		return "🎉 Hoàn thành"
	case models.StatusCancelled:
		return "❌ Đã hủy"
	default:
		return status
	}
}

// FormatCustomerMessage builds the HTML status message for the customer.
// Returns "" when the status has no customer-facing template.
func FormatCustomerMessage(booking *models.Booking, status, hotline string) string {
	header, ok := statusMessages[status]
	if !ok {
		return ""
	}

	return fmt.Sprintf("<b>%s</b>\n\n"+
		"<b>Khách hàng:</b> %s\n"+
		"<b>Dịch vụ:</b> %s\n"+
		"<b>Ngày:</b> %s\n"+
		"<b>Giờ:</b> %s\n\n"+
		"Mọi thắc mắc xin liên hệ hotline: %s",
		header,
		booking.Name,
		booking.Service,
		booking.BookingDate.Format("02/01/2006"),
		booking.BookingTime,
		hotline)
}

// FormatCustomerSMS builds the plain-text variant sent over SMS.
func FormatCustomerSMS(booking *models.Booking, status, hotline string) string {
	header, ok := statusMessages[status]
	if !ok {
		return ""
	}

	return fmt.Sprintf("%s. Dich vu: %s, ngay %s luc %s. Hotline: %s",
		header,
		booking.Service,
		booking.BookingDate.Format("02/01/2006"),
		booking.BookingTime,
		hotline)
}

// FormatAdminNewBooking builds the HTML alert sent to the admin chat when a
// public form submission creates a booking.
func FormatAdminNewBooking(booking *models.Booking) string {
	email := booking.Email
	if email == "" {
		email = "Không có"
	}
	note := booking.Message
	if note == "" {
		note = "Không có"
	}

	msg := fmt.Sprintf("🔔 <b>Đặt lịch mới!</b>\n\n"+
		"<b>Khách hàng:</b> %s\n"+
		"<b>SĐT:</b> %s\n"+
		"<b>Email:</b> %s\n"+
		"<b>Dịch vụ:</b> %s\n"+
		"<b>Ngày:</b> %s\n"+
		"<b>Giờ:</b> %s\n"+
		"<b>Ghi chú:</b> %s\n"+
		"<b>Phương thức thông báo:</b> %s\n",
		booking.Name,
		booking.Phone,
		email,
		booking.Service,
		booking.BookingDate.Format("02/01/2006"),
		booking.BookingTime,
		note,
		booking.Method)

	if booking.TelegramChatID != "" {
		msg += fmt.Sprintf("<b>Telegram:</b> %s\n", booking.TelegramChatID)
	}
	return msg
}

// FormatAuditContent is the content string written to the notification audit
// record for a transition.
func FormatAuditContent(booking *models.Booking, status string) string {
	return fmt.Sprintf("%s - %s - %s", booking.Name, booking.Service, status)
}
