package bot

import (
	"fmt"
	"strings"
	"time"

	"huonganh/internal/models"
	"huonganh/internal/notify"
	"huonganh/internal/service"
)

func mainMenu() string {
	return "*Menu Quản Lý*\n\n" +
		"- Danh sách đặt lịch\n" +
		"- Thống kê\n" +
		"- Xuất excel\n\n" +
		"*Lệnh cho đặt lịch đã chọn:*\n" +
		"- Xác nhận\n" +
		"- Hủy\n" +
		"- Hoàn thành"
}

func renderBookingList(bookings []models.Booking) string {
	var b strings.Builder
	b.WriteString("*Danh sách đặt lịch*\n\n")

	for _, booking := range bookings {
		fmt.Fprintf(&b, "#%d\n", booking.ID)
		fmt.Fprintf(&b, "Khách hàng: %s\n", booking.Name)
		fmt.Fprintf(&b, "Dịch vụ: %s\n", booking.Service)
		fmt.Fprintf(&b, "Ngày: %s\n", booking.BookingDate.Format("02/01/2006"))
		fmt.Fprintf(&b, "Giờ: %s\n", booking.BookingTime)
		fmt.Fprintf(&b, "Trạng thái: %s\n\n", notify.StatusLabel(booking.Status))
	}

	b.WriteString("Để chọn đặt lịch, gõ \"chọn #[id]\"")
	return b.String()
}

func renderBookingDetail(booking *models.Booking) string {
	return fmt.Sprintf("*Đã chọn đặt lịch:*\n\n"+
		"Khách hàng: %s\n"+
		"SĐT: %s\n"+
		"Dịch vụ: %s\n"+
		"Ngày: %s\n"+
		"Giờ: %s\n"+
		"Trạng thái: %s\n\n"+
		"*Các lệnh có thể thực hiện:*\n"+
		"- Xác nhận\n"+
		"- Hủy\n"+
		"- Hoàn thành",
		booking.Name,
		booking.Phone,
		booking.Service,
		booking.BookingDate.Format("02/01/2006"),
		booking.BookingTime,
		notify.StatusLabel(booking.Status))
}

func renderRevenueStats(summary *service.RevenueSummary) string {
	var b strings.Builder
	b.WriteString("📊 *Thống kê doanh thu*\n\n")

	if len(summary.Monthly) > 0 {
		b.WriteString("*Theo tháng:*\n")
		for _, stat := range summary.Monthly {
			b.WriteString(renderRevenueStat(stat))
		}
	}

	if len(summary.Weekly) > 0 {
		b.WriteString("\n*Theo tuần:*\n")
		for _, stat := range summary.Weekly {
			b.WriteString(renderRevenueStat(stat))
		}
	}

	return b.String()
}

func renderRevenueStat(stat models.RevenueStat) string {
	var period string
	if stat.PeriodType == models.PeriodMonthly {
		period = fmt.Sprintf("Tháng %d/%d", stat.PeriodStart.Month(), stat.PeriodStart.Year())
	} else {
		period = fmt.Sprintf("Tuần %d", weekNumber(stat.PeriodStart))
	}

	return fmt.Sprintf("%s\nDoanh thu: %s\nĐặt lịch: %d (✅%d ❌%d)\n\n",
		period,
		FormatVND(stat.TotalRevenue),
		stat.TotalBookings,
		stat.CompletedBookings,
		stat.CancelledBookings)
}

// weekNumber gives the 1-based week of the year, counting partial first weeks.
func weekNumber(t time.Time) int {
	firstDay := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	days := int(t.Sub(firstDay).Hours() / 24)
	return (days+int(firstDay.Weekday()))/7 + 1
}

// FormatVND renders an amount with dot thousand separators and the đ mark.
func FormatVND(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	if amount < 0 {
		digits = digits[1:]
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := b.String() + " ₫"
	if amount < 0 {
		out = "-" + out
	}
	return out
}
