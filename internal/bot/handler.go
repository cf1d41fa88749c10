package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"huonganh/internal/database"
	"huonganh/internal/domain"
	"huonganh/internal/metrics"
	"huonganh/internal/models"
	"huonganh/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Replies of the command interpreter.
const (
	replySelectFirst    = "Vui lòng chọn một đặt lịch trước khi thực hiện thao tác"
	replyNotFound       = "Không tìm thấy đặt lịch"
	replyNoBookings     = "Không có đặt lịch nào"
	replyUnknownCommand = "Lệnh không hợp lệ. Gõ \"menu\" để xem danh sách lệnh."
	replyInternalError  = "Có lỗi xảy ra khi xử lý yêu cầu"
	replyRateLimited    = "Quá nhiều yêu cầu, vui lòng thử lại sau"
	replyConfirmed      = "✅ Đã xác nhận đặt lịch"
	replyCancelled      = "❌ Đã hủy đặt lịch"
	replyCompleted      = "🎉 Đã hoàn thành đặt lịch"
	replyNotifyFailed   = "⚠️ Không gửi được thông báo cho khách hàng"
)

const selectPrefix = "chọn #"

// statusCommands maps action commands to the status they request.
var statusCommands = map[string]string{
	"xác nhận":   models.StatusConfirmed,
	"hủy":        models.StatusCancelled,
	"hoàn thành": models.StatusCompleted,
}

// Handler interprets chat commands from the authorized admin conversation.
// It is stateless per message; the selected-booking context lives in the
// context repository.
type Handler struct {
	sender       domain.TelegramSender
	transitioner domain.BookingTransitioner
	store        domain.Store
	contexts     domain.ContextRepository
	stats        *service.StatsService
	exporter     *Exporter
	adminChatID  int64
	rateLimit    int
	rateWindow   time.Duration
	logger       *zerolog.Logger
}

func NewHandler(
	sender domain.TelegramSender,
	transitioner domain.BookingTransitioner,
	store domain.Store,
	contexts domain.ContextRepository,
	stats *service.StatsService,
	exporter *Exporter,
	adminChatID int64,
	rateLimit int,
	rateWindow time.Duration,
	logger *zerolog.Logger,
) *Handler {
	return &Handler{
		sender:       sender,
		transitioner: transitioner,
		store:        store,
		contexts:     contexts,
		stats:        stats,
		exporter:     exporter,
		adminChatID:  adminChatID,
		rateLimit:    rateLimit,
		rateWindow:   rateWindow,
		logger:       logger,
	}
}

// HandleMessage processes one inbound message. Messages from any chat other
// than the configured admin conversation are silently dropped: no reply, no
// state change.
func (h *Handler) HandleMessage(ctx context.Context, chatID int64, text string) {
	if chatID != h.adminChatID {
		return
	}

	if h.rateLimit > 0 {
		allowed, err := h.contexts.CheckRateLimit(ctx, chatID, h.rateLimit, h.rateWindow)
		if err != nil {
			h.logger.Error().Err(err).Msg("rate limit check failed")
		} else if !allowed {
			h.reply(chatID, replyRateLimited)
			return
		}
	}

	command := strings.ToLower(strings.TrimSpace(text))

	switch {
	case command == "/start" || command == "menu":
		metrics.IncCommand("menu")
		h.reply(chatID, mainMenu())

	case command == "danh sách đặt lịch":
		metrics.IncCommand("list")
		h.sendBookingList(ctx, chatID)

	case command == "thống kê":
		metrics.IncCommand("stats")
		h.sendRevenueStats(ctx, chatID)

	case command == "xuất excel":
		metrics.IncCommand("export")
		h.sendExport(ctx, chatID)

	case strings.HasPrefix(command, selectPrefix):
		metrics.IncCommand("select")
		h.selectBooking(ctx, chatID, strings.TrimPrefix(command, selectPrefix))

	default:
		if status, ok := statusCommands[command]; ok {
			metrics.IncCommand(command)
			h.applyStatus(ctx, chatID, status)
			return
		}
		metrics.IncCommand("unknown")
		h.reply(chatID, replyUnknownCommand)
	}
}

func (h *Handler) sendBookingList(ctx context.Context, chatID int64) {
	bookings, err := h.store.ListBookings(ctx, database.BookingFilter{
		OnlyVisible: true,
		OrderBy:     "booking_date",
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("booking list failed")
		h.reply(chatID, replyInternalError)
		return
	}

	if len(bookings) == 0 {
		h.reply(chatID, replyNoBookings)
		return
	}

	h.reply(chatID, renderBookingList(bookings))
}

func (h *Handler) sendRevenueStats(ctx context.Context, chatID int64) {
	summary, err := h.stats.RecentSummary(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("revenue stats failed")
		h.reply(chatID, replyInternalError)
		return
	}
	h.reply(chatID, renderRevenueStats(summary))
}

func (h *Handler) selectBooking(ctx context.Context, chatID int64, rawID string) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		h.reply(chatID, replyNotFound)
		return
	}

	booking, err := h.store.GetBooking(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		h.reply(chatID, replyNotFound)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Int64("booking_id", id).Msg("booking lookup failed")
		h.reply(chatID, replyInternalError)
		return
	}

	convCtx := &models.ConversationContext{
		ChatID:     chatID,
		BookingID:  booking.ID,
		SelectedAt: time.Now(),
	}
	if err := h.contexts.SetContext(ctx, convCtx); err != nil {
		h.logger.Error().Err(err).Msg("context upsert failed")
		h.reply(chatID, replyInternalError)
		return
	}

	h.reply(chatID, renderBookingDetail(booking))
}

func (h *Handler) applyStatus(ctx context.Context, chatID int64, status string) {
	convCtx, err := h.contexts.GetContext(ctx, chatID)
	if err != nil {
		h.logger.Error().Err(err).Msg("context lookup failed")
		h.reply(chatID, replyInternalError)
		return
	}
	if convCtx == nil {
		h.reply(chatID, replySelectFirst)
		return
	}

	_, notified, err := h.transitioner.Transition(ctx, convCtx.BookingID, status)
	if errors.Is(err, database.ErrNotFound) {
		h.reply(chatID, replyNotFound)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).
			Int64("booking_id", convCtx.BookingID).
			Str("status", status).
			Msg("transition failed")
		h.reply(chatID, replyInternalError)
		return
	}

	ack := map[string]string{
		models.StatusConfirmed: replyConfirmed,
		models.StatusCancelled: replyCancelled,
		models.StatusCompleted: replyCompleted,
	}[status]
	if !notified {
		ack += "\n" + replyNotifyFailed
	}
	h.reply(chatID, ack)
}

func (h *Handler) sendExport(ctx context.Context, chatID int64) {
	if h.exporter == nil {
		h.reply(chatID, replyUnknownCommand)
		return
	}

	path, err := h.exporter.ExportBookings(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("excel export failed")
		h.reply(chatID, replyInternalError)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	if _, err := h.sender.Send(doc); err != nil {
		h.logger.Error().Err(err).Str("path", path).Msg("export upload failed")
		h.reply(chatID, replyInternalError)
	}
}

func (h *Handler) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = models.ParseModeMarkdown
	if _, err := h.sender.Send(msg); err != nil {
		h.logger.Error().Err(err).Int64("chat_id", chatID).Msg("reply send failed")
	}
}
