package bot

import (
	"context"
	"time"

	"huonganh/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Bot runs the long-polling update loop and feeds messages to the Handler.
// The same Handler also serves webhook updates through the HTTP server.
type Bot struct {
	sender  domain.TelegramSender
	handler *Handler
	logger  *zerolog.Logger
}

func NewBot(sender domain.TelegramSender, handler *Handler, logger *zerolog.Logger) *Bot {
	return &Bot{sender: sender, handler: handler, logger: logger}
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.sender.GetUpdatesChan(u)

	b.logger.Info().Msg("bot update loop started")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("bot stopping")
			b.sender.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Chat == nil || update.Message.Text == "" {
		return
	}

	updateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	requestID := uuid.New().String()
	l := b.logger.With().
		Str("request_id", requestID).
		Int64("chat_id", update.Message.Chat.ID).
		Logger()
	l.Debug().Str("text", update.Message.Text).Msg("message received")

	b.handler.HandleMessage(updateCtx, update.Message.Chat.ID, update.Message.Text)
}
