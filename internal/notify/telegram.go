package notify

import (
	"strconv"

	"huonganh/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramClient is the slice of tgbotapi.BotAPI the sink needs.
type TelegramClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSink delivers HTML messages through the bot API.
type TelegramSink struct {
	client TelegramClient
	logger *zerolog.Logger
}

func NewTelegramSink(client TelegramClient, logger *zerolog.Logger) *TelegramSink {
	return &TelegramSink{client: client, logger: logger}
}

// SendHTML sends one message to a chat. Delivery failure is logged and
// reported as false, never as an error.
func (s *TelegramSink) SendHTML(chatID int64, text string) bool {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = models.ParseModeHTML

	if _, err := s.client.Send(msg); err != nil {
		s.logger.Error().Err(err).Int64("chat_id", chatID).Msg("telegram send failed")
		return false
	}
	return true
}

// SendToChatRef resolves a stored chat reference (numeric id as text) and
// sends to it. Unresolvable references count as delivery failure.
func (s *TelegramSink) SendToChatRef(chatRef, text string) bool {
	chatID, err := strconv.ParseInt(chatRef, 10, 64)
	if err != nil {
		s.logger.Warn().Str("chat_ref", chatRef).Msg("telegram chat reference is not numeric")
		return false
	}
	return s.SendHTML(chatID, text)
}
