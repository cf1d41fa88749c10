package api

import (
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleTelegramWebhook feeds webhook updates into the same command
// interpreter the polling loop uses. Telegram retries on non-2xx, so every
// parseable update is acknowledged even when handling is skipped.
func (s *HTTPServer) handleTelegramWebhook(w http.ResponseWriter, r *http.Request) {
	if s.chat == nil {
		writeError(w, http.StatusServiceUnavailable, "bot is not configured")
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid update")
		return
	}

	if update.Message != nil && update.Message.Chat != nil && update.Message.Text != "" {
		s.chat.HandleMessage(r.Context(), update.Message.Chat.ID, update.Message.Text)
	}

	w.WriteHeader(http.StatusOK)
}
