package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
)

// SendReminder delivers the daily reminder and removes the previous one so
// only the latest stays in the chat.
func (h *Handler) SendReminder(chatID int64, payload entities.ReminderPayload) error {
	msg := newHTMLMessage(chatID, formatReminder(h.printer, payload))
	msg.ReplyMarkup = buildReminderKeyboard(payload.NextTopic)

	sent, err := h.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	prev, hadPrev := h.reminderStorage.UpsertAndGetPrev(chatID, sent.MessageID)
	if !hadPrev {
		return nil
	}

	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(prev.ChatID, prev.MessageID)); err != nil {
		h.logger.Debug("failed to delete previous reminder",
			zap.Int("message_id", prev.MessageID),
			zap.Error(err),
		)
	}
	return nil
}
