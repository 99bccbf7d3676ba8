package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Handler struct {
	bot              Bot
	ownerChatID      int64
	logger           *zap.Logger
	topicService     TopicService
	flashcardService FlashcardService
	settingsService  SettingsService
	exportService    ExportService
	resetService     ResetService
	reminderStorage  ReminderStorage
	theme            ThemeReader
	printer          *message.Printer
}

func NewHandler(
	bot Bot,
	ownerChatID int64,
	logger *zap.Logger,
	topicService TopicService,
	flashcardService FlashcardService,
	settingsService SettingsService,
	exportService ExportService,
	resetService ResetService,
	reminderStorage ReminderStorage,
	theme ThemeReader,
) *Handler {
	return &Handler{
		bot:              bot,
		ownerChatID:      ownerChatID,
		logger:           logger,
		topicService:     topicService,
		flashcardService: flashcardService,
		settingsService:  settingsService,
		exportService:    exportService,
		resetService:     resetService,
		reminderStorage:  reminderStorage,
		theme:            theme,
		printer:          message.NewPrinter(language.Spanish),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		cb := update.CallbackQuery
		if cb.Message == nil || !h.isOwner(cb.Message.Chat.ID) {
			return
		}
		h.logger.Debug("callback received",
			zap.Int64("chat_id", cb.Message.Chat.ID),
			zap.String("data", cb.Data),
		)
		h.handleCallback(ctx, cb)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	if !h.isOwner(chatID) {
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if update.Message.IsCommand() {
		args := update.Message.CommandArguments()

		switch update.Message.Command() {
		case "start", "help":
			h.send(newHTMLMessage(chatID, msgWelcome))

		case "temas":
			_ = h.withErrorHandling(h.topicsHandler(args))(ctx, chatID)

		case "tema":
			_ = h.withErrorHandling(h.topicHandler(args))(ctx, chatID)

		case "progreso":
			_ = h.withErrorHandling(h.progressHandler())(ctx, chatID)

		case "tarjetas":
			_ = h.withErrorHandling(h.flashcardsHandler())(ctx, chatID)

		case "ajustes":
			_ = h.withErrorHandling(h.settingsHandler())(ctx, chatID)

		case "informe":
			_ = h.withErrorHandling(h.reportHandler())(ctx, chatID)

		case "reiniciar":
			msg := newHTMLMessage(chatID, msgResetConfirm)
			msg.ReplyMarkup = buildResetKeyboard()
			h.send(msg)

		default:
			h.send(newHTMLMessage(chatID, msgUnknownCommand))
		}

		return
	}

	_ = h.withErrorHandling(h.textHandler(update.Message.Text))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newHTMLMessage(chatID, err)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
