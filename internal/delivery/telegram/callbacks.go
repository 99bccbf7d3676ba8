package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/flashcard"
	"github.com/aliskhannn/sermas-study-bot/internal/repository"
	"github.com/aliskhannn/sermas-study-bot/internal/service"
)

// callbackResult is what a callback wants shown: an edited view, a toast or both.
type callbackResult struct {
	text   string
	kb     *tgbotapi.InlineKeyboardMarkup
	notice string
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := decodeCallback(cb.Data)
	chatID := cb.Message.Chat.ID

	var (
		res callbackResult
		err error
	)

	switch data.Action {
	case actionList:
		res, err = h.handleListCallback(data)
	case actionTopic:
		res, err = h.handleTopicCallback(data)
	case actionToggle:
		res, err = h.handleToggleCallback(ctx, data)
	case actionExport:
		res, err = h.handleExportCallback(chatID, data)
	case actionFlashcard:
		res, err = h.handleFlashcardCallback(ctx, data)
	case actionSettings:
		res, err = h.handleSettingsCallback(ctx, data)
	case actionProgress:
		text, kb := h.dashboardView()
		res = callbackResult{text: text, kb: &kb}
	case actionReport:
		h.sendReport(chatID)
	case actionReset:
		res, err = h.handleResetCallback(ctx, data)
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
		res.notice = msgActionUnavailable
	}

	if err != nil {
		h.logger.Error("callback failed",
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		res = callbackResult{notice: callbackErrorNotice(err)}
	}

	if res.text != "" {
		h.send(newHTMLEdit(chatID, cb.Message.MessageID, res.text, res.kb))
	}

	// Remove the user's "clock".
	answer := tgbotapi.NewCallback(cb.ID, res.notice)
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

func callbackErrorNotice(err error) string {
	switch {
	case errors.Is(err, errMalformedCallback), errors.Is(err, flashcard.ErrInvalidTransition):
		return msgActionUnavailable
	case errors.Is(err, repository.ErrTopicNotFound):
		return msgTopicNotFound
	case errors.Is(err, service.ErrSessionNotFound):
		return msgSessionExpired
	default:
		return msgSaveFailed
	}
}

func (h *Handler) handleListCallback(data callbackData) (callbackResult, error) {
	category, err := data.intParam(0)
	if err != nil {
		return callbackResult{}, err
	}
	page, err := data.intParam(1)
	if err != nil {
		return callbackResult{}, err
	}

	text, kb := h.topicListView(category, page)
	return callbackResult{text: text, kb: &kb}, nil
}

func (h *Handler) handleTopicCallback(data callbackData) (callbackResult, error) {
	id, err := data.intParam(0)
	if err != nil {
		return callbackResult{}, err
	}
	sub, err := data.intParam(1)
	if err != nil {
		return callbackResult{}, err
	}

	text, kb, err := h.topicView(id, sub)
	if err != nil {
		return callbackResult{}, err
	}
	return callbackResult{text: text, kb: &kb}, nil
}

func (h *Handler) handleToggleCallback(ctx context.Context, data callbackData) (callbackResult, error) {
	id, err := data.intParam(0)
	if err != nil {
		return callbackResult{}, err
	}
	sub, err := data.intParam(1)
	if err != nil {
		return callbackResult{}, err
	}

	rec, err := h.topicService.ToggleStudied(ctx, id)
	if err != nil {
		return callbackResult{}, err
	}

	text, kb, err := h.topicView(id, sub)
	if err != nil {
		return callbackResult{}, err
	}
	return callbackResult{
		text:   text,
		kb:     &kb,
		notice: statusIcon(rec.Status) + " " + statusNotice(rec),
	}, nil
}

func (h *Handler) handleExportCallback(chatID int64, data callbackData) (callbackResult, error) {
	id, err := data.intParam(0)
	if err != nil {
		return callbackResult{}, err
	}
	h.sendTopicDocument(chatID, id)
	return callbackResult{}, nil
}

func (h *Handler) handleFlashcardCallback(ctx context.Context, data callbackData) (callbackResult, error) {
	var (
		v   service.FlashcardView
		err error
	)

	sessionID := data.param(1)
	switch data.param(0) {
	case flashcardNew:
		v = h.flashcardService.Start()
	case flashcardFlip:
		v, err = h.flashcardService.Flip(sessionID)
	case flashcardEasy:
		v, err = h.flashcardService.Answer(ctx, sessionID, true)
	case flashcardHard:
		v, err = h.flashcardService.Answer(ctx, sessionID, false)
	case flashcardRestart:
		v, err = h.flashcardService.Restart(sessionID)
	default:
		return callbackResult{}, errMalformedCallback
	}
	if err != nil {
		return callbackResult{}, err
	}

	kb := buildFlashcardKeyboard(v)
	return callbackResult{text: formatFlashcard(v), kb: &kb}, nil
}

func (h *Handler) handleSettingsCallback(ctx context.Context, data callbackData) (callbackResult, error) {
	switch data.param(0) {
	case settingsMenu:
	case settingsDark:
		if _, err := h.settingsService.ToggleDarkMode(ctx); err != nil {
			return callbackResult{}, err
		}
	case settingsText:
		delta, err := data.intParam(1)
		if err != nil {
			return callbackResult{}, err
		}
		if _, err := h.settingsService.StepTextSize(ctx, delta); err != nil {
			return callbackResult{}, err
		}
	default:
		return callbackResult{}, errMalformedCallback
	}

	text, kb := h.settingsView()
	return callbackResult{text: text, kb: &kb}, nil
}

func (h *Handler) handleResetCallback(ctx context.Context, data callbackData) (callbackResult, error) {
	switch data.param(0) {
	case resetCancel:
		return callbackResult{text: msgResetCancel}, nil
	case resetConfirm:
		dropped, err := h.resetService.ResetProgress(ctx)
		if err != nil {
			return callbackResult{}, err
		}
		return callbackResult{text: fmt.Sprintf(msgResetDone, dropped)}, nil
	default:
		return callbackResult{}, errMalformedCallback
	}
}
