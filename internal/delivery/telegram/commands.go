package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
	"github.com/aliskhannn/sermas-study-bot/internal/repository"
)

// topicsHandler shows the topic list, or the search results when a query is given.
func (h *Handler) topicsHandler(query string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		query = strings.TrimSpace(query)

		var (
			text string
			kb   tgbotapi.InlineKeyboardMarkup
		)
		if query == "" {
			text, kb = h.topicListView(0, 0)
		} else {
			text, kb = h.searchView(query)
		}

		msg := newHTMLMessage(chatID, text)
		msg.ReplyMarkup = kb
		h.send(msg)
		return nil
	}
}

// topicHandler opens a topic by its number.
func (h *Handler) topicHandler(arg string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		id, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || id < 1 {
			h.sendError(chatID, msgIncorrectTopicNumber)
			return nil
		}
		return h.sendTopic(chatID, id)
	}
}

// textHandler treats a bare number as a topic number and anything else as a search.
func (h *Handler) textHandler(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil
		}
		if id, err := strconv.Atoi(text); err == nil {
			return h.sendTopic(chatID, id)
		}
		return h.topicsHandler(text)(ctx, chatID)
	}
}

func (h *Handler) sendTopic(chatID int64, id int) error {
	text, kb, err := h.topicView(id, 0)
	if errors.Is(err, repository.ErrTopicNotFound) {
		h.sendError(chatID, msgTopicNotFound)
		return nil
	}
	if err != nil {
		return err
	}

	msg := newHTMLMessage(chatID, text)
	msg.ReplyMarkup = kb
	h.send(msg)
	return nil
}

func (h *Handler) progressHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb := h.dashboardView()
		msg := newHTMLMessage(chatID, text)
		msg.ReplyMarkup = kb
		h.send(msg)
		return nil
	}
}

func (h *Handler) flashcardsHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		v := h.flashcardService.Start()
		msg := newHTMLMessage(chatID, formatFlashcard(v))
		msg.ReplyMarkup = buildFlashcardKeyboard(v)
		h.send(msg)
		return nil
	}
}

func (h *Handler) settingsHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb := h.settingsView()
		msg := newHTMLMessage(chatID, text)
		msg.ReplyMarkup = kb
		h.send(msg)
		return nil
	}
}

func (h *Handler) reportHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.sendReport(chatID)
		return nil
	}
}

// topicListView renders a page of the catalog. category is 0 for all
// topics or the 1-based index into the catalog categories.
func (h *Handler) topicListView(category, page int) (string, tgbotapi.InlineKeyboardMarkup) {
	categories := h.topicService.Categories()
	if category < 0 || category > len(categories) {
		category = 0
	}

	heading := "Temario"
	var filter entities.Category
	if category > 0 {
		filter = categories[category-1]
		heading = string(filter)
	}

	items := h.topicService.Search("", filter)
	page = min(max(page, 0), max(totalPages(len(items), topicsPerPage)-1, 0))

	return formatTopicList(items, heading, page), buildTopicListKeyboard(items, categories, category, page)
}

func (h *Handler) searchView(query string) (string, tgbotapi.InlineKeyboardMarkup) {
	items := h.topicService.Search(query, "")
	heading := fmt.Sprintf("Resultados para «%s»", query)
	return formatTopicList(items, heading, 0), buildSearchKeyboard(items)
}

// topicView renders a topic at subtopic index sub, clamped to the topic.
func (h *Handler) topicView(id, sub int) (string, tgbotapi.InlineKeyboardMarkup, error) {
	t, err := h.topicService.GetContent(id)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}

	sub = min(max(sub, 0), max(len(t.Topic.Subtopics)-1, 0))
	return formatTopicDetail(t, sub), buildTopicKeyboard(t, sub), nil
}

func (h *Handler) dashboardView() (string, tgbotapi.InlineKeyboardMarkup) {
	return formatDashboard(h.printer, h.topicService.Summary()), buildProgressKeyboard()
}

func (h *Handler) settingsView() (string, tgbotapi.InlineKeyboardMarkup) {
	s := h.settingsService.Get()
	return formatSettings(s, h.theme.Current()), buildSettingsKeyboard(s)
}

// sendReport exports the progress report. Failures are reported to the
// user and leave the state untouched.
func (h *Handler) sendReport(chatID int64) {
	doc, err := h.exportService.ProgressReport()
	if err != nil {
		h.logger.Error("failed to export progress report", zap.Error(err))
		h.sendError(chatID, msgExportFailed)
		return
	}
	h.send(newDocument(chatID, doc, "📊 Informe de progreso"))
}

func (h *Handler) sendTopicDocument(chatID int64, id int) {
	doc, err := h.exportService.Topic(id)
	if err != nil {
		h.logger.Error("failed to export topic", zap.Int("topic_id", id), zap.Error(err))
		h.sendError(chatID, msgExportFailed)
		return
	}
	h.send(newDocument(chatID, doc, fmt.Sprintf("📄 Tema %d", id)))
}
