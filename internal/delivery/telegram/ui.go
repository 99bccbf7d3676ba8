package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
	"github.com/aliskhannn/sermas-study-bot/internal/domain/flashcard"
	"github.com/aliskhannn/sermas-study-bot/internal/service"
)

const buttonTitleRunes = 40

// buildPageRow builds the previous/next row of a paginated view.
func buildPageRow(page, totalPages int, prevData, nextData string) []tgbotapi.InlineKeyboardButton {
	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("◀️ Anterior", prevData))
	}
	if page < totalPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Siguiente ▶️", nextData))
	}
	return row
}

// buildCategoryRow builds the category filter. selected is 0 for all topics
// or the 1-based index of the category.
func buildCategoryRow(categories []entities.Category, selected int) []tgbotapi.InlineKeyboardButton {
	label := func(text string, idx int) string {
		if idx == selected {
			return "• " + text
		}
		return text
	}

	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData(label("Todos", 0), buildListCallback(0, 0)),
	}
	for i, c := range categories {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label(c.Short(), i+1), buildListCallback(i+1, 0)))
	}
	return row
}

// buildTopicButtons adds one button per topic.
func buildTopicButtons(items []service.TopicWithProgress) [][]tgbotapi.InlineKeyboardButton {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items))
	for _, it := range items {
		text := fmt.Sprintf("%s %d. %s", statusIcon(it.Progress.Status), it.Topic.ID, truncateRunes(it.Topic.Title, buttonTitleRunes))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(text, buildTopicCallback(it.Topic.ID, 0)),
		))
	}
	return rows
}

// buildTopicListKeyboard builds keyboard for one page of the topic list.
func buildTopicListKeyboard(items []service.TopicWithProgress, categories []entities.Category, selected, page int) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{buildCategoryRow(categories, selected)}
	rows = append(rows, buildTopicButtons(paginate(items, page, topicsPerPage))...)

	pages := totalPages(len(items), topicsPerPage)
	if nav := buildPageRow(page, pages, buildListCallback(selected, page-1), buildListCallback(selected, page+1)); len(nav) > 0 {
		rows = append(rows, nav)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildTopicKeyboard builds keyboard for the topic detail view.
func buildTopicKeyboard(t service.TopicWithProgress, sub int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	id := t.Topic.ID
	if nav := buildPageRow(sub, len(t.Topic.Subtopics), buildTopicCallback(id, sub-1), buildTopicCallback(id, sub+1)); len(nav) > 0 {
		rows = append(rows, nav)
	}

	toggle := "✅ Marcar como estudiado"
	if t.Progress.Status == entities.StatusMastered {
		toggle = "↩️ Marcar como pendiente"
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(toggle, buildToggleCallback(id, sub)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Descargar tema", buildExportCallback(id)),
			tgbotapi.NewInlineKeyboardButtonData("« Temario", buildListCallback(0, (id-1)/topicsPerPage)),
		),
	)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildProgressKeyboard builds keyboard for progress screen.
func buildProgressKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Actualizar", buildProgressCallback()),
			tgbotapi.NewInlineKeyboardButtonData("📥 Informe", buildReportCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🃏 Tarjetas", buildFlashcardCallback(flashcardNew, "")),
			tgbotapi.NewInlineKeyboardButtonData("📚 Temario", buildListCallback(0, 0)),
		),
	)
}

// buildFlashcardKeyboard builds keyboard for the current flashcard state.
func buildFlashcardKeyboard(v service.FlashcardView) tgbotapi.InlineKeyboardMarkup {
	switch v.State {
	case flashcard.StateEmpty:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📚 Temario", buildListCallback(0, 0)),
			),
		)
	case flashcard.StateComplete:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔄 Repetir", buildFlashcardCallback(flashcardRestart, v.SessionID)),
				tgbotapi.NewInlineKeyboardButtonData("🆕 Nueva sesión", buildFlashcardCallback(flashcardNew, "")),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📊 Mi progreso", buildProgressCallback()),
			),
		)
	}

	if v.Face == entities.FaceQuestion {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔁 Ver respuesta", buildFlashcardCallback(flashcardFlip, v.SessionID)),
			),
		)
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("😊 Fácil", buildFlashcardCallback(flashcardEasy, v.SessionID)),
			tgbotapi.NewInlineKeyboardButtonData("😓 Difícil", buildFlashcardCallback(flashcardHard, v.SessionID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Ver pregunta", buildFlashcardCallback(flashcardFlip, v.SessionID)),
		),
	)
}

// buildSettingsKeyboard builds main settings keyboard.
func buildSettingsKeyboard(s service.Settings) tgbotapi.InlineKeyboardMarkup {
	dark := "🌙 Activar modo oscuro"
	if s.DarkMode {
		dark = "☀️ Desactivar modo oscuro"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(dark, buildSettingsCallback(settingsDark)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("A−", buildSettingsCallback(settingsText, "-1")),
			tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(s.TextSize)+" %", buildSettingsCallback(settingsMenu)),
			tgbotapi.NewInlineKeyboardButtonData("A+", buildSettingsCallback(settingsText, "1")),
		),
	)
}

// buildResetKeyboard asks for confirmation before wiping progress.
func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Sí, reiniciar", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Cancelar", buildResetCancelCallback()),
		),
	)
}

// buildReminderKeyboard builds keyboard attached to the daily reminder.
func buildReminderKeyboard(next *entities.Topic) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if next != nil {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("📖 Estudiar tema %d", next.ID), buildTopicCallback(next.ID, 0)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🃏 Tarjetas", buildFlashcardCallback(flashcardNew, "")),
		tgbotapi.NewInlineKeyboardButtonData("📊 Progreso", buildProgressCallback()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildSearchKeyboard lists every search result with a way back to the full list.
func buildSearchKeyboard(items []service.TopicWithProgress) tgbotapi.InlineKeyboardMarkup {
	rows := buildTopicButtons(items)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Temario", buildListCallback(0, 0)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
