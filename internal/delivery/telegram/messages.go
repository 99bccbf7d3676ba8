// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/message"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
	"github.com/aliskhannn/sermas-study-bot/internal/domain/flashcard"
	"github.com/aliskhannn/sermas-study-bot/internal/domain/policy"
	"github.com/aliskhannn/sermas-study-bot/internal/export"
	"github.com/aliskhannn/sermas-study-bot/internal/service"
	"github.com/aliskhannn/sermas-study-bot/internal/theme"
)

// Error messages.
const (
	msgIncorrectTopicNumber = "Número de tema no válido. Ejemplo: /tema 3"
	msgTopicNotFound        = "No existe ese tema en el temario."
	msgNoSearchResults      = "No hay temas que coincidan con la búsqueda."
	msgSessionExpired       = "La sesión de tarjetas ha caducado. Usa /tarjetas para empezar otra."
	msgActionUnavailable    = "Acción no disponible."
	msgExportFailed         = "No se pudo generar el documento. Inténtalo de nuevo."
	msgSaveFailed           = "No se pudo guardar el progreso. Inténtalo de nuevo."
	msgInternalError        = "Algo ha ido mal. Inténtalo más tarde."
	msgUnknownCommand       = "Comando desconocido.\n\n" + msgCommandList
)

const msgCommandList = "/temas — temario completo (o /temas texto para buscar)\n" +
	"/tema N — abrir un tema\n" +
	"/progreso — panel de progreso\n" +
	"/tarjetas — repasar con tarjetas\n" +
	"/ajustes — modo oscuro y tamaño de texto\n" +
	"/informe — descargar el informe de progreso\n" +
	"/reiniciar — borrar el progreso"

const (
	msgResetConfirm = "<b>⚠️ Reiniciar progreso</b>\n\nTodos los temas volverán a estar pendientes. Los ajustes se mantienen.\n\n¿Continuar?"
	msgResetCancel  = "Reinicio cancelado. Tu progreso sigue intacto."
	msgResetDone    = "🗑 Progreso reiniciado. Se han borrado %d registros."
)

const msgWelcome = "<b>📚 OPE SERMAS · Estudio</b>\n\n" +
	"Prepara los 31 temas de Auxiliar Administrativo del Servicio Madrileño de Salud.\n\n" +
	"Marca los temas estudiados, repasa con tarjetas y descarga cada tema en un documento.\n\n" +
	msgCommandList

const (
	topicsPerPage   = 8
	maxMessageRunes = 3500
)

// statusIcon is the marker shown next to a topic in lists.
func statusIcon(s entities.Status) string {
	switch s {
	case entities.StatusMastered:
		return "✅"
	case entities.StatusInReview:
		return "🔄"
	default:
		return "⏳"
	}
}

// formatTopicList renders one page of topics. items is already filtered.
func formatTopicList(items []service.TopicWithProgress, heading string, page int) string {
	var sb strings.Builder
	sb.WriteString("<b>📚 " + html.EscapeString(heading) + "</b>\n\n")

	if len(items) == 0 {
		sb.WriteString(msgNoSearchResults)
		return sb.String()
	}

	for _, it := range paginate(items, page, topicsPerPage) {
		fmt.Fprintf(&sb, "%s <b>%d.</b> %s\n",
			statusIcon(it.Progress.Status),
			it.Topic.ID,
			html.EscapeString(it.Topic.Title),
		)
	}

	if pages := totalPages(len(items), topicsPerPage); pages > 1 {
		fmt.Fprintf(&sb, "\nPágina %d de %d", page+1, pages)
	}
	return sb.String()
}

// formatTopicDetail renders the topic header and the subtopic at index sub.
func formatTopicDetail(t service.TopicWithProgress, sub int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<b>Tema %d. %s</b>\n", t.Topic.ID, html.EscapeString(t.Topic.Title))
	fmt.Fprintf(&sb, "<i>%s</i>\n", html.EscapeString(string(t.Topic.Category)))
	fmt.Fprintf(&sb, "%s %s · Repasos: %d",
		statusIcon(t.Progress.Status),
		export.StatusLabel(t.Progress.Status),
		t.Progress.TimesReviewed,
	)
	if t.Progress.LastStudied != nil {
		fmt.Fprintf(&sb, " · Último estudio: %s", t.Progress.LastStudied.Format("02/01/2006 15:04"))
	}
	sb.WriteString("\n\n")

	if sub < 0 || sub >= len(t.Topic.Subtopics) {
		return sb.String()
	}

	s := t.Topic.Subtopics[sub]
	fmt.Fprintf(&sb, "<b>%s %s</b> <i>(apartado %d de %d)</i>\n\n",
		html.EscapeString(s.ID),
		html.EscapeString(s.Title),
		sub+1,
		len(t.Topic.Subtopics),
	)
	sb.WriteString(renderMarkdown(truncateRunes(s.Content, maxMessageRunes)))

	return sb.String()
}

// formatDashboard renders the progress dashboard. Numbers go through the
// printer so they use the Spanish decimal separator.
func formatDashboard(p *message.Printer, s policy.Summary) string {
	var sb strings.Builder

	sb.WriteString("<b>📊 Panel de progreso</b>\n\n")
	sb.WriteString(buildProgressBar(s.Counts.Mastered, s.Total, 20))
	sb.WriteString("\n\n")

	sb.WriteString(p.Sprintf("✅ <b>Estudiados:</b> %d / %d\n", s.Counts.Mastered, s.Total))
	sb.WriteString(p.Sprintf("🔄 <b>En repaso:</b> %d\n", s.Counts.InReview))
	sb.WriteString(p.Sprintf("⏳ <b>Pendientes:</b> %d\n", s.Counts.Pending))
	sb.WriteString(p.Sprintf("🎯 <b>Completado:</b> %.1f %%\n", s.Completion*100))

	if len(s.Categories) > 0 {
		sb.WriteString("\n<b>Por categoría</b>\n")
		for _, c := range s.Categories {
			sb.WriteString(p.Sprintf("• %s: %d / %d\n", html.EscapeString(string(c.Category)), c.Completed, c.Total))
		}
	}

	return sb.String()
}

// formatFlashcard renders the visible side of the current card.
func formatFlashcard(v service.FlashcardView) string {
	switch v.State {
	case flashcard.StateEmpty:
		return "<b>🃏 Tarjetas</b>\n\nNo hay tarjetas disponibles en el temario."
	case flashcard.StateComplete:
		return fmt.Sprintf("<b>🃏 Tarjetas</b>\n\n🎉 ¡Sesión completada! Has repasado %d tarjetas.", v.Total)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>🃏 Tarjetas</b> · %d/%d\n\n", v.Position, v.Total)
	fmt.Fprintf(&sb, "<b>Pregunta</b>\n%s", html.EscapeString(v.Card.Question))
	if v.Face == entities.FaceAnswer {
		fmt.Fprintf(&sb, "\n\n<b>Respuesta</b>\n%s", html.EscapeString(v.Card.Answer))
	}
	return sb.String()
}

// formatSettings renders the settings screen.
func formatSettings(s service.Settings, current theme.Theme) string {
	dark := "Desactivado"
	icon := "☀️"
	if s.DarkMode {
		dark = "Activado"
	}
	if current == theme.Dark {
		icon = "🌙"
	}

	return fmt.Sprintf(
		"<b>⚙️ Ajustes</b>\n\n"+
			"%s <b>Modo oscuro:</b> %s\n"+
			"🔠 <b>Tamaño de texto:</b> %d %%\n\n"+
			"<i>El tema y el tamaño se aplican a los documentos descargados.</i>",
		icon,
		dark,
		s.TextSize,
	)
}

// formatReminder renders the daily study reminder.
func formatReminder(p *message.Printer, payload entities.ReminderPayload) string {
	var sb strings.Builder

	sb.WriteString("<b>⏰ Hora de estudiar</b>\n\n")
	sb.WriteString(p.Sprintf("Llevas %d de %d temas estudiados (%.1f %%).\n",
		payload.Stats.Mastered,
		payload.Stats.Total,
		payload.Stats.Completion*100,
	))
	if payload.Stats.InReview > 0 {
		sb.WriteString(p.Sprintf("Tienes %d temas en repaso.\n", payload.Stats.InReview))
	}

	if payload.NextTopic == nil {
		sb.WriteString("\n¡No quedan temas pendientes! Repasa con /tarjetas.")
		return sb.String()
	}

	fmt.Fprintf(&sb, "\n<b>Siguiente tema:</b> %d. %s",
		payload.NextTopic.ID,
		html.EscapeString(payload.NextTopic.Title),
	)
	return sb.String()
}

// buildProgressBar creates ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := int(float64(current) / float64(total) * float64(length))
	filled = min(filled, length)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
	return fmt.Sprintf("[%s]", bar)
}

func totalPages(n, perPage int) int {
	return (n + perPage - 1) / perPage
}

func paginate[T any](items []T, page, perPage int) []T {
	start := page * perPage
	if page < 0 || start >= len(items) {
		return nil
	}
	end := min(start+perPage, len(items))
	return items[start:end]
}

// statusNotice is the toast shown after a topic changes status.
func statusNotice(rec entities.ProgressRecord) string {
	return "Tema marcado como " + strings.ToLower(export.StatusLabel(rec.Status))
}
