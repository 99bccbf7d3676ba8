package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
	"github.com/aliskhannn/sermas-study-bot/internal/domain/policy"
	"github.com/aliskhannn/sermas-study-bot/internal/service"
	"github.com/aliskhannn/sermas-study-bot/internal/storage"
	"github.com/aliskhannn/sermas-study-bot/internal/theme"
)

// Bot is the part of the Telegram API the handler talks to.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type TopicService interface {
	Search(query string, category entities.Category) []service.TopicWithProgress
	GetContent(id int) (service.TopicWithProgress, error)
	ToggleStudied(ctx context.Context, id int) (entities.ProgressRecord, error)
	Summary() policy.Summary
	Categories() []entities.Category
}

type FlashcardService interface {
	Start() service.FlashcardView
	Flip(sessionID string) (service.FlashcardView, error)
	Answer(ctx context.Context, sessionID string, remembered bool) (service.FlashcardView, error)
	Restart(sessionID string) (service.FlashcardView, error)
}

type SettingsService interface {
	Get() service.Settings
	ToggleDarkMode(ctx context.Context) (bool, error)
	StepTextSize(ctx context.Context, delta int) (int, error)
}

type ExportService interface {
	Topic(id int) (service.Document, error)
	ProgressReport() (service.Document, error)
}

type ResetService interface {
	ResetProgress(ctx context.Context) (int, error)
}

type ReminderStorage interface {
	UpsertAndGetPrev(chatID int64, messageID int) (prev storage.ReminderMessage, hadPrev bool)
}

type ThemeReader interface {
	Current() theme.Theme
}
