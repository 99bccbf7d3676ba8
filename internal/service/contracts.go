package service

import (
	"context"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
	"github.com/aliskhannn/sermas-study-bot/internal/theme"
)

// StateRepository is the durable slot the application state lives in.
type StateRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// ThemeApplier switches the display theme.
type ThemeApplier interface {
	Apply(dark bool)
}

// ThemeReader reports the active display theme.
type ThemeReader interface {
	Current() theme.Theme
}

// StateReader gives read-only access to the application state.
type StateReader interface {
	Snapshot() entities.AppState
}

// ReminderNotifier delivers reminders to the owner.
type ReminderNotifier interface {
	SendReminder(chatID int64, payload entities.ReminderPayload) error
}
