package service

import (
	"context"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
)

// SettingsStore is the part of the progress store settings are kept in.
type SettingsStore interface {
	Snapshot() entities.AppState
	Update(ctx context.Context, fn func(state *entities.AppState)) (entities.AppState, error)
}

// Settings is the view of the display preferences.
type Settings struct {
	DarkMode bool
	TextSize int
}

type SettingsService struct {
	store SettingsStore
}

func NewSettingsService(store SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Get() Settings {
	state := s.store.Snapshot()
	return Settings{
		DarkMode: state.DarkMode,
		TextSize: state.TextSize,
	}
}

// ToggleDarkMode flips the dark mode preference and returns the new value.
func (s *SettingsService) ToggleDarkMode(ctx context.Context) (bool, error) {
	state, err := s.store.Update(ctx, func(state *entities.AppState) {
		state.DarkMode = !state.DarkMode
	})
	if err != nil {
		return false, err
	}
	return state.DarkMode, nil
}

// SetTextSize validates and stores the reading text size.
func (s *SettingsService) SetTextSize(ctx context.Context, size int) error {
	if err := entities.ValidateTextSize(size); err != nil {
		return err
	}

	_, err := s.store.Update(ctx, func(state *entities.AppState) {
		state.TextSize = size
	})
	return err
}

// StepTextSize moves the text size by delta steps, stopping at the bounds.
func (s *SettingsService) StepTextSize(ctx context.Context, delta int) (int, error) {
	size := s.Get().TextSize + delta*entities.TextSizeStep
	size = min(max(size, entities.MinTextSize), entities.MaxTextSize)

	if err := s.SetTextSize(ctx, size); err != nil {
		return 0, err
	}
	return size, nil
}
