package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
)

// ResetService wipes study progress while keeping display preferences.
type ResetService struct {
	store  SettingsStore
	logger *zap.Logger
}

func NewResetService(store SettingsStore, logger *zap.Logger) *ResetService {
	return &ResetService{
		store:  store,
		logger: logger,
	}
}

// ResetProgress returns every topic to Pending. It returns the number of
// records that were dropped.
func (s *ResetService) ResetProgress(ctx context.Context) (int, error) {
	var dropped int
	_, err := s.store.Update(ctx, func(state *entities.AppState) {
		dropped = len(state.Progress)
		state.Progress = make(map[int]entities.ProgressRecord)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("progress reset", zap.Int("records", dropped))
	return dropped, nil
}
