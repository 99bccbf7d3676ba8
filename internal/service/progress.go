package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
	"github.com/aliskhannn/sermas-study-bot/internal/infra/sqlite/repository"
)

// ProgressStore owns the application state and keeps it durable.
// All mutations go through it; other components only get snapshots.
type ProgressStore struct {
	repository StateRepository
	theme      ThemeApplier
	logger     *zap.Logger
	now        func() time.Time

	mu    sync.Mutex
	state entities.AppState
}

func NewProgressStore(repository StateRepository, theme ThemeApplier, logger *zap.Logger) *ProgressStore {
	return &ProgressStore{
		repository: repository,
		theme:      theme,
		logger:     logger,
		now:        time.Now,
		state:      entities.DefaultAppState(),
	}
}

// WithClock replaces the time source used for lastStudied.
func (s *ProgressStore) WithClock(now func() time.Time) *ProgressStore {
	s.now = now
	return s
}

// Load reads the persisted state and makes it current. An absent or
// unreadable payload yields the default state; Load never fails.
func (s *ProgressStore) Load(ctx context.Context) entities.AppState {
	state := s.read(ctx)

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	s.theme.Apply(state.DarkMode)
	return state.Clone()
}

func (s *ProgressStore) read(ctx context.Context) entities.AppState {
	data, err := s.repository.Get(ctx, repository.AppStateKey)
	if err != nil {
		if !errors.Is(err, repository.ErrStateNotFound) {
			s.logger.Warn("failed to read persisted state, using defaults", zap.Error(err))
		}
		return entities.DefaultAppState()
	}

	state, err := decodeState(data)
	if err != nil {
		s.logger.Warn("persisted state is corrupt, using defaults", zap.Error(err))
		return entities.DefaultAppState()
	}

	return state
}

// decodeState parses a persisted payload. Fields missing from the payload
// keep their default values.
func decodeState(data []byte) (entities.AppState, error) {
	if len(data) == 0 {
		return entities.DefaultAppState(), nil
	}

	state := entities.DefaultAppState()
	if err := json.Unmarshal(data, &state); err != nil {
		return entities.AppState{}, err
	}

	if state.Progress == nil {
		state.Progress = make(map[int]entities.ProgressRecord)
	}
	for id, rec := range state.Progress {
		if rec.TimesReviewed < 0 {
			return entities.AppState{}, fmt.Errorf("topic %d: negative review count %d", id, rec.TimesReviewed)
		}
		rec.TopicID = id
		state.Progress[id] = rec
	}

	return state, nil
}

// Save persists the full state and makes it current. The in-memory state
// only changes once the write has succeeded. Saving also switches the
// display theme to match DarkMode.
func (s *ProgressStore) Save(ctx context.Context, state entities.AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(ctx, state)
}

func (s *ProgressStore) saveLocked(ctx context.Context, state entities.AppState) error {
	state = state.Clone()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := s.repository.Put(ctx, repository.AppStateKey, data); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	s.state = state
	s.theme.Apply(state.DarkMode)
	return nil
}

// Get returns the progress of a topic. Topics never studied get the
// implicit Pending record.
func (s *ProgressStore) Get(topicID int) entities.ProgressRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.state.Effective(topicID)
	if rec.LastStudied != nil {
		t := *rec.LastStudied
		rec.LastStudied = &t
	}
	return rec
}

// SetStatus records a study update for a topic and persists it.
func (s *ProgressStore) SetStatus(ctx context.Context, topicID int, status entities.Status) (entities.ProgressRecord, error) {
	if !status.Valid() {
		return entities.ProgressRecord{}, fmt.Errorf("%w: %d", entities.ErrInvalidStatus, int(status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	rec := next.Effective(topicID).WithStatus(status, s.now().UTC())
	next.Progress[topicID] = rec

	if err := s.saveLocked(ctx, next); err != nil {
		return entities.ProgressRecord{}, err
	}

	s.logger.Debug("topic status updated",
		zap.Int("topic_id", topicID),
		zap.Stringer("status", status),
		zap.Int("times_reviewed", rec.TimesReviewed),
	)

	return rec, nil
}

// Update applies fn to a copy of the current state and saves the result.
func (s *ProgressStore) Update(ctx context.Context, fn func(state *entities.AppState)) (entities.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	fn(&next)

	if err := s.saveLocked(ctx, next); err != nil {
		return entities.AppState{}, err
	}
	return next.Clone(), nil
}

// Snapshot returns a copy of the current state.
func (s *ProgressStore) Snapshot() entities.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}
