package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
	"github.com/aliskhannn/sermas-study-bot/internal/domain/policy"
)

var ErrNotifierNotSet = errors.New("reminder notifier not set")

// ReminderService sends the owner a daily study summary. It never writes
// to the progress store.
type ReminderService struct {
	state    StateReader
	catalog  CatalogReader
	notifier ReminderNotifier
	chatID   int64
	schedule string
	location *time.Location
	logger   *zap.Logger
}

// NewReminderService creates a new reminder service.
func NewReminderService(
	state StateReader,
	catalog CatalogReader,
	chatID int64,
	schedule string,
	location *time.Location,
	logger *zap.Logger,
) *ReminderService {
	if location == nil {
		location = time.UTC
	}
	return &ReminderService{
		state:    state,
		catalog:  catalog,
		chatID:   chatID,
		schedule: schedule,
		location: location,
		logger:   logger,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the reminder schedule until ctx is cancelled.
func (s *ReminderService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.location))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Info("cron triggered: sending daily reminder")
		if err := s.Send(); err != nil {
			s.logger.Error("failed to send daily reminder", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("reminder service started",
		zap.String("schedule", s.schedule),
		zap.String("timezone", s.location.String()),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")
	return nil
}

// Send delivers one reminder built from the current state.
func (s *ReminderService) Send() error {
	if s.notifier == nil {
		return ErrNotifierNotSet
	}

	payload := s.Payload()
	if err := s.notifier.SendReminder(s.chatID, payload); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	fields := []zap.Field{zap.Int("mastered", payload.Stats.Mastered), zap.Int("total", payload.Stats.Total)}
	if payload.NextTopic != nil {
		fields = append(fields, zap.Int("next_topic_id", payload.NextTopic.ID))
	}
	s.logger.Info("reminder sent", fields...)

	return nil
}

// Payload builds the reminder contents: progress counts and the first
// pending topic in catalog order.
func (s *ReminderService) Payload() entities.ReminderPayload {
	state := s.state.Snapshot()
	topics := s.catalog.GetAll()
	summary := policy.Summarize(state, topics)

	payload := entities.ReminderPayload{
		Stats: entities.ReminderStats{
			Total:      summary.Total,
			Mastered:   summary.Counts.Mastered,
			InReview:   summary.Counts.InReview,
			Pending:    summary.Counts.Pending,
			Completion: summary.Completion,
		},
	}
	if next, ok := policy.FirstPending(state, topics); ok {
		payload.NextTopic = &next
	}
	return payload
}
