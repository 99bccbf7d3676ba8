package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
	"github.com/aliskhannn/sermas-study-bot/internal/domain/flashcard"
)

var ErrSessionNotFound = errors.New("flashcard session not found")

type CatalogReader interface {
	GetAll() []entities.Topic
}

type SessionStorage interface {
	Store(sessionID string, session *flashcard.Session)
	Get(sessionID string) (*flashcard.Session, bool)
	Delete(sessionID string)
}

// FlashcardView is what the presentation layer shows for a session.
type FlashcardView struct {
	SessionID string
	State     flashcard.State
	Face      entities.Face
	Position  int // 1-based position of the current card
	Total     int
	Card      entities.Flashcard
}

// FlashcardService runs flashcard review sessions over the catalog.
// Only one session is live at a time: starting a new one drops the previous.
type FlashcardService struct {
	catalog  CatalogReader
	progress flashcard.ProgressUpdater
	sessions SessionStorage
	opts     flashcard.BuildOptions
	logger   *zap.Logger

	mu      sync.Mutex
	current string
	rng     *rand.Rand
}

func NewFlashcardService(
	catalog CatalogReader,
	progress flashcard.ProgressUpdater,
	sessions SessionStorage,
	opts flashcard.BuildOptions,
	logger *zap.Logger,
) *FlashcardService {
	return &FlashcardService{
		catalog:  catalog,
		progress: progress,
		sessions: sessions,
		opts:     opts,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand replaces the shuffle source.
func (s *FlashcardService) WithRand(rng *rand.Rand) *FlashcardService {
	s.rng = rng
	return s
}

// Start builds a fresh session from the catalog.
func (s *FlashcardService) Start() FlashcardView {
	cards := flashcard.Build(s.catalog.GetAll(), s.opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != "" {
		s.sessions.Delete(s.current)
	}

	id := uuid.NewString()
	session := flashcard.NewSession(cards, s.rng)
	s.sessions.Store(id, session)
	s.current = id

	s.logger.Info("flashcard session started",
		zap.String("session_id", id),
		zap.Int("cards", session.Len()),
	)

	return view(id, session)
}

// Flip turns the current card of a session over.
func (s *FlashcardService) Flip(sessionID string) (FlashcardView, error) {
	return s.apply(sessionID, func(session *flashcard.Session) error {
		return session.Flip()
	})
}

// Answer records whether the current card was remembered.
func (s *FlashcardService) Answer(ctx context.Context, sessionID string, remembered bool) (FlashcardView, error) {
	return s.apply(sessionID, func(session *flashcard.Session) error {
		return session.Answer(ctx, remembered, s.progress)
	})
}

// Restart reshuffles a session and starts it over.
func (s *FlashcardService) Restart(sessionID string) (FlashcardView, error) {
	return s.apply(sessionID, func(session *flashcard.Session) error {
		session.Restart()
		return nil
	})
}

func (s *FlashcardService) apply(sessionID string, fn func(session *flashcard.Session) error) (FlashcardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return FlashcardView{}, ErrSessionNotFound
	}

	if err := fn(session); err != nil {
		return view(sessionID, session), err
	}
	return view(sessionID, session), nil
}

func view(id string, session *flashcard.Session) FlashcardView {
	v := FlashcardView{
		SessionID: id,
		State:     session.State(),
		Face:      session.Face(),
		Position:  session.Cursor() + 1,
		Total:     session.Len(),
	}
	if card, ok := session.Current(); ok {
		v.Card = card
	}
	return v
}
