package flashcard

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
	"github.com/aliskhannn/sermas-study-bot/internal/domain/policy"
)

// ErrInvalidTransition is returned when an operation is not allowed in the
// current session state.
var ErrInvalidTransition = errors.New("invalid flashcard session transition")

// State is the lifecycle state of a session.
type State int

const (
	StateEmpty    State = iota // no cards loaded
	StateActive                // a card is on screen
	StateComplete              // every card has been answered
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateActive:
		return "active"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ProgressUpdater is the part of the progress store a session writes to.
type ProgressUpdater interface {
	Get(topicID int) entities.ProgressRecord
	SetStatus(ctx context.Context, topicID int, status entities.Status) (entities.ProgressRecord, error)
}

// Session is a shuffled, linear review over a fixed set of cards.
// It is not safe for concurrent use.
type Session struct {
	cards  []entities.Flashcard
	cursor int
	face   entities.Face
	state  State
	rng    *rand.Rand
}

// NewSession shuffles the cards and positions the cursor on the first one.
// A session without cards stays Empty.
func NewSession(cards []entities.Flashcard, rng *rand.Rand) *Session {
	s := &Session{
		cards: append([]entities.Flashcard(nil), cards...),
		rng:   rng,
	}
	s.reset()
	return s
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Face returns the visible side of the current card.
func (s *Session) Face() entities.Face {
	return s.face
}

// Cursor returns the zero-based index of the current card.
func (s *Session) Cursor() int {
	return s.cursor
}

// Len returns the number of cards in the session.
func (s *Session) Len() int {
	return len(s.cards)
}

// Cards returns the cards in their current order.
func (s *Session) Cards() []entities.Flashcard {
	return append([]entities.Flashcard(nil), s.cards...)
}

// Current returns the card under the cursor.
func (s *Session) Current() (entities.Flashcard, bool) {
	if s.state != StateActive {
		return entities.Flashcard{}, false
	}
	return s.cards[s.cursor], true
}

// Flip turns the current card over.
func (s *Session) Flip() error {
	if s.state != StateActive {
		return fmt.Errorf("%w: flip in %s state", ErrInvalidTransition, s.state)
	}

	if s.face == entities.FaceQuestion {
		s.face = entities.FaceAnswer
	} else {
		s.face = entities.FaceQuestion
	}
	return nil
}

// Answer records the result for the current card and advances the cursor.
// A remembered card moves its topic to InReview unless it is already Mastered.
// When the progress update fails the cursor does not move.
func (s *Session) Answer(ctx context.Context, remembered bool, progress ProgressUpdater) error {
	if s.state != StateActive {
		return fmt.Errorf("%w: answer in %s state", ErrInvalidTransition, s.state)
	}

	card := s.cards[s.cursor]
	if remembered && policy.PromoteOnRecall(progress.Get(card.TopicID).Status) {
		if _, err := progress.SetStatus(ctx, card.TopicID, entities.StatusInReview); err != nil {
			return fmt.Errorf("promote topic %d: %w", card.TopicID, err)
		}
	}

	s.face = entities.FaceQuestion
	s.cursor++
	if s.cursor >= len(s.cards) {
		s.state = StateComplete
	}
	return nil
}

// Restart reshuffles the same cards and starts over. Restarting an empty
// session is a no-op.
func (s *Session) Restart() {
	if s.state == StateEmpty {
		return
	}
	s.reset()
}

func (s *Session) reset() {
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})

	s.cursor = 0
	s.face = entities.FaceQuestion
	if len(s.cards) == 0 {
		s.state = StateEmpty
		return
	}
	s.state = StateActive
}
