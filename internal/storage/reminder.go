package storage

import (
	"sync"
	"time"
)

// ReminderMessage is a reminder that was delivered to a chat.
type ReminderMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// ReminderStorage remembers the last reminder sent to each chat so a new
// reminder can replace it.
type ReminderStorage struct {
	mu       sync.RWMutex
	messages map[int64]ReminderMessage
}

func NewReminderStorage() *ReminderStorage {
	return &ReminderStorage{
		messages: make(map[int64]ReminderMessage),
	}
}

// UpsertAndGetPrev stores the new reminder message and returns the one it
// replaces.
func (s *ReminderStorage) UpsertAndGetPrev(chatID int64, messageID int) (prev ReminderMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[chatID]

	s.messages[chatID] = ReminderMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    time.Now(),
	}

	return prev, hadPrev
}
