package entities

import (
	"errors"
	"fmt"
)

// Text size bounds, in percent of the default size.
const (
	MinTextSize     = 80
	MaxTextSize     = 150
	DefaultTextSize = 100
	TextSizeStep    = 10
)

var ErrTextSizeOutOfRange = errors.New("text size out of range")

// AppState is the whole persisted state of the application.
type AppState struct {
	Progress map[int]ProgressRecord `json:"progress"` // topic id -> progress record
	DarkMode bool                   `json:"darkMode"` // display preference
	TextSize int                    `json:"textSize"` // percent, 80..150
}

// DefaultAppState returns the state used when nothing has been persisted yet.
func DefaultAppState() AppState {
	return AppState{
		Progress: make(map[int]ProgressRecord),
		DarkMode: false,
		TextSize: DefaultTextSize,
	}
}

// Effective returns the record of a topic, or the implicit Pending record
// when the topic has never been studied.
func (s AppState) Effective(topicID int) ProgressRecord {
	if rec, ok := s.Progress[topicID]; ok {
		return rec
	}
	return NewProgressRecord(topicID)
}

// Clone returns a deep copy of the state.
func (s AppState) Clone() AppState {
	out := AppState{
		Progress: make(map[int]ProgressRecord, len(s.Progress)),
		DarkMode: s.DarkMode,
		TextSize: s.TextSize,
	}

	for id, rec := range s.Progress {
		if rec.LastStudied != nil {
			t := *rec.LastStudied
			rec.LastStudied = &t
		}
		out.Progress[id] = rec
	}

	return out
}

// ValidateTextSize checks a text size coming from user input.
func ValidateTextSize(size int) error {
	if size < MinTextSize || size > MaxTextSize {
		return fmt.Errorf("%w: %d (allowed %d..%d)", ErrTextSizeOutOfRange, size, MinTextSize, MaxTextSize)
	}
	return nil
}
