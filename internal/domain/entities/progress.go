package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidStatus is returned when a status value is not one of the known ones.
var ErrInvalidStatus = errors.New("invalid topic status")

// Status represents the study status of a syllabus topic.
type Status int

const (
	StatusPending  Status = iota // not studied yet
	StatusInReview               // seen at least once, being reviewed
	StatusMastered               // marked as studied
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusInReview, StatusMastered}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInReview:
		return "InReview"
	case StatusMastered:
		return "Mastered"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusMastered:
		return true
	default:
		return false
	}
}

// ParseStatus converts the persisted string form back into a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "Pending":
		return StatusPending, nil
	case "InReview":
		return StatusInReview, nil
	case "Mastered":
		return StatusMastered, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

// ProgressRecord stores the study progress of a single topic.
type ProgressRecord struct {
	TopicID       int        `json:"topicId"`               // catalog topic id
	Status        Status     `json:"status"`                // current study status
	LastStudied   *time.Time `json:"lastStudied,omitempty"` // set on every status update, nil if never studied
	TimesReviewed int        `json:"timesReviewed"`         // number of status updates
}

// NewProgressRecord returns the implicit record of a topic nobody has studied yet.
func NewProgressRecord(topicID int) ProgressRecord {
	return ProgressRecord{
		TopicID: topicID,
		Status:  StatusPending,
	}
}

// WithStatus returns the record that results from a status update at now.
// Every update counts as a review, including one to the current status.
func (r ProgressRecord) WithStatus(status Status, now time.Time) ProgressRecord {
	studied := now
	return ProgressRecord{
		TopicID:       r.TopicID,
		Status:        status,
		LastStudied:   &studied,
		TimesReviewed: r.TimesReviewed + 1,
	}
}
